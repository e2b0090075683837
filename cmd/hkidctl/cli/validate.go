package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"hkid-gateway/internal/hkid/service"
)

type validateView struct {
	Input              string `json:"input" yaml:"input"`
	Valid              bool   `json:"valid" yaml:"valid"`
	Canonical          string `json:"canonical,omitempty" yaml:"canonical,omitempty"`
	Prefix             string `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	PrefixKnown        bool   `json:"prefix_known" yaml:"prefix_known"`
	PrefixDescription  string `json:"prefix_description,omitempty" yaml:"prefix_description,omitempty"`
	CheckDigit         string `json:"check_digit,omitempty" yaml:"check_digit,omitempty"`
	ExpectedCheckDigit string `json:"expected_check_digit,omitempty" yaml:"expected_check_digit,omitempty"`
	Error              string `json:"error,omitempty" yaml:"error,omitempty"`
}

func toValidateView(input string, result *service.ValidateResult, err error) validateView {
	if err != nil {
		return validateView{Input: input, Error: err.Error()}
	}
	return validateView{
		Input:              input,
		Valid:              result.Valid,
		Canonical:          result.Canonical,
		Prefix:             result.Prefix,
		PrefixKnown:        result.PrefixKnown,
		PrefixDescription:  result.PrefixDescription,
		CheckDigit:         runeString(result.CheckDigit),
		ExpectedCheckDigit: runeString(result.ExpectedCheckDigit),
	}
}

func (a *app) newValidateCmd() *cobra.Command {
	var known bool
	cmd := &cobra.Command{
		Use:   "validate HKID...",
		Short: "Validate one or more HKID numbers",
		Long: `Validate HKID numbers. The check digit may be written with or without
parentheses. Exits 1 if any number is invalid or rejected.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := a.svc.ValidateBatch(cmd.Context(), args, known)
			if err != nil {
				return err
			}

			views := make([]validateView, len(items))
			negative := false
			for i, item := range items {
				views[i] = toValidateView(item.Input, item.Result, item.Err)
				if !views[i].Valid {
					negative = true
				}
			}

			err = a.render(views, func(w io.Writer) error {
				fmt.Fprintln(w, "INPUT\tVALID\tCANONICAL\tDETAIL")
				for _, v := range views {
					detail := v.Error
					if detail == "" && !v.Valid {
						detail = fmt.Sprintf("expected check digit %s", v.ExpectedCheckDigit)
					}
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", v.Input, yesNo(v.Valid), orDash(v.Canonical), orDash(detail))
				}
				return nil
			})
			if err != nil {
				return err
			}
			if negative {
				return ErrNegative
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&known, "known", "k", false, "reject prefixes that are not documented")
	return cmd
}

func (a *app) newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect HKID",
		Short: "Explain the parts of an HKID number",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := a.svc.Validate(cmd.Context(), service.ValidateRequest{HKID: args[0]})
			if err != nil {
				return err
			}
			view := toValidateView(args[0], result, nil)
			err = a.render(view, func(w io.Writer) error {
				fmt.Fprintf(w, "Input:\t%s\n", view.Input)
				fmt.Fprintf(w, "Canonical:\t%s\n", view.Canonical)
				fmt.Fprintf(w, "Prefix:\t%s\n", view.Prefix)
				fmt.Fprintf(w, "Prefix known:\t%s\n", yesNo(view.PrefixKnown))
				fmt.Fprintf(w, "Prefix description:\t%s\n", orDash(view.PrefixDescription))
				fmt.Fprintf(w, "Check digit:\t%s\n", view.CheckDigit)
				fmt.Fprintf(w, "Expected check digit:\t%s\n", view.ExpectedCheckDigit)
				fmt.Fprintf(w, "Valid:\t%s\n", yesNo(view.Valid))
				return nil
			})
			if err != nil {
				return err
			}
			if !view.Valid {
				return ErrNegative
			}
			return nil
		},
	}
}
