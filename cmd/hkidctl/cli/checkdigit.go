package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

type checkDigitView struct {
	Body       string `json:"body" yaml:"body"`
	CheckDigit string `json:"check_digit" yaml:"check_digit"`
	HKID       string `json:"hkid" yaml:"hkid"`
}

func (a *app) newCheckDigitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check-digit BODY",
		Short: "Compute the check digit for an HKID body such as A123456",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := a.svc.CheckDigit(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			view := checkDigitView{
				Body:       result.Body,
				CheckDigit: runeString(result.CheckDigit),
				HKID:       result.Formatted,
			}
			return a.render(view, func(w io.Writer) error {
				fmt.Fprintln(w, view.HKID)
				return nil
			})
		},
	}
}
