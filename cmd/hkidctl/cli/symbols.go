package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"hkid-gateway/internal/hkid/service"
)

type symbolView struct {
	Text        string `json:"text" yaml:"text"`
	Kind        string `json:"kind" yaml:"kind"`
	Code        string `json:"code" yaml:"code"`
	Description string `json:"description" yaml:"description"`
	Known       bool   `json:"known" yaml:"known"`
	OfficeCode  string `json:"office_code,omitempty" yaml:"office_code,omitempty"`
	LostCount   *uint8 `json:"lost_count,omitempty" yaml:"lost_count,omitempty"`
}

func toSymbolView(s service.SymbolInfo) symbolView {
	return symbolView(s)
}

func writeSymbols(w io.Writer, views []symbolView) {
	fmt.Fprintln(w, "SYMBOL\tKIND\tDESCRIPTION")
	for _, s := range views {
		desc := s.Description
		switch {
		case s.OfficeCode != "":
			desc = fmt.Sprintf("%s (office %s)", desc, s.OfficeCode)
		case s.LostCount != nil:
			desc = fmt.Sprintf("%s (%s times)", desc, strconv.Itoa(int(*s.LostCount)))
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", s.Text, s.Kind, desc)
	}
}

func (a *app) newSymbolCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "symbol TEXT",
		Short: "Classify a symbol printed on an identity card",
		Long:  `Classify a card symbol such as ***, C, L2 or H1. Exits 1 for unknown symbols.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			view := toSymbolView(a.svc.Symbol(args[0]))
			err := a.render(view, func(w io.Writer) error {
				writeSymbols(w, []symbolView{view})
				return nil
			})
			if err != nil {
				return err
			}
			if !view.Known {
				return ErrNegative
			}
			return nil
		},
	}
}

func (a *app) newSymbolsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "symbols",
		Short: "List the fixed card symbols",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			infos := a.svc.Symbols()
			views := make([]symbolView, len(infos))
			for i, s := range infos {
				views[i] = toSymbolView(s)
			}
			return a.render(views, func(w io.Writer) error {
				writeSymbols(w, views)
				return nil
			})
		},
	}
}
