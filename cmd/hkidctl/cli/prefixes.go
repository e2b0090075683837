package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"hkid-gateway/internal/hkid/service"
)

type prefixView struct {
	Code        string `json:"code" yaml:"code"`
	Description string `json:"description" yaml:"description"`
}

func toPrefixViews(prefixes []service.PrefixInfo) []prefixView {
	views := make([]prefixView, len(prefixes))
	for i, p := range prefixes {
		views[i] = prefixView(p)
	}
	return views
}

func (a *app) newPrefixesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prefixes [CODE]",
		Short: "List documented prefixes, or describe one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			var prefixes []service.PrefixInfo
			if len(args) == 1 {
				info, err := a.svc.Prefix(args[0])
				if err != nil {
					return err
				}
				prefixes = []service.PrefixInfo{info}
			} else {
				prefixes = a.svc.Prefixes()
			}

			views := toPrefixViews(prefixes)
			var v any = views
			if len(args) == 1 {
				v = views[0]
			}
			return a.render(v, func(w io.Writer) error {
				fmt.Fprintln(w, "CODE\tDESCRIPTION")
				for _, p := range views {
					fmt.Fprintf(w, "%s\t%s\n", p.Code, p.Description)
				}
				return nil
			})
		},
	}
}
