package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"hkid-gateway/internal/hkid/service"
)

type generateView struct {
	HKIDs []string `json:"hkids" yaml:"hkids"`
}

func (a *app) newGenerateCmd() *cobra.Command {
	var (
		prefix string
		known  bool
		count  int
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate valid HKID numbers",
		Long: `Generate HKID numbers with a correct check digit.

Without --prefix a random one- or two-letter prefix is chosen; --known limits
it to documented prefixes. --seed makes the output reproducible.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req := service.GenerateRequest{MustBeKnown: known, Count: count}
			if cmd.Flags().Changed("prefix") {
				req.Prefix = &prefix
			}
			ids, err := a.svc.Generate(cmd.Context(), req)
			if err != nil {
				return err
			}
			return a.render(generateView{HKIDs: ids}, func(w io.Writer) error {
				for _, id := range ids {
					fmt.Fprintln(w, id)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&prefix, "prefix", "p", "", "prefix to use, e.g. A or XA")
	cmd.Flags().BoolVarP(&known, "known", "k", false, "only use documented prefixes")
	cmd.Flags().IntVarP(&count, "count", "n", 1, "how many numbers to generate")
	cmd.Flags().Uint64Var(&a.seed, "seed", 0, "seed for reproducible output")
	return cmd
}
