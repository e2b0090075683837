// Package cli implements hkidctl, a command line front end for the HKID
// service: generation, validation and lookups without running the gateway.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"hkid-gateway/internal/hkid/service"
	"hkid-gateway/internal/platform/logger"
	"hkid-gateway/pkg/hkid"
)

// ErrNegative is returned when a command ran but its answer is negative,
// e.g. an HKID with the wrong check digit. It exits 1 without an error line.
var ErrNegative = errors.New("negative result")

const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

type app struct {
	output  string
	verbose bool
	seed    uint64

	stdout io.Writer
	svc    *service.Service
}

// NewRootCmd builds the hkidctl command tree writing results to stdout.
func NewRootCmd(stdout io.Writer) *cobra.Command {
	a := &app{stdout: stdout}

	root := &cobra.Command{
		Use:   "hkidctl",
		Short: "Generate and validate Hong Kong Identity Card numbers",
		Long: `hkidctl works with Hong Kong Identity Card (HKID) numbers offline.
It computes check digits, validates and generates numbers, and explains
prefixes and card symbols.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	root.SetOut(stdout)
	root.PersistentFlags().StringVarP(&a.output, "output", "o", outputText, "output format: text, json or yaml")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log service activity to stderr")

	root.AddCommand(
		a.newGenerateCmd(),
		a.newValidateCmd(),
		a.newCheckDigitCmd(),
		a.newInspectCmd(),
		a.newPrefixesCmd(),
		a.newSymbolCmd(),
		a.newSymbolsCmd(),
	)
	return root
}

// Execute runs hkidctl against the process arguments.
func Execute() error {
	err := NewRootCmd(os.Stdout).Execute()
	if err != nil && !errors.Is(err, ErrNegative) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	switch a.output {
	case outputText, outputJSON, outputYAML:
	default:
		return fmt.Errorf("unsupported output %q, want text, json or yaml", a.output)
	}

	log := logger.Discard()
	if a.verbose {
		var err error
		log, err = logger.NewWithWriter(os.Stderr, "debug", "text")
		if err != nil {
			return err
		}
	}

	opts := []service.Option{service.WithLogger(log)}
	if f := cmd.Flags().Lookup("seed"); f != nil && f.Changed {
		opts = append(opts, service.WithGenerator(hkid.NewGenerator(hkid.WithRandomSource(hkid.NewSeededSource(a.seed)))))
	}
	svc, err := service.New(opts...)
	if err != nil {
		return err
	}
	a.svc = svc
	return nil
}
