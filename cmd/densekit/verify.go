package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/densekit/backend"
	"github.com/katalvlaran/densekit/conformance"
)

func newVerifyCmd(a *app) *cobra.Command {
	var against string
	cmd := &cobra.Command{
		Use:   "verify [--against BACKEND]",
		Short: "Run the conformance checks against the selected backend",
		Long: `verify runs every conformance check against the selected backend and
prints one line per check. With --against (or verify.against in the config)
each kernel is also cross-checked against a second backend.

Exits 1 when any check fails.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			vc := a.cfg.Verify
			if cmd.Flags().Changed("against") {
				vc.Against = against
			}
			opts := []conformance.Option{
				conformance.WithLogger(a.log),
				conformance.WithTolerance(vc.ToleranceOrDefault()),
				conformance.WithSize(vc.Size),
				conformance.WithSeed(vc.SeedOrDefault()),
			}
			if vc.Against != "" {
				other, err := a.resolve(vc.Against)
				if err != nil {
					return errWithCode(err, exitError)
				}
				opts = append(opts, conformance.WithAgainst(other))
			}

			rep, err := conformance.New(opts...).Run(cmd.Context(), a.backend)
			if err != nil {
				return errWithCode(err, exitError)
			}

			out := cmd.OutOrStdout()
			for _, f := range rep.Findings {
				if f.Passed {
					fmt.Fprintf(out, "ok    %s\n", f.Name)
				} else {
					fmt.Fprintf(out, "FAIL  %s: %s\n", f.Name, f.Detail)
				}
			}
			failed := len(rep.Failed())
			fmt.Fprintf(out, "%s: %d/%d checks passed\n", rep.Backend, len(rep.Findings)-failed, len(rep.Findings))
			if failed > 0 {
				return errWithCode(nil, exitCheckFailed)
			}

			return nil
		},
	}
	cmd.Flags().StringVar(&against, "against", "", "Cross-check every kernel against this backend")

	return cmd
}

func newBackendsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "backends",
		Short: "List registered backends; the selected one is starred",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, name := range backend.Names() {
				mark := " "
				if name == a.backend.Name() {
					mark = "*"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", mark, name)
			}

			return nil
		},
	}
}
