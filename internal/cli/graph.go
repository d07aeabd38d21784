package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/swanview/pkg/errors"
	"github.com/matzehuels/swanview/pkg/render/nodelink"
)

// graphOpts holds the command-line flags for the graph command.
type graphOpts struct {
	output   string // output file path (stdout if empty)
	svg      bool   // render SVG instead of emitting DOT
	detailed bool   // include object kinds in labels
}

// newGraphCmd renders the connectivity of an operator's diagram.
func newGraphCmd() *cobra.Command {
	var opts graphOpts

	cmd := &cobra.Command{
		Use:   "graph <project> <module::Operator>",
		Short: "Render an operator diagram's connectivity",
		Long: `Graph consolidates the wires of the operator's diagram and emits the
block-level connectivity as Graphviz DOT, or as SVG with --svg.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, _, err := openModel(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			op, diagrams, err := findDiagrams(m, args[1])
			if err != nil {
				return err
			}
			if len(diagrams) == 0 {
				return errors.New(errors.ErrCodeNameNotFound,
					"operator %s has no diagram", op.ID)
			}

			// One graph per command run; multi-diagram bodies take the first.
			if len(diagrams) > 1 {
				loggerFromContext(cmd.Context()).Warnf(
					"operator %s has %d diagrams, rendering the first", op.ID, len(diagrams))
			}
			dot, err := nodelink.ToDOT(diagrams[0], nodelink.Options{Detailed: opts.detailed})
			if err != nil {
				return err
			}

			out := []byte(dot)
			if opts.svg {
				sp := newSpinner(cmd.Context(), "Rendering "+op.ID.Value)
				sp.Start()
				out, err = nodelink.RenderSVG(cmd.Context(), dot)
				if err != nil {
					sp.StopWithError(err.Error())
					return err
				}
				sp.Stop()
			}

			if opts.output == "" {
				fmt.Print(string(out))
				return nil
			}
			if err := os.WriteFile(opts.output, out, 0o644); err != nil {
				return err
			}
			printSuccess("Rendered %s", op.Signature())
			printFile(opts.output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&opts.svg, "svg", false, "render SVG via Graphviz instead of DOT")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include object kinds in node labels")
	return cmd
}
