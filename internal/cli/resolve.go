package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/swanview/pkg/errors"
	"github.com/matzehuels/swanview/pkg/swan"
)

// newResolveCmd resolves a possibly qualified name from the point of
// view of a module.
func newResolveCmd() *cobra.Command {
	var from string

	cmd := &cobra.Command{
		Use:   "resolve <project> <name>",
		Short: "Resolve a name against a project's modules",
		Long: `Resolve looks a name up the way an operator body would see it:
module-level declarations first, then the interface companion, then
qualified paths through use directives and aliases.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, _, err := openModel(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			origin := from
			if origin == "" {
				mods := m.LoadedModules()
				if len(mods) == 0 {
					return errors.New(errors.ErrCodeInvalidProject, "project has no modules")
				}
				origin = mods[0].FullPath()
			}

			decl, err := m.Resolve(origin, args[1])
			if errors.NotFound(err) {
				printError("%s: not found from %s", args[1], origin)
				return nil
			}
			if err != nil {
				return err
			}

			path, err := swan.FullPath(decl)
			if err != nil {
				return err
			}
			printSuccess("%s", StyleHighlight.Render(path))
			if op, ok := decl.(*swan.Operator); ok {
				printDetail("%s", op.Signature())
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&from, "from", "f", "", "module the name is resolved from (default: first module)")
	return cmd
}
