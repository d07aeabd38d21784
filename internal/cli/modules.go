package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/swanview/pkg/model"
)

// newModulesCmd lists the modules of a project and, optionally, their
// declarations.
func newModulesCmd() *cobra.Command {
	var decls bool

	cmd := &cobra.Command{
		Use:   "modules <project>",
		Short: "List the modules of a Swan project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, proj, err := openModel(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Println(StyleTitle.Render(proj.Name))
			for _, mod := range m.LoadedModules() {
				kind := "module"
				if mod.IsInterface() {
					kind = "interface"
				}
				printInfo("%s %s", kind, StyleHighlight.Render(mod.FullPath()))
				if !decls {
					continue
				}
				for _, op := range mod.Operators() {
					printDetail("%s", op.Signature())
				}
			}

			if decls {
				printDeclCounts(m)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&decls, "declarations", "d", false, "list operators and declaration counts")
	return cmd
}

func printDeclCounts(m *model.Model) {
	fmt.Println()
	printKeyValue("types", fmt.Sprint(len(m.Types())))
	printKeyValue("constants", fmt.Sprint(len(m.Constants())))
	printKeyValue("sensors", fmt.Sprint(len(m.Sensors())))
	printKeyValue("groups", fmt.Sprint(len(m.Groups())))
	printKeyValue("operators", fmt.Sprint(len(m.Operators())))
	printKeyValue("signatures", fmt.Sprint(len(m.Signatures())))
}
