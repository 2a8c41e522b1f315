package cli

import (
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/atlekbai/function_registry/internal/service"
)

func newFunctionsCmd(v *viper.Viper) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "functions [pattern]",
		Short: "List registered functions, optionally filtered by a LIKE pattern",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := newBackend(v)
			if err != nil {
				return err
			}
			req := &service.ListFunctionsRequest{}
			if len(args) == 1 {
				req.Pattern = args[0]
			}
			resp, err := b.ListFunctions(cmd.Context(), req)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), resp)
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"Name", "Kind", "Shape", "Aliases"})
			table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
			table.SetAlignment(tablewriter.ALIGN_LEFT)
			table.SetAutoWrapText(false)
			for _, f := range resp.Functions {
				table.Append([]string{f.Name, f.Kind, f.Shape, strings.Join(f.Aliases, ", ")})
			}
			table.Render()
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}
