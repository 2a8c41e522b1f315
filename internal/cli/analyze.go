package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/atlekbai/function_registry/internal/service"
)

func newAnalyzeCmd(v *viper.Viper) *cobra.Command {
	var (
		asJSON bool
		req    service.AnalyzeRequest
	)
	cmd := &cobra.Command{
		Use:     "analyze <expression>",
		Short:   "Resolve an expression and print its Postgres translation",
		Example: `  fnreg analyze "round(avg(salary), 2)" --table people`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := newBackend(v)
			if err != nil {
				return err
			}
			req.Expression = args[0]
			resp, err := b.Analyze(cmd.Context(), &req)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), resp)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "resolved: %s\n", resp.Resolved)
			fmt.Fprintf(out, "sql:      %s\n", resp.SQL)
			if len(resp.Args) > 0 {
				fmt.Fprintf(out, "args:     %v\n", resp.Args)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&req.TimeZone, "tz", "", "session time zone for datetime functions")
	cmd.Flags().StringVar(&req.Table, "table", "", "table the expression selects from")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}
