package cli

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/vfg2006/meta-insights-connector/internal/domain"
	"github.com/vfg2006/meta-insights-connector/internal/render"
)

func newSchemaCmd(build DepsFunc, global *globalFlags) *cobra.Command {
	var (
		currency string
		group    string
	)

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "List the reportable fields",
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := build()
			if err != nil {
				return err
			}

			fields := deps.Reporter.DescribeSchema(currency)
			if group != "" {
				fields = filterGroup(fields, group)
			}

			w, format, closeOut, err := global.output(cmd)
			if err != nil {
				return err
			}
			defer closeOut()

			return render.Schema(w, fields, format)
		},
	}

	cmd.Flags().StringVar(&currency, "currency", "", "currency semantic type for CURRENCY metrics")
	cmd.Flags().StringVar(&group, "group", "", "only list fields of this display group, e.g. Costs")

	return cmd
}

func filterGroup(fields []domain.SchemaField, group string) []domain.SchemaField {
	out := make([]domain.SchemaField, 0, len(fields))
	for _, f := range fields {
		if strings.EqualFold(f.Group, group) {
			out = append(out, f)
		}
	}
	return out
}
