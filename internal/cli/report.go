package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/vfg2006/meta-insights-connector/internal/domain"
	"github.com/vfg2006/meta-insights-connector/internal/render"
	"github.com/vfg2006/meta-insights-connector/pkg/utils"
)

type reportFlags struct {
	account  string
	fields   []string
	currency string
	window   string
	since    string
	until    string
	days     int
}

func newReportCmd(build DepsFunc, global *globalFlags) *cobra.Command {
	flags := &reportFlags{}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Run an insights report for one ad account",
		Example: `  insights report --account 123 --fields date__date,cost__spend --since 2023-05-01 --until 2023-05-07
  insights report --account act_123 --fields actions__link_click --window 7d_click,1d_view --days 28 --format csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := flags.request(time.Now())
			if err != nil {
				return err
			}

			deps, err := build()
			if err != nil {
				return err
			}

			w, format, closeOut, err := global.output(cmd)
			if err != nil {
				return err
			}
			defer closeOut()

			report, err := deps.Reporter.Run(cmd.Context(), req)
			if err != nil {
				return err
			}

			return render.Report(w, report, format)
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.account, "account", "", "ad account id, with or without the act_ prefix")
	f.StringSliceVar(&flags.fields, "fields", nil, "comma separated field names, as listed by the schema command")
	f.StringVar(&flags.currency, "currency", "", "currency semantic type, e.g. CURRENCY_EUR")
	f.StringVar(&flags.window, "window", "", "attribution windows: default or a comma separated list such as 7d_click,1d_view")
	f.StringVar(&flags.since, "since", "", "first day, YYYY-MM-DD")
	f.StringVar(&flags.until, "until", "", "last day, YYYY-MM-DD")
	f.IntVar(&flags.days, "days", 0, "report the last N full days instead of --since/--until")
	_ = cmd.MarkFlagRequired("account")
	_ = cmd.MarkFlagRequired("fields")

	return cmd
}

func (f *reportFlags) request(now time.Time) (domain.ReportRequest, error) {
	req := domain.ReportRequest{
		AccountID:         f.account,
		Currency:          f.currency,
		AttributionWindow: domain.AttributionWindow(f.window),
		Fields:            f.fields,
	}

	if f.days > 0 {
		if f.since != "" || f.until != "" {
			return req, fmt.Errorf("--days cannot be combined with --since or --until")
		}
		req.DateRange.StartDate, req.DateRange.EndDate = utils.LastDays(now, f.days)
		return req, nil
	}

	if f.since == "" || f.until == "" {
		return req, fmt.Errorf("either --days or both --since and --until are required")
	}

	start, err := utils.ParseDate(f.since)
	if err != nil {
		return req, err
	}
	end, err := utils.ParseDate(f.until)
	if err != nil {
		return req, err
	}

	req.DateRange = domain.DateRange{StartDate: start, EndDate: end}
	return req, nil
}
