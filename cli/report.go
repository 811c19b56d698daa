package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/alecthomas/kong"

	"github.com/sudosos/payout-report/config"
	"github.com/sudosos/payout-report/output"
	"github.com/sudosos/payout-report/report"
	"github.com/sudosos/payout-report/stripeapi"
	"github.com/sudosos/payout-report/telemetry"
	"github.com/sudosos/payout-report/xlsx"
)

type ReportCmd struct {
	Payout      string `help:"Payout ID to fetch from Stripe." short:"p"`
	JSON        string `help:"Path to a previously dumped JSON report." short:"j" type:"existingfile"`
	PrintJSON   bool   `help:"Print the report as JSON to stdout." short:"c"`
	NoExcel     bool   `help:"Skip writing the spreadsheet." short:"x"`
	Output      string `help:"Spreadsheet file name (defaults to 'Report <payout-id>.xlsx')." short:"o"`
	Concurrency int    `help:"Maximum parallel checkout session lookups." default:"8"`
}

func (cmd *ReportCmd) Run(ctx *kong.Context, globals *Globals) error {
	if cmd.Payout == "" && cmd.JSON == "" {
		return errors.New("either a payout ID (--payout) or a JSON dump (--json) must be provided")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	return generateReport(ctx, globals, cfg, cmd)
}

// generateReport runs the pipeline (or loads a dump) and emits the
// configured outputs. It is shared with the payouts command, which fills
// in the payout ID from the interactive picker.
func generateReport(ctx *kong.Context, globals *Globals, cfg *config.Config, cmd *ReportCmd) error {
	runCtx := context.Background()

	if globals.Telemetry {
		recorder := telemetry.NewRecorder()
		runCtx = telemetry.WithCollector(runCtx, recorder)

		defer func() {
			_, _ = fmt.Fprintln(ctx.Stderr)
			recorder.Report(ctx.Stderr, output.NewStyles(ctx.Stderr))
		}()
	}

	r, err := buildOrLoad(runCtx, cfg, cmd)
	if err != nil {
		var sessionsErr *report.MultipleSessionsError
		if errors.As(err, &sessionsErr) {
			printError(ctx.Stderr, fmt.Sprintf("data integrity: %s", sessionsErr))
			return NewCommandError(1)
		}
		return err
	}

	if cmd.PrintJSON {
		if err := r.Dump(ctx.Stdout); err != nil {
			return err
		}
	}

	if !cmd.NoExcel {
		name := cmd.Output
		if name == "" {
			name = fmt.Sprintf("Report %s.xlsx", r.PayoutID)
		}
		if err := xlsx.Write(r, name); err != nil {
			return err
		}
		printSuccess(ctx.Stdout, fmt.Sprintf("Saved %s (%d transactions)", pathStyle.Render(name), len(r.Transactions)))
	}

	return nil
}

func buildOrLoad(runCtx context.Context, cfg *config.Config, cmd *ReportCmd) (*report.Report, error) {
	if cmd.JSON != "" {
		return report.LoadFile(cmd.JSON)
	}

	collector := telemetry.FromContext(runCtx)
	timer := collector.Start("report " + cmd.Payout)
	defer timer.End()
	runCtx = telemetry.WithRootTimer(runCtx, timer)

	provider := stripeapi.New(cfg.APIKey)
	return report.Build(runCtx, provider, cmd.Payout, report.ResolveOptions{
		Concurrency:       cmd.Concurrency,
		DirectChargeLabel: cfg.DirectChargeLabel,
	})
}
