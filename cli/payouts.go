package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/huh"

	"github.com/sudosos/payout-report/config"
	"github.com/sudosos/payout-report/output"
	"github.com/sudosos/payout-report/report"
	"github.com/sudosos/payout-report/stripeapi"
)

const payoutDateLayout = "2006-01-02"

type PayoutsCmd struct {
	Limit       int    `help:"Number of recent payouts to list." short:"n" default:"10"`
	PrintJSON   bool   `help:"Print the generated report as JSON to stdout." short:"c"`
	NoExcel     bool   `help:"Skip writing the spreadsheet." short:"x"`
	Output      string `help:"Spreadsheet file name (defaults to 'Report <payout-id>.xlsx')." short:"o"`
	Concurrency int    `help:"Maximum parallel checkout session lookups." default:"8"`
}

func (cmd *PayoutsCmd) Run(ctx *kong.Context, globals *Globals) error {
	if cmd.Limit <= 0 {
		return errors.New("limit must be positive")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	provider := stripeapi.New(cfg.APIKey)
	payouts, err := provider.RecentPayouts(context.Background(), cmd.Limit)
	if err != nil {
		return err
	}
	if len(payouts) == 0 {
		printInfof(ctx.Stdout, "No payouts found")
		return nil
	}

	styles := output.NewStyles(ctx.Stdout)
	for i, p := range payouts {
		created := time.Unix(p.Created, 0).UTC().Format(payoutDateLayout)
		_, _ = fmt.Fprintf(ctx.Stdout, "%2d. Created: %s, ID: %s\n", i+1, created, styles.PayoutID(p.ID))
	}

	// Without a terminal there is nobody to ask; the listing is the
	// whole output.
	if !isTerminal() {
		return nil
	}

	choice, err := promptPayout(payouts)
	if err != nil {
		return fmt.Errorf("failed to read selection: %w", err)
	}
	if choice == "" {
		return nil
	}

	reportCmd := &ReportCmd{
		Payout:      choice,
		PrintJSON:   cmd.PrintJSON,
		NoExcel:     cmd.NoExcel,
		Output:      cmd.Output,
		Concurrency: cmd.Concurrency,
	}
	return generateReport(ctx, globals, cfg, reportCmd)
}

// promptPayout asks the user to pick a payout. An empty choice means
// exit without generating a report.
func promptPayout(payouts []report.PayoutSummary) (string, error) {
	options := make([]huh.Option[string], 0, len(payouts)+1)
	for _, p := range payouts {
		created := time.Unix(p.Created, 0).UTC().Format(payoutDateLayout)
		options = append(options, huh.NewOption(fmt.Sprintf("%s (created %s)", p.ID, created), p.ID))
	}
	options = append(options, huh.NewOption("Exit without generating a report", ""))

	var choice string
	form := huh.NewSelect[string]().
		Title("Select a payout to generate a report").
		Options(options...).
		Value(&choice)

	if err := form.Run(); err != nil {
		return "", err
	}
	return choice, nil
}
