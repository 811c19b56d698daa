package report

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/sudosos/payout-report/telemetry"
)

// Build runs the full pipeline for one payout: fetch, resolve, join,
// aggregate. Stages run strictly in order; only the resolve stage fans
// out. Any stage error aborts the build.
func Build(ctx context.Context, p Provider, payoutID string, opts ResolveOptions) (*Report, error) {
	root := telemetry.RootFromContext(ctx)

	timer := root.Child("fetch transactions")
	txs, err := FetchTransactions(ctx, p, payoutID)
	timer.End()
	if err != nil {
		return nil, err
	}

	timer = root.Child("resolve payment intents")
	resolved, err := ResolveIntents(ctx, p, IntentIDs(txs), opts)
	timer.End()
	if err != nil {
		return nil, err
	}

	timer = root.Child("assemble and aggregate")
	enriched := Assemble(txs, resolved)
	aggregation := Aggregate(enriched)
	timer.End()

	return &Report{
		PayoutID:     payoutID,
		Transactions: enriched,
		Aggregation:  aggregation,
	}, nil
}

// Dump writes the report as indented JSON. The dump is the stable
// interchange format: loading it back reproduces an equivalent report,
// so spreadsheets can be regenerated offline.
func (r *Report) Dump(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return nil
}

// Load reads a report previously written by Dump.
func Load(r io.Reader) (*Report, error) {
	var rep Report
	if err := json.NewDecoder(r).Decode(&rep); err != nil {
		return nil, fmt.Errorf("decoding report: %w", err)
	}
	return &rep, nil
}

// LoadFile reads a dumped report from disk.
func LoadFile(path string) (*Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rep, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rep, nil
}
