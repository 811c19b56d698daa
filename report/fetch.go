package report

import (
	"context"
	"fmt"
)

// settlementType marks the payout-to-bank entry that Stripe includes in
// a payout's own transaction listing. It is not a purchase-side
// transaction and never appears in a report.
const settlementType = "payout"

// FetchTransactions drains the provider's transaction stream for a
// payout, dropping the settlement entry and preserving provider order.
// An empty payout yields an empty slice, not an error.
func FetchTransactions(ctx context.Context, p Provider, payoutID string) ([]LedgerTransaction, error) {
	stream := p.PayoutTransactions(ctx, payoutID)

	var txs []LedgerTransaction
	for {
		tx, ok := stream.Next()
		if !ok {
			break
		}
		if tx.Type == settlementType {
			continue
		}
		txs = append(txs, tx)
	}
	if err := stream.Err(); err != nil {
		return nil, fmt.Errorf("listing transactions for payout %s: %w", payoutID, err)
	}
	return txs, nil
}

// IntentIDs extracts the distinct payment intent IDs referenced by txs,
// in first-seen order. Transactions without an intent are skipped; they
// pass through the join with unmatched metadata instead.
func IntentIDs(txs []LedgerTransaction) []string {
	seen := make(map[string]bool, len(txs))
	var ids []string
	for _, tx := range txs {
		if tx.IntentID == "" || seen[tx.IntentID] {
			continue
		}
		seen[tx.IntentID] = true
		ids = append(ids, tx.IntentID)
	}
	return ids
}
