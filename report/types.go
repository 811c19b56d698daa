// Package report assembles reconciliation reports for Stripe payouts.
// A report bundles every ledger transaction that contributed to a payout,
// enriched with the product and customer behind each purchase, together
// with per-product totals.
//
// The pipeline runs in strict stages: fetch the payout's transactions,
// resolve checkout metadata for every referenced payment intent, join the
// two sets, and fold the result into aggregate buckets. Only the resolve
// stage touches the network concurrently; everything downstream is a pure
// transformation over already-fetched data.
package report

// LedgerTransaction is a single balance transaction as returned by the
// provider. Amounts are signed integers in minor currency units (cents).
// It is never mutated after the fetch stage.
type LedgerTransaction struct {
	ID       string
	Type     string
	Created  int64
	Amount   int64
	Currency string
	Fee      int64
	Net      int64

	// IntentID is the payment intent behind this transaction, or empty
	// when the transaction has no purchase context (e.g. an adjustment).
	IntentID string
}

// Customer identifies who paid. Both fields are nil for direct charges
// and for checkout sessions without customer details.
type Customer struct {
	Name  *string
	Email *string
}

// PurchaseMetadata is the resolved purchase context for one payment
// intent: what was bought and by whom.
type PurchaseMetadata struct {
	Product  *string
	Customer Customer
}

// LineItem is a single purchased item on a checkout session.
type LineItem struct {
	Description string
}

// CheckoutSession is the provider's record of a hosted purchase flow,
// reduced to the fields the report needs.
type CheckoutSession struct {
	ID        string
	LineItems []LineItem
	Customer  Customer
}

// PayoutSummary describes one payout in a recent-payouts listing.
type PayoutSummary struct {
	ID       string
	Created  int64
	Amount   int64
	Currency string
}

// EnrichedTransaction joins a ledger transaction with its purchase
// metadata. Product, Name and Email are either all drawn from the same
// resolved session or all nil; the pair is never mixed. JSON tags match
// the dump format, which is the stable interchange form.
type EnrichedTransaction struct {
	ID       string  `json:"id"`
	Created  int64   `json:"created"`
	Amount   int64   `json:"amount"`
	Currency string  `json:"currency"`
	Fee      int64   `json:"fee"`
	Net      int64   `json:"net"`
	Product  *string `json:"product"`
	Name     *string `json:"name"`
	Email    *string `json:"email"`
}

// AggregateBucket holds the running sums for one product across all
// enriched transactions sharing it. Sums stay in minor units, so the
// conservation invariant (bucket sums equal transaction sums) is exact.
type AggregateBucket struct {
	Amount  int64   `json:"amount"`
	Fee     int64   `json:"fee"`
	Net     int64   `json:"net"`
	Product *string `json:"product"`
}

// NullProductKey is the aggregation key for transactions without a
// product. It matches the JSON dump, where the nil product serializes as
// the literal key "null".
const NullProductKey = "null"

// Report is the pipeline's sole output: the payout, its enriched
// transactions in fetch order, and the per-product aggregation. It is
// immutable once built.
type Report struct {
	PayoutID     string                      `json:"balance_payout_id"`
	Transactions []EnrichedTransaction       `json:"transactions"`
	Aggregation  map[string]*AggregateBucket `json:"aggregation"`
}
