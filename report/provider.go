package report

import "context"

// Provider is the payment-provider surface the pipeline depends on. The
// live implementation lives in the stripeapi package; tests supply fakes.
type Provider interface {
	// PayoutTransactions streams every balance transaction belonging to
	// a payout, following pagination transparently. The stream includes
	// the payout-settlement entry; filtering is the fetch stage's job.
	PayoutTransactions(ctx context.Context, payoutID string) TransactionStream

	// CheckoutSessions lists the checkout sessions attached to a payment
	// intent. Zero or one result is normal; more signals corrupt
	// provider-side state.
	CheckoutSessions(ctx context.Context, intentID string) ([]CheckoutSession, error)

	// RecentPayouts lists the most recent payouts, newest first.
	RecentPayouts(ctx context.Context, limit int) ([]PayoutSummary, error)
}

// TransactionStream is a finite, non-restartable pull stream of ledger
// transactions. Next returns false once the stream is exhausted or has
// failed; Err reports the failure, if any, after Next returned false.
type TransactionStream interface {
	Next() (LedgerTransaction, bool)
	Err() error
}

// SliceStream adapts an in-memory slice to a TransactionStream. The live
// provider streams pages lazily instead; this exists for fakes and for
// replaying already-materialized data.
type SliceStream struct {
	txs []LedgerTransaction
	pos int
}

// NewSliceStream returns a stream over txs in order.
func NewSliceStream(txs []LedgerTransaction) *SliceStream {
	return &SliceStream{txs: txs}
}

// Next implements TransactionStream.
func (s *SliceStream) Next() (LedgerTransaction, bool) {
	if s.pos >= len(s.txs) {
		return LedgerTransaction{}, false
	}
	tx := s.txs[s.pos]
	s.pos++
	return tx, true
}

// Err implements TransactionStream. A slice stream never fails.
func (s *SliceStream) Err() error { return nil }
