package report

import (
	"context"
	"sync"
	"time"
)

// fakeProvider implements Provider over in-memory data. It tracks the
// number of concurrent CheckoutSessions calls so resolver tests can
// assert the worker-pool bound.
type fakeProvider struct {
	txs        []LedgerTransaction
	streamErr  error
	sessions   map[string][]CheckoutSession
	sessionErr map[string]error
	payouts    []PayoutSummary
	delay      time.Duration

	mu          sync.Mutex
	inFlight    int
	maxInFlight int
}

func (f *fakeProvider) PayoutTransactions(_ context.Context, _ string) TransactionStream {
	if f.streamErr != nil {
		return &failingStream{txs: f.txs, err: f.streamErr}
	}
	return NewSliceStream(f.txs)
}

func (f *fakeProvider) CheckoutSessions(_ context.Context, intentID string) ([]CheckoutSession, error) {
	f.mu.Lock()
	f.inFlight++
	if f.inFlight > f.maxInFlight {
		f.maxInFlight = f.inFlight
	}
	f.mu.Unlock()

	if f.delay > 0 {
		time.Sleep(f.delay)
	}

	defer func() {
		f.mu.Lock()
		f.inFlight--
		f.mu.Unlock()
	}()

	if err, ok := f.sessionErr[intentID]; ok {
		return nil, err
	}
	return f.sessions[intentID], nil
}

func (f *fakeProvider) RecentPayouts(_ context.Context, limit int) ([]PayoutSummary, error) {
	if limit > len(f.payouts) {
		limit = len(f.payouts)
	}
	return f.payouts[:limit], nil
}

// failingStream yields its transactions, then fails.
type failingStream struct {
	txs []LedgerTransaction
	pos int
	err error
}

func (s *failingStream) Next() (LedgerTransaction, bool) {
	if s.pos >= len(s.txs) {
		return LedgerTransaction{}, false
	}
	tx := s.txs[s.pos]
	s.pos++
	return tx, true
}

func (s *failingStream) Err() error { return s.err }

func strptr(s string) *string { return &s }
