package report

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds the resolver's parallel session lookups when
// no explicit limit is configured.
const DefaultConcurrency = 8

// DefaultDirectChargeLabel is the product label for payments that went
// through no checkout session.
const DefaultDirectChargeLabel = "SudoSOS Topup"

// ResolveOptions configures the resolve stage. The zero value is usable.
type ResolveOptions struct {
	// Concurrency caps the number of in-flight session lookups.
	// Defaults to DefaultConcurrency when <= 0.
	Concurrency int

	// DirectChargeLabel is the product assigned to intents with no
	// checkout session. Defaults to DefaultDirectChargeLabel when empty.
	DirectChargeLabel string
}

// MultipleSessionsError reports a payment intent with more than one
// checkout session. At most one session may exist per intent; more means
// the provider-side state is not what this report assumes, so the whole
// resolution fails rather than guessing which session to attribute.
type MultipleSessionsError struct {
	IntentID string
	Count    int
}

func (e *MultipleSessionsError) Error() string {
	return fmt.Sprintf("payment intent %s has %d checkout sessions, expected at most one", e.IntentID, e.Count)
}

// ResolveIntents looks up purchase metadata for every intent ID, issuing
// one session lookup per intent with bounded concurrency. The returned
// map covers every ID in intentIDs. Any failed lookup fails the whole
// resolution and cancels the in-flight siblings; no partial map is ever
// returned, so a report can never silently understate revenue.
func ResolveIntents(ctx context.Context, p Provider, intentIDs []string, opts ResolveOptions) (map[string]PurchaseMetadata, error) {
	limit := opts.Concurrency
	if limit <= 0 {
		limit = DefaultConcurrency
	}
	label := opts.DirectChargeLabel
	if label == "" {
		label = DefaultDirectChargeLabel
	}

	// Each worker writes only its own index; the map is built after the
	// group has fully drained.
	results := make([]PurchaseMetadata, len(intentIDs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, id := range intentIDs {
		g.Go(func() error {
			meta, err := resolveIntent(gctx, p, id, label)
			if err != nil {
				return err
			}
			results[i] = meta
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	resolved := make(map[string]PurchaseMetadata, len(intentIDs))
	for i, id := range intentIDs {
		resolved[id] = results[i]
	}
	return resolved, nil
}

func resolveIntent(ctx context.Context, p Provider, intentID, directChargeLabel string) (PurchaseMetadata, error) {
	sessions, err := p.CheckoutSessions(ctx, intentID)
	if err != nil {
		return PurchaseMetadata{}, fmt.Errorf("listing checkout sessions for intent %s: %w", intentID, err)
	}

	switch len(sessions) {
	case 0:
		// Direct charge, no checkout flow behind it.
		label := directChargeLabel
		return PurchaseMetadata{Product: &label}, nil
	case 1:
		session := sessions[0]
		if len(session.LineItems) == 0 {
			return PurchaseMetadata{}, fmt.Errorf("checkout session %s for intent %s has no line items", session.ID, intentID)
		}
		product := session.LineItems[0].Description
		return PurchaseMetadata{Product: &product, Customer: session.Customer}, nil
	default:
		return PurchaseMetadata{}, &MultipleSessionsError{IntentID: intentID, Count: len(sessions)}
	}
}
