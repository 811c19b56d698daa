// Package stripeapi adapts the Stripe API to the report pipeline's
// Provider interface. Responses are converted into the pipeline's typed
// records at this boundary; nothing downstream sees a Stripe struct.
package stripeapi

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/balancetransaction"
	"github.com/stripe/stripe-go/v82/checkout/session"
	"github.com/stripe/stripe-go/v82/payout"

	"github.com/sudosos/payout-report/report"
)

// Client implements report.Provider against the live Stripe API.
type Client struct{}

// New configures the Stripe SDK with the given API key and returns a
// Client. The SDK handles pagination and its own transport retries; no
// retry policy is layered on top here.
func New(apiKey string) *Client {
	stripe.Key = apiKey
	return &Client{}
}

// PayoutTransactions implements report.Provider. The stream follows the
// SDK's auto-pagination lazily; pages are fetched as the caller pulls.
func (c *Client) PayoutTransactions(ctx context.Context, payoutID string) report.TransactionStream {
	params := &stripe.BalanceTransactionListParams{
		Payout: stripe.String(payoutID),
	}
	params.Context = ctx
	params.AddExpand("data.source.payment_intent")

	return &transactionStream{iter: balancetransaction.List(params)}
}

// CheckoutSessions implements report.Provider.
func (c *Client) CheckoutSessions(ctx context.Context, intentID string) ([]report.CheckoutSession, error) {
	params := &stripe.CheckoutSessionListParams{
		PaymentIntent: stripe.String(intentID),
	}
	params.Context = ctx
	params.AddExpand("data.line_items")

	var sessions []report.CheckoutSession
	iter := session.List(params)
	for iter.Next() {
		sessions = append(sessions, convertSession(iter.CheckoutSession()))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("stripe: %w", err)
	}
	return sessions, nil
}

// RecentPayouts implements report.Provider.
func (c *Client) RecentPayouts(ctx context.Context, limit int) ([]report.PayoutSummary, error) {
	params := &stripe.PayoutListParams{}
	params.Context = ctx
	params.Limit = stripe.Int64(int64(limit))

	var payouts []report.PayoutSummary
	iter := payout.List(params)
	for iter.Next() {
		p := iter.Payout()
		payouts = append(payouts, report.PayoutSummary{
			ID:       p.ID,
			Created:  p.Created,
			Amount:   p.Amount,
			Currency: string(p.Currency),
		})
		if len(payouts) == limit {
			break
		}
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("stripe: %w", err)
	}
	return payouts, nil
}

// transactionStream adapts the SDK's paginated iterator to
// report.TransactionStream.
type transactionStream struct {
	iter *balancetransaction.Iter
}

func (s *transactionStream) Next() (report.LedgerTransaction, bool) {
	if !s.iter.Next() {
		return report.LedgerTransaction{}, false
	}
	return convertTransaction(s.iter.BalanceTransaction()), true
}

func (s *transactionStream) Err() error {
	if err := s.iter.Err(); err != nil {
		return fmt.Errorf("stripe: %w", err)
	}
	return nil
}

func convertTransaction(bt *stripe.BalanceTransaction) report.LedgerTransaction {
	tx := report.LedgerTransaction{
		ID:       bt.ID,
		Type:     string(bt.Type),
		Created:  bt.Created,
		Amount:   bt.Amount,
		Currency: string(bt.Currency),
		Fee:      bt.Fee,
		Net:      bt.Net,
	}
	// The payment intent rides on the expanded source charge; other
	// source kinds (top-ups, adjustments) carry none.
	if bt.Source != nil && bt.Source.Charge != nil && bt.Source.Charge.PaymentIntent != nil {
		tx.IntentID = bt.Source.Charge.PaymentIntent.ID
	}
	return tx
}

func convertSession(s *stripe.CheckoutSession) report.CheckoutSession {
	converted := report.CheckoutSession{ID: s.ID}
	if s.LineItems != nil {
		for _, item := range s.LineItems.Data {
			converted.LineItems = append(converted.LineItems, report.LineItem{Description: item.Description})
		}
	}
	if s.CustomerDetails != nil {
		converted.Customer = report.Customer{
			Name:  optionalString(s.CustomerDetails.Name),
			Email: optionalString(s.CustomerDetails.Email),
		}
	}
	return converted
}

// optionalString maps the SDK's empty-string absence to an explicit nil.
func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
