package report

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestAssemble(t *testing.T) {
	txs := []LedgerTransaction{
		{ID: "t1", Created: 100, Amount: 1000, Currency: "eur", Fee: 30, Net: 970, IntentID: "i1"},
		{ID: "t2", Created: 200, Amount: 500, Currency: "eur", Fee: 15, Net: 485},
		{ID: "t3", Created: 300, Amount: 250, Currency: "eur", Fee: 10, Net: 240, IntentID: "i9"},
	}
	resolved := map[string]PurchaseMetadata{
		"i1": {
			Product:  strptr("Coffee"),
			Customer: Customer{Name: strptr("A"), Email: strptr("a@x.com")},
		},
	}

	enriched := Assemble(txs, resolved)

	t.Run("preserves order and count", func(t *testing.T) {
		assert.Equal(t, len(txs), len(enriched))
		assert.Equal(t, "t1", enriched[0].ID)
		assert.Equal(t, "t2", enriched[1].ID)
		assert.Equal(t, "t3", enriched[2].ID)
	})

	t.Run("matched transaction carries its metadata", func(t *testing.T) {
		assert.Equal(t, "Coffee", *enriched[0].Product)
		assert.Equal(t, "A", *enriched[0].Name)
		assert.Equal(t, "a@x.com", *enriched[0].Email)
		assert.Equal(t, int64(1000), enriched[0].Amount)
	})

	t.Run("transaction without intent gets the unmatched triple", func(t *testing.T) {
		assert.Zero(t, enriched[1].Product)
		assert.Zero(t, enriched[1].Name)
		assert.Zero(t, enriched[1].Email)
	})

	t.Run("intent missing from the mapping gets the unmatched triple", func(t *testing.T) {
		assert.Zero(t, enriched[2].Product)
		assert.Zero(t, enriched[2].Name)
		assert.Zero(t, enriched[2].Email)
	})
}

func TestAssembleEmpty(t *testing.T) {
	enriched := Assemble(nil, nil)
	assert.Equal(t, 0, len(enriched))
}
