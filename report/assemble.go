package report

// Assemble joins transactions with their resolved purchase metadata.
// The output has the same order and count as txs; a transaction whose
// intent is missing from resolved (or that has no intent at all) gets
// the unmatched nil/nil/nil triple.
func Assemble(txs []LedgerTransaction, resolved map[string]PurchaseMetadata) []EnrichedTransaction {
	enriched := make([]EnrichedTransaction, 0, len(txs))
	for _, tx := range txs {
		row := EnrichedTransaction{
			ID:       tx.ID,
			Created:  tx.Created,
			Amount:   tx.Amount,
			Currency: tx.Currency,
			Fee:      tx.Fee,
			Net:      tx.Net,
		}
		if meta, ok := resolved[tx.IntentID]; ok && tx.IntentID != "" {
			row.Product = meta.Product
			row.Name = meta.Customer.Name
			row.Email = meta.Customer.Email
		}
		enriched = append(enriched, row)
	}
	return enriched
}
