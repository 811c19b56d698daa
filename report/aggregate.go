package report

// Aggregate folds the enriched transactions into per-product buckets,
// summing amount, fee and net in minor units. Transactions without a
// product group under NullProductKey, matching the dump format where a
// nil product serializes as the literal key "null". Addition over
// integers commutes, so the result is independent of input order.
func Aggregate(rows []EnrichedTransaction) map[string]*AggregateBucket {
	buckets := make(map[string]*AggregateBucket)
	for _, row := range rows {
		key := NullProductKey
		if row.Product != nil {
			key = *row.Product
		}
		bucket, ok := buckets[key]
		if !ok {
			bucket = &AggregateBucket{Product: row.Product}
			buckets[key] = bucket
		}
		bucket.Amount += row.Amount
		bucket.Fee += row.Fee
		bucket.Net += row.Net
	}
	return buckets
}
