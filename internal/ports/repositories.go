package ports

import "context"

// LookupRepository persists resolved lookups for auditing. Rows are never
// read back to answer requests.
type LookupRepository interface {
	InsertLookup(ctx context.Context, entry LookupEntry) error
}
