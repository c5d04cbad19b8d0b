// Package source abstracts where the raw tabular case export comes from.
package source

import "context"

// Row is one header-keyed record from the tabular export.
type Row map[string]string

// Source defines the contract for anything that can provide raw tabular
// case records. The loader is the sole consumer.
type Source interface {
	// FetchRows retrieves every row of the export, keyed by header name.
	FetchRows(ctx context.Context) ([]Row, error)
}
