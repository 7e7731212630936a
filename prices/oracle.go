// Package prices wraps the external spot-price service. The oracle is
// fail-open per asset: a transport or parse failure maps every requested
// identifier to nil instead of failing the batch.
package prices

import (
	"context"
)

// Oracle maps asset identifiers to USD spot prices. A nil entry means the
// price is unavailable, which is distinct from a price of zero. Every
// requested identifier is present in the result.
type Oracle interface {
	Prices(ctx context.Context, ids []string) map[string]*float64
}
