package ports

import (
	"context"

	"craftorders/internal/core/domain/model/catalog"
	"craftorders/internal/core/domain/model/kernel"
)

// CatalogReader resolves catalog records for pricing. The catalog itself is an
// external collaborator; this core only reads from it.
//
// FindByIDs returns the records that exist for the requested ids; absent ids
// are simply missing from the result, and the pricing calculator reports them
// as one batch failure.
type CatalogReader interface {
	FindByIDs(ctx context.Context, ids []kernel.UUID) ([]*catalog.Item, error)
}
