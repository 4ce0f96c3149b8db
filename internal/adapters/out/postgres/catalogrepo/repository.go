package catalogrepo

import (
	"context"
	"fmt"

	"craftorders/internal/core/domain/model/catalog"
	"craftorders/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCatalogReader implements ports.CatalogReader on the items table.
type GormCatalogReader struct {
	db *gorm.DB
}

func NewGormCatalogReader(db *gorm.DB) *GormCatalogReader {
	return &GormCatalogReader{db: db}
}

// FindByIDs resolves the records that exist for the requested ids. Absent
// ids are simply missing from the result; the pricing calculator turns them
// into one batch failure.
func (r *GormCatalogReader) FindByIDs(ctx context.Context, ids []kernel.UUID) ([]*catalog.Item, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	rawIDs := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		rawIDs = append(rawIDs, id.Bytes())
	}

	var dtos []ItemDTO
	if err := r.db.WithContext(ctx).Where("id IN ?", rawIDs).Find(&dtos).Error; err != nil {
		return nil, fmt.Errorf("failed to load catalog items: %w", err)
	}

	items := make([]*catalog.Item, 0, len(dtos))
	for _, dto := range dtos {
		item, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}
