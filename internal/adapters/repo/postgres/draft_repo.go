package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/phenrril/newmobile/internal/domain"
)

type DraftRepo struct{ db *gorm.DB }

func NewDraftRepo(db *gorm.DB) *DraftRepo { return &DraftRepo{db: db} }

// Save upserts by product id, so repeated autosaves keep one row per product.
func (r *DraftRepo) Save(ctx context.Context, d *domain.Draft) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "product_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"type", "snapshot", "updated_at"}),
	}).Create(d).Error
}

func (r *DraftRepo) FindByProduct(ctx context.Context, productID string) (*domain.Draft, error) {
	var d domain.Draft
	if err := r.db.WithContext(ctx).First(&d, "product_id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (r *DraftRepo) Delete(ctx context.Context, productID string) error {
	return r.db.WithContext(ctx).Where("product_id = ?", productID).Delete(&domain.Draft{}).Error
}
