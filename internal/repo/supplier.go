package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Skotchmaster/inventory/internal/models"
)

func (r *GormRepo) ListSuppliers(ctx context.Context) ([]models.Supplier, error) {
	items := make([]models.Supplier, 0)
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) GetSupplier(ctx context.Context, id uint) (*models.Supplier, error) {
	var s models.Supplier
	if err := r.DB.WithContext(ctx).Where("id = ?", id).Take(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *GormRepo) CreateSupplier(ctx context.Context, s *models.Supplier) error {
	return r.DB.WithContext(ctx).Create(s).Error
}

func (r *GormRepo) UpdateSupplier(ctx context.Context, id uint, s *models.Supplier) error {
	return r.DB.WithContext(ctx).
		Model(&models.Supplier{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"name":    s.Name,
			"cnpj":    s.CNPJ,
			"contact": s.Contact,
			"address": s.Address,
		}).Error
}

func (r *GormRepo) DeleteSupplier(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Delete(&models.Supplier{}, id).Error
}
