package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/inventory/internal/models"
	"github.com/Skotchmaster/inventory/internal/transport"
)

const productColumns = "products.id, products.name, products.description, products.price, " +
	"products.quantity, products.image, products.supplier_id, suppliers.name AS supplier_name"

func (r *GormRepo) productRows(ctx context.Context) *gorm.DB {
	return r.DB.WithContext(ctx).
		Table("products").
		Select(productColumns).
		Joins("LEFT JOIN suppliers ON suppliers.id = products.supplier_id")
}

func (r *GormRepo) ListProducts(ctx context.Context, f transport.ProductFilter) ([]models.ProductRow, error) {
	q := r.productRows(ctx)

	if f.Name != "" {
		q = q.Where("products.name LIKE ?", "%"+f.Name+"%")
	}
	if f.SupplierID != nil {
		q = q.Where("products.supplier_id = ?", *f.SupplierID)
	}
	if f.PriceOrder != "" {
		q = q.Order(clause.OrderByColumn{
			Column: clause.Column{Table: "products", Name: "price"},
			Desc:   f.PriceOrder != "asc",
		})
	}
	q = q.Order("products.id ASC")

	items := make([]models.ProductRow, 0)
	if err := q.Scan(&items).Error; err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.ProductRow{}
	}
	return items, nil
}

func (r *GormRepo) GetProduct(ctx context.Context, id uint) (*models.ProductRow, error) {
	var rows []models.ProductRow
	if err := r.productRows(ctx).Where("products.id = ?", id).Limit(1).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return &rows[0], nil
}

// ProductImage returns the stored image path of a product.
func (r *GormRepo) ProductImage(ctx context.Context, id uint) (*string, error) {
	var p models.Product
	err := r.DB.WithContext(ctx).Select("image").Where("id = ?", id).Take(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p.Image, nil
}

func (r *GormRepo) CreateProduct(ctx context.Context, p *models.Product) error {
	return r.DB.WithContext(ctx).Omit(clause.Associations).Create(p).Error
}

// UpdateProduct overwrites every mutable column, nil values included.
// Zero matched rows is not an error.
func (r *GormRepo) UpdateProduct(ctx context.Context, id uint, p *models.Product) error {
	return r.DB.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"name":        p.Name,
			"description": p.Description,
			"price":       p.Price,
			"quantity":    p.Quantity,
			"image":       p.Image,
			"supplier_id": p.SupplierID,
		}).Error
}

func (r *GormRepo) DeleteProduct(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Delete(&models.Product{}, id).Error
}
