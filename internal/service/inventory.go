package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Skotchmaster/inventory/internal/events"
	"github.com/Skotchmaster/inventory/internal/logging"
	"github.com/Skotchmaster/inventory/internal/models"
	"github.com/Skotchmaster/inventory/internal/repo"
	"github.com/Skotchmaster/inventory/internal/search"
	"github.com/Skotchmaster/inventory/internal/transport"
)

type InventoryService struct {
	Repo   *repo.GormRepo
	Events events.Publisher
	Index  search.Indexer
}

func ValidateProduct(in transport.ProductInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: nome is required", ErrValidation)
	}
	if in.SupplierID == nil || *in.SupplierID == 0 {
		return fmt.Errorf("%w: fornecedorId is required", ErrValidation)
	}
	return nil
}

func ValidateSupplier(in transport.SupplierInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: Nome is required", ErrValidation)
	}
	if strings.TrimSpace(in.CNPJ) == "" {
		return fmt.Errorf("%w: CNPJ is required", ErrValidation)
	}
	return nil
}

func productFromInput(in transport.ProductInput) *models.Product {
	return &models.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Quantity:    in.Quantity,
		Image:       in.Image,
		SupplierID:  *in.SupplierID,
	}
}

func (s *InventoryService) ListProducts(ctx context.Context, f transport.ProductFilter) ([]models.ProductRow, error) {
	return s.Repo.ListProducts(ctx, f)
}

func (s *InventoryService) GetProduct(ctx context.Context, id uint) (*models.ProductRow, error) {
	return s.Repo.GetProduct(ctx, id)
}

func (s *InventoryService) CreateProduct(ctx context.Context, in transport.ProductInput) (uint, error) {
	if err := ValidateProduct(in); err != nil {
		return 0, err
	}

	p := productFromInput(in)
	if err := s.Repo.CreateProduct(ctx, p); err != nil {
		return 0, fmt.Errorf("create product: %w", err)
	}

	s.publish(ctx, events.TopicProducts, p.ID, events.ProductEvent{
		Type: "product_created", ProductID: p.ID, Name: p.Name, SupplierID: p.SupplierID, At: time.Now().UTC(),
	})
	s.reindex(ctx, p.ID)
	return p.ID, nil
}

// UpdateProduct replaces every mutable field. A nil image keeps the stored one.
func (s *InventoryService) UpdateProduct(ctx context.Context, id uint, in transport.ProductInput) error {
	if err := ValidateProduct(in); err != nil {
		return err
	}

	if in.Image == nil {
		img, err := s.Repo.ProductImage(ctx, id)
		if err != nil && !errors.Is(err, repo.ErrNotFound) {
			return fmt.Errorf("read product image: %w", err)
		}
		in.Image = img
	}

	p := productFromInput(in)
	if err := s.Repo.UpdateProduct(ctx, id, p); err != nil {
		return fmt.Errorf("update product: %w", err)
	}

	s.publish(ctx, events.TopicProducts, id, events.ProductEvent{
		Type: "product_updated", ProductID: id, Name: p.Name, SupplierID: p.SupplierID, At: time.Now().UTC(),
	})
	s.reindex(ctx, id)
	return nil
}

func (s *InventoryService) DeleteProduct(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	s.publish(ctx, events.TopicProducts, id, events.ProductEvent{
		Type: "product_deleted", ProductID: id, At: time.Now().UTC(),
	})
	if s.Index != nil {
		if err := s.Index.DeleteProduct(ctx, id); err != nil {
			logging.FromContext(ctx).Warn("search_delete_failed", "product_id", id, "error", err)
		}
	}
	return nil
}

func (s *InventoryService) ListSuppliers(ctx context.Context) ([]models.Supplier, error) {
	return s.Repo.ListSuppliers(ctx)
}

func (s *InventoryService) GetSupplier(ctx context.Context, id uint) (*models.Supplier, error) {
	return s.Repo.GetSupplier(ctx, id)
}

func (s *InventoryService) CreateSupplier(ctx context.Context, in transport.SupplierInput) (uint, error) {
	if err := ValidateSupplier(in); err != nil {
		return 0, err
	}

	sup := &models.Supplier{Name: in.Name, CNPJ: in.CNPJ, Contact: in.Contact, Address: in.Address}
	if err := s.Repo.CreateSupplier(ctx, sup); err != nil {
		return 0, fmt.Errorf("create supplier: %w", err)
	}

	s.publish(ctx, events.TopicSuppliers, sup.ID, events.SupplierEvent{
		Type: "supplier_created", SupplierID: sup.ID, Name: sup.Name, At: time.Now().UTC(),
	})
	return sup.ID, nil
}

func (s *InventoryService) UpdateSupplier(ctx context.Context, id uint, in transport.SupplierInput) error {
	if err := ValidateSupplier(in); err != nil {
		return err
	}

	sup := &models.Supplier{Name: in.Name, CNPJ: in.CNPJ, Contact: in.Contact, Address: in.Address}
	if err := s.Repo.UpdateSupplier(ctx, id, sup); err != nil {
		return fmt.Errorf("update supplier: %w", err)
	}

	s.publish(ctx, events.TopicSuppliers, id, events.SupplierEvent{
		Type: "supplier_updated", SupplierID: id, Name: sup.Name, At: time.Now().UTC(),
	})
	s.reindexSupplier(ctx, id)
	return nil
}

func (s *InventoryService) DeleteSupplier(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteSupplier(ctx, id); err != nil {
		return fmt.Errorf("delete supplier: %w", err)
	}

	s.publish(ctx, events.TopicSuppliers, id, events.SupplierEvent{
		Type: "supplier_deleted", SupplierID: id, At: time.Now().UTC(),
	})
	return nil
}

func (s *InventoryService) publish(ctx context.Context, topic string, id uint, event any) {
	if s.Events == nil {
		return
	}
	if err := s.Events.PublishEvent(ctx, topic, strconv.FormatUint(uint64(id), 10), event); err != nil {
		logging.FromContext(ctx).Warn("publish_event_failed", "topic", topic, "key", id, "error", err)
	}
}

func (s *InventoryService) reindex(ctx context.Context, id uint) {
	if s.Index == nil {
		return
	}
	l := logging.FromContext(ctx)

	row, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		if !errors.Is(err, repo.ErrNotFound) {
			l.Warn("search_index_failed", "product_id", id, "error", err)
		}
		return
	}
	if err := s.Index.IndexProduct(ctx, *row); err != nil {
		l.Warn("search_index_failed", "product_id", id, "error", err)
	}
}

// the supplier name is denormalized into every indexed product
func (s *InventoryService) reindexSupplier(ctx context.Context, supplierID uint) {
	if s.Index == nil {
		return
	}
	if _, ok := s.Index.(search.Nop); ok {
		return
	}

	rows, err := s.Repo.ListProducts(ctx, transport.ProductFilter{SupplierID: &supplierID})
	if err != nil {
		logging.FromContext(ctx).Warn("search_reindex_failed", "supplier_id", supplierID, "error", err)
		return
	}
	for _, row := range rows {
		if err := s.Index.IndexProduct(ctx, row); err != nil {
			logging.FromContext(ctx).Warn("search_index_failed", "product_id", row.ID, "error", err)
		}
	}
}
