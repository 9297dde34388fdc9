package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Skotchmaster/inventory/internal/logging"
	"github.com/Skotchmaster/inventory/internal/service"
	"github.com/Skotchmaster/inventory/internal/transport"
)

type SupplierHTTP struct {
	Svc *service.InventoryService
}

func (h *SupplierHTTP) GetSuppliers(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "supplier.get_suppliers")

	items, err := h.Svc.ListSuppliers(ctx)
	if err != nil {
		l.Error("get_suppliers_failed", "status", 500, "reason", "cannot list suppliers", "error", err)
		return storageError("cannot list suppliers", err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *SupplierHTTP) GetSupplier(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "supplier.get_supplier")

	id, err := parseID(c)
	if err != nil {
		l.Warn("get_supplier_failed", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id must be an integer")
	}

	supplier, err := h.Svc.GetSupplier(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("get_supplier_failed", "status", 404, "reason", "supplier not found", "id", id)
			return echo.NewHTTPError(http.StatusNotFound, "Fornecedor não encontrado.")
		}
		l.Error("get_supplier_failed", "status", 500, "reason", "cannot get supplier", "error", err)
		return storageError("cannot get supplier", err)
	}
	return c.JSON(http.StatusOK, supplier)
}

func (h *SupplierHTTP) CreateSupplier(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "supplier.create_supplier")

	var req transport.SupplierInput
	if err := c.Bind(&req); err != nil {
		l.Warn("create_supplier_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	id, err := h.Svc.CreateSupplier(ctx, req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("create_supplier_failed", "status", 400, "reason", "missing required fields", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "Nome and CNPJ are required")
		}
		l.Error("create_supplier_failed", "status", 500, "reason", "cannot add supplier to db", "error", err)
		return storageError("cannot create supplier", err)
	}

	l.Info("create_supplier_success", "id", id)
	return c.JSON(http.StatusCreated, transport.CreatedResponse{Success: true, ID: id})
}

func (h *SupplierHTTP) UpdateSupplier(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "supplier.update_supplier")

	id, err := parseID(c)
	if err != nil {
		l.Warn("update_supplier_failed", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id must be an integer")
	}

	var req transport.SupplierInput
	if err := c.Bind(&req); err != nil {
		l.Warn("update_supplier_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if err := h.Svc.UpdateSupplier(ctx, id, req); err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("update_supplier_failed", "status", 400, "reason", "missing required fields", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "Nome and CNPJ are required")
		}
		l.Error("update_supplier_failed", "status", 500, "reason", "cannot update supplier", "error", err)
		return storageError("cannot update supplier", err)
	}

	l.Info("update_supplier_success", "id", id)
	return c.JSON(http.StatusOK, transport.SuccessResponse{Success: true})
}

func (h *SupplierHTTP) DeleteSupplier(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "supplier.delete_supplier")

	id, err := parseID(c)
	if err != nil {
		l.Warn("delete_supplier_failed", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id must be an integer")
	}

	if err := h.Svc.DeleteSupplier(ctx, id); err != nil {
		l.Error("delete_supplier_failed", "status", 500, "reason", "cannot delete supplier", "error", err)
		return storageError("cannot delete supplier", err)
	}

	l.Info("delete_supplier_success", "id", id)
	return c.JSON(http.StatusOK, transport.SuccessResponse{Success: true})
}
