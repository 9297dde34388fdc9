package httpserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Skotchmaster/inventory/internal/logging"
	"github.com/Skotchmaster/inventory/internal/service"
	"github.com/Skotchmaster/inventory/internal/transport"
	"github.com/Skotchmaster/inventory/internal/upload"
)

const imageField = "imagem"

type ProductHTTP struct {
	Svc     *service.InventoryService
	Uploads *upload.Uploader
}

type productBody struct {
	Name        string   `json:"nome"`
	Description *string  `json:"descricao"`
	Price       *float64 `json:"preco"`
	Quantity    *int     `json:"quantidade"`
	SupplierID  *uint    `json:"fornecedorId"`
}

func isForm(c echo.Context) bool {
	ctype := c.Request().Header.Get(echo.HeaderContentType)
	return strings.HasPrefix(ctype, echo.MIMEMultipartForm) || strings.HasPrefix(ctype, echo.MIMEApplicationForm)
}

// bindProduct reads a product from a multipart/urlencoded form or a JSON body.
// Form keys that are absent or empty leave the optional fields nil.
func bindProduct(c echo.Context) (transport.ProductInput, *multipart.FileHeader, error) {
	var in transport.ProductInput

	if !isForm(c) {
		var body productBody
		if err := c.Bind(&body); err != nil {
			return in, nil, err
		}
		in = transport.ProductInput{
			Name:        body.Name,
			Description: body.Description,
			Price:       body.Price,
			Quantity:    body.Quantity,
			SupplierID:  body.SupplierID,
		}
		return in, nil, nil
	}

	form, err := c.FormParams()
	if err != nil {
		return in, nil, err
	}

	in.Name = form.Get("nome")
	v, ok := form["descricao"]
	in.Description = optionalString(v, ok)

	v, ok = form["preco"]
	if in.Price, err = optionalFloat(v, ok); err != nil {
		return in, nil, fmt.Errorf("preco: %w", err)
	}
	v, ok = form["quantidade"]
	if in.Quantity, err = optionalInt(v, ok); err != nil {
		return in, nil, fmt.Errorf("quantidade: %w", err)
	}
	v, ok = form["fornecedorId"]
	if in.SupplierID, err = optionalUint(v, ok); err != nil {
		return in, nil, fmt.Errorf("fornecedorId: %w", err)
	}

	var fh *multipart.FileHeader
	if mf := c.Request().MultipartForm; mf != nil {
		if files := mf.File[imageField]; len(files) > 0 {
			fh = files[0]
		}
	}
	return in, fh, nil
}

func (h *ProductHTTP) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_products")

	filter := transport.ProductFilter{
		Name:       c.QueryParam("nome"),
		PriceOrder: c.QueryParam("ordemPreco"),
	}
	if raw := c.QueryParam("fornecedorId"); raw != "" {
		id, err := optionalUint([]string{raw}, true)
		if err != nil {
			l.Warn("get_products_failed", "status", 400, "reason", "fornecedorId is not an integer", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "fornecedorId must be an integer")
		}
		filter.SupplierID = id
	}

	items, err := h.Svc.ListProducts(ctx, filter)
	if err != nil {
		l.Error("get_products_failed", "status", 500, "reason", "cannot list products", "error", err)
		return storageError("cannot list products", err)
	}

	l.Debug("get_products_success", "count", len(items))
	return c.JSON(http.StatusOK, items)
}

func (h *ProductHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_product")

	id, err := parseID(c)
	if err != nil {
		l.Warn("get_product_failed", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id must be an integer")
	}

	product, err := h.Svc.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("get_product_failed", "status", 404, "reason", "product not found", "id", id)
			return echo.NewHTTPError(http.StatusNotFound, "Produto não encontrado.")
		}
		l.Error("get_product_failed", "status", 500, "reason", "cannot get product", "error", err)
		return storageError("cannot get product", err)
	}

	return c.JSON(http.StatusOK, product)
}

func (h *ProductHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create_product")

	in, fh, err := bindProduct(c)
	if err != nil {
		l.Warn("create_product_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := service.ValidateProduct(in); err != nil {
		l.Warn("create_product_failed", "status", 400, "reason", "missing required fields", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "nome and fornecedorId are required")
	}

	if fh != nil {
		path, err := h.Uploads.Save(ctx, fh)
		if err != nil {
			l.Error("create_product_failed", "status", 500, "reason", "cannot store image", "error", err)
			return storageError("cannot store image", err)
		}
		in.Image = &path
	}

	id, err := h.Svc.CreateProduct(ctx, in)
	if err != nil {
		h.discardImage(ctx, l, in.Image, fh)
		if errors.Is(err, service.ErrValidation) {
			l.Warn("create_product_failed", "status", 400, "reason", "invalid body", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
		}
		l.Error("create_product_failed", "status", 500, "reason", "cannot add product to db", "error", err)
		return storageError("cannot create product", err)
	}

	l.Info("create_product_success", "id", id)
	return c.JSON(http.StatusCreated, transport.CreatedResponse{Success: true, ID: id})
}

func (h *ProductHTTP) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.update_product")

	id, err := parseID(c)
	if err != nil {
		l.Warn("update_product_failed", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id must be an integer")
	}

	in, fh, err := bindProduct(c)
	if err != nil {
		l.Warn("update_product_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := service.ValidateProduct(in); err != nil {
		l.Warn("update_product_failed", "status", 400, "reason", "missing required fields", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "nome and fornecedorId are required")
	}

	if fh != nil {
		path, err := h.Uploads.Save(ctx, fh)
		if err != nil {
			l.Error("update_product_failed", "status", 500, "reason", "cannot store image", "error", err)
			return storageError("cannot store image", err)
		}
		in.Image = &path
	}

	if err := h.Svc.UpdateProduct(ctx, id, in); err != nil {
		h.discardImage(ctx, l, in.Image, fh)
		if errors.Is(err, service.ErrValidation) {
			l.Warn("update_product_failed", "status", 400, "reason", "invalid body", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
		}
		l.Error("update_product_failed", "status", 500, "reason", "cannot update product", "error", err)
		return storageError("cannot update product", err)
	}

	l.Info("update_product_success", "id", id)
	return c.JSON(http.StatusOK, transport.SuccessResponse{Success: true})
}

// discardImage removes an image stored for a request whose write failed.
func (h *ProductHTTP) discardImage(ctx context.Context, l *slog.Logger, image *string, fh *multipart.FileHeader) {
	if fh == nil || image == nil {
		return
	}
	if err := h.Uploads.Discard(ctx, *image); err != nil {
		l.Warn("discard_image_failed", "image", *image, "error", err)
	}
}

func (h *ProductHTTP) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete_product")

	id, err := parseID(c)
	if err != nil {
		l.Warn("delete_product_failed", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id must be an integer")
	}

	if err := h.Svc.DeleteProduct(ctx, id); err != nil {
		l.Error("delete_product_failed", "status", 500, "reason", "cannot delete product", "error", err)
		return storageError("cannot delete product", err)
	}

	l.Info("delete_product_success", "id", id)
	return c.JSON(http.StatusOK, transport.SuccessResponse{Success: true})
}
