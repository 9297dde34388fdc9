package httpserver

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	authmw "github.com/Skotchmaster/inventory/internal/middleware/auth"
)

type Deps struct {
	ProductHandler  *ProductHTTP
	SupplierHandler *SupplierHTTP
	AuthHandler     *AuthHTTP
	UploadHandler   *UploadHTTP
	// nil when no search backend is configured
	SearchHandler *SearchHTTP

	JWTSecret    []byte
	EnforceRoles bool
	Ready        func(ctx context.Context) error
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if d.Ready != nil {
			if err := d.Ready(c.Request().Context()); err != nil {
				return echo.NewHTTPError(http.StatusServiceUnavailable, "not ready").SetInternal(err)
			}
		}
		return c.NoContent(http.StatusOK)
	})

	authMW := authmw.NewBearerAuth(d.JWTSecret)

	var mutate []echo.MiddlewareFunc
	if d.EnforceRoles {
		mutate = append(mutate, authMW.RequireAdmin)
	}

	products := e.Group("/produtos")
	if d.SearchHandler != nil {
		products.GET("/search", d.SearchHandler.SearchProducts)
	}
	products.GET("", d.ProductHandler.GetProducts)
	products.GET("/:id", d.ProductHandler.GetProduct)
	products.POST("", d.ProductHandler.CreateProduct, mutate...)
	products.PUT("/:id", d.ProductHandler.UpdateProduct, mutate...)
	products.DELETE("/:id", d.ProductHandler.DeleteProduct, mutate...)

	suppliers := e.Group("/fornecedores")
	suppliers.GET("", d.SupplierHandler.GetSuppliers)
	suppliers.GET("/:id", d.SupplierHandler.GetSupplier)
	suppliers.POST("", d.SupplierHandler.CreateSupplier, mutate...)
	suppliers.PUT("/:id", d.SupplierHandler.UpdateSupplier, mutate...)
	suppliers.DELETE("/:id", d.SupplierHandler.DeleteSupplier, mutate...)

	e.POST("/register", d.AuthHandler.Register)
	e.POST("/login", d.AuthHandler.Login)
	e.GET("/usuarios", d.AuthHandler.ListUsers, authMW.RequireAdmin)

	e.GET("/uploads/:name", d.UploadHandler.ServeUpload)
}
