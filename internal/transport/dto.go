package transport

import (
	"time"

	"github.com/Skotchmaster/inventory/internal/models"
)

type ProductFilter struct {
	Name       string
	SupplierID *uint
	PriceOrder string
}

// ProductInput carries the mutable product fields of a create or update.
// Image is nil when no new file was uploaded.
type ProductInput struct {
	Name        string
	Description *string
	Price       *float64
	Quantity    *int
	SupplierID  *uint
	Image       *string
}

type SupplierInput struct {
	Name    string  `json:"Nome"`
	CNPJ    string  `json:"CNPJ"`
	Contact *string `json:"Contato"`
	Address *string `json:"Endereco"`
}

type RegisterRequest struct {
	Name     string `json:"nome"`
	Email    string `json:"email"`
	Password string `json:"senha"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"senha"`
}

type LoginUser struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

type LoginResult struct {
	User      LoginUser
	Token     string
	ExpiresAt time.Time
}

type LoginResponse struct {
	User  LoginUser `json:"user"`
	Token string    `json:"token"`
}

type CreatedResponse struct {
	Success bool `json:"success"`
	ID      uint `json:"id"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

type SearchResponse struct {
	Total    int64               `json:"total"`
	Products []models.ProductRow `json:"produtos"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}
