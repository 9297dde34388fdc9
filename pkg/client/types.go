package client

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type Product struct {
	ID           uint     `json:"id"`
	Name         string   `json:"nome"`
	Description  *string  `json:"descricao"`
	Price        *float64 `json:"preco"`
	Quantity     *int     `json:"quantidade"`
	Image        *string  `json:"imagem"`
	SupplierID   uint     `json:"fornecedorId"`
	SupplierName *string  `json:"fornecedorNome"`
}

type ProductFilter struct {
	Name       string
	SupplierID uint
	// "asc" sorts by ascending price, any other non-empty value descending
	PriceOrder string
}

// ProductForm is the body of a product create or update.
// ImagePath, when set, names a local file uploaded as the product image.
type ProductForm struct {
	Name        string
	Description *string
	Price       *float64
	Quantity    *int
	SupplierID  uint
	ImagePath   string
}

type Supplier struct {
	ID      uint    `json:"FornecedorID,omitempty"`
	Name    string  `json:"Nome"`
	CNPJ    string  `json:"CNPJ"`
	Contact *string `json:"Contato"`
	Address *string `json:"Endereco"`
}

type User struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

type UserRecord struct {
	ID    uint   `json:"id"`
	Name  string `json:"nome"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type RegisterRequest struct {
	Name     string `json:"nome"`
	Email    string `json:"email"`
	Password string `json:"senha"`
	Role     string `json:"role,omitempty"`
}

type LoginResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

type created struct {
	Success bool `json:"success"`
	ID      uint `json:"id"`
}
