package models

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type Supplier struct {
	ID      uint    `gorm:"primaryKey;autoIncrement"           json:"FornecedorID"`
	Name    string  `gorm:"not null"                           json:"Nome"`
	CNPJ    string  `gorm:"column:cnpj;uniqueIndex;not null"   json:"CNPJ"`
	Contact *string `json:"Contato"`
	Address *string `json:"Endereco"`
}

type Product struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"  json:"id"`
	Name        string    `gorm:"not null"                  json:"nome"`
	Description *string   `json:"descricao"`
	Price       *float64  `json:"preco"`
	Quantity    *int      `json:"quantidade"`
	Image       *string   `json:"imagem"`
	SupplierID  uint      `gorm:"index;not null"            json:"fornecedorId"`
	Supplier    *Supplier `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}

// ProductRow is a product joined with the name of its supplier.
// It is read-only and never migrated.
type ProductRow struct {
	ID           uint     `json:"id"`
	Name         string   `json:"nome"`
	Description  *string  `json:"descricao"`
	Price        *float64 `json:"preco"`
	Quantity     *int     `json:"quantidade"`
	Image        *string  `json:"imagem"`
	SupplierID   uint     `json:"fornecedorId"`
	SupplierName *string  `json:"fornecedorNome"`
}

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement"                              json:"id"`
	Name         string `gorm:"not null"                                              json:"nome"`
	Email        string `gorm:"uniqueIndex;not null"                                  json:"email"`
	PasswordHash string `gorm:"column:password;not null"                              json:"-"`
	Role         string `gorm:"not null;default:user;check:chk_users_role,role IN ('admin','user')" json:"role"`
}

func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleUser
}
