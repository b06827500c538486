package user

import "time"

const (
	RolUsuario = "usuario"
	RolAdmin   = "admin"
)

type User struct {
	ID           string    `json:"id"`
	Nombre       string    `json:"nombre"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Telefono     string    `json:"telefono,omitempty"`
	Direccion    string    `json:"direccion,omitempty"`
	Rol          string    `json:"rol"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RegisterRequest payload de registro.
// swagger:model RegisterRequest
type RegisterRequest struct {
	Nombre    string `json:"nombre"    example:"Ana Pérez"`
	Email     string `json:"email"     example:"ana@example.com"`
	Password  string `json:"password"  example:"s3creta"`
	Telefono  string `json:"telefono"`
	Direccion string `json:"direccion"`
}

// LoginRequest payload de login.
// swagger:model LoginRequest
type LoginRequest struct {
	Email    string `json:"email"    example:"ana@example.com"`
	Password string `json:"password" example:"s3creta"`
}
