package product

import "time"

const (
	EstadoActivo   = "activo"
	EstadoInactivo = "inactivo"
)

type Product struct {
	ID               string `json:"id"`
	Nombre           string `json:"nombre"`
	NombreCientifico string `json:"nombre_cientifico,omitempty"`
	Descripcion      string `json:"descripcion,omitempty"`
	// We store price as a string to avoid rounding errors (NUMERIC in Postgres)
	Precio          string    `json:"precio"`
	Stock           int       `json:"stock"`
	ImagenURL       string    `json:"imagen_url,omitempty"`
	CategoriaID     *string   `json:"categoria_id,omitempty"`
	CategoriaNombre string    `json:"categoria_nombre,omitempty"`
	Cuidados        string    `json:"cuidados,omitempty"`
	Luz             string    `json:"luz,omitempty"`
	Riego           string    `json:"riego,omitempty"`
	Tamano          string    `json:"tamano,omitempty"`
	Estado          string    `json:"estado"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// HTTPError represents a standard error in JSON.
// swagger:model
type HTTPError struct {
	// Error message
	// example: not found
	Error string `json:"error"`
}

// CreateProductRequest payload of creation.
// swagger:model CreateProductRequest
type CreateProductRequest struct {
	Nombre           string  `json:"nombre"            example:"Monstera Deliciosa"`
	NombreCientifico string  `json:"nombre_cientifico" example:"Monstera deliciosa"`
	Descripcion      string  `json:"descripcion"       example:"Planta de interior de hojas perforadas"`
	Precio           string  `json:"precio"            example:"19.90"`
	Stock            int     `json:"stock"             example:"10"`
	ImagenURL        string  `json:"imagen_url"`
	CategoriaID      *string `json:"categoria_id"`
	Cuidados         string  `json:"cuidados"`
	Luz              string  `json:"luz"               example:"indirecta"`
	Riego            string  `json:"riego"             example:"moderado"`
	Tamano           string  `json:"tamano"            example:"mediano"`
	Estado           string  `json:"estado"            example:"activo"`
}

// UpdateProductRequest payload of partial update.
// swagger:model UpdateProductRequest
type UpdateProductRequest struct {
	Nombre           string  `json:"nombre"`
	NombreCientifico string  `json:"nombre_cientifico"`
	Descripcion      string  `json:"descripcion"`
	Precio           string  `json:"precio"`
	Stock            *int    `json:"stock"`
	ImagenURL        string  `json:"imagen_url"`
	CategoriaID      *string `json:"categoria_id"`
	Cuidados         string  `json:"cuidados"`
	Luz              string  `json:"luz"`
	Riego            string  `json:"riego"`
	Tamano           string  `json:"tamano"`
	Estado           string  `json:"estado"`
}

// RestockRequest payload de reposición de stock (admin).
// swagger:model RestockRequest
type RestockRequest struct {
	Cantidad int `json:"cantidad" example:"5"`
}
