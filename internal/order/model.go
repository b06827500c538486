package order

import "time"

// Estado de una orden. Siempre nace en 'pendiente'; las transiciones las
// aplica el personal de despacho vía el endpoint de admin.
type Estado string

const (
	EstadoPendiente  Estado = "pendiente"
	EstadoProcesando Estado = "procesando"
	EstadoEnviado    Estado = "enviado"
	EstadoEntregado  Estado = "entregado"
	EstadoCancelado  Estado = "cancelado"
)

var validNext = map[Estado]map[Estado]bool{
	EstadoPendiente:  {EstadoProcesando: true, EstadoCancelado: true},
	EstadoProcesando: {EstadoEnviado: true, EstadoCancelado: true},
	EstadoEnviado:    {EstadoEntregado: true},
	EstadoEntregado:  {},
	EstadoCancelado:  {},
}

func CanTransition(from, to Estado) bool { return validNext[from][to] }

func ValidEstado(e Estado) bool {
	_, ok := validNext[e]
	return ok
}

type Order struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	Total            string    `json:"total"` // NUMERIC -> string
	DireccionEnvio   string    `json:"direccion_envio"`
	TelefonoContacto string    `json:"telefono_contacto"`
	Notas            string    `json:"notas,omitempty"`
	Estado           Estado    `json:"estado"`
	IdempotencyKey   string    `json:"-"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Item es el snapshot histórico de un producto comprado; no se toca aunque
// el producto cambie de precio o desaparezca del catálogo.
type Item struct {
	ID             int64  `json:"id"`
	OrderID        string `json:"order_id"`
	ProductID      string `json:"product_id"`
	NombreProducto string `json:"nombre_producto"`
	Cantidad       int    `json:"cantidad"`
	PrecioUnitario string `json:"precio_unitario"`
	Subtotal       string `json:"subtotal"`
}

// AdminOrder es Order + identidad del comprador (listado de admin).
type AdminOrder struct {
	Order
	UserNombre string `json:"user_nombre"`
	UserEmail  string `json:"user_email"`
}
