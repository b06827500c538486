package order

// CreateOrderItem payload de ítem del carrito. nombre_producto, precio_unitario
// y subtotal llegan del cliente pero el engine los recalcula contra el catálogo;
// el snapshot persistido es siempre el del servidor.
// swagger:model CreateOrderItem
type CreateOrderItem struct {
	ProductID      string `json:"product_id" example:"4e7d4e5c-5cb9-4a3f-9f21-7e1a4f9f2b2a"`
	Cantidad       int    `json:"cantidad"   example:"2"`
	NombreProducto string `json:"nombre_producto,omitempty"`
	PrecioUnitario string `json:"precio_unitario,omitempty"`
	Subtotal       string `json:"subtotal,omitempty"`
}

// CreateOrderRequest payload de checkout.
// swagger:model CreateOrderRequest
type CreateOrderRequest struct {
	Total            string            `json:"total"             example:"45.50"`
	DireccionEnvio   string            `json:"direccion_envio"   example:"Av. Siempre Viva 742"`
	TelefonoContacto string            `json:"telefono_contacto" example:"+56 9 1234 5678"`
	Notas            string            `json:"notas,omitempty"`
	IdempotencyKey   string            `json:"idempotency_key,omitempty"`
	Items            []CreateOrderItem `json:"items"`
}

// ItemInput es lo que el engine realmente consume de cada línea.
type ItemInput struct {
	ProductID string
	Cantidad  int
}

// UpdateEstadoRequest payload de cambio de estado (admin).
// swagger:model UpdateEstadoRequest
type UpdateEstadoRequest struct {
	Estado Estado `json:"estado" example:"procesando"`
}
