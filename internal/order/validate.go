package order

import "strings"

// ValidateCreate rechaza la petición antes de cualquier acceso al storage:
// carrito vacío, cantidades no positivas o datos de envío faltantes.
func ValidateCreate(o *Order, items []ItemInput) error {
	if len(items) == 0 {
		return &ValidationError{Reason: "el carrito está vacío"}
	}
	for _, it := range items {
		if it.ProductID == "" {
			return &ValidationError{Reason: "ítem sin product_id"}
		}
		if it.Cantidad <= 0 {
			return &ValidationError{Reason: "cantidad debe ser positiva para " + it.ProductID}
		}
	}
	if strings.TrimSpace(o.DireccionEnvio) == "" {
		return &ValidationError{Reason: "direccion_envio es requerida"}
	}
	if strings.TrimSpace(o.TelefonoContacto) == "" {
		return &ValidationError{Reason: "telefono_contacto es requerido"}
	}
	if o.Total != "" {
		if _, err := ParseMonto(o.Total); err != nil {
			return &ValidationError{Reason: "total inválido"}
		}
	}
	return nil
}
