package order

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Los montos viajan como string (NUMERIC en Postgres); la aritmética se hace
// con decimal para no arrastrar errores de redondeo.

func ParseMonto(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("monto inválido %q: %w", s, err)
	}
	return d, nil
}

func Subtotal(precioUnitario string, cantidad int) (decimal.Decimal, error) {
	p, err := ParseMonto(precioUnitario)
	if err != nil {
		return decimal.Zero, err
	}
	return p.Mul(decimal.NewFromInt(int64(cantidad))), nil
}

func FormatMonto(d decimal.Decimal) string { return d.StringFixed(2) }
