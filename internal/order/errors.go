package order

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("order not found")

	// ErrInvalidTransition: cambio de estado no permitido por la tabla de
	// transiciones (p.ej. enviado -> cancelado).
	ErrInvalidTransition = errors.New("invalid estado transition")
)

// ValidationError: la petición es rechazada antes de tocar el storage.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return "validation: " + e.Reason }

// InsufficientStockError: el decremento condicional no afectó filas; la
// transacción completa se revierte.
type InsufficientStockError struct {
	ProductID string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s: requested %d, available %d",
		e.ProductID, e.Requested, e.Available)
}

// StorageError envuelve fallos del backing store (conectividad, constraint,
// timeout). Siempre implica rollback completo; nunca se reintenta solo.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return "storage: " + e.Op + ": " + e.Err.Error() }
func (e *StorageError) Unwrap() error { return e.Err }
