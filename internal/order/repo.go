package order

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type Repository interface {
	// Create persiste la orden, sus ítems y los decrementos de stock como una
	// unidad atómica. Devuelve los ítems con el snapshot autoritativo del
	// servidor; existed=true si la idempotency key ya tenía una orden.
	Create(ctx context.Context, o *Order, items []ItemInput) ([]Item, bool, error)
	GetByID(ctx context.Context, id string) (*Order, error)
	GetItems(ctx context.Context, orderID string) ([]Item, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Order, error)
	ListAll(ctx context.Context) ([]AdminOrder, error)
	UpdateEstado(ctx context.Context, id string, next Estado) error
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

// txTimeout acota la transacción completa de checkout; un timeout aborta y
// reporta, nunca deja estado parcial.
const txTimeout = 10 * time.Second

func (r *PGRepo) Create(ctx context.Context, o *Order, items []ItemInput) ([]Item, bool, error) {
	// Toda validación ocurre antes de tocar el storage.
	if err := ValidateCreate(o, items); err != nil {
		return nil, false, err
	}

	ctx, cancel := context.WithTimeout(ctx, txTimeout)
	defer cancel()

	// Reenvío con la misma idempotency key => devolver la orden existente.
	if o.IdempotencyKey != "" {
		existing, err := r.byIdempotencyKey(ctx, o.UserID, o.IdempotencyKey)
		if err != nil {
			return nil, false, err
		}
		if existing != nil {
			its, err := r.GetItems(ctx, existing.ID)
			if err != nil {
				return nil, false, err
			}
			*o = *existing
			return its, true, nil
		}
	}

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, false, &StorageError{Op: "begin", Err: err}
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// Snapshot de nombre y precio desde el catálogo, dentro de la misma
	// transacción: el total lo calcula el servidor, no el cliente.
	type line struct {
		input    ItemInput
		nombre   string
		precio   string
		subtotal decimal.Decimal
	}
	lines := make([]line, 0, len(items))
	total := decimal.Zero
	for _, it := range items {
		var nombre, precio string
		err := tx.QueryRow(ctx, `
			SELECT nombre, precio::text FROM products
			WHERE id = $1 AND estado = 'activo'
		`, it.ProductID).Scan(&nombre, &precio)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, &ValidationError{Reason: "producto no disponible: " + it.ProductID}
		}
		if err != nil {
			return nil, false, &StorageError{Op: "snapshot product", Err: err}
		}
		sub, err := Subtotal(precio, it.Cantidad)
		if err != nil {
			return nil, false, &StorageError{Op: "snapshot product", Err: err}
		}
		lines = append(lines, line{input: it, nombre: nombre, precio: precio, subtotal: sub})
		total = total.Add(sub)
	}

	// El total del cliente es solo una afirmación; si no cuadra con el
	// recalculado se rechaza en vez de confiar en él.
	if o.Total != "" {
		claimed, _ := ParseMonto(o.Total)
		if !claimed.Equal(total) {
			return nil, false, &ValidationError{
				Reason: "total no coincide con la suma de los ítems (esperado " + FormatMonto(total) + ")",
			}
		}
	}
	o.Total = FormatMonto(total)

	o.ID = uuid.NewString()
	o.Estado = EstadoPendiente
	var idemKey *string
	if o.IdempotencyKey != "" {
		idemKey = &o.IdempotencyKey
	}
	err = tx.QueryRow(ctx, `
		INSERT INTO orders (id, user_id, total, direccion_envio, telefono_contacto, notas, estado, idempotency_key, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,'pendiente',$7,NOW(),NOW())
		RETURNING created_at, updated_at
	`, o.ID, o.UserID, o.Total, o.DireccionEnvio, o.TelefonoContacto, o.Notas, idemKey).
		Scan(&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		// Dos submits concurrentes con la misma key pueden pasar ambos el
		// lookup previo; UNIQUE(user_id, idempotency_key) deja ganar a uno y
		// al otro se le devuelve la orden ya persistida.
		var pgErr *pgconn.PgError
		if o.IdempotencyKey != "" && errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			_ = tx.Rollback(ctx)
			existing, lerr := r.byIdempotencyKey(ctx, o.UserID, o.IdempotencyKey)
			if lerr != nil || existing == nil {
				return nil, false, &StorageError{Op: "insert order", Err: err}
			}
			its, lerr := r.GetItems(ctx, existing.ID)
			if lerr != nil {
				return nil, false, lerr
			}
			*o = *existing
			return its, true, nil
		}
		return nil, false, &StorageError{Op: "insert order", Err: err}
	}

	out := make([]Item, 0, len(lines))
	for _, ln := range lines {
		it := Item{
			OrderID:        o.ID,
			ProductID:      ln.input.ProductID,
			NombreProducto: ln.nombre,
			Cantidad:       ln.input.Cantidad,
			PrecioUnitario: ln.precio,
			Subtotal:       FormatMonto(ln.subtotal),
		}
		err := tx.QueryRow(ctx, `
			INSERT INTO order_items (order_id, product_id, nombre_producto, cantidad, precio_unitario, subtotal)
			VALUES ($1,$2,$3,$4,$5,$6)
			RETURNING id
		`, it.OrderID, it.ProductID, it.NombreProducto, it.Cantidad, it.PrecioUnitario, it.Subtotal).Scan(&it.ID)
		if err != nil {
			return nil, false, &StorageError{Op: "insert item", Err: err}
		}

		// Decremento condicional: la guarda stock >= cantidad es lo que impide
		// que dos checkouts concurrentes dejen el stock en negativo.
		tag, err := tx.Exec(ctx, `
			UPDATE products SET stock = stock - $2, updated_at = NOW()
			WHERE id = $1 AND stock >= $2
		`, it.ProductID, it.Cantidad)
		if err != nil {
			return nil, false, &StorageError{Op: "decrement stock", Err: err}
		}
		if tag.RowsAffected() == 0 {
			var available int
			if err := tx.QueryRow(ctx, `SELECT stock FROM products WHERE id=$1`, it.ProductID).Scan(&available); err != nil {
				available = 0
			}
			return nil, false, &InsufficientStockError{
				ProductID: it.ProductID,
				Requested: it.Cantidad,
				Available: available,
			}
		}
		out = append(out, it)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, false, &StorageError{Op: "commit", Err: err}
	}
	return out, false, nil
}

func (r *PGRepo) byIdempotencyKey(ctx context.Context, userID, key string) (*Order, error) {
	var o Order
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, total::text, direccion_envio, telefono_contacto, COALESCE(notas,''), estado, created_at, updated_at
		FROM orders WHERE user_id = $1 AND idempotency_key = $2
	`, userID, key).Scan(&o.ID, &o.UserID, &o.Total, &o.DireccionEnvio, &o.TelefonoContacto, &o.Notas, &o.Estado, &o.CreatedAt, &o.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, &StorageError{Op: "idempotency lookup", Err: err}
	}
	o.IdempotencyKey = key
	return &o, nil
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (*Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var o Order
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, total::text, direccion_envio, telefono_contacto, COALESCE(notas,''), estado, created_at, updated_at
		FROM orders WHERE id=$1
	`, id).Scan(&o.ID, &o.UserID, &o.Total, &o.DireccionEnvio, &o.TelefonoContacto, &o.Notas, &o.Estado, &o.CreatedAt, &o.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, &StorageError{Op: "get order", Err: err}
	}
	return &o, nil
}

func (r *PGRepo) GetItems(ctx context.Context, orderID string) ([]Item, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// ORDER BY id preserva el orden en que el comprador envió los ítems.
	rows, err := r.db.Query(ctx, `
		SELECT id, order_id, product_id, nombre_producto, cantidad, precio_unitario::text, subtotal::text
		FROM order_items WHERE order_id=$1
		ORDER BY id
	`, orderID)
	if err != nil {
		return nil, &StorageError{Op: "get items", Err: err}
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.NombreProducto, &it.Cantidad, &it.PrecioUnitario, &it.Subtotal); err != nil {
			return nil, &StorageError{Op: "get items", Err: err}
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, &StorageError{Op: "get items", Err: err}
	}
	return items, nil
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, total::text, direccion_envio, telefono_contacto, COALESCE(notas,''), estado, created_at, updated_at
		FROM orders WHERE user_id=$1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3
	`, userID, limit, offset)
	if err != nil {
		return nil, &StorageError{Op: "list by user", Err: err}
	}
	defer rows.Close()

	out := []Order{}
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.Total, &o.DireccionEnvio, &o.TelefonoContacto, &o.Notas, &o.Estado, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, &StorageError{Op: "list by user", Err: err}
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, &StorageError{Op: "list by user", Err: err}
	}
	return out, nil
}

func (r *PGRepo) ListAll(ctx context.Context) ([]AdminOrder, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT o.id, o.user_id, o.total::text, o.direccion_envio, o.telefono_contacto, COALESCE(o.notas,''), o.estado, o.created_at, o.updated_at,
		       u.nombre, u.email
		FROM orders o
		JOIN users u ON o.user_id = u.id
		ORDER BY o.created_at DESC
	`)
	if err != nil {
		return nil, &StorageError{Op: "list all", Err: err}
	}
	defer rows.Close()

	out := []AdminOrder{}
	for rows.Next() {
		var a AdminOrder
		if err := rows.Scan(&a.ID, &a.UserID, &a.Total, &a.DireccionEnvio, &a.TelefonoContacto, &a.Notas, &a.Estado, &a.CreatedAt, &a.UpdatedAt,
			&a.UserNombre, &a.UserEmail); err != nil {
			return nil, &StorageError{Op: "list all", Err: err}
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, &StorageError{Op: "list all", Err: err}
	}
	return out, nil
}

// UpdateEstado aplica una transición de estado. Cancelar una orden devuelve el
// stock de sus ítems en la misma transacción.
func (r *PGRepo) UpdateEstado(ctx context.Context, id string, next Estado) error {
	if !ValidEstado(next) {
		return &ValidationError{Reason: "estado desconocido: " + string(next)}
	}

	ctx, cancel := context.WithTimeout(ctx, txTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return &StorageError{Op: "begin", Err: err}
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var current Estado
	err = tx.QueryRow(ctx, `SELECT estado FROM orders WHERE id=$1 FOR UPDATE`, id).Scan(&current)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return &StorageError{Op: "lock order", Err: err}
	}
	if !CanTransition(current, next) {
		return ErrInvalidTransition
	}

	if _, err := tx.Exec(ctx, `UPDATE orders SET estado=$2, updated_at=NOW() WHERE id=$1`, id, next); err != nil {
		return &StorageError{Op: "update estado", Err: err}
	}

	if next == EstadoCancelado {
		if _, err := tx.Exec(ctx, `
			UPDATE products p SET stock = p.stock + s.qty, updated_at = NOW()
			FROM (
				SELECT product_id, SUM(cantidad) AS qty
				FROM order_items WHERE order_id = $1
				GROUP BY product_id
			) s
			WHERE p.id = s.product_id
		`, id); err != nil {
			return &StorageError{Op: "restock", Err: err}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return &StorageError{Op: "commit", Err: err}
	}
	return nil
}
