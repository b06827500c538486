package redisx

import "time"

const (
	// Idempotency checkout: idem:order:create:{user_id}:{key} -> orden
	// persistida (JSON con sus ítems). Con clave por usuario un replay se
	// responde desde el cache sin tocar Postgres.
	KeyIdemOrderCreate = "idem:order:create:%s:%s"

	// Cache estado de orden: order_estado:{order_id} -> estado
	KeyOrderEstado = "order_estado:%s"
)

var (
	TTLIdempotency = 24 * time.Hour
	TTLEstadoCache = 5 * time.Minute
)
