package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema DDL ejecutado por cmd/setup-db. Idempotente (IF NOT EXISTS).
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id            UUID PRIMARY KEY,
    nombre        TEXT NOT NULL,
    email         TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    telefono      TEXT,
    direccion     TEXT,
    rol           TEXT NOT NULL DEFAULT 'usuario',
    created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS categories (
    id          UUID PRIMARY KEY,
    nombre      TEXT NOT NULL UNIQUE,
    descripcion TEXT,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS products (
    id                UUID PRIMARY KEY,
    nombre            TEXT NOT NULL,
    nombre_cientifico TEXT,
    descripcion       TEXT,
    precio            NUMERIC(10,2) NOT NULL,
    stock             INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
    imagen_url        TEXT,
    categoria_id      UUID REFERENCES categories(id),
    cuidados          TEXT,
    luz               TEXT,
    riego             TEXT,
    tamano            TEXT,
    estado            TEXT NOT NULL DEFAULT 'activo',
    created_at        TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at        TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS orders (
    id                UUID PRIMARY KEY,
    user_id           UUID NOT NULL REFERENCES users(id),
    total             NUMERIC(10,2) NOT NULL,
    direccion_envio   TEXT NOT NULL,
    telefono_contacto TEXT NOT NULL,
    notas             TEXT,
    estado            TEXT NOT NULL DEFAULT 'pendiente',
    idempotency_key   TEXT,
    created_at        TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at        TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    UNIQUE (user_id, idempotency_key)
);

CREATE TABLE IF NOT EXISTS order_items (
    id              BIGSERIAL PRIMARY KEY,
    order_id        UUID NOT NULL REFERENCES orders(id),
    product_id      UUID NOT NULL REFERENCES products(id),
    nombre_producto TEXT NOT NULL,
    cantidad        INTEGER NOT NULL CHECK (cantidad > 0),
    precio_unitario NUMERIC(10,2) NOT NULL,
    subtotal        NUMERIC(10,2) NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_orders_user_id   ON orders(user_id);
CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id);
CREATE INDEX IF NOT EXISTS idx_products_estado  ON products(estado);
`

func Setup(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, schema)
	return err
}
