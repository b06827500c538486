// Package product provides the repository interface and PostgreSQL
// implementation for the plant catalog.
package product

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound = errors.New("product not found")

	// ErrNegativeStock: una reposición negativa dejaría el stock bajo cero.
	ErrNegativeStock = errors.New("stock would become negative")
)

type Repository interface {
	ListAll(ctx context.Context) ([]Product, error)
	ListActive(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
	Search(ctx context.Context, q string) ([]Product, error)
	Create(ctx context.Context, p *Product) error
	Update(ctx context.Context, p *Product, updatePrecio bool, stock *int) error
	Delete(ctx context.Context, id string) (bool, error)
	ToggleEstado(ctx context.Context, id string) (*Product, error)
	Restock(ctx context.Context, id string, cantidad int) (*Product, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

const productCols = `
	p.id, p.nombre, COALESCE(p.nombre_cientifico,''), COALESCE(p.descripcion,''),
	p.precio::text, p.stock, COALESCE(p.imagen_url,''), p.categoria_id,
	COALESCE(c.nombre,''), COALESCE(p.cuidados,''), COALESCE(p.luz,''),
	COALESCE(p.riego,''), COALESCE(p.tamano,''), p.estado, p.created_at, p.updated_at`

func scanProduct(row pgx.Row) (*Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.Nombre, &p.NombreCientifico, &p.Descripcion,
		&p.Precio, &p.Stock, &p.ImagenURL, &p.CategoriaID,
		&p.CategoriaNombre, &p.Cuidados, &p.Luz,
		&p.Riego, &p.Tamano, &p.Estado, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PGRepo) queryProducts(ctx context.Context, sql string, args ...any) ([]Product, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (r *PGRepo) ListAll(ctx context.Context) ([]Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return r.queryProducts(ctx, `
		SELECT `+productCols+`
		FROM products p LEFT JOIN categories c ON p.categoria_id = c.id
		ORDER BY p.created_at DESC
	`)
}

func (r *PGRepo) ListActive(ctx context.Context) ([]Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return r.queryProducts(ctx, `
		SELECT `+productCols+`
		FROM products p LEFT JOIN categories c ON p.categoria_id = c.id
		WHERE p.estado = 'activo' AND p.stock > 0
		ORDER BY p.created_at DESC
	`)
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (*Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	p, err := scanProduct(r.db.QueryRow(ctx, `
		SELECT `+productCols+`
		FROM products p LEFT JOIN categories c ON p.categoria_id = c.id
		WHERE p.id = $1
	`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PGRepo) Search(ctx context.Context, q string) ([]Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	search := strings.TrimSpace(q)
	return r.queryProducts(ctx, `
		SELECT `+productCols+`
		FROM products p LEFT JOIN categories c ON p.categoria_id = c.id
		WHERE p.estado = 'activo'
		  AND (p.nombre ILIKE '%'||$1||'%'
		       OR p.nombre_cientifico ILIKE '%'||$1||'%'
		       OR p.descripcion ILIKE '%'||$1||'%')
		ORDER BY p.created_at DESC
	`, search)
}

func (r *PGRepo) Create(ctx context.Context, p *Product) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if p.Estado == "" {
		p.Estado = EstadoActivo
	}
	return r.db.QueryRow(ctx, `
		INSERT INTO products (id, nombre, nombre_cientifico, descripcion, precio, stock,
		                      imagen_url, categoria_id, cuidados, luz, riego, tamano, estado,
		                      created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,NOW(),NOW())
		RETURNING created_at, updated_at
	`, p.ID, p.Nombre, p.NombreCientifico, p.Descripcion, p.Precio, p.Stock,
		p.ImagenURL, p.CategoriaID, p.Cuidados, p.Luz, p.Riego, p.Tamano, p.Estado).
		Scan(&p.CreatedAt, &p.UpdatedAt)
}

// Update: campos string vacíos no cambian (estilo COALESCE/NULLIF); stock nil
// no cambia; el precio solo se toca cuando updatePrecio es true.
func (r *PGRepo) Update(ctx context.Context, p *Product, updatePrecio bool, stock *int) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	precio := ""
	if updatePrecio {
		precio = p.Precio
	}
	tag, err := r.db.Exec(ctx, `
		UPDATE products
		SET nombre            = COALESCE(NULLIF($2,''), nombre),
		    nombre_cientifico = COALESCE(NULLIF($3,''), nombre_cientifico),
		    descripcion       = COALESCE(NULLIF($4,''), descripcion),
		    precio            = COALESCE(NULLIF($5,'')::numeric, precio),
		    stock             = COALESCE($6, stock),
		    imagen_url        = COALESCE(NULLIF($7,''), imagen_url),
		    categoria_id      = COALESCE($8, categoria_id),
		    cuidados          = COALESCE(NULLIF($9,''), cuidados),
		    luz               = COALESCE(NULLIF($10,''), luz),
		    riego             = COALESCE(NULLIF($11,''), riego),
		    tamano            = COALESCE(NULLIF($12,''), tamano),
		    estado            = COALESCE(NULLIF($13,''), estado),
		    updated_at        = NOW()
		WHERE id = $1
	`, p.ID, p.Nombre, p.NombreCientifico, p.Descripcion, precio, stock,
		p.ImagenURL, p.CategoriaID, p.Cuidados, p.Luz, p.Riego, p.Tamano, p.Estado)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) Delete(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cmd, err := r.db.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *PGRepo) ToggleEstado(ctx context.Context, id string) (*Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
		UPDATE products
		SET estado = CASE WHEN estado = 'activo' THEN 'inactivo' ELSE 'activo' END,
		    updated_at = NOW()
		WHERE id = $1
	`, id)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

// Restock suma cantidad (puede ser negativa); la guarda condicional evita
// dejar el contador bajo cero.
func (r *PGRepo) Restock(ctx context.Context, id string, cantidad int) (*Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
		UPDATE products SET stock = stock + $2, updated_at = NOW()
		WHERE id = $1 AND stock + $2 >= 0
	`, id, cantidad)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return nil, err
		}
		return nil, ErrNegativeStock
	}
	return r.GetByID(ctx, id)
}
