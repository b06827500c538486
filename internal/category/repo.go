package category

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Category struct {
	ID          string    `json:"id"`
	Nombre      string    `json:"nombre"`
	Descripcion string    `json:"descripcion,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type Repository interface {
	List(ctx context.Context) ([]Category, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) List(ctx context.Context) ([]Category, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT id, nombre, COALESCE(descripcion,''), created_at
		FROM categories ORDER BY nombre
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Category{}
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Nombre, &c.Descripcion, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
