package user

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound     = errors.New("user not found")
	ErrAlreadyExist = errors.New("user already exists")
)

type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) Create(ctx context.Context, u *User) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err := r.db.QueryRow(ctx, `
		INSERT INTO users (id, nombre, email, password_hash, telefono, direccion, rol, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,NOW(),NOW())
		RETURNING created_at, updated_at
	`, u.ID, u.Nombre, u.Email, u.PasswordHash, u.Telefono, u.Direccion, u.Rol).
		Scan(&u.CreatedAt, &u.UpdatedAt)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
		return ErrAlreadyExist
	}
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (*User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return r.scanOne(r.db.QueryRow(ctx, `
		SELECT id, nombre, email, password_hash, COALESCE(telefono,''), COALESCE(direccion,''), rol, created_at, updated_at
		FROM users WHERE id=$1
	`, id))
}

func (r *PGRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return r.scanOne(r.db.QueryRow(ctx, `
		SELECT id, nombre, email, password_hash, COALESCE(telefono,''), COALESCE(direccion,''), rol, created_at, updated_at
		FROM users WHERE email=$1
	`, email))
}

func (r *PGRepo) scanOne(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Nombre, &u.Email, &u.PasswordHash, &u.Telefono, &u.Direccion, &u.Rol, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
