package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"driveshare/pkg/apperr"
	"driveshare/pkg/logger"
	"driveshare/pkg/models"
	"driveshare/storage"
)

const uniqueViolation = "23505"

type hostRepo struct {
	db  *pgxpool.Pool
	log logger.ILogger
}

func NewHostRepo(db *pgxpool.Pool, log logger.ILogger) storage.IHostStorage {
	return &hostRepo{db: db, log: log}
}

func (r *hostRepo) Create(ctx context.Context, fullName, email, passwordHash string) (*models.Host, error) {
	var host models.Host
	query := `
		INSERT INTO hosts (full_name, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, full_name, email, password_hash, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, fullName, email, passwordHash).Scan(
		&host.ID, &host.FullName, &host.Email, &host.PasswordHash, &host.CreatedAt, &host.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, apperr.New(apperr.KindConflict, "email already registered")
		}
		r.log.Error("failed to create host", logger.Error(err))
		return nil, err
	}
	return &host, nil
}

func (r *hostRepo) GetByEmail(ctx context.Context, email string) (*models.Host, error) {
	var host models.Host
	query := `SELECT id, full_name, email, password_hash, created_at, updated_at FROM hosts WHERE email = $1`
	err := r.db.QueryRow(ctx, query, email).Scan(
		&host.ID, &host.FullName, &host.Email, &host.PasswordHash, &host.CreatedAt, &host.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.log.Error("failed to get host by email", logger.Error(err))
		return nil, err
	}
	return &host, nil
}

func (r *hostRepo) GetByID(ctx context.Context, id int64) (*models.Host, error) {
	var host models.Host
	query := `SELECT id, full_name, email, password_hash, created_at, updated_at FROM hosts WHERE id = $1`
	err := r.db.QueryRow(ctx, query, id).Scan(
		&host.ID, &host.FullName, &host.Email, &host.PasswordHash, &host.CreatedAt, &host.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.log.Error("failed to get host by id", logger.Int64("id", id), logger.Error(err))
		return nil, err
	}
	return &host, nil
}
