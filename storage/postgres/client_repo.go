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

type clientRepo struct {
	db  *pgxpool.Pool
	log logger.ILogger
}

func NewClientRepo(db *pgxpool.Pool, log logger.ILogger) storage.IClientStorage {
	return &clientRepo{db: db, log: log}
}

const clientColumns = `id, full_name, email, password_hash, bio, fun_fact, mobile_number, id_number, created_at, updated_at`

func scanClient(row pgx.Row) (*models.Client, error) {
	var c models.Client
	err := row.Scan(
		&c.ID, &c.FullName, &c.Email, &c.PasswordHash,
		&c.Bio, &c.FunFact, &c.MobileNumber, &c.IDNumber,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *clientRepo) Create(ctx context.Context, fullName, email, passwordHash string) (*models.Client, error) {
	query := `
		INSERT INTO clients (full_name, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING ` + clientColumns
	client, err := scanClient(r.db.QueryRow(ctx, query, fullName, email, passwordHash))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, apperr.New(apperr.KindConflict, "email already registered")
		}
		r.log.Error("failed to create client", logger.Error(err))
		return nil, err
	}
	return client, nil
}

func (r *clientRepo) GetByEmail(ctx context.Context, email string) (*models.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE email = $1`
	client, err := scanClient(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.log.Error("failed to get client by email", logger.Error(err))
		return nil, err
	}
	return client, nil
}

func (r *clientRepo) GetByID(ctx context.Context, id int64) (*models.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1`
	client, err := scanClient(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.log.Error("failed to get client by id", logger.Int64("id", id), logger.Error(err))
		return nil, err
	}
	return client, nil
}

// UpdateProfile overwrites only the fields the patch supplies; COALESCE keeps
// the stored value where the patch field is null.
func (r *clientRepo) UpdateProfile(ctx context.Context, id int64, patch models.ClientProfilePatch) (*models.Client, error) {
	query := `
		UPDATE clients
		SET bio = COALESCE($1, bio),
		    fun_fact = COALESCE($2, fun_fact),
		    mobile_number = COALESCE($3, mobile_number),
		    id_number = COALESCE($4, id_number),
		    updated_at = NOW()
		WHERE id = $5
		RETURNING ` + clientColumns
	client, err := scanClient(r.db.QueryRow(ctx, query, patch.Bio, patch.FunFact, patch.MobileNumber, patch.IDNumber, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.log.Error("failed to update client profile", logger.Int64("id", id), logger.Error(err))
		return nil, err
	}
	return client, nil
}
