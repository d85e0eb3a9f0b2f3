package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"driveshare/pkg/logger"
	"driveshare/pkg/models"
	"driveshare/storage"
)

type paymentRepo struct {
	db  *pgxpool.Pool
	log logger.ILogger
}

func NewPaymentRepo(db *pgxpool.Pool, log logger.ILogger) storage.IPaymentStorage {
	return &paymentRepo{db: db, log: log}
}

const paymentColumns = `id, host_id, method_type, mpesa_number, card_number_hash, card_last_four, expiry_month, expiry_year, cvc_hash, is_default, created_at`

func scanPayment(row pgx.Row) (*models.PaymentMethod, error) {
	var m models.PaymentMethod
	err := row.Scan(
		&m.ID, &m.HostID, &m.MethodType, &m.MpesaNumber,
		&m.CardNumberHash, &m.CardLastFour, &m.ExpiryMonth, &m.ExpiryYear, &m.CVCHash,
		&m.IsDefault, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *paymentRepo) Create(ctx context.Context, method *models.PaymentMethod) (*models.PaymentMethod, error) {
	query := `
		INSERT INTO payment_methods (host_id, method_type, mpesa_number, card_number_hash, card_last_four, expiry_month, expiry_year, cvc_hash, is_default)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + paymentColumns
	created, err := scanPayment(r.db.QueryRow(ctx, query,
		method.HostID, method.MethodType, method.MpesaNumber,
		method.CardNumberHash, method.CardLastFour, method.ExpiryMonth, method.ExpiryYear, method.CVCHash,
		method.IsDefault,
	))
	if err != nil {
		r.log.Error("failed to create payment method", logger.Error(err))
		return nil, err
	}
	return created, nil
}

func (r *paymentRepo) ListByHost(ctx context.Context, hostID int64) ([]*models.PaymentMethod, error) {
	query := `SELECT ` + paymentColumns + ` FROM payment_methods WHERE host_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query, hostID)
	if err != nil {
		r.log.Error("failed to query payment methods", logger.Error(err))
		return nil, err
	}
	defer rows.Close()

	var methods []*models.PaymentMethod
	for rows.Next() {
		m, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		methods = append(methods, m)
	}
	return methods, rows.Err()
}

func (r *paymentRepo) ClearDefault(ctx context.Context, hostID int64) error {
	_, err := r.db.Exec(ctx, `UPDATE payment_methods SET is_default = FALSE WHERE host_id = $1 AND is_default = TRUE`, hostID)
	if err != nil {
		r.log.Error("failed to clear default payment method", logger.Int64("host_id", hostID), logger.Error(err))
	}
	return err
}
