package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"driveshare/pkg/logger"
	"driveshare/pkg/models"
	"driveshare/storage"
)

type carRepo struct {
	db  *pgxpool.Pool
	log logger.ILogger
}

func NewCarRepo(db *pgxpool.Pool, log logger.ILogger) storage.ICarStorage {
	return &carRepo{db: db, log: log}
}

const carColumns = `id, host_id, name, model, body_type, year, description,
	seats, fuel_type, transmission, color, mileage, features,
	daily_rate, weekly_rate, monthly_rate, min_rental_days, max_rental_days, min_age, rules,
	location_name, latitude, longitude, stage, created_at, updated_at`

func scanCar(row pgx.Row) (*models.Car, error) {
	var c models.Car
	err := row.Scan(
		&c.ID, &c.HostID, &c.Name, &c.Model, &c.BodyType, &c.Year, &c.Description,
		&c.Seats, &c.FuelType, &c.Transmission, &c.Color, &c.Mileage, &c.Features,
		&c.DailyRate, &c.WeeklyRate, &c.MonthlyRate, &c.MinRentalDays, &c.MaxRentalDays, &c.MinAge, &c.Rules,
		&c.LocationName, &c.Latitude, &c.Longitude, &c.Stage, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *carRepo) CreateBasics(ctx context.Context, hostID int64, basics models.CarBasics) (*models.Car, error) {
	query := `
		INSERT INTO cars (host_id, name, model, body_type, year, description, stage)
		VALUES ($1, $2, $3, $4, $5, $6, 'basics')
		RETURNING ` + carColumns
	car, err := scanCar(r.db.QueryRow(ctx, query,
		hostID, basics.Name, basics.Model, basics.BodyType, basics.Year, basics.Description,
	))
	if err != nil {
		r.log.Error("failed to create car", logger.Error(err))
		return nil, err
	}
	return car, nil
}

func (r *carRepo) GetByID(ctx context.Context, id int64) (*models.Car, error) {
	query := `SELECT ` + carColumns + ` FROM cars WHERE id = $1`
	car, err := scanCar(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.log.Error("failed to get car by id", logger.Int64("id", id), logger.Error(err))
		return nil, err
	}
	return car, nil
}

// UpdateSpecs advances basics -> specs. The stage predicate in the WHERE
// clause makes the transition at-most-once under concurrent callers: the
// loser of the race matches zero rows and gets advanced=false.
func (r *carRepo) UpdateSpecs(ctx context.Context, id int64, specs models.CarSpecs) (*models.Car, bool, error) {
	query := `
		UPDATE cars
		SET seats = $1, fuel_type = $2, transmission = $3, color = $4, mileage = $5, features = $6,
		    stage = 'specs', updated_at = NOW()
		WHERE id = $7 AND stage = 'basics'
		RETURNING ` + carColumns
	car, err := scanCar(r.db.QueryRow(ctx, query,
		specs.Seats, specs.FuelType, specs.Transmission, specs.Color, specs.Mileage, specs.Features, id,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, false, nil
		}
		r.log.Error("failed to update car specs", logger.Int64("id", id), logger.Error(err))
		return nil, false, err
	}
	return car, true, nil
}

func (r *carRepo) UpdatePricing(ctx context.Context, id int64, pricing models.CarPricing) (*models.Car, bool, error) {
	query := `
		UPDATE cars
		SET daily_rate = $1, weekly_rate = $2, monthly_rate = $3,
		    min_rental_days = $4, max_rental_days = $5, min_age = $6, rules = $7,
		    stage = 'pricing', updated_at = NOW()
		WHERE id = $8 AND stage = 'specs'
		RETURNING ` + carColumns
	car, err := scanCar(r.db.QueryRow(ctx, query,
		pricing.DailyRate, pricing.WeeklyRate, pricing.MonthlyRate,
		pricing.MinRentalDays, pricing.MaxRentalDays, pricing.MinAge, pricing.Rules, id,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, false, nil
		}
		r.log.Error("failed to update car pricing", logger.Int64("id", id), logger.Error(err))
		return nil, false, err
	}
	return car, true, nil
}

func (r *carRepo) UpdateLocation(ctx context.Context, id int64, location models.CarLocation) (*models.Car, bool, error) {
	query := `
		UPDATE cars
		SET location_name = $1, latitude = $2, longitude = $3,
		    stage = 'complete', updated_at = NOW()
		WHERE id = $4 AND stage = 'pricing'
		RETURNING ` + carColumns
	car, err := scanCar(r.db.QueryRow(ctx, query,
		location.LocationName, location.Latitude, location.Longitude, id,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, false, nil
		}
		r.log.Error("failed to update car location", logger.Int64("id", id), logger.Error(err))
		return nil, false, err
	}
	return car, true, nil
}

func (r *carRepo) ListComplete(ctx context.Context, limit, offset int) ([]*models.Car, error) {
	query := `SELECT ` + carColumns + ` FROM cars WHERE stage = 'complete' ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	return r.scanCars(ctx, query, limit, offset)
}

func (r *carRepo) ListByHost(ctx context.Context, hostID int64) ([]*models.Car, error) {
	query := `SELECT ` + carColumns + ` FROM cars WHERE host_id = $1 ORDER BY created_at DESC`
	return r.scanCars(ctx, query, hostID)
}

func (r *carRepo) scanCars(ctx context.Context, query string, args ...interface{}) ([]*models.Car, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("failed to query cars", logger.Error(err))
		return nil, err
	}
	defer rows.Close()

	var cars []*models.Car
	for rows.Next() {
		car, err := scanCar(rows)
		if err != nil {
			return nil, err
		}
		cars = append(cars, car)
	}
	return cars, rows.Err()
}
