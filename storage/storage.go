package storage

import (
	"context"

	"driveshare/pkg/models"
)

type IStorage interface {
	Host() IHostStorage
	Client() IClientStorage
	Car() ICarStorage
	Payment() IPaymentStorage
	Close()
}

type IHostStorage interface {
	Create(ctx context.Context, fullName, email, passwordHash string) (*models.Host, error)
	GetByEmail(ctx context.Context, email string) (*models.Host, error)
	GetByID(ctx context.Context, id int64) (*models.Host, error)
}

type IClientStorage interface {
	Create(ctx context.Context, fullName, email, passwordHash string) (*models.Client, error)
	GetByEmail(ctx context.Context, email string) (*models.Client, error)
	GetByID(ctx context.Context, id int64) (*models.Client, error)
	UpdateProfile(ctx context.Context, id int64, patch models.ClientProfilePatch) (*models.Client, error)
}

// ICarStorage persists staged listings. The three stage-advancing updates are
// conditional: they apply only when the persisted stage still equals the
// expected predecessor and report false when another caller advanced the car
// first, which is what guarantees at-most-once stage advancement.
type ICarStorage interface {
	CreateBasics(ctx context.Context, hostID int64, basics models.CarBasics) (*models.Car, error)
	GetByID(ctx context.Context, id int64) (*models.Car, error)
	UpdateSpecs(ctx context.Context, id int64, specs models.CarSpecs) (*models.Car, bool, error)
	UpdatePricing(ctx context.Context, id int64, pricing models.CarPricing) (*models.Car, bool, error)
	UpdateLocation(ctx context.Context, id int64, location models.CarLocation) (*models.Car, bool, error)
	ListComplete(ctx context.Context, limit, offset int) ([]*models.Car, error)
	ListByHost(ctx context.Context, hostID int64) ([]*models.Car, error)
}

type IPaymentStorage interface {
	Create(ctx context.Context, method *models.PaymentMethod) (*models.PaymentMethod, error)
	ListByHost(ctx context.Context, hostID int64) ([]*models.PaymentMethod, error)
	ClearDefault(ctx context.Context, hostID int64) error
}
