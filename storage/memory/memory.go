// Package memory is a mutex-guarded in-memory implementation of the storage
// interfaces. It backs the service and API tests and mirrors the Postgres
// repos' semantics, including the conditional stage-advancing car updates.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"driveshare/pkg/apperr"
	"driveshare/pkg/models"
	"driveshare/storage"
)

type Store struct {
	mu sync.Mutex

	hosts    map[int64]*models.Host
	clients  map[int64]*models.Client
	cars     map[int64]*models.Car
	payments map[int64]*models.PaymentMethod

	nextHostID    int64
	nextClientID  int64
	nextCarID     int64
	nextPaymentID int64
}

func New() *Store {
	return &Store{
		hosts:    make(map[int64]*models.Host),
		clients:  make(map[int64]*models.Client),
		cars:     make(map[int64]*models.Car),
		payments: make(map[int64]*models.PaymentMethod),
	}
}

func (s *Store) Close() {}

func (s *Store) Host() storage.IHostStorage       { return (*hostStore)(s) }
func (s *Store) Client() storage.IClientStorage   { return (*clientStore)(s) }
func (s *Store) Car() storage.ICarStorage         { return (*carStore)(s) }
func (s *Store) Payment() storage.IPaymentStorage { return (*paymentStore)(s) }

type hostStore Store

func (s *hostStore) Create(ctx context.Context, fullName, email, passwordHash string) (*models.Host, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, h := range s.hosts {
		if h.Email == email {
			return nil, apperr.New(apperr.KindConflict, "email already registered")
		}
	}

	s.nextHostID++
	now := time.Now()
	host := &models.Host{
		ID:           s.nextHostID,
		FullName:     fullName,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.hosts[host.ID] = host

	copied := *host
	return &copied, nil
}

func (s *hostStore) GetByEmail(ctx context.Context, email string) (*models.Host, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, h := range s.hosts {
		if h.Email == email {
			copied := *h
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *hostStore) GetByID(ctx context.Context, id int64) (*models.Host, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, ok := s.hosts[id]
	if !ok {
		return nil, nil
	}
	copied := *h
	return &copied, nil
}

type clientStore Store

func (s *clientStore) Create(ctx context.Context, fullName, email, passwordHash string) (*models.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.clients {
		if c.Email == email {
			return nil, apperr.New(apperr.KindConflict, "email already registered")
		}
	}

	s.nextClientID++
	now := time.Now()
	client := &models.Client{
		ID:           s.nextClientID,
		FullName:     fullName,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.clients[client.ID] = client

	copied := *client
	return &copied, nil
}

func (s *clientStore) GetByEmail(ctx context.Context, email string) (*models.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.clients {
		if c.Email == email {
			copied := *c
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *clientStore) GetByID(ctx context.Context, id int64) (*models.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.clients[id]
	if !ok {
		return nil, nil
	}
	copied := *c
	return &copied, nil
}

func (s *clientStore) UpdateProfile(ctx context.Context, id int64, patch models.ClientProfilePatch) (*models.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.clients[id]
	if !ok {
		return nil, nil
	}

	if patch.Bio != nil {
		c.Bio = patch.Bio
	}
	if patch.FunFact != nil {
		c.FunFact = patch.FunFact
	}
	if patch.MobileNumber != nil {
		c.MobileNumber = patch.MobileNumber
	}
	if patch.IDNumber != nil {
		c.IDNumber = patch.IDNumber
	}
	c.UpdatedAt = time.Now()

	copied := *c
	return &copied, nil
}

type carStore Store

func copyCar(c *models.Car) *models.Car {
	copied := *c
	if c.Features != nil {
		copied.Features = append([]string(nil), c.Features...)
	}
	return &copied
}

func (s *carStore) CreateBasics(ctx context.Context, hostID int64, basics models.CarBasics) (*models.Car, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextCarID++
	now := time.Now()
	car := &models.Car{
		ID:          s.nextCarID,
		HostID:      hostID,
		Name:        basics.Name,
		Model:       basics.Model,
		BodyType:    basics.BodyType,
		Year:        basics.Year,
		Description: basics.Description,
		Stage:       models.StageBasics,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.cars[car.ID] = car

	return copyCar(car), nil
}

func (s *carStore) GetByID(ctx context.Context, id int64) (*models.Car, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.cars[id]
	if !ok {
		return nil, nil
	}
	return copyCar(c), nil
}

// The compare-and-set on Stage happens under the store mutex, matching the
// Postgres repo's "WHERE stage = <predecessor>" contract.
func (s *carStore) UpdateSpecs(ctx context.Context, id int64, specs models.CarSpecs) (*models.Car, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.cars[id]
	if !ok || c.Stage != models.StageBasics {
		return nil, false, nil
	}

	c.Seats = &specs.Seats
	c.FuelType = &specs.FuelType
	c.Transmission = &specs.Transmission
	c.Color = &specs.Color
	c.Mileage = &specs.Mileage
	c.Features = append([]string(nil), specs.Features...)
	c.Stage = models.StageSpecs
	c.UpdatedAt = time.Now()

	return copyCar(c), true, nil
}

func (s *carStore) UpdatePricing(ctx context.Context, id int64, pricing models.CarPricing) (*models.Car, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.cars[id]
	if !ok || c.Stage != models.StageSpecs {
		return nil, false, nil
	}

	c.DailyRate = &pricing.DailyRate
	c.WeeklyRate = &pricing.WeeklyRate
	c.MonthlyRate = &pricing.MonthlyRate
	c.MinRentalDays = &pricing.MinRentalDays
	c.MaxRentalDays = pricing.MaxRentalDays
	c.MinAge = &pricing.MinAge
	c.Rules = &pricing.Rules
	c.Stage = models.StagePricing
	c.UpdatedAt = time.Now()

	return copyCar(c), true, nil
}

func (s *carStore) UpdateLocation(ctx context.Context, id int64, location models.CarLocation) (*models.Car, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.cars[id]
	if !ok || c.Stage != models.StagePricing {
		return nil, false, nil
	}

	c.LocationName = location.LocationName
	c.Latitude = location.Latitude
	c.Longitude = location.Longitude
	c.Stage = models.StageComplete
	c.UpdatedAt = time.Now()

	return copyCar(c), true, nil
}

func (s *carStore) ListComplete(ctx context.Context, limit, offset int) ([]*models.Car, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var complete []*models.Car
	for _, c := range s.cars {
		if c.Stage == models.StageComplete {
			complete = append(complete, c)
		}
	}
	sortCarsByCreatedAtDesc(complete)

	if offset >= len(complete) {
		return nil, nil
	}
	complete = complete[offset:]
	if limit < len(complete) {
		complete = complete[:limit]
	}

	out := make([]*models.Car, 0, len(complete))
	for _, c := range complete {
		out = append(out, copyCar(c))
	}
	return out, nil
}

func (s *carStore) ListByHost(ctx context.Context, hostID int64) ([]*models.Car, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var owned []*models.Car
	for _, c := range s.cars {
		if c.HostID == hostID {
			owned = append(owned, c)
		}
	}
	sortCarsByCreatedAtDesc(owned)

	out := make([]*models.Car, 0, len(owned))
	for _, c := range owned {
		out = append(out, copyCar(c))
	}
	return out, nil
}

func sortCarsByCreatedAtDesc(cars []*models.Car) {
	sort.Slice(cars, func(i, j int) bool {
		if cars[i].CreatedAt.Equal(cars[j].CreatedAt) {
			return cars[i].ID > cars[j].ID
		}
		return cars[i].CreatedAt.After(cars[j].CreatedAt)
	})
}

type paymentStore Store

func (s *paymentStore) Create(ctx context.Context, method *models.PaymentMethod) (*models.PaymentMethod, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextPaymentID++
	copied := *method
	copied.ID = s.nextPaymentID
	copied.CreatedAt = time.Now()
	s.payments[copied.ID] = &copied

	out := copied
	return &out, nil
}

func (s *paymentStore) ListByHost(ctx context.Context, hostID int64) ([]*models.PaymentMethod, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var methods []*models.PaymentMethod
	for _, m := range s.payments {
		if m.HostID == hostID {
			copied := *m
			methods = append(methods, &copied)
		}
	}
	sort.Slice(methods, func(i, j int) bool { return methods[i].ID > methods[j].ID })
	return methods, nil
}

func (s *paymentStore) ClearDefault(ctx context.Context, hostID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, m := range s.payments {
		if m.HostID == hostID && m.IsDefault {
			m.IsDefault = false
		}
	}
	return nil
}
