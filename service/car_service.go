package service

import (
	"context"
	"strings"

	"driveshare/pkg/apperr"
	"driveshare/pkg/logger"
	"driveshare/pkg/models"
	"driveshare/storage"
)

const (
	MinYear = 1900
	MaxYear = 2100

	MinSeats = 1
	MaxSeats = 50

	MinRenterAge = 18
	MaxRenterAge = 100

	MaxFeatures = 12

	DefaultPageSize = 20
	MaxPageSize     = 100
)

// AllowedFeatures is the recognized feature tag vocabulary. Specs payloads
// may carry up to MaxFeatures of these, no others.
var AllowedFeatures = map[string]bool{
	"AC":                true,
	"Bluetooth":         true,
	"GPS":               true,
	"USB Charger":       true,
	"Heated Seats":      true,
	"Sunroof":           true,
	"Backup Camera":     true,
	"Cruise Control":    true,
	"Parking Sensors":   true,
	"Child Seat":        true,
	"All Wheel Drive":   true,
	"Apple CarPlay":     true,
	"Android Auto":      true,
	"Keyless Entry":     true,
	"Bike Rack":         true,
	"Roof Box":          true,
	"Pet Friendly":      true,
	"Tow Hitch":         true,
	"Dash Cam":          true,
	"Convertible Roof":  true,
	"Wheelchair Access": true,
	"Snow Tires":        true,
}

// CarService drives the staged listing workflow. Every mutating call
// re-derives ownership and workflow position from the persisted record;
// nothing is trusted from the request beyond the payload fields themselves.
type CarService interface {
	CreateBasics(ctx context.Context, hostID int64, req models.CarBasics) (*models.Car, error)
	UpdateSpecs(ctx context.Context, hostID, carID int64, req models.CarSpecs) (*models.Car, error)
	UpdatePricing(ctx context.Context, hostID, carID int64, req models.CarPricing) (*models.Car, error)
	UpdateLocation(ctx context.Context, hostID, carID int64, req models.CarLocation) (*models.Car, error)
	Get(ctx context.Context, carID int64) (*models.Car, error)
	ListComplete(ctx context.Context, page, pageSize int) ([]*models.Car, error)
	ListByHost(ctx context.Context, hostID int64) ([]*models.Car, error)
}

type carService struct {
	cars storage.ICarStorage
	log  logger.ILogger
}

func NewCarService(stg storage.IStorage, log logger.ILogger) CarService {
	return &carService{
		cars: stg.Car(),
		log:  log,
	}
}

func (s *carService) CreateBasics(ctx context.Context, hostID int64, req models.CarBasics) (*models.Car, error) {
	if err := validateBasics(req); err != nil {
		return nil, err
	}

	car, err := s.cars.CreateBasics(ctx, hostID, req)
	if err != nil {
		return nil, err
	}

	s.log.Info("car created", logger.Int64("car_id", car.ID), logger.Int64("host_id", hostID))
	return car, nil
}

// checkTransition loads the persisted car and verifies the caller may advance
// it from the expected stage. The subsequent storage update re-checks the
// stage atomically; this pre-check only exists to report the precise error.
func (s *carService) checkTransition(ctx context.Context, hostID, carID int64, expected models.Stage) error {
	car, err := s.cars.GetByID(ctx, carID)
	if err != nil {
		return err
	}
	if car == nil {
		return apperr.New(apperr.KindNotFound, "car not found")
	}
	if car.HostID != hostID {
		return apperr.New(apperr.KindForbidden, "you do not own this car")
	}
	if car.Stage != expected {
		return apperr.Newf(apperr.KindState, "step out of order: car is at stage %q, expected %q", car.Stage, expected)
	}
	return nil
}

func (s *carService) UpdateSpecs(ctx context.Context, hostID, carID int64, req models.CarSpecs) (*models.Car, error) {
	if err := validateSpecs(req); err != nil {
		return nil, err
	}
	if err := s.checkTransition(ctx, hostID, carID, models.StageBasics); err != nil {
		return nil, err
	}

	car, advanced, err := s.cars.UpdateSpecs(ctx, carID, req)
	if err != nil {
		return nil, err
	}
	if !advanced {
		// Another request advanced the car between the check and the update.
		return nil, apperr.New(apperr.KindState, "step out of order")
	}

	s.log.Info("car specs set", logger.Int64("car_id", carID))
	return car, nil
}

func (s *carService) UpdatePricing(ctx context.Context, hostID, carID int64, req models.CarPricing) (*models.Car, error) {
	normalized, err := validatePricing(req)
	if err != nil {
		return nil, err
	}
	if err := s.checkTransition(ctx, hostID, carID, models.StageSpecs); err != nil {
		return nil, err
	}

	car, advanced, err := s.cars.UpdatePricing(ctx, carID, normalized)
	if err != nil {
		return nil, err
	}
	if !advanced {
		return nil, apperr.New(apperr.KindState, "step out of order")
	}

	s.log.Info("car pricing set", logger.Int64("car_id", carID))
	return car, nil
}

func (s *carService) UpdateLocation(ctx context.Context, hostID, carID int64, req models.CarLocation) (*models.Car, error) {
	normalized, err := validateLocation(req)
	if err != nil {
		return nil, err
	}
	if err := s.checkTransition(ctx, hostID, carID, models.StagePricing); err != nil {
		return nil, err
	}

	car, advanced, err := s.cars.UpdateLocation(ctx, carID, normalized)
	if err != nil {
		return nil, err
	}
	if !advanced {
		return nil, apperr.New(apperr.KindState, "step out of order")
	}

	s.log.Info("car listing complete", logger.Int64("car_id", carID))
	return car, nil
}

func (s *carService) Get(ctx context.Context, carID int64) (*models.Car, error) {
	car, err := s.cars.GetByID(ctx, carID)
	if err != nil {
		return nil, err
	}
	if car == nil {
		return nil, apperr.New(apperr.KindNotFound, "car not found")
	}
	return car, nil
}

func (s *carService) ListComplete(ctx context.Context, page, pageSize int) ([]*models.Car, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return s.cars.ListComplete(ctx, pageSize, (page-1)*pageSize)
}

func (s *carService) ListByHost(ctx context.Context, hostID int64) ([]*models.Car, error) {
	return s.cars.ListByHost(ctx, hostID)
}

func validateBasics(req models.CarBasics) error {
	if strings.TrimSpace(req.Name) == "" {
		return apperr.New(apperr.KindValidation, "name is required")
	}
	if strings.TrimSpace(req.Model) == "" {
		return apperr.New(apperr.KindValidation, "model is required")
	}
	if strings.TrimSpace(req.BodyType) == "" {
		return apperr.New(apperr.KindValidation, "body_type is required")
	}
	if req.Year < MinYear || req.Year > MaxYear {
		return apperr.Newf(apperr.KindValidation, "year must be in range [%d, %d]", MinYear, MaxYear)
	}
	if strings.TrimSpace(req.Description) == "" {
		return apperr.New(apperr.KindValidation, "description is required")
	}
	return nil
}

func validateSpecs(req models.CarSpecs) error {
	if req.Seats < MinSeats || req.Seats > MaxSeats {
		return apperr.Newf(apperr.KindValidation, "seats must be in range [%d, %d]", MinSeats, MaxSeats)
	}
	if strings.TrimSpace(req.FuelType) == "" {
		return apperr.New(apperr.KindValidation, "fuel_type is required")
	}
	if strings.TrimSpace(req.Transmission) == "" {
		return apperr.New(apperr.KindValidation, "transmission is required")
	}
	if strings.TrimSpace(req.Color) == "" {
		return apperr.New(apperr.KindValidation, "color is required")
	}
	if req.Mileage < 0 {
		return apperr.New(apperr.KindValidation, "mileage must be non-negative")
	}
	if len(req.Features) > MaxFeatures {
		return apperr.Newf(apperr.KindValidation, "at most %d features are allowed", MaxFeatures)
	}
	for _, f := range req.Features {
		if !AllowedFeatures[f] {
			return apperr.Newf(apperr.KindValidation, "unrecognized feature: %q", f)
		}
	}
	return nil
}

func validatePricing(req models.CarPricing) (models.CarPricing, error) {
	if req.DailyRate < 0 || req.WeeklyRate < 0 || req.MonthlyRate < 0 {
		return req, apperr.New(apperr.KindValidation, "rates must be non-negative")
	}
	if req.MinRentalDays < 1 {
		return req, apperr.New(apperr.KindValidation, "min_rental_days must be at least 1")
	}
	if req.MaxRentalDays != nil {
		// Zero means "no maximum" and is stored as null.
		if *req.MaxRentalDays == 0 {
			req.MaxRentalDays = nil
		} else if *req.MaxRentalDays < req.MinRentalDays {
			return req, apperr.New(apperr.KindValidation, "max_rental_days must be at least min_rental_days")
		}
	}
	if req.MinAge < MinRenterAge || req.MinAge > MaxRenterAge {
		return req, apperr.Newf(apperr.KindValidation, "min_age must be in range [%d, %d]", MinRenterAge, MaxRenterAge)
	}
	if strings.TrimSpace(req.Rules) == "" {
		return req, apperr.New(apperr.KindValidation, "rules is required")
	}
	return req, nil
}

func validateLocation(req models.CarLocation) (models.CarLocation, error) {
	hasName := req.LocationName != nil && strings.TrimSpace(*req.LocationName) != ""
	hasLat := req.Latitude != nil
	hasLon := req.Longitude != nil

	switch {
	case hasName && (hasLat || hasLon):
		return req, apperr.New(apperr.KindValidation, "provide either location_name or coordinates, not both")
	case hasName:
		req.Latitude, req.Longitude = nil, nil
		return req, nil
	case hasLat != hasLon:
		return req, apperr.New(apperr.KindValidation, "latitude and longitude must be provided together")
	case !hasLat && !hasLon:
		return req, apperr.New(apperr.KindValidation, "either location_name or coordinates must be provided")
	}

	if *req.Latitude < -90 || *req.Latitude > 90 {
		return req, apperr.New(apperr.KindValidation, "latitude must be in range [-90, 90]")
	}
	if *req.Longitude < -180 || *req.Longitude > 180 {
		return req, apperr.New(apperr.KindValidation, "longitude must be in range [-180, 180]")
	}
	req.LocationName = nil
	return req, nil
}
