package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"driveshare/pkg/apperr"
	"driveshare/pkg/logger"
	"driveshare/pkg/models"
	"driveshare/storage/memory"
)

const (
	hostA int64 = 1
	hostB int64 = 2
)

func newCarService(t *testing.T) CarService {
	t.Helper()
	return NewCarService(memory.New(), logger.New("test", "error"))
}

func validBasics() models.CarBasics {
	return models.CarBasics{
		Name:        "Civic",
		Model:       "EX",
		BodyType:    "Sedan",
		Year:        2020,
		Description: "Clean and reliable commuter.",
	}
}

func validSpecs() models.CarSpecs {
	return models.CarSpecs{
		Seats:        5,
		FuelType:     "Gasoline",
		Transmission: "Automatic",
		Color:        "Blue",
		Mileage:      42000,
		Features:     []string{"AC", "Bluetooth"},
	}
}

func validPricing() models.CarPricing {
	return models.CarPricing{
		DailyRate:     40,
		WeeklyRate:    250,
		MonthlyRate:   900,
		MinRentalDays: 2,
		MinAge:        21,
		Rules:         "No smoking.",
	}
}

func validLocation() models.CarLocation {
	name := "Austin"
	return models.CarLocation{LocationName: &name}
}

// advanceTo walks a fresh car to the requested stage.
func advanceTo(t *testing.T, svc CarService, hostID int64, stage models.Stage) *models.Car {
	t.Helper()
	ctx := context.Background()

	car, err := svc.CreateBasics(ctx, hostID, validBasics())
	require.NoError(t, err)
	if stage == models.StageBasics {
		return car
	}

	car, err = svc.UpdateSpecs(ctx, hostID, car.ID, validSpecs())
	require.NoError(t, err)
	if stage == models.StageSpecs {
		return car
	}

	car, err = svc.UpdatePricing(ctx, hostID, car.ID, validPricing())
	require.NoError(t, err)
	if stage == models.StagePricing {
		return car
	}

	car, err = svc.UpdateLocation(ctx, hostID, car.ID, validLocation())
	require.NoError(t, err)
	return car
}

func TestCreateBasics(t *testing.T) {
	svc := newCarService(t)
	ctx := context.Background()

	car, err := svc.CreateBasics(ctx, hostA, validBasics())
	require.NoError(t, err)
	assert.Equal(t, models.StageBasics, car.Stage)
	assert.Equal(t, hostA, car.HostID)
	assert.Equal(t, "Civic", car.Name)
	assert.Nil(t, car.Seats)
}

func TestCreateBasicsValidation(t *testing.T) {
	svc := newCarService(t)
	ctx := context.Background()

	testCases := []struct {
		name   string
		mutate func(*models.CarBasics)
	}{
		{"empty name", func(b *models.CarBasics) { b.Name = "" }},
		{"empty model", func(b *models.CarBasics) { b.Model = " " }},
		{"empty body type", func(b *models.CarBasics) { b.BodyType = "" }},
		{"year too old", func(b *models.CarBasics) { b.Year = 1899 }},
		{"year too new", func(b *models.CarBasics) { b.Year = 2101 }},
		{"empty description", func(b *models.CarBasics) { b.Description = "" }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := validBasics()
			tc.mutate(&req)
			_, err := svc.CreateBasics(ctx, hostA, req)
			assert.True(t, errors.Is(err, apperr.ErrValidation))
		})
	}
}

func TestStageTransitionsAreMonotonic(t *testing.T) {
	svc := newCarService(t)
	ctx := context.Background()

	car := advanceTo(t, svc, hostA, models.StageBasics)

	// Skipping ahead is rejected before any state changes.
	_, err := svc.UpdatePricing(ctx, hostA, car.ID, validPricing())
	assert.True(t, errors.Is(err, apperr.ErrState))
	_, err = svc.UpdateLocation(ctx, hostA, car.ID, validLocation())
	assert.True(t, errors.Is(err, apperr.ErrState))

	// The specs step succeeds exactly once.
	updated, err := svc.UpdateSpecs(ctx, hostA, car.ID, validSpecs())
	require.NoError(t, err)
	assert.Equal(t, models.StageSpecs, updated.Stage)

	_, err = svc.UpdateSpecs(ctx, hostA, car.ID, validSpecs())
	assert.True(t, errors.Is(err, apperr.ErrState))

	// No going backward from later stages either.
	updated, err = svc.UpdatePricing(ctx, hostA, car.ID, validPricing())
	require.NoError(t, err)
	assert.Equal(t, models.StagePricing, updated.Stage)

	_, err = svc.UpdateSpecs(ctx, hostA, car.ID, validSpecs())
	assert.True(t, errors.Is(err, apperr.ErrState))
}

func TestOwnershipEnforcedAtEveryStage(t *testing.T) {
	svc := newCarService(t)
	ctx := context.Background()

	car := advanceTo(t, svc, hostA, models.StageBasics)

	_, err := svc.UpdateSpecs(ctx, hostB, car.ID, validSpecs())
	assert.True(t, errors.Is(err, apperr.ErrForbidden))

	car = advanceTo(t, svc, hostA, models.StageSpecs)
	_, err = svc.UpdatePricing(ctx, hostB, car.ID, validPricing())
	assert.True(t, errors.Is(err, apperr.ErrForbidden))

	car = advanceTo(t, svc, hostA, models.StagePricing)
	_, err = svc.UpdateLocation(ctx, hostB, car.ID, validLocation())
	assert.True(t, errors.Is(err, apperr.ErrForbidden))
}

func TestUpdateSpecsUnknownCar(t *testing.T) {
	svc := newCarService(t)

	_, err := svc.UpdateSpecs(context.Background(), hostA, 999, validSpecs())
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestFeaturesLimit(t *testing.T) {
	svc := newCarService(t)
	ctx := context.Background()

	twelve := []string{
		"AC", "Bluetooth", "GPS", "USB Charger", "Heated Seats", "Sunroof",
		"Backup Camera", "Cruise Control", "Parking Sensors", "Child Seat",
		"All Wheel Drive", "Apple CarPlay",
	}

	car := advanceTo(t, svc, hostA, models.StageBasics)
	specs := validSpecs()
	specs.Features = twelve
	updated, err := svc.UpdateSpecs(ctx, hostA, car.ID, specs)
	require.NoError(t, err)
	assert.Len(t, updated.Features, 12)

	car = advanceTo(t, svc, hostA, models.StageBasics)
	specs.Features = append(twelve, "Android Auto")
	_, err = svc.UpdateSpecs(ctx, hostA, car.ID, specs)
	assert.True(t, errors.Is(err, apperr.ErrValidation))
}

func TestFeaturesMustBeRecognized(t *testing.T) {
	svc := newCarService(t)

	car := advanceTo(t, svc, hostA, models.StageBasics)
	specs := validSpecs()
	specs.Features = []string{"AC", "Flux Capacitor"}
	_, err := svc.UpdateSpecs(context.Background(), hostA, car.ID, specs)
	assert.True(t, errors.Is(err, apperr.ErrValidation))
}

func TestPricingRentalDayBounds(t *testing.T) {
	svc := newCarService(t)
	ctx := context.Background()

	three, five := 3, 5

	car := advanceTo(t, svc, hostA, models.StageSpecs)
	pricing := validPricing()
	pricing.MinRentalDays = 5
	pricing.MaxRentalDays = &three
	_, err := svc.UpdatePricing(ctx, hostA, car.ID, pricing)
	assert.True(t, errors.Is(err, apperr.ErrValidation))

	// Equal min and max is allowed.
	pricing.MaxRentalDays = &five
	updated, err := svc.UpdatePricing(ctx, hostA, car.ID, pricing)
	require.NoError(t, err)
	require.NotNil(t, updated.MaxRentalDays)
	assert.Equal(t, 5, *updated.MaxRentalDays)
}

func TestPricingZeroMaxMeansNoMaximum(t *testing.T) {
	svc := newCarService(t)

	car := advanceTo(t, svc, hostA, models.StageSpecs)
	pricing := validPricing()
	zero := 0
	pricing.MaxRentalDays = &zero

	updated, err := svc.UpdatePricing(context.Background(), hostA, car.ID, pricing)
	require.NoError(t, err)
	assert.Nil(t, updated.MaxRentalDays)
}

func TestPricingValidation(t *testing.T) {
	svc := newCarService(t)
	ctx := context.Background()

	testCases := []struct {
		name   string
		mutate func(*models.CarPricing)
	}{
		{"negative daily rate", func(p *models.CarPricing) { p.DailyRate = -1 }},
		{"zero min rental days", func(p *models.CarPricing) { p.MinRentalDays = 0 }},
		{"min age below 18", func(p *models.CarPricing) { p.MinAge = 17 }},
		{"min age above 100", func(p *models.CarPricing) { p.MinAge = 101 }},
		{"empty rules", func(p *models.CarPricing) { p.Rules = "" }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			car := advanceTo(t, svc, hostA, models.StageSpecs)
			req := validPricing()
			tc.mutate(&req)
			_, err := svc.UpdatePricing(ctx, hostA, car.ID, req)
			assert.True(t, errors.Is(err, apperr.ErrValidation))
		})
	}
}

func TestLocationByName(t *testing.T) {
	svc := newCarService(t)

	car := advanceTo(t, svc, hostA, models.StagePricing)
	name := "Downtown Parking"
	updated, err := svc.UpdateLocation(context.Background(), hostA, car.ID, models.CarLocation{LocationName: &name})
	require.NoError(t, err)
	assert.Equal(t, models.StageComplete, updated.Stage)
	require.NotNil(t, updated.LocationName)
	assert.Equal(t, "Downtown Parking", *updated.LocationName)
	assert.Nil(t, updated.Latitude)
	assert.Nil(t, updated.Longitude)
}

func TestLocationByCoordinates(t *testing.T) {
	svc := newCarService(t)

	car := advanceTo(t, svc, hostA, models.StagePricing)
	lat, lon := 30.2672, -97.7431
	updated, err := svc.UpdateLocation(context.Background(), hostA, car.ID, models.CarLocation{Latitude: &lat, Longitude: &lon})
	require.NoError(t, err)
	assert.Equal(t, models.StageComplete, updated.Stage)
	assert.Nil(t, updated.LocationName)
	require.NotNil(t, updated.Latitude)
	assert.Equal(t, lat, *updated.Latitude)
}

func TestLocationValidation(t *testing.T) {
	svc := newCarService(t)
	ctx := context.Background()

	name := "Austin"
	lat, lon := 30.0, -97.0
	badLat, badLon := 91.0, -181.0

	testCases := []struct {
		name string
		req  models.CarLocation
	}{
		{"nothing provided", models.CarLocation{}},
		{"name and coordinates", models.CarLocation{LocationName: &name, Latitude: &lat, Longitude: &lon}},
		{"latitude only", models.CarLocation{Latitude: &lat}},
		{"longitude only", models.CarLocation{Longitude: &lon}},
		{"latitude out of range", models.CarLocation{Latitude: &badLat, Longitude: &lon}},
		{"longitude out of range", models.CarLocation{Latitude: &lat, Longitude: &badLon}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			car := advanceTo(t, svc, hostA, models.StagePricing)
			_, err := svc.UpdateLocation(ctx, hostA, car.ID, tc.req)
			assert.True(t, errors.Is(err, apperr.ErrValidation))
		})
	}
}

func TestPublicListOnlyComplete(t *testing.T) {
	svc := newCarService(t)
	ctx := context.Background()

	complete := advanceTo(t, svc, hostA, models.StageComplete)
	draft := advanceTo(t, svc, hostA, models.StageSpecs)

	public, err := svc.ListComplete(ctx, 1, 20)
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Equal(t, complete.ID, public[0].ID)

	// The draft still shows up in the host's own listing.
	mine, err := svc.ListByHost(ctx, hostA)
	require.NoError(t, err)
	ids := make([]int64, 0, len(mine))
	for _, c := range mine {
		ids = append(ids, c.ID)
	}
	assert.Contains(t, ids, draft.ID)
	assert.Contains(t, ids, complete.ID)
}

func TestListCompletePagination(t *testing.T) {
	svc := newCarService(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		advanceTo(t, svc, hostA, models.StageComplete)
	}

	first, err := svc.ListComplete(ctx, 1, 2)
	require.NoError(t, err)
	assert.Len(t, first, 2)

	third, err := svc.ListComplete(ctx, 3, 2)
	require.NoError(t, err)
	assert.Len(t, third, 1)

	beyond, err := svc.ListComplete(ctx, 4, 2)
	require.NoError(t, err)
	assert.Empty(t, beyond)
}

func TestFullWorkflow(t *testing.T) {
	svc := newCarService(t)
	ctx := context.Background()

	car, err := svc.CreateBasics(ctx, hostA, validBasics())
	require.NoError(t, err)

	_, err = svc.UpdateSpecs(ctx, hostA, car.ID, validSpecs())
	require.NoError(t, err)

	_, err = svc.UpdatePricing(ctx, hostA, car.ID, validPricing())
	require.NoError(t, err)

	_, err = svc.UpdateLocation(ctx, hostA, car.ID, validLocation())
	require.NoError(t, err)

	final, err := svc.Get(ctx, car.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StageComplete, final.Stage)
	assert.Equal(t, "Civic", final.Name)
	require.NotNil(t, final.Seats)
	assert.Equal(t, 5, *final.Seats)
	require.NotNil(t, final.DailyRate)
	assert.Equal(t, 40.0, *final.DailyRate)
	require.NotNil(t, final.LocationName)
	assert.Equal(t, "Austin", *final.LocationName)
}

// Concurrent calls to the same stage-advancing step must succeed at most
// once; everyone else observes a state error.
func TestConcurrentStageAdvanceAtMostOnce(t *testing.T) {
	svc := newCarService(t)
	ctx := context.Background()

	car := advanceTo(t, svc, hostA, models.StageBasics)

	const callers = 16
	var wg sync.WaitGroup
	results := make(chan error, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.UpdateSpecs(ctx, hostA, car.ID, validSpecs())
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var wins, losses int
	for err := range results {
		if err == nil {
			wins++
		} else {
			require.True(t, errors.Is(err, apperr.ErrState))
			losses++
		}
	}
	assert.Equal(t, 1, wins)
	assert.Equal(t, callers-1, losses)
}
