package models

import "time"

// Stage is a car listing's position in the four-step upload workflow. It only
// ever moves forward, one step per endpoint call.
type Stage string

const (
	StageBasics   Stage = "basics"
	StageSpecs    Stage = "specs"
	StagePricing  Stage = "pricing"
	StageComplete Stage = "complete"
)

// Next returns the stage that follows s, or s itself for the terminal stage.
func (s Stage) Next() Stage {
	switch s {
	case StageBasics:
		return StageSpecs
	case StageSpecs:
		return StagePricing
	case StagePricing:
		return StageComplete
	default:
		return s
	}
}

func (s Stage) Valid() bool {
	switch s {
	case StageBasics, StageSpecs, StagePricing, StageComplete:
		return true
	}
	return false
}

// Car is the staged listing record. Fields beyond the basics group are
// pointers because they are unset until their stage's endpoint fills them.
// Stage is the single source of truth for workflow position.
type Car struct {
	ID     int64 `json:"id"`
	HostID int64 `json:"host_id"`

	// basics
	Name        string `json:"name"`
	Model       string `json:"model"`
	BodyType    string `json:"body_type"`
	Year        int    `json:"year"`
	Description string `json:"description"`

	// specs
	Seats        *int     `json:"seats"`
	FuelType     *string  `json:"fuel_type"`
	Transmission *string  `json:"transmission"`
	Color        *string  `json:"color"`
	Mileage      *int     `json:"mileage"`
	Features     []string `json:"features"`

	// pricing
	DailyRate     *float64 `json:"daily_rate"`
	WeeklyRate    *float64 `json:"weekly_rate"`
	MonthlyRate   *float64 `json:"monthly_rate"`
	MinRentalDays *int     `json:"min_rental_days"`
	MaxRentalDays *int     `json:"max_rental_days"`
	MinAge        *int     `json:"min_age"`
	Rules         *string  `json:"rules"`

	// location
	LocationName *string  `json:"location_name"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`

	Stage     Stage     `json:"stage"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CarBasics is the stage 1 payload. It creates the record.
type CarBasics struct {
	Name        string `json:"name"`
	Model       string `json:"model"`
	BodyType    string `json:"body_type"`
	Year        int    `json:"year"`
	Description string `json:"description"`
}

// CarSpecs is the stage 2 payload.
type CarSpecs struct {
	Seats        int      `json:"seats"`
	FuelType     string   `json:"fuel_type"`
	Transmission string   `json:"transmission"`
	Color        string   `json:"color"`
	Mileage      int      `json:"mileage"`
	Features     []string `json:"features"`
}

// CarPricing is the stage 3 payload. MaxRentalDays nil or zero means no
// maximum.
type CarPricing struct {
	DailyRate     float64 `json:"daily_rate"`
	WeeklyRate    float64 `json:"weekly_rate"`
	MonthlyRate   float64 `json:"monthly_rate"`
	MinRentalDays int     `json:"min_rental_days"`
	MaxRentalDays *int    `json:"max_rental_days"`
	MinAge        int     `json:"min_age"`
	Rules         string  `json:"rules"`
}

// CarLocation is the stage 4 payload. Exactly one representation is accepted:
// a non-empty name, or a full coordinate pair.
type CarLocation struct {
	LocationName *string  `json:"location_name"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
}
