package services

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/terraincognita07/herflow/internal/models"
)

const (
	MinCycleLength    = 21
	MaxCycleLength    = 45
	MinPeriodLength   = 2
	MaxPeriodLength   = 10
	minYearOfBirth    = 1940
	maxProfileNameLen = 64
)

var (
	ErrInvalidName            = errors.New("name is required")
	ErrNameTooLong            = errors.New("name too long")
	ErrCycleLengthOutOfRange  = errors.New("cycle length out of range")
	ErrPeriodLengthOutOfRange = errors.New("period length out of range")
	ErrYearOfBirthOutOfRange  = errors.New("year of birth out of range")
	ErrInvalidDate            = errors.New("invalid date")
	ErrInvalidTheme           = errors.New("invalid theme")
)

var profileValidator = validator.New(validator.WithRequiredStructEnabled())

// ProfileUpdate is a partial profile; nil fields are left as they are.
type ProfileUpdate struct {
	Name            *string      `json:"name,omitempty"`
	DateOfBirth     *models.Date `json:"dateOfBirth,omitempty"`
	YearOfBirth     *int         `json:"yearOfBirth,omitempty"`
	CycleLength     *int         `json:"cycleLength,omitempty" validate:"omitnil,min=21,max=45"`
	PeriodLength    *int         `json:"periodLength,omitempty" validate:"omitnil,min=2,max=10"`
	LastPeriodStart *models.Date `json:"lastPeriodStart,omitempty"`
	PregnancyMode   *bool        `json:"pregnancyMode,omitempty"`
}

func (update ProfileUpdate) IsEmpty() bool {
	return update.Name == nil &&
		update.DateOfBirth == nil &&
		update.YearOfBirth == nil &&
		update.CycleLength == nil &&
		update.PeriodLength == nil &&
		update.LastPeriodStart == nil &&
		update.PregnancyMode == nil
}

// Apply merges the set fields into profile and returns the result.
func (update ProfileUpdate) Apply(profile models.UserProfile) models.UserProfile {
	next := profile.Clone()
	if update.Name != nil {
		next.Name = *update.Name
	}
	if update.DateOfBirth != nil {
		day := *update.DateOfBirth
		next.DateOfBirth = &day
	}
	if update.YearOfBirth != nil {
		year := *update.YearOfBirth
		next.YearOfBirth = &year
	}
	if update.CycleLength != nil {
		next.CycleLength = *update.CycleLength
	}
	if update.PeriodLength != nil {
		next.PeriodLength = *update.PeriodLength
	}
	if update.LastPeriodStart != nil {
		day := *update.LastPeriodStart
		next.LastPeriodStart = &day
	}
	if update.PregnancyMode != nil {
		next.PregnancyMode = *update.PregnancyMode
	}
	return next
}

// ValidateProfileUpdate checks every set field and returns the update with
// the name trimmed.
func ValidateProfileUpdate(update ProfileUpdate, now time.Time) (ProfileUpdate, error) {
	if err := profileValidator.Struct(update); err != nil {
		return ProfileUpdate{}, translateProfileValidation(err)
	}

	if update.Name != nil {
		name, err := NormalizeProfileName(*update.Name)
		if err != nil {
			return ProfileUpdate{}, err
		}
		update.Name = &name
	}
	if update.YearOfBirth != nil {
		if err := ValidateYearOfBirth(*update.YearOfBirth, now); err != nil {
			return ProfileUpdate{}, err
		}
	}
	if update.DateOfBirth != nil {
		if update.DateOfBirth.IsZero() {
			return ProfileUpdate{}, ErrInvalidDate
		}
		if err := ValidateYearOfBirth(update.DateOfBirth.Time().Year(), now); err != nil {
			return ProfileUpdate{}, err
		}
	}
	if update.LastPeriodStart != nil && update.LastPeriodStart.IsZero() {
		return ProfileUpdate{}, ErrInvalidDate
	}
	return update, nil
}

func translateProfileValidation(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return err
	}

	field := validationErrors[0]
	switch field.StructField() {
	case "CycleLength":
		return fmt.Errorf("%w: %v not in %d..%d", ErrCycleLengthOutOfRange, field.Value(), MinCycleLength, MaxCycleLength)
	case "PeriodLength":
		return fmt.Errorf("%w: %v not in %d..%d", ErrPeriodLengthOutOfRange, field.Value(), MinPeriodLength, MaxPeriodLength)
	default:
		return err
	}
}

func NormalizeProfileName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", ErrInvalidName
	}
	if utf8.RuneCountInString(name) > maxProfileNameLen {
		return "", ErrNameTooLong
	}
	return name, nil
}

// ValidateYearOfBirth accepts years strictly between 1940 and the current year.
func ValidateYearOfBirth(year int, now time.Time) error {
	if year <= minYearOfBirth || year >= now.Year() {
		return fmt.Errorf("%w: %d", ErrYearOfBirthOutOfRange, year)
	}
	return nil
}

func ValidateCycleLength(value int) error {
	if value < MinCycleLength || value > MaxCycleLength {
		return fmt.Errorf("%w: %d not in %d..%d", ErrCycleLengthOutOfRange, value, MinCycleLength, MaxCycleLength)
	}
	return nil
}

func ValidatePeriodLength(value int) error {
	if value < MinPeriodLength || value > MaxPeriodLength {
		return fmt.Errorf("%w: %d not in %d..%d", ErrPeriodLengthOutOfRange, value, MinPeriodLength, MaxPeriodLength)
	}
	return nil
}

// ParseDateInput parses yyyy-MM-dd text typed at an edit boundary.
func ParseDateInput(raw string) (models.Date, error) {
	trimmed := strings.TrimSpace(raw)
	parsed, err := time.Parse(models.DateLayout, trimmed)
	if err != nil {
		return models.Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
	}
	return models.DateOf(parsed), nil
}

func ParseTheme(raw string) (models.Theme, error) {
	theme := models.Theme(strings.ToLower(strings.TrimSpace(raw)))
	if !theme.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidTheme, raw)
	}
	return theme, nil
}
