package domain

import "time"

// ConfigRow is one key/value row from the config table.
type ConfigRow struct {
	Key   string  `json:"key"`
	Value *string `json:"value"`
}

// TripConfig is the config table folded into named fields. Missing keys
// fall back to the documented defaults; unknown keys are ignored.
type TripConfig struct {
	DadName           string     `json:"dad_name"`
	HomeTimezone      string     `json:"home_timezone"`
	TripTimezone      string     `json:"trip_timezone"`
	ReturnDateTimeUTC *time.Time `json:"return_datetime_utc,omitempty"`
	ContactPhone      *string    `json:"contact_phone,omitempty"`
	EmergencyContact  *string    `json:"emergency_contact,omitempty"`
	HotelName         *string    `json:"hotel_name,omitempty"`
	HotelAddress      *string    `json:"hotel_address,omitempty"`
	HotelPhone        *string    `json:"hotel_phone,omitempty"`
	ConferenceName    *string    `json:"conference_name,omitempty"`
	ConferenceURL     *string    `json:"conference_url,omitempty"`
	ConsulatePhone    *string    `json:"consulate_phone,omitempty"`
	InsurancePhone    *string    `json:"insurance_phone,omitempty"`
	InsurancePolicy   *string    `json:"insurance_policy,omitempty"`
}

// Default values applied when the corresponding config key is absent.
const (
	DefaultDadName      = "Ben"
	DefaultHomeTimezone = "Australia/Sydney"
	DefaultTripTimezone = "Europe/Prague"
)

// NewTripConfig folds config rows into a TripConfig. A row whose value is
// nil counts as absent. A return_datetime_utc value that does not parse
// as RFC 3339 is treated as absent rather than failing the fold.
func NewTripConfig(rows []ConfigRow) TripConfig {
	cfg := TripConfig{
		DadName:      DefaultDadName,
		HomeTimezone: DefaultHomeTimezone,
		TripTimezone: DefaultTripTimezone,
	}
	for _, row := range rows {
		if row.Value == nil {
			continue
		}
		v := *row.Value
		switch row.Key {
		case "dad_name":
			cfg.DadName = v
		case "home_timezone":
			cfg.HomeTimezone = v
		case "trip_timezone":
			cfg.TripTimezone = v
		case "return_datetime_utc":
			if t, err := time.Parse(time.RFC3339, v); err == nil {
				utc := t.UTC()
				cfg.ReturnDateTimeUTC = &utc
			}
		case "contact_phone":
			cfg.ContactPhone = &v
		case "emergency_contact":
			cfg.EmergencyContact = &v
		case "hotel_name":
			cfg.HotelName = &v
		case "hotel_address":
			cfg.HotelAddress = &v
		case "hotel_phone":
			cfg.HotelPhone = &v
		case "conference_name":
			cfg.ConferenceName = &v
		case "conference_url":
			cfg.ConferenceURL = &v
		case "consulate_phone":
			cfg.ConsulatePhone = &v
		case "insurance_phone":
			cfg.InsurancePhone = &v
		case "insurance_policy":
			cfg.InsurancePolicy = &v
		}
	}
	return cfg
}

// HomeLocation loads the configured home timezone, falling back to the
// default (and finally UTC) when the identifier cannot be loaded.
func (c TripConfig) HomeLocation() *time.Location {
	if loc, err := time.LoadLocation(c.HomeTimezone); err == nil {
		return loc
	}
	if loc, err := time.LoadLocation(DefaultHomeTimezone); err == nil {
		return loc
	}
	return time.UTC
}
