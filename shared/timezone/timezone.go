package timezone

import (
	"errors"
	"fmt"
	"time"

	"hotel/config"

	"github.com/rs/zerolog/log"
)

var (
	appLocation *time.Location

	errNoLayout = errors.New("no layout given")
)

func init() {
	cfg := config.Get()

	if cfg.App.Timezone == "" {
		log.Warn().Msg("No timezone configured, using UTC as default")
		cfg.App.Timezone = "UTC"
	}

	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		log.Error().
			Err(err).
			Str("timezone", cfg.App.Timezone).
			Msg("Failed to load timezone, falling back to UTC. Please use standard timezone names like 'Asia/Jakarta', 'UTC', 'America/New_York'")
		appLocation = time.UTC

		return
	}

	appLocation = loc
	log.Info().
		Str("timezone", cfg.App.Timezone).
		Str("location", loc.String()).
		Msg("Application timezone initialized")
}

// Now returns the current time in the application timezone
func Now() time.Time {
	return time.Now().In(GetLocation())
}

// ToAppTime converts a time to the application timezone
func ToAppTime(t time.Time) time.Time {
	return t.In(GetLocation())
}

// GetLocation returns the current application timezone location
func GetLocation() *time.Location {
	if appLocation == nil {
		log.Warn().Msg("Timezone not initialized, using UTC")

		return time.UTC
	}

	return appLocation
}

// Parse parses a time string in the application timezone
func Parse(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, value, GetLocation())
}

// ParseFirst tries each layout in order and returns the first successful parse.
// Layouts without zone information are interpreted in the application timezone.
func ParseFirst(value string, layouts ...string) (time.Time, error) {
	if len(layouts) == 0 {
		return time.Time{}, errNoLayout
	}

	var lastErr error

	for _, layout := range layouts {
		parsed, err := Parse(layout, value)
		if err == nil {
			return parsed, nil
		}

		lastErr = err
	}

	return time.Time{}, fmt.Errorf("unrecognized time %q: %w", value, lastErr)
}

// Format formats a time in the application timezone
func Format(t time.Time, layout string) string {
	return ToAppTime(t).Format(layout)
}
