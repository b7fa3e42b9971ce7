package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	assert.NoError(t, err)

	assert.Equal(t, "3001", cfg.Port)
	assert.Equal(t, time.Sunday, cfg.Clinic.ClosedWeekday)
	assert.Equal(t, 4, cfg.Clinic.BookingWindowSize)
	assert.Equal(t, 7, cfg.Clinic.PageSize)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Contains(t, cfg.Database.DSN, "tcp(localhost:3306)")
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("CLINIC_CLOSED_WEEKDAY", "friday")
	t.Setenv("CLINIC_BOOKING_WINDOW_SIZE", "2")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_PREFILL_TTL_MINUTES", "5")

	cfg, err := LoadConfig()
	assert.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, time.Friday, cfg.Clinic.ClosedWeekday)
	assert.Equal(t, 2, cfg.Clinic.BookingWindowSize)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 5*time.Minute, cfg.Redis.TTL)
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	t.Setenv("CLINIC_CLOSED_WEEKDAY", "Funday")
	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfigRejectsNonPositiveSizes(t *testing.T) {
	t.Setenv("CLINIC_BOOKING_WINDOW_SIZE", "0")
	_, err := LoadConfig()
	assert.ErrorContains(t, err, "CLINIC_BOOKING_WINDOW_SIZE")

	t.Setenv("CLINIC_BOOKING_WINDOW_SIZE", "-2")
	_, err = LoadConfig()
	assert.ErrorContains(t, err, "CLINIC_BOOKING_WINDOW_SIZE")

	t.Setenv("CLINIC_BOOKING_WINDOW_SIZE", "4")
	t.Setenv("CLINIC_PAGE_SIZE", "0")
	_, err = LoadConfig()
	assert.ErrorContains(t, err, "CLINIC_PAGE_SIZE")
}

func TestParseWeekday(t *testing.T) {
	d, err := parseWeekday("sunday")
	assert.NoError(t, err)
	assert.Equal(t, time.Sunday, d)

	d, err = parseWeekday("Wednesday")
	assert.NoError(t, err)
	assert.Equal(t, time.Wednesday, d)

	_, err = parseWeekday("")
	assert.Error(t, err)
}
