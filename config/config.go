package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// SweepConfig holds everything the missing-entry sweep and its scheduler
// consume: the deep-link base URL, the two daily trigger times, the single
// timezone authority for both triggering and date normalization, and the
// SMTP delivery settings.
//
// Load it once in main() before any trigger can fire. Invalid config must
// terminate startup, never surface mid-run.
type SweepConfig struct {
	AppBaseURL   string `validate:"required,url"`
	Timezone     string `validate:"required"`
	FirstAlertAt string `validate:"required"`
	EscalationAt string `validate:"required"`

	MailHost       string `validate:"required"`
	MailPort       int    `validate:"required,gt=0"`
	MailUser       string
	MailPassword   string
	MailSender     string `validate:"required,email"`
	MailSenderName string

	location *time.Location
}

func init() {
	// Load env from .env
	godotenv.Load()
}

// LoadSweepConfig reads and validates the sweep configuration from env.
func LoadSweepConfig() (*SweepConfig, error) {
	cfg := &SweepConfig{
		AppBaseURL:     strings.TrimRight(os.Getenv("APP_BASE_URL"), "/"),
		Timezone:       stringFromEnv("SWEEP_TIMEZONE", "Asia/Yangon"),
		FirstAlertAt:   stringFromEnv("FIRST_ALERT_AT", "09:00"),
		EscalationAt:   stringFromEnv("ESCALATION_AT", "13:00"),
		MailHost:       os.Getenv("MAIL_HOST"),
		MailPort:       intFromEnv("MAIL_PORT", 587),
		MailUser:       os.Getenv("MAIL_USER"),
		MailPassword:   os.Getenv("MAIL_PASSWORD"),
		MailSender:     os.Getenv("MAIL_SENDER"),
		MailSenderName: stringFromEnv("MAIL_SENDER_NAME", "StationLog"),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("sweep config invalid: %w", err)
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("sweep config invalid: SWEEP_TIMEZONE %q: %w", cfg.Timezone, err)
	}
	cfg.location = loc

	for _, at := range []string{cfg.FirstAlertAt, cfg.EscalationAt} {
		if _, _, err := ParseClock(at); err != nil {
			return nil, fmt.Errorf("sweep config invalid: %w", err)
		}
	}

	return cfg, nil
}

// Location is the scheduling timezone. It is the only timezone authority in
// this process: the trigger times AND the "today" used for detection are both
// evaluated in it, so the civil date of a run always matches the schedule.
func (c *SweepConfig) Location() *time.Location {
	return c.location
}

// ParseClock parses a wall-clock trigger time in "HH:MM" form.
func ParseClock(s string) (hour, minute int, err error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("trigger time %q: want HH:MM", s)
	}
	hour, herr := strconv.Atoi(parts[0])
	minute, merr := strconv.Atoi(parts[1])
	if herr != nil || merr != nil || hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("trigger time %q: want HH:MM", s)
	}
	return hour, minute, nil
}

func stringFromEnv(key string, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}
