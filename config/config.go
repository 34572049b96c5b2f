package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"planportal/models"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Port string

	// Database configuration
	DatabaseURL string

	// Quote cache configuration; in-process cache when empty
	RedisAddr string

	// Plan loan policy
	MaxLoanAbsolute        float64
	MaxLoanPctOfVested     float64
	MinLoanAmount          float64
	TermYearsMin           int
	TermYearsMax           int
	DefaultAnnualRate      float64
	OriginationFeePct      float64
	AllowedPaymentCadences []models.PaymentCadence
	RequiresSpousalConsent bool

	// Environment
	Environment string // "development" or "production"
}

var (
	instance *Config
	once     sync.Once
)

// Get returns the global configuration instance
func Get() *Config {
	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			panic(fmt.Sprintf("failed to load config: %v", err))
		}
	})
	return instance
}

// load loads configuration from the environment
func load() (*Config, error) {
	// A missing .env file is fine; real deployments set the environment.
	_ = godotenv.Load()

	config := &Config{
		Port:        os.Getenv("PORT"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisAddr:   os.Getenv("REDIS_ADDR"),

		// Plan policy defaults
		MaxLoanAbsolute:    50000,
		MaxLoanPctOfVested: 0.5,
		MinLoanAmount:      1000,
		TermYearsMin:       1,
		TermYearsMax:       5,
		DefaultAnnualRate:  0.085,
		OriginationFeePct:  0.01,
		AllowedPaymentCadences: []models.PaymentCadence{
			models.CadenceMonthly,
			models.CadenceBiweekly,
			models.CadenceSemimonthly,
		},
		RequiresSpousalConsent: true,

		Environment: os.Getenv("ENVIRONMENT"),
	}

	// Override defaults if environment variables are set
	overrideFloat("MAX_LOAN_ABSOLUTE", &config.MaxLoanAbsolute)
	overrideFloat("MAX_LOAN_PCT_OF_VESTED", &config.MaxLoanPctOfVested)
	overrideFloat("MIN_LOAN_AMOUNT", &config.MinLoanAmount)
	overrideInt("TERM_YEARS_MIN", &config.TermYearsMin)
	overrideInt("TERM_YEARS_MAX", &config.TermYearsMax)
	overrideFloat("DEFAULT_ANNUAL_RATE", &config.DefaultAnnualRate)
	overrideFloat("ORIGINATION_FEE_PCT", &config.OriginationFeePct)

	if consent := os.Getenv("REQUIRES_SPOUSAL_CONSENT"); consent != "" {
		config.RequiresSpousalConsent = consent == "true"
	}

	// Parse allowed cadences, e.g. "monthly,biweekly"
	if cadences := os.Getenv("ALLOWED_PAYMENT_CADENCES"); cadences != "" {
		var parsed []models.PaymentCadence
		for _, raw := range strings.Split(cadences, ",") {
			cadence := models.PaymentCadence(strings.TrimSpace(raw))
			if cadence.PaymentsPerYear() > 0 {
				parsed = append(parsed, cadence)
			}
		}
		if len(parsed) > 0 {
			config.AllowedPaymentCadences = parsed
		}
	}

	if config.Port == "" {
		config.Port = "3000"
	}
	if config.Environment == "" {
		config.Environment = "development"
	}

	if config.Environment != "test" {
		if config.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
	}

	return config, nil
}

// PlanConfig builds the immutable plan policy from the loaded configuration
func (c *Config) PlanConfig() *models.PlanConfig {
	return &models.PlanConfig{
		MaxLoanAbsolute:        c.MaxLoanAbsolute,
		MaxLoanPctOfVested:     c.MaxLoanPctOfVested,
		MinLoanAmount:          c.MinLoanAmount,
		TermYearsMin:           c.TermYearsMin,
		TermYearsMax:           c.TermYearsMax,
		DefaultAnnualRate:      c.DefaultAnnualRate,
		OriginationFeePct:      c.OriginationFeePct,
		AllowedPaymentCadences: c.AllowedPaymentCadences,
		RequiresSpousalConsent: c.RequiresSpousalConsent,
	}
}

func overrideFloat(key string, target *float64) {
	if raw := os.Getenv(key); raw != "" {
		if parsed, err := strconv.ParseFloat(raw, 64); err == nil {
			*target = parsed
		}
	}
}

func overrideInt(key string, target *int) {
	if raw := os.Getenv(key); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			*target = parsed
		}
	}
}
