package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"fulfillment/internal/adapters/out/carrier"
	"fulfillment/internal/adapters/out/notify"
	"fulfillment/internal/pkg/errs"
)

// CounterBackend selects where batch counter documents live.
type CounterBackend string

const (
	CounterBackendPostgres CounterBackend = "postgres"
	CounterBackendRedis    CounterBackend = "redis"
)

// CarrierConfig holds both environments of one carrier. Only Mode's endpoint is used.
type CarrierConfig struct {
	Name       string
	SandboxURL string
	SandboxKey string
	LiveURL    string
	LiveKey    string
}

func (c CarrierConfig) baseURL(mode carrier.Mode) string {
	if mode == carrier.Live {
		return c.LiveURL
	}
	return c.SandboxURL
}

func (c CarrierConfig) credentials() carrier.Credentials {
	return carrier.Credentials{
		Sandbox: carrier.Endpoint{BaseURL: c.SandboxURL, APIKey: c.SandboxKey},
		Live:    carrier.Endpoint{BaseURL: c.LiveURL, APIKey: c.LiveKey},
	}
}

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	CounterBackend CounterBackend
	RedisAddr      string
	RedisPassword  string
	RedisDB        int

	CarrierMode         carrier.Mode
	SameDayCarrier      CarrierConfig
	NextDayCarrier      CarrierConfig
	NextDayServiceLevel string
	LabelTries          uint

	RendererURL string
	RendererKey string
	AssetRoot   string

	EmailAPIURL      string
	EmailAPIKey      string
	EmailFrom        string
	NotifyRecipients notify.Recipients

	CallTimeout   time.Duration
	BookingPacing time.Duration
	AutoRowLimit  int

	SameDayCron  string
	NextDayCron  string
	AutoStoreTag string
	HomeLocation string
}

// LoadConfig reads every key through getenv and reports all malformed values at once.
func LoadConfig(getenv func(string) string) (Config, error) {
	get := func(key, fallback string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return fallback
	}

	cfg := Config{
		HTTPPort:   get("HTTP_PORT", "8080"),
		DBHost:     get("DB_HOST", "localhost"),
		DBPort:     get("DB_PORT", "5432"),
		DBUser:     get("DB_USER", ""),
		DBPassword: get("DB_PASSWORD", ""),
		DBName:     get("DB_NAME", ""),
		DBSslMode:  get("DB_SSLMODE", "disable"),

		CounterBackend: CounterBackend(strings.ToLower(get("COUNTER_BACKEND", string(CounterBackendPostgres)))),
		RedisAddr:      get("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  get("REDIS_PASSWORD", ""),

		SameDayCarrier: CarrierConfig{
			Name:       get("SAMEDAY_CARRIER_NAME", "sameday-courier"),
			SandboxURL: get("SAMEDAY_SANDBOX_URL", ""),
			SandboxKey: get("SAMEDAY_SANDBOX_KEY", ""),
			LiveURL:    get("SAMEDAY_LIVE_URL", ""),
			LiveKey:    get("SAMEDAY_LIVE_KEY", ""),
		},
		NextDayCarrier: CarrierConfig{
			Name:       get("NEXTDAY_CARRIER_NAME", "nextday-parcel"),
			SandboxURL: get("NEXTDAY_SANDBOX_URL", ""),
			SandboxKey: get("NEXTDAY_SANDBOX_KEY", ""),
			LiveURL:    get("NEXTDAY_LIVE_URL", ""),
			LiveKey:    get("NEXTDAY_LIVE_KEY", ""),
		},
		NextDayServiceLevel: get("NEXTDAY_SERVICE_LEVEL", "overnight"),

		RendererURL: get("RENDERER_URL", ""),
		RendererKey: get("RENDERER_KEY", ""),
		AssetRoot:   get("ASSET_ROOT", "./assets"),

		EmailAPIURL: get("EMAIL_API_URL", ""),
		EmailAPIKey: get("EMAIL_API_KEY", ""),
		EmailFrom:   get("EMAIL_FROM", ""),

		SameDayCron:  get("SAMEDAY_CRON", ""),
		NextDayCron:  get("NEXTDAY_CRON", ""),
		AutoStoreTag: get("AUTO_STORE_TAG", ""),
		HomeLocation: get("HOME_LOCATION", "Sydney"),
	}

	var problems []error
	collect := func(err error) {
		if err != nil {
			problems = append(problems, err)
		}
	}

	switch cfg.CounterBackend {
	case CounterBackendPostgres, CounterBackendRedis:
	default:
		collect(errs.NewValueIsInvalidErrorWithCause("COUNTER_BACKEND",
			fmt.Errorf("%q is neither postgres nor redis", cfg.CounterBackend)))
	}

	var err error
	cfg.CarrierMode, err = carrier.ParseMode(get("CARRIER_MODE", string(carrier.Sandbox)))
	collect(err)
	cfg.NotifyRecipients, err = notify.ParseRecipients(get("STORE_NOTIFY_RECIPIENTS", ""))
	collect(err)

	cfg.RedisDB, err = intVar(get, "REDIS_DB", 0)
	collect(err)
	cfg.AutoRowLimit, err = intVar(get, "AUTO_ROW_LIMIT", 40)
	collect(err)
	tries, err := intVar(get, "LABEL_TRIES", 3)
	collect(err)
	if tries > 0 {
		cfg.LabelTries = uint(tries)
	}

	cfg.CallTimeout, err = durationVar(get, "CALL_TIMEOUT", 30*time.Second)
	collect(err)
	cfg.BookingPacing, err = durationVar(get, "BOOKING_PACING", 250*time.Millisecond)
	collect(err)

	if err = errors.Join(problems...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func intVar(get func(string, string) string, key string, fallback int) (int, error) {
	raw := get(key, "")
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback, errs.NewValueIsInvalidErrorWithCause(key, err)
	}
	if n < 0 {
		return fallback, errs.NewValueIsOutOfRangeError(key, n, 0, "unbounded")
	}
	return n, nil
}

func durationVar(get func(string, string) string, key string, fallback time.Duration) (time.Duration, error) {
	raw := get(key, "")
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback, errs.NewValueIsInvalidErrorWithCause(key, err)
	}
	if d < 0 {
		return fallback, errs.NewValueIsOutOfRangeError(key, d, 0, "unbounded")
	}
	return d, nil
}
