package cmd

import (
	"errors"
	"log/slog"
	"strconv"
	"time"

	"kitchen/internal/pkg/errs"
)

// Config is read from the environment, optionally seeded from a .env file.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	LogLevel   slog.Level

	// Station is recorded on items started from this terminal.
	Station string
	// KeyMapPath points at an optional YAML key map.
	KeyMapPath string
	// AlertRings is the number of bells per new order alert; 0 disables it.
	AlertRings int

	// PushURL is the storefront push endpoint. AMQPURL takes precedence when
	// both are set; with neither, ready notifications are dropped.
	PushURL      string
	AMQPURL      string
	AMQPExchange string

	ReconcileInterval time.Duration
	MutationTimeout   time.Duration
}

const (
	defaultHTTPPort          = "8080"
	defaultDBPort            = "5432"
	defaultDBSslMode         = "disable"
	defaultAMQPExchange      = "kitchen"
	defaultReconcileInterval = 30 * time.Second
	defaultMutationTimeout   = 10 * time.Second
	defaultAlertRings        = 1
)

// LoadConfig reads every setting through getenv, usually os.Getenv, and
// applies defaults. All problems are reported at once.
func LoadConfig(getenv func(string) string) (Config, error) {
	cfg := Config{
		HTTPPort:     withDefault(getenv("HTTP_PORT"), defaultHTTPPort),
		DBHost:       getenv("DB_HOST"),
		DBPort:       withDefault(getenv("DB_PORT"), defaultDBPort),
		DBUser:       getenv("DB_USER"),
		DBPassword:   getenv("DB_PASSWORD"),
		DBName:       getenv("DB_NAME"),
		DBSslMode:    withDefault(getenv("DB_SSLMODE"), defaultDBSslMode),
		Station:      getenv("KITCHEN_STATION"),
		KeyMapPath:   getenv("KITCHEN_KEYMAP"),
		PushURL:      getenv("PUSH_URL"),
		AMQPURL:      getenv("AMQP_URL"),
		AMQPExchange: withDefault(getenv("AMQP_EXCHANGE"), defaultAMQPExchange),
	}

	var problems []error
	if cfg.DBHost == "" {
		problems = append(problems, errs.NewValueIsRequiredError("DB_HOST"))
	}
	if cfg.DBName == "" {
		problems = append(problems, errs.NewValueIsRequiredError("DB_NAME"))
	}

	var err error
	if cfg.ReconcileInterval, err = duration(getenv, "RECONCILE_INTERVAL", defaultReconcileInterval); err != nil {
		problems = append(problems, err)
	}
	if cfg.MutationTimeout, err = duration(getenv, "MUTATION_TIMEOUT", defaultMutationTimeout); err != nil {
		problems = append(problems, err)
	}
	if cfg.AlertRings, err = count(getenv, "ALERT_RINGS", defaultAlertRings); err != nil {
		problems = append(problems, err)
	}
	if raw := getenv("LOG_LEVEL"); raw != "" {
		if err = cfg.LogLevel.UnmarshalText([]byte(raw)); err != nil {
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause("LOG_LEVEL", err))
		}
	}

	if err = errors.Join(problems...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func withDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func duration(getenv func(string) string, key string, def time.Duration) (time.Duration, error) {
	raw := getenv(key)
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause(key, err)
	}
	if d <= 0 {
		return 0, errs.NewValueIsOutOfRangeError(key, raw, "0s", "unbounded")
	}
	return d, nil
}

func count(getenv func(string) string, key string, def int) (int, error) {
	raw := getenv(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause(key, err)
	}
	if n < 0 {
		return 0, errs.NewValueIsOutOfRangeError(key, n, 0, "unbounded")
	}
	return n, nil
}
