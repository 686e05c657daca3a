package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/spf13/viper"
)

// AppConfig holds the configuration for the application.
// Tags used:
// - mapstructure: used by viper to unmarshal
// - default: default value to set if missing
// - required: if "true", error if missing
type AppConfig struct {
	// Environment specifies the runtime environment (e.g., development, production).
	Environment string `mapstructure:"APP_ENV" default:"development"`
	// LogLevel defines the logging verbosity (e.g., debug, info, error).
	LogLevel string `mapstructure:"LOG_LEVEL" default:"info"`
	// ServerPort is the port where the server will listen.
	ServerPort int `mapstructure:"SERVER_PORT" default:"8080"`

	// Database holds the reference-table store configuration.
	Database DatabaseConfig `mapstructure:",squash"`

	// Redis holds the reference-table cache configuration.
	Redis RedisConfig `mapstructure:",squash"`

	// Maps holds the distance collaborator configuration.
	Maps MapsConfig `mapstructure:",squash"`

	// Freightcom holds the external rate provider configuration.
	Freightcom FreightcomConfig `mapstructure:",squash"`

	// Quote holds quote-output and deployment override settings.
	Quote QuoteConfig `mapstructure:",squash"`
}

// DatabaseConfig holds the PostgreSQL connection details.
type DatabaseConfig struct {
	// URL is the connection string for the reference-table database.
	URL string `mapstructure:"DATABASE_URL" required:"true"`
}

// RedisConfig holds the optional read-through cache details.
type RedisConfig struct {
	// URL is the Redis connection URL. Empty disables caching.
	URL string `mapstructure:"REDIS_URL"`
	// ReferenceTTLSeconds is how long cached reference tables live.
	ReferenceTTLSeconds int `mapstructure:"REFERENCE_CACHE_TTL_SECONDS" default:"300"`
}

// MapsConfig holds the Google Maps credentials.
type MapsConfig struct {
	// APIKey authenticates Distance Matrix requests.
	APIKey string `mapstructure:"GOOGLE_MAPS_API_KEY" required:"true"`
}

// FreightcomConfig holds the external rate API settings. URL and APIKey
// both empty means the external path is disabled and every quote prices
// from the local tables.
type FreightcomConfig struct {
	// URL is the base URL of the rating API.
	URL string `mapstructure:"FREIGHTCOM_URL"`
	// APIKey authenticates rating requests.
	APIKey string `mapstructure:"FREIGHTCOM_API_KEY"`
	// ServicesCSV lists the service identifiers to request, comma-separated.
	ServicesCSV string `mapstructure:"FREIGHTCOM_SERVICES"`
	// PollAttempts is the hard ceiling on rate-completion polls.
	PollAttempts int `mapstructure:"FREIGHTCOM_POLL_ATTEMPTS" default:"10"`
	// PollIntervalMS is the fixed delay between polls, in milliseconds.
	PollIntervalMS int `mapstructure:"FREIGHTCOM_POLL_INTERVAL_MS" default:"500"`
	// MarkupPercent is applied to the external total before the discount.
	MarkupPercent float64 `mapstructure:"FREIGHTCOM_MARKUP_PERCENT"`
	// DiscountPercent is applied to the external total after the markup.
	DiscountPercent float64 `mapstructure:"FREIGHTCOM_DISCOUNT_PERCENT"`
	// Services is ServicesCSV split; populated by Load.
	Services []string `mapstructure:"-"`
}

// Enabled reports whether the external rate path is configured.
func (f FreightcomConfig) Enabled() bool {
	return f.URL != "" && f.APIKey != ""
}

// QuoteConfig holds quote-output settings.
type QuoteConfig struct {
	// Currency tags quotes priced from the local tables.
	Currency string `mapstructure:"QUOTE_CURRENCY" default:"USD"`
	// ChannelOriginsCSV maps sales channels to origin postal codes, as
	// comma-separated "channelID:postalCode" pairs.
	ChannelOriginsCSV string `mapstructure:"CHANNEL_ORIGIN_OVERRIDES"`
}

// ChannelOrigins parses ChannelOriginsCSV into a lookup map. Malformed
// pairs are skipped.
func (q QuoteConfig) ChannelOrigins() map[string]string {
	out := make(map[string]string)
	for _, pair := range strings.Split(q.ChannelOriginsCSV, ",") {
		parts := strings.SplitN(strings.TrimSpace(pair), ":", 2)
		if len(parts) == 2 && parts[0] != "" && parts[1] != "" {
			out[parts[0]] = parts[1]
		}
	}
	return out
}

// Load loads configuration from .env files and environment variables.
func Load(path string) (*AppConfig, error) {
	v := viper.New()

	v.AutomaticEnv()

	v.AddConfigPath(path)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config AppConfig

	if err := processTags(v, &config); err != nil {
		return nil, err
	}

	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := validateRequired(&config); err != nil {
		return nil, err
	}

	if config.Freightcom.ServicesCSV != "" {
		for _, svc := range strings.Split(config.Freightcom.ServicesCSV, ",") {
			if svc = strings.TrimSpace(svc); svc != "" {
				config.Freightcom.Services = append(config.Freightcom.Services, svc)
			}
		}
	}

	return &config, nil
}

// processTags iterates over the struct fields and sets default values in Viper.
func processTags(v *viper.Viper, config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := processTags(v, val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		key := field.Tag.Get("mapstructure")
		if key == "" || key == "-" {
			continue
		}
		v.BindEnv(key)

		if defaultValue := field.Tag.Get("default"); defaultValue != "" {
			v.SetDefault(key, defaultValue)
		}
	}
	return nil
}

// validateRequired checks if fields marked as required have non-zero values.
func validateRequired(config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := validateRequired(val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		required := field.Tag.Get("required")
		if required == "true" {
			value := val.Field(i)
			if isZero(value) {
				key := field.Tag.Get("mapstructure")
				return fmt.Errorf("missing required configuration: %s", key)
			}
		}
	}
	return nil
}

// isZero checks if a reflect.Value is the zero value for its type.
func isZero(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return v.String() == ""
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Slice, reflect.Map:
		return v.Len() == 0
	default:
		return v.IsZero()
	}
}
