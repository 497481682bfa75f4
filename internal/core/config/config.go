package config

import (
	"errors"
	"fmt"
	"reflect"

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
	// RedisURL is the connection URL of the Redis instance backing the status cache.
	RedisURL string `mapstructure:"REDIS_URL" required:"true"`

	// Tracking holds the booking and poll-loop configuration.
	Tracking TrackingConfig `mapstructure:",squash"`

	// Email holds the notification delivery configuration.
	Email EmailConfig `mapstructure:",squash"`

	// Proxy holds the optional outbound proxy for the scraping browser.
	Proxy ProxyConfig `mapstructure:",squash"`
}

// TrackingConfig holds the booking identifier and scraping parameters.
type TrackingConfig struct {
	// BookingNumber is the shipment booking being tracked.
	BookingNumber string `mapstructure:"BOOKING_NUMBER" required:"true"`
	// URL is the tracking page address.
	URL string `mapstructure:"TRACKING_URL" default:"https://www.matson.com/auto-tracking.html"`
	// CheckIntervalSeconds is the delay between poll cycles.
	CheckIntervalSeconds int `mapstructure:"CHECK_INTERVAL_SECONDS" default:"3600"`
}

// EmailConfig holds the SMTP identity and endpoint for notifications.
type EmailConfig struct {
	// Sender is the From address and SMTP login user.
	Sender string `mapstructure:"EMAIL_SENDER" required:"true"`
	// Recipient is the To address for every notification.
	Recipient string `mapstructure:"EMAIL_RECIPIENT" required:"true"`
	// Password is the SMTP credential for Sender.
	Password string `mapstructure:"EMAIL_PASSWORD" required:"true"`
	// SMTPHost is the mail server hostname.
	SMTPHost string `mapstructure:"SMTP_HOST" default:"smtp.gmail.com"`
	// SMTPPort is the mail server TLS port.
	SMTPPort int `mapstructure:"SMTP_PORT" default:"465"`
	// VehicleImageURL is the photo embedded in notification emails.
	VehicleImageURL string `mapstructure:"VEHICLE_IMAGE_URL" default:"https://hnl.church/uploads/CleanShot%202025-05-15%20at%2013.59.24.png"`
}

// ProxyConfig holds the optional upstream proxy for Chromium.
type ProxyConfig struct {
	// Enabled toggles proxy usage for the scraping browser.
	Enabled bool `mapstructure:"PROXY_ENABLED" default:"false"`
	// Hostname is the proxy server hostname.
	Hostname string `mapstructure:"PROXY_HOSTNAME"`
	// Port is the proxy server port.
	Port int `mapstructure:"PROXY_PORT"`
	// Username is the proxy credential user, if the upstream requires auth.
	Username string `mapstructure:"PROXY_USERNAME"`
	// Password is the proxy credential password.
	Password string `mapstructure:"PROXY_PASSWORD"`
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
		defaultValue := field.Tag.Get("default")

		if key != "" {
			v.BindEnv(key)
		}

		if key != "" && defaultValue != "" {
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
