package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	ImageStoreLocal      = "local"
	ImageStoreCloudinary = "cloudinary"
)

type Config struct {
	Port            string `env:"PORT"`
	MongoDBURI      string `env:"MONGODB_URI" validate:"required"`
	MongoDBPassword string `env:"MONGODB_PASSWORD"`
	MongoDBDatabase string `env:"MONGODB_DATABASE" validate:"required"`
	Environment     string `env:"ENVIRONMENT" validate:"oneof=development production test"`
	LogLevel        string `env:"LOG_LEVEL" validate:"oneof=debug info warn error"`
	CORSOrigins     []string

	UploadDir  string `env:"UPLOAD_DIR" validate:"required"`
	ImageStore string `env:"IMAGE_STORE" validate:"oneof=local cloudinary"`

	CloudinaryCloudName string `env:"CLOUDINARY_CLOUD_NAME" validate:"required_if=ImageStore cloudinary"`
	CloudinaryAPIKey    string `env:"CLOUDINARY_API_KEY" validate:"required_if=ImageStore cloudinary"`
	CloudinaryAPISecret string `env:"CLOUDINARY_API_SECRET" validate:"required_if=ImageStore cloudinary"`
	CloudinaryFolder    string `env:"CLOUDINARY_FOLDER"`

	TwilioAccountSID string `env:"TWILIO_ACCOUNT_SID"`
	TwilioAuthToken  string `env:"TWILIO_AUTH_TOKEN"`
	TwilioFromNumber string `env:"TWILIO_FROM_NUMBER"`
	SMSCountryCode   string `env:"SMS_COUNTRY_CODE" validate:"required,startswith=+"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// report env var names instead of Go field names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if name := fld.Tag.Get("env"); name != "" {
			return name
		}
		return fld.Name
	})
	return v
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:            getEnvWithDefault("PORT", "3000"),
		MongoDBURI:      os.Getenv("MONGODB_URI"),
		MongoDBPassword: os.Getenv("MONGODB_PASSWORD"),
		MongoDBDatabase: getEnvWithDefault("MONGODB_DATABASE", "skillshare"),
		Environment:     getEnvWithDefault("ENVIRONMENT", "development"),
		LogLevel:        strings.ToLower(getEnvWithDefault("LOG_LEVEL", "info")),
		CORSOrigins:     splitList(getEnvWithDefault("CORS_ORIGINS", "*")),

		UploadDir:  getEnvWithDefault("UPLOAD_DIR", "public/uploads"),
		ImageStore: strings.ToLower(getEnvWithDefault("IMAGE_STORE", ImageStoreLocal)),

		CloudinaryCloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:    os.Getenv("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret: os.Getenv("CLOUDINARY_API_SECRET"),
		CloudinaryFolder:    getEnvWithDefault("CLOUDINARY_FOLDER", "skill-posts"),

		TwilioAccountSID: os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:  os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioFromNumber: os.Getenv("TWILIO_FROM_NUMBER"),
		SMSCountryCode:   getEnvWithDefault("SMS_COUNTRY_CODE", "+91"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, describe(err)
	}

	return cfg, nil
}

// describe turns validator output into one message per offending variable.
func describe(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required", "required_if":
			msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid (%s=%s)", fe.Field(), fe.Tag(), fe.Param()))
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) SMSConfigured() bool {
	return c.TwilioAccountSID != "" && c.TwilioAuthToken != "" && c.TwilioFromNumber != ""
}

func (c *Config) RedisConfigured() bool {
	return c.RedisAddr != ""
}

func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
