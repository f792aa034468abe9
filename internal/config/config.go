package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	MongoURI            string
	MongoDatabase       string
	PostgresURI         string // optional: accounts live in Postgres when set
	RedisURI            string // optional: auth rate limiting is in-memory when empty
	JWTSecret           string
	Port                string
	AllowedOrigins      []string // CORS: from ALLOWED_ORIGINS or FRONTEND_URL(s)
	CloudinaryName      string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
	S3Bucket            string
	AWSRegion           string
	UploadBackend       string // auto, cloudinary, s3, none
	StoreBackend        string // mongo, memory
	Environment         string // ENV: production, development, etc.
	LogLevel            string

	// UpdateClearsSupplies restores the legacy behaviour where an update
	// without emergencySupplies empties the list.
	UpdateClearsSupplies bool
}

var defaults = map[string]any{
	"ENV":                        "development",
	"PORT":                       "5000",
	"MONGODB_URI":                "",
	"MONGO_URI":                  "mongodb://localhost:27017/aed_locator",
	"MONGODB_DATABASE":           "",
	"POSTGRES_URI":               "",
	"REDIS_URI":                  "",
	"JWT_SECRET":                 "your-secret-key-change-in-production",
	"ALLOWED_ORIGINS":            "",
	"FRONTEND_URL":               "http://localhost:3000",
	"FRONTEND_URL_2":             "",
	"CLOUDINARY_CLOUD_NAME":      "",
	"CLOUDINARY_API_KEY":         "",
	"CLOUDINARY_API_SECRET":      "",
	"S3_BUCKET":                  "",
	"AWS_REGION":                 "us-east-1",
	"UPLOAD_BACKEND":             "auto",
	"STORE_BACKEND":              "mongo",
	"LOG_LEVEL":                  "info",
	"AED_UPDATE_CLEARS_SUPPLIES": false,
}

// Load reads configuration from the environment and, when configFile is not
// empty, from that file. Environment variables win over the file.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	env := strings.ToLower(strings.TrimSpace(v.GetString("ENV")))

	allowedOrigins := parseOrigins(v.GetString("ALLOWED_ORIGINS"))
	if len(allowedOrigins) == 0 {
		for _, u := range []string{v.GetString("FRONTEND_URL"), v.GetString("FRONTEND_URL_2")} {
			u = strings.TrimSpace(u)
			if u != "" && !containsOrigin(allowedOrigins, u) {
				allowedOrigins = append(allowedOrigins, u)
			}
		}
	}
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:3000"}
	}

	mongoURI := v.GetString("MONGODB_URI")
	if mongoURI == "" {
		mongoURI = v.GetString("MONGO_URI")
	}

	return &Config{
		MongoURI:             mongoURI,
		MongoDatabase:        v.GetString("MONGODB_DATABASE"),
		PostgresURI:          v.GetString("POSTGRES_URI"),
		RedisURI:             v.GetString("REDIS_URI"),
		JWTSecret:            v.GetString("JWT_SECRET"),
		Environment:          env,
		Port:                 v.GetString("PORT"),
		AllowedOrigins:       allowedOrigins,
		CloudinaryName:       v.GetString("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:     v.GetString("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret:  v.GetString("CLOUDINARY_API_SECRET"),
		S3Bucket:             v.GetString("S3_BUCKET"),
		AWSRegion:            v.GetString("AWS_REGION"),
		UploadBackend:        strings.ToLower(strings.TrimSpace(v.GetString("UPLOAD_BACKEND"))),
		StoreBackend:         strings.ToLower(strings.TrimSpace(v.GetString("STORE_BACKEND"))),
		LogLevel:             v.GetString("LOG_LEVEL"),
		UpdateClearsSupplies: v.GetBool("AED_UPDATE_CLEARS_SUPPLIES"),
	}
}

func parseOrigins(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func containsOrigin(list []string, o string) bool {
	o = strings.TrimSpace(strings.ToLower(o))
	for _, v := range list {
		if strings.TrimSpace(strings.ToLower(v)) == o {
			return true
		}
	}
	return false
}

// IsProduction returns true when ENV is set to "production".
func (c *Config) IsProduction() bool {
	return strings.ToLower(strings.TrimSpace(c.Environment)) == "production"
}

// HasCloudinary reports whether all three Cloudinary credentials are set.
func (c *Config) HasCloudinary() bool {
	return c.CloudinaryName != "" && c.CloudinaryAPIKey != "" && c.CloudinaryAPISecret != ""
}

// Validate rejects configurations the server must not start with.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET must be set")
	}
	if c.IsProduction() && c.JWTSecret == defaults["JWT_SECRET"] {
		return errors.New("JWT_SECRET must be changed in production")
	}
	switch c.StoreBackend {
	case "mongo", "memory":
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}
	switch c.UploadBackend {
	case "auto", "cloudinary", "s3", "none":
	default:
		return fmt.Errorf("unknown UPLOAD_BACKEND %q", c.UploadBackend)
	}
	if c.StoreBackend == "mongo" && c.MongoURI == "" {
		return errors.New("MONGODB_URI must be set")
	}
	return nil
}
