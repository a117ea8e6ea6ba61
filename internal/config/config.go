package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is built once at process start and handed to each component
// constructor. The defaults are development fallbacks only; a production
// deployment must set every secret explicitly.
type Config struct {
	Port string `env:"PORT" envDefault:"5000"`

	MongoURI     string        `env:"MONGODB_URI" envDefault:"mongodb://localhost:27017"`
	MongoDB      string        `env:"MONGODB_DATABASE" envDefault:"job_portal"`
	MongoTimeout time.Duration `env:"MONGODB_CONNECT_TIMEOUT" envDefault:"10s"`

	JWTSecret string        `env:"JWT_SECRET" envDefault:"your_jwt_secret_key"`
	JWTExpire time.Duration `env:"JWT_EXPIRE" envDefault:"168h"`

	GoogleClientID     string `env:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `env:"GOOGLE_CLIENT_SECRET"`
	GoogleCallbackURL  string `env:"GOOGLE_CALLBACK_URL" envDefault:"http://localhost:5000/api/auth/google/callback"`

	FrontendURL string `env:"FRONTEND_URL" envDefault:"http://localhost:5173"`

	// Optional integrations: left empty, the server runs without them.
	NatsURL string `env:"NATS_URL"`

	S3Endpoint     string `env:"S3_ENDPOINT"`
	S3Region       string `env:"AWS_REGION" envDefault:"us-east-1"`
	S3Bucket       string `env:"S3_BUCKET_NAME"`
	S3AccessKey    string `env:"AWS_ACCESS_KEY_ID"`
	S3SecretKey    string `env:"AWS_SECRET_ACCESS_KEY"`
	S3UsePathStyle bool   `env:"S3_USE_PATH_STYLE"`

	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
