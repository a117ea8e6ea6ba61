package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ansh-patel-repos/job-listing-portal/internal/config"
)

// unsetEnv removes a variable for the duration of the test. t.Setenv
// registers the restore; env.Parse only falls back to envDefault when the
// variable is truly unset, so a plain empty value is not enough.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoad_Defaults(t *testing.T) {
	unsetEnv(t,
		"PORT",
		"MONGODB_URI",
		"MONGODB_DATABASE",
		"MONGODB_CONNECT_TIMEOUT",
		"JWT_SECRET",
		"JWT_EXPIRE",
		"GOOGLE_CLIENT_ID",
		"GOOGLE_CLIENT_SECRET",
		"GOOGLE_CALLBACK_URL",
		"FRONTEND_URL",
		"NATS_URL",
		"S3_BUCKET_NAME",
	)

	cfg, err := config.Load()
	require.NoError(t, err)

	require.Equal(t, "5000", cfg.Port)
	require.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	require.Equal(t, "job_portal", cfg.MongoDB)
	require.Equal(t, 168*time.Hour, cfg.JWTExpire)
	require.Equal(t, "http://localhost:5173", cfg.FrontendURL)
	require.Empty(t, cfg.NatsURL)
	require.Empty(t, cfg.S3Bucket)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("JWT_SECRET", "super-secret")
	t.Setenv("JWT_EXPIRE", "24h")
	t.Setenv("FRONTEND_URL", "https://jobs.example.com")

	cfg, err := config.Load()
	require.NoError(t, err)

	require.Equal(t, "9000", cfg.Port)
	require.Equal(t, "super-secret", cfg.JWTSecret)
	require.Equal(t, 24*time.Hour, cfg.JWTExpire)
	require.Equal(t, "https://jobs.example.com", cfg.FrontendURL)
}
