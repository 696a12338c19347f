package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("CI", "false")
	t.Setenv("ENV", "test")
	t.Setenv("SECRETS_DIR", t.TempDir())
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_USER", "menuqr")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("DB_NAME", "menuqr_test")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("REDIS_URL", "redis://localhost:6379")
	t.Setenv("PROVIDER_TIMEOUT", "30s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test,http://b.test")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, Test, cfg.Environment)
	assert.Equal(t, "db", cfg.DBHost)
	assert.Equal(t, "5433", cfg.DBPort)
	assert.Equal(t, "pw", cfg.DBPassword)
	assert.Equal(t, "test-secret", cfg.JWTSecret)
	assert.Equal(t, "redis://localhost:6379", cfg.RedisURL)
	assert.Equal(t, 30*time.Second, cfg.ProviderTimeout)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
	assert.Contains(t, cfg.DSN(), "dbname=menuqr_test")
}

func TestLoadConfigWithDefaults(t *testing.T) {
	t.Setenv("CI", "false")
	t.Setenv("ENV", "test")
	t.Setenv("SECRETS_DIR", t.TempDir())
	for _, k := range []string{"DB_HOST", "DB_PASSWORD", "JWT_SECRET", "PROVIDER_TIMEOUT", "OPENAI_MODEL", "SERVER_PORT", "DATABASE_URL"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAIModel)
	assert.Equal(t, 45*time.Second, cfg.ProviderTimeout)
	assert.Equal(t, devJWTSecret, cfg.JWTSecret)
}

func TestLoadConfigReadsSecrets(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "jwt_secret"), []byte("from-file\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "openai_api_key"), []byte("sk-file"), 0o600))

	t.Setenv("CI", "false")
	t.Setenv("ENV", "test")
	t.Setenv("SECRETS_DIR", dir)
	t.Setenv("JWT_SECRET", "")
	os.Unsetenv("JWT_SECRET")
	t.Setenv("OPENAI_API_KEY", "")
	os.Unsetenv("OPENAI_API_KEY")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.JWTSecret)
	assert.Equal(t, "sk-file", cfg.OpenAIAPIKey)
}

func TestValidateConfig(t *testing.T) {
	base := func() *Config {
		return &Config{
			ServerPort:      "8080",
			ProviderTimeout: time.Second,
			TokenTTL:        time.Hour,
			PublicBaseURL:   "https://menu.example.com",
			JWTSecret:       "secret",
			DBPassword:      "pw",
		}
	}

	t.Run("valid production", func(t *testing.T) {
		cfg := base()
		cfg.Environment = Production
		assert.NoError(t, ValidateConfig(cfg))
	})

	t.Run("production requires secrets", func(t *testing.T) {
		cfg := base()
		cfg.Environment = Production
		cfg.JWTSecret = ""
		cfg.DBPassword = ""
		err := ValidateConfig(cfg)
		require.Error(t, err)
		var verrs ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Len(t, verrs, 2)
	})

	t.Run("development tolerates missing secrets", func(t *testing.T) {
		cfg := base()
		cfg.Environment = Development
		cfg.DBPassword = ""
		assert.NoError(t, ValidateConfig(cfg))
	})

	t.Run("timeout must be positive", func(t *testing.T) {
		cfg := base()
		cfg.ProviderTimeout = 0
		err := ValidateConfig(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "PROVIDER_TIMEOUT")
	})

	t.Run("public base url must be absolute", func(t *testing.T) {
		cfg := base()
		cfg.PublicBaseURL = "menu.example.com"
		assert.Error(t, ValidateConfig(cfg))
	})
}

func TestCurrentEnvironment(t *testing.T) {
	cases := []struct {
		ci, env string
		want    Environment
	}{
		{"false", "production", Production},
		{"false", " Test ", Test},
		{"false", "", Development},
		{"false", "staging", Development},
		{"true", "production", CI},
	}
	for _, tc := range cases {
		t.Setenv("CI", tc.ci)
		t.Setenv("ENV", tc.env)
		assert.Equal(t, tc.want, CurrentEnvironment(), "CI=%q ENV=%q", tc.ci, tc.env)
	}
	assert.True(t, CI.Strict())
	assert.True(t, Production.Strict())
	assert.False(t, Development.Strict())
}
