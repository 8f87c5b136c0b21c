package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCSV(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want []string
	}{
		{name: "empty", in: "", want: nil},
		{name: "single", in: "kafka:9092", want: []string{"kafka:9092"}},
		{name: "spaces and blanks", in: " a:1 , ,b:2,", want: []string{"a:1", "b:2"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, CSV(tt.in))
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("SESSION_TTL_MINUTES", "")
	t.Setenv("ES_INDEX", "")
	t.Setenv("KAFKA_BROKERS", "")

	cfg := Load()

	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, DefaultDatabaseURL, cfg.DatabaseURL)
	assert.Equal(t, 12*time.Hour, cfg.SessionTTL)
	assert.Equal(t, "products", cfg.ESIndex)
	assert.Nil(t, cfg.KafkaBrokers)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("DATABASE_URL", "file::memory:")
	t.Setenv("SESSION_SECRET", "s3cret")
	t.Setenv("SESSION_TTL_MINUTES", "30")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")

	cfg := Load()

	assert.Equal(t, 9000, cfg.ServerPort)
	assert.Equal(t, "file::memory:", cfg.DatabaseURL)
	assert.Equal(t, []byte("s3cret"), cfg.SessionSecret)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
}

func TestEnvIntDefault_InvalidFallsBack(t *testing.T) {
	t.Setenv("SOME_INT", "abc")
	assert.Equal(t, 7, EnvIntDefault("SOME_INT", 7))
}

func TestCheckURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in string
		ok bool
	}{
		{"http://admin:8081", true},
		{"https://shop.example.com/base", true},
		{"admin:8081", false},
		{"ftp://files.example.com", false},
		{"http://", false},
	}
	for _, tt := range tests {
		err := CheckURL(tt.in)
		assert.Equal(t, tt.ok, err == nil, tt.in)
	}
}
