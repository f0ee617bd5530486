package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "0123456789abcdef",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "8080" || cfg.TokenTTL != 24*time.Hour {
		t.Errorf("unexpected defaults: port=%s ttl=%s", cfg.Port, cfg.TokenTTL)
	}
	if cfg.Mongo.Transactions {
		t.Error("transactions must be off by default")
	}
	if cfg.Google.Enabled() {
		t.Error("google login must be disabled without credentials")
	}
	if len(cfg.Kafka.Brokers) != 0 {
		t.Errorf("expected no brokers, got %v", cfg.Kafka.Brokers)
	}
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":           "0123456789abcdef",
		"TOKEN_TTL":            "2h",
		"CORS_ORIGINS":         "http://a.test,http://b.test",
		"KAFKA_BROKERS":        "k1:9092,k2:9092",
		"MONGO_TRANSACTIONS":   "true",
		"GOOGLE_CLIENT_ID":     "id",
		"GOOGLE_CLIENT_SECRET": "secret",
		"GOOGLE_REDIRECT_URI":  "http://localhost:8080/api/auth/google/callback",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.TokenTTL != 2*time.Hour {
		t.Errorf("expected 2h, got %s", cfg.TokenTTL)
	}
	if len(cfg.HTTP.CORSOrigins) != 2 || len(cfg.Kafka.Brokers) != 2 {
		t.Errorf("lists not split: %v %v", cfg.HTTP.CORSOrigins, cfg.Kafka.Brokers)
	}
	if !cfg.Mongo.Transactions || !cfg.Google.Enabled() {
		t.Errorf("flags not applied: %+v %+v", cfg.Mongo, cfg.Google)
	}
}

func TestLoad_RequiresSecret(t *testing.T) {
	tests := map[string]map[string]string{
		"missing": {},
		"short":   {"JWT_SECRET": "short"},
	}
	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := load(context.Background(), envconfig.MapLookuper(env)); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}
