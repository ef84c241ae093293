package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	defaultPort         = "8080"
	defaultDatabaseURL  = "studysphere.db"
	defaultJWTSecret    = "change-me-jwt-secret"
	defaultJWTAccessTTL = "24h"
	defaultGatewayURL   = "https://pay.edupay.example/Merchant/Index.aspx"
	defaultGatewayTest  = "1"
)

type Config struct {
	AppEnv       string
	Port         string
	DatabaseURL  string
	JWTSecret    string
	JWTAccessTTL time.Duration

	CORSAllowedOrigins []string

	// Payment gateway credentials. Password1 signs outgoing checkout
	// requests, Password2 verifies result callbacks.
	GatewayMerchantLogin string
	GatewayPassword1     string
	GatewayPassword2     string
	GatewayBaseURL       string
	GatewayResultURL     string
	GatewaySuccessURL    string
	GatewayIsTest        string
}

func Load() (*Config, error) {
	cfg := &Config{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.Port = getEnv("PORT", defaultPort)
	cfg.DatabaseURL = getEnv("DATABASE_URL", defaultDatabaseURL)
	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))

	var err error
	cfg.JWTAccessTTL, err = parseDurationEnv("JWT_ACCESS_TTL", defaultJWTAccessTTL)
	if err != nil {
		return nil, err
	}

	if extra := os.Getenv("CORS_ALLOWED_ORIGINS"); extra != "" {
		for _, o := range strings.Split(extra, ",") {
			o = strings.TrimSpace(o)
			if o != "" {
				cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, o)
			}
		}
	}

	cfg.GatewayMerchantLogin = os.Getenv("GATEWAY_MERCHANT_LOGIN")
	cfg.GatewayPassword1 = os.Getenv("GATEWAY_PASSWORD1")
	cfg.GatewayPassword2 = os.Getenv("GATEWAY_PASSWORD2")
	cfg.GatewayBaseURL = getEnv("GATEWAY_BASE_URL", defaultGatewayURL)
	cfg.GatewayResultURL = os.Getenv("GATEWAY_RESULT_URL")
	cfg.GatewaySuccessURL = os.Getenv("GATEWAY_SUCCESS_URL")
	cfg.GatewayIsTest = getEnv("GATEWAY_IS_TEST", defaultGatewayTest)

	if cfg.AppEnv == "prod" && cfg.JWTSecret == defaultJWTSecret {
		return nil, fmt.Errorf("JWT_SECRET must be set in prod")
	}

	return cfg, nil
}

func getEnv(name, def string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return def
}

func parseDurationEnv(name, def string) (time.Duration, error) {
	raw := getEnv(name, def)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	return d, nil
}
