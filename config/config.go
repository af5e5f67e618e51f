package config

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
)

// Config holds all environment variables for the LoanLink backend.
type Config struct {
	Port            string
	MongoURI        string
	MongoDB         string
	StripeSecretKey string
	PublicAppOrigin string // base URL for checkout success/cancel redirects
	AdminAPIToken   string // bearer token for the set-admin route; empty disables it
	Env             string

	// ServiceAccount is decoded from FIREBASE_SERVICE_ACCOUNT_KEY when present.
	// No route consults it; it is validated at startup so a bad key fails loudly.
	ServiceAccount *ServiceAccount
}

// ServiceAccount is the subset of a Firebase admin credential we validate.
type ServiceAccount struct {
	ProjectID   string `json:"project_id"`
	ClientEmail string `json:"client_email"`
	PrivateKey  string `json:"private_key"`
}

// LoadConfig loads environment variables into a Config and validates them.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:            getEnv("PORT", "4000"),
		MongoURI:        os.Getenv("MONGODB_URI"),
		MongoDB:         getEnv("MONGODB_DB", "loanlink"),
		StripeSecretKey: os.Getenv("STRIPE_SECRET_KEY"),
		PublicAppOrigin: getEnv("PUBLIC_APP_ORIGIN", "http://localhost:5173"),
		AdminAPIToken:   os.Getenv("ADMIN_API_TOKEN"),
		Env:             getEnv("ENV", "development"),
	}

	if cfg.MongoURI == "" {
		return nil, fmt.Errorf("MONGODB_URI is required")
	}
	if cfg.StripeSecretKey == "" {
		return nil, fmt.Errorf("STRIPE_SECRET_KEY is required")
	}

	if encoded := os.Getenv("FIREBASE_SERVICE_ACCOUNT_KEY"); encoded != "" {
		sa, err := decodeServiceAccount(encoded)
		if err != nil {
			return nil, fmt.Errorf("invalid FIREBASE_SERVICE_ACCOUNT_KEY: %w", err)
		}
		cfg.ServiceAccount = sa
	}

	return cfg, nil
}

func decodeServiceAccount(encoded string) (*ServiceAccount, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("base64 decode: %w", err)
	}
	var sa ServiceAccount
	if err := json.Unmarshal(raw, &sa); err != nil {
		return nil, fmt.Errorf("parse credential JSON: %w", err)
	}
	if sa.ClientEmail == "" || sa.PrivateKey == "" {
		return nil, fmt.Errorf("credential JSON missing client_email or private_key")
	}
	return &sa, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
