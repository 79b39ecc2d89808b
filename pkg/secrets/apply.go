package secrets

import (
	"context"
	"fmt"
	"time"

	"github.com/neuroeducatimo/landing/pkg/config"
	"github.com/neuroeducatimo/landing/pkg/logger"
	"go.uber.org/zap"
)

// ConfigFromApp translates the application settings into a manager Config
func ConfigFromApp(cfg config.SecretsConfig) Config {
	return Config{
		Provider:     ProviderType(cfg.Provider),
		CacheTTL:     time.Duration(cfg.CacheTTL) * time.Second,
		Vault: VaultConfig{
			Address:   cfg.VaultAddress,
			Token:     cfg.VaultToken,
			MountPath: cfg.VaultMount,
		},
		AWS:        AWSConfig{Region: cfg.AWSRegion},
		GCP:        GCPConfig{ProjectID: cfg.GCPProjectID},
		Kubernetes: KubernetesConfig{BasePath: cfg.KubernetesPath},
	}
}

// binding copies entries of one secret onto config fields
type binding struct {
	name   string
	kind   SecretType
	ref    string
	fields map[string]*string
}

// ApplySecrets overrides credentials in cfg with values from m. Only
// references that are set are fetched, and only keys present in a secret
// replace the environment value.
func ApplySecrets(ctx context.Context, cfg *config.Config, m Manager) error {
	bindings := []binding{
		{
			name: "database", kind: SecretDatabase, ref: cfg.Secrets.DatabaseRef,
			fields: map[string]*string{
				"url":      &cfg.Database.URL,
				"user":     &cfg.Database.User,
				"password": &cfg.Database.Password,
			},
		},
		{
			name: "smtp", kind: SecretSMTP, ref: cfg.Secrets.SMTPRef,
			fields: map[string]*string{
				"host":     &cfg.SMTP.Host,
				"username": &cfg.SMTP.Username,
				"password": &cfg.SMTP.Password,
			},
		},
		{
			name: "postmark", kind: SecretPostmark, ref: cfg.Secrets.PostmarkRef,
			fields: map[string]*string{
				"server_token":  &cfg.Postmark.ServerToken,
				"account_token": &cfg.Postmark.AccountToken,
			},
		},
		{
			name: "session", kind: SecretSession, ref: cfg.Secrets.SessionRef,
			fields: map[string]*string{
				"secret": &cfg.Session.Secret,
			},
		},
		{
			name: "admin", kind: SecretAdmin, ref: cfg.Secrets.AdminRef,
			fields: map[string]*string{
				"username":      &cfg.Admin.Username,
				"password":      &cfg.Admin.Password,
				"password_hash": &cfg.Admin.PasswordHash,
				"totp_secret":   &cfg.Admin.TOTPSecret,
			},
		},
	}

	for _, b := range bindings {
		if b.ref == "" {
			continue
		}

		ref, err := ParseReference(b.name, b.kind, b.ref)
		if err != nil {
			return fmt.Errorf("secrets: %s reference: %w", b.name, err)
		}

		secret, err := m.GetSecret(ctx, ref)
		if err != nil {
			return fmt.Errorf("secrets: load %s: %w", b.name, err)
		}

		applied := 0
		for key, dst := range b.fields {
			if v, ok := secret.Value(key); ok {
				*dst = v
				applied++
			}
		}

		logger.Info("Applied secret",
			zap.String("secret_name", b.name),
			zap.Int("fields", applied),
		)
	}

	return nil
}
