package secrets

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	vault "github.com/hashicorp/vault/api"
)

// VaultConfig stores the configuration required for HashiCorp Vault.
type VaultConfig struct {
	Address   string
	Token     string
	Namespace string
	MountPath string
}

type vaultProvider struct {
	client       *vault.Client
	defaultMount string
}

func newVaultProvider(cfg VaultConfig) (provider, error) {
	if cfg.Address == "" || cfg.Token == "" {
		return nil, fmt.Errorf("secrets: vault provider requires address and token")
	}
	if cfg.MountPath == "" {
		cfg.MountPath = "secret"
	}

	clientCfg := vault.DefaultConfig()
	clientCfg.Address = cfg.Address

	client, err := vault.NewClient(clientCfg)
	if err != nil {
		return nil, fmt.Errorf("secrets: failed to create vault client: %w", err)
	}

	client.SetToken(cfg.Token)
	if cfg.Namespace != "" {
		client.SetNamespace(cfg.Namespace)
	}

	return &vaultProvider{
		client:       client,
		defaultMount: strings.Trim(cfg.MountPath, "/"),
	}, nil
}

func (v *vaultProvider) Name() ProviderType {
	return ProviderVault
}

func (v *vaultProvider) Close() error {
	return nil
}

// Fetch reads a KV v2 secret, optionally at a pinned version.
func (v *vaultProvider) Fetch(ctx context.Context, ref Reference) (Secret, error) {
	mount, path := vaultPath(v.defaultMount, ref)
	if mount == "" || path == "" {
		return Secret{}, ErrInvalidReference
	}

	kv := v.client.KVv2(mount)

	var (
		secret *vault.KVSecret
		err    error
	)
	if ref.Version != "" {
		version, convErr := strconv.Atoi(ref.Version)
		if convErr != nil {
			return Secret{}, fmt.Errorf("secrets: invalid vault version %q: %w", ref.Version, convErr)
		}
		secret, err = kv.GetVersion(ctx, path, version)
	} else {
		secret, err = kv.Get(ctx, path)
	}

	if err != nil {
		var respErr *vault.ResponseError
		if errors.As(err, &respErr) && respErr.StatusCode == http.StatusNotFound {
			return Secret{}, fmt.Errorf("secrets: vault path %s not found", ref.Path)
		}
		return Secret{}, err
	}

	payload := make(map[string]string, len(secret.Data))
	for k, raw := range secret.Data {
		if raw == nil {
			continue
		}
		payload[k] = fmt.Sprint(raw)
	}

	metadata := Metadata{}
	if secret.VersionMetadata != nil {
		metadata.Version = strconv.Itoa(secret.VersionMetadata.Version)
		metadata.CreatedAt = secret.VersionMetadata.CreatedTime
		metadata.UpdatedAt = secret.VersionMetadata.CreatedTime
	}

	return Secret{Data: payload, Metadata: metadata}, nil
}

// vaultPath splits a reference into KV mount and secret path. API style
// prefixes ("data/", "metadata/") are stripped.
func vaultPath(defaultMount string, ref Reference) (string, string) {
	mount := defaultMount
	if ref.Mount != "" {
		mount = strings.Trim(ref.Mount, "/")
	}

	clean := strings.Trim(ref.Path, "/")
	clean = strings.TrimPrefix(clean, "data/")
	clean = strings.TrimPrefix(clean, "metadata/")
	return mount, strings.Trim(clean, "/")
}
