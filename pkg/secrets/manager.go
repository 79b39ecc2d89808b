package secrets

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"sync"
	"time"

	"github.com/neuroeducatimo/landing/pkg/logger"
	"go.uber.org/zap"
)

// ProviderType names a secret backend.
type ProviderType string

const (
	ProviderNone       ProviderType = ""
	ProviderVault      ProviderType = "vault"
	ProviderAWS        ProviderType = "aws"
	ProviderGCP        ProviderType = "gcp"
	ProviderKubernetes ProviderType = "kubernetes"
)

const defaultCacheTTL = 5 * time.Minute

var (
	// ErrProviderNotConfigured is returned by NewManager when no backend is selected.
	ErrProviderNotConfigured = errors.New("secrets: provider not configured")
	// ErrKeyNotFound is returned when a secret has no value for the requested key.
	ErrKeyNotFound = errors.New("secrets: key not found")
)

// Metadata describes the fetched version of a secret.
type Metadata struct {
	Version     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	RetrievedAt time.Time
}

// Secret is a resolved secret payload.
type Secret struct {
	Data     map[string]string
	Metadata Metadata
}

// Value returns a non-empty entry from the payload
func (s Secret) Value(key string) (string, bool) {
	v, ok := s.Data[key]
	return v, ok && v != ""
}

func (s Secret) clone() Secret {
	out := Secret{Data: make(map[string]string, len(s.Data)), Metadata: s.Metadata}
	maps.Copy(out.Data, s.Data)
	return out
}

// Config selects and configures the backend.
type Config struct {
	Provider   ProviderType
	CacheTTL   time.Duration
	Vault      VaultConfig
	AWS        AWSConfig
	GCP        GCPConfig
	Kubernetes KubernetesConfig
}

// Manager resolves secrets and caches them for CacheTTL.
type Manager interface {
	GetSecret(ctx context.Context, ref Reference) (Secret, error)
	GetString(ctx context.Context, ref Reference) (string, error)
	Close() error
}

type provider interface {
	Name() ProviderType
	Fetch(ctx context.Context, ref Reference) (Secret, error)
	Close() error
}

type cacheEntry struct {
	secret    Secret
	expiresAt time.Time
}

type manager struct {
	provider provider
	ttl      time.Duration
	now      func() time.Time

	mu    sync.Mutex
	cache map[string]cacheEntry
}

// NewManager builds a Manager for cfg.Provider.
func NewManager(ctx context.Context, cfg Config) (Manager, error) {
	var (
		prov provider
		err  error
	)
	switch cfg.Provider {
	case ProviderNone:
		return nil, ErrProviderNotConfigured
	case ProviderVault:
		prov, err = newVaultProvider(cfg.Vault)
	case ProviderAWS:
		prov, err = newAWSProvider(ctx, cfg.AWS)
	case ProviderGCP:
		prov, err = newGCPProvider(ctx, cfg.GCP)
	case ProviderKubernetes:
		prov, err = newKubernetesProvider(cfg.Kubernetes)
	default:
		return nil, fmt.Errorf("secrets: unsupported provider %q", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}
	return newManager(prov, cfg), nil
}

func newManager(prov provider, cfg Config) *manager {
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &manager{
		provider: prov,
		ttl:      ttl,
		now:      time.Now,
		cache:    make(map[string]cacheEntry),
	}
}

func (m *manager) Close() error {
	return m.provider.Close()
}

// GetSecret returns the full payload for ref
func (m *manager) GetSecret(ctx context.Context, ref Reference) (Secret, error) {
	if ref.Path == "" {
		return Secret{}, ErrInvalidReference
	}
	if ref.Provider != ProviderNone && ref.Provider != m.provider.Name() {
		return Secret{}, fmt.Errorf("secrets: reference provider %q does not match manager provider %q", ref.Provider, m.provider.Name())
	}

	key := ref.CacheKey()
	m.mu.Lock()
	entry, ok := m.cache[key]
	m.mu.Unlock()
	if ok && m.now().Before(entry.expiresAt) {
		return entry.secret.clone(), nil
	}

	log := logger.WithContext(ctx).With(
		zap.String("secret_name", ref.Name),
		zap.String("secret_type", string(ref.Type)),
		zap.String("provider", string(m.provider.Name())),
	)

	secret, err := m.provider.Fetch(ctx, ref)
	if err != nil {
		log.Warn("Secret fetch failed", zap.Error(err))
		return Secret{}, err
	}
	secret.Metadata.RetrievedAt = m.now().UTC()

	m.mu.Lock()
	m.cache[key] = cacheEntry{secret: secret.clone(), expiresAt: m.now().Add(m.ttl)}
	m.mu.Unlock()

	log.Debug("Secret fetched", zap.String("version", secret.Metadata.Version))
	return secret, nil
}

// GetString returns the value stored under ref.Key
func (m *manager) GetString(ctx context.Context, ref Reference) (string, error) {
	if ref.Key == "" {
		return "", fmt.Errorf("%w: reference %q names no key", ErrKeyNotFound, ref.Name)
	}
	secret, err := m.GetSecret(ctx, ref)
	if err != nil {
		return "", err
	}
	if v, ok := secret.Value(ref.Key); ok {
		return v, nil
	}
	return "", fmt.Errorf("%w: %s", ErrKeyNotFound, ref.Key)
}
