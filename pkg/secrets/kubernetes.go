package secrets

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// KubernetesConfig configures the provider reading secrets mounted as files.
type KubernetesConfig struct {
	BasePath string
}

type kubernetesProvider struct {
	basePath string
}

func newKubernetesProvider(cfg KubernetesConfig) (provider, error) {
	base := cfg.BasePath
	if base == "" {
		base = "/var/run/secrets"
	}

	info, err := os.Stat(base)
	if err != nil {
		return nil, fmt.Errorf("secrets: kubernetes secrets base %s not accessible: %w", base, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("secrets: kubernetes secrets base %s is not a directory", base)
	}

	return &kubernetesProvider{basePath: base}, nil
}

func (k *kubernetesProvider) Name() ProviderType {
	return ProviderKubernetes
}

func (k *kubernetesProvider) Close() error {
	return nil
}

// Fetch reads a mounted secret. A directory yields one entry per file; the
// hidden "..data" links the kubelet creates are skipped.
func (k *kubernetesProvider) Fetch(_ context.Context, ref Reference) (Secret, error) {
	target := filepath.Join(k.basePath, filepath.Clean("/"+ref.Path))
	info, err := os.Stat(target)
	if err != nil {
		return Secret{}, fmt.Errorf("secrets: kubernetes path %s not found: %w", target, err)
	}

	if !info.IsDir() {
		content, err := os.ReadFile(target)
		if err != nil {
			return Secret{}, err
		}
		return Secret{Data: map[string]string{filepath.Base(target): strings.TrimSpace(string(content))}}, nil
	}

	entries, err := os.ReadDir(target)
	if err != nil {
		return Secret{}, err
	}

	data := make(map[string]string, len(entries))
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".") {
			continue
		}
		full := filepath.Join(target, e.Name())
		st, err := os.Stat(full)
		if err != nil || st.IsDir() {
			continue
		}
		content, err := os.ReadFile(full)
		if err != nil {
			return Secret{}, err
		}
		data[e.Name()] = strings.TrimSpace(string(content))
	}

	return Secret{Data: data}, nil
}
