package secrets

import (
	"context"
	"fmt"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"google.golang.org/api/option"
)

// GCPConfig configures Google Secret Manager access.
type GCPConfig struct {
	ProjectID       string
	CredentialsFile string
}

type gcpProvider struct {
	client  *secretmanager.Client
	project string
}

func newGCPProvider(ctx context.Context, cfg GCPConfig) (provider, error) {
	if cfg.ProjectID == "" {
		return nil, fmt.Errorf("secrets: gcp provider requires project id")
	}

	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	client, err := secretmanager.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("secrets: failed to create gcp secret manager client: %w", err)
	}

	return &gcpProvider{client: client, project: cfg.ProjectID}, nil
}

func (g *gcpProvider) Name() ProviderType {
	return ProviderGCP
}

func (g *gcpProvider) Close() error {
	return g.client.Close()
}

func (g *gcpProvider) Fetch(ctx context.Context, ref Reference) (Secret, error) {
	name := gcpVersionName(g.project, ref)

	resp, err := g.client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{Name: name})
	if err != nil {
		return Secret{}, fmt.Errorf("secrets: gcp fetch failed for %s: %w", ref.Path, err)
	}

	payload := map[string]string{}
	if resp.GetPayload() != nil {
		payload = decodePayload(resp.GetPayload().GetData())
	}

	return Secret{
		Data:     payload,
		Metadata: Metadata{Version: resp.GetName()},
	}, nil
}

// gcpVersionName expands a short reference to the full resource name.
// Fully qualified names ("projects/...") are used as is.
func gcpVersionName(project string, ref Reference) string {
	if strings.HasPrefix(ref.Path, "projects/") {
		return ref.Path
	}
	version := ref.Version
	if version == "" {
		version = "latest"
	}
	return fmt.Sprintf("projects/%s/secrets/%s/versions/%s", project, strings.Trim(ref.Path, "/"), version)
}
