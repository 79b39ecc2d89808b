package secrets

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

// AWSConfig configures the AWS Secrets Manager provider.
type AWSConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string
}

type awsSecretsAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

type awsProvider struct {
	client awsSecretsAPI
}

func newAWSProvider(ctx context.Context, cfg AWSConfig) (provider, error) {
	if cfg.Region == "" {
		return nil, fmt.Errorf("secrets: aws provider requires region")
	}

	loadOpts := []func(*config.LoadOptions) error{
		config.WithRegion(cfg.Region),
	}

	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		staticProvider := credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")
		loadOpts = append(loadOpts, config.WithCredentialsProvider(aws.NewCredentialsCache(staticProvider)))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("secrets: failed to load aws config: %w", err)
	}

	client := secretsmanager.NewFromConfig(awsCfg, func(o *secretsmanager.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	return &awsProvider{client: client}, nil
}

func (a *awsProvider) Name() ProviderType {
	return ProviderAWS
}

func (a *awsProvider) Close() error {
	return nil
}

func (a *awsProvider) Fetch(ctx context.Context, ref Reference) (Secret, error) {
	input := &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(ref.Path),
	}
	if ref.Version != "" {
		input.VersionId = aws.String(ref.Version)
	}

	result, err := a.client.GetSecretValue(ctx, input)
	if err != nil {
		return Secret{}, fmt.Errorf("secrets: aws fetch failed for %s: %w", ref.Path, err)
	}

	var payload map[string]string
	switch {
	case result.SecretString != nil:
		payload = decodePayload([]byte(*result.SecretString))
	case result.SecretBinary != nil:
		payload = decodePayload(result.SecretBinary)
	default:
		payload = map[string]string{}
	}

	metadata := Metadata{}
	if result.VersionId != nil {
		metadata.Version = *result.VersionId
	}
	if result.CreatedDate != nil {
		metadata.CreatedAt = *result.CreatedDate
	}

	return Secret{Data: payload, Metadata: metadata}, nil
}
