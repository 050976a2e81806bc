package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"

	"weatherapp/pkg/resource"
)

// LoadConfig builds the AWS configuration from app.cloud.*. Without explicit keys the
// default credential chain applies (environment, shared files, IAM roles).
func LoadConfig(ctx context.Context) (aws.Config, error) {
	options := []func(*config.LoadOptions) error{
		config.WithRegion(resource.GetString("app.cloud.aws-region")),
	}

	accessKey := resource.GetString("app.cloud.aws-access-key-id")
	secretKey := resource.GetString("app.cloud.aws-secret-access-key")
	if accessKey != "" && secretKey != "" {
		options = append(options, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		))
	}

	cfg, err := config.LoadDefaultConfig(ctx, options...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config: %w", err)
	}

	// LocalStack
	if endpoint := resource.GetString("app.cloud.aws-endpoint"); endpoint != "" {
		cfg.BaseEndpoint = aws.String(endpoint)
	}

	return cfg, nil
}
