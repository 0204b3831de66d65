package awssns

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

// NewSNSClient создает клиент SNS; учетные данные берутся из стандартной цепочки AWS
func NewSNSClient(ctx context.Context, region string) (*sns.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return sns.NewFromConfig(cfg), nil
}
