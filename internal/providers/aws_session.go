package providers

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials/stscreds"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	dserrors "github.com/systmms/eg2/internal/errors"
)

// AWSOptions selects the AWS session used by the store.
// Empty fields fall back to the SDK defaults (environment, shared config).
type AWSOptions struct {
	Region          string
	Profile         string
	AssumeRole      string
	RoleSessionName string
}

// STSClientFactory builds the STS client used for role assumption.
// It is a variable so tests can avoid network calls.
var STSClientFactory = func(cfg aws.Config) stscreds.AssumeRoleAPIClient {
	return sts.NewFromConfig(cfg)
}

// LoadAWSConfig loads the default AWS configuration, applying region, profile
// and an optional role to assume.
func LoadAWSConfig(ctx context.Context, opts AWSOptions) (aws.Config, error) {
	// Build config options
	var configOpts []func(*awsconfig.LoadOptions) error

	if opts.Region != "" {
		configOpts = append(configOpts, awsconfig.WithRegion(opts.Region))
	}

	if opts.Profile != "" {
		configOpts = append(configOpts, awsconfig.WithSharedConfigProfile(opts.Profile))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, configOpts...)
	if err != nil {
		return aws.Config{}, dserrors.UserError{
			Message:    "Failed to load AWS configuration",
			Details:    err.Error(),
			Suggestion: "Check AWS_PROFILE, ~/.aws/config and --profile",
			Err:        err,
		}
	}

	if opts.AssumeRole != "" {
		sessionName := opts.RoleSessionName
		if sessionName == "" {
			sessionName = "eg2"
		}
		provider := stscreds.NewAssumeRoleProvider(STSClientFactory(cfg), opts.AssumeRole, func(o *stscreds.AssumeRoleOptions) {
			o.RoleSessionName = sessionName
		})
		cfg.Credentials = aws.NewCredentialsCache(provider)
	}

	if cfg.Region == "" {
		return aws.Config{}, dserrors.ConfigError{
			Field:      "region",
			Message:    "no AWS region configured",
			Suggestion: fmt.Sprintf("Pass --region, set AWS_REGION or add a region to the %q profile", profileName(opts.Profile)),
		}
	}

	return cfg, nil
}

func profileName(p string) string {
	if p == "" {
		return "default"
	}
	return p
}
