package providers

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/aws/smithy-go"
	"github.com/systmms/eg2/internal/logging"
	"github.com/systmms/eg2/pkg/secrets"
)

// SSMClientAPI defines the interface for AWS SSM Parameter Store operations
// This allows for mocking in tests
type SSMClientAPI interface {
	PutParameter(ctx context.Context, params *ssm.PutParameterInput, optFns ...func(*ssm.Options)) (*ssm.PutParameterOutput, error)
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
	DeleteParameter(ctx context.Context, params *ssm.DeleteParameterInput, optFns ...func(*ssm.Options)) (*ssm.DeleteParameterOutput, error)
	GetParametersByPath(ctx context.Context, params *ssm.GetParametersByPathInput, optFns ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error)
}

// ErrNoValue is reported when Parameter Store returns a parameter without a value.
var ErrNoValue = errors.New("parameter has no value")

// SSMStore implements secrets.Store on top of AWS Systems Manager Parameter Store.
// Values are written as SecureString parameters and always read decrypted.
type SSMStore struct {
	client SSMClientAPI
	logger *logging.Logger
	config SSMConfig
}

// SSMConfig holds AWS SSM-specific configuration
type SSMConfig struct {
	AWS AWSOptions

	// KMSKeyID selects the key used for SecureString parameters.
	// Empty means the account default key (alias/aws/ssm).
	KMSKeyID string
}

// SSMStoreOption is a functional option for configuring the SSM store
type SSMStoreOption func(*SSMStore)

// WithSSMClient sets a custom SSM client (for testing)
func WithSSMClient(client SSMClientAPI) SSMStoreOption {
	return func(s *SSMStore) {
		s.client = client
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *logging.Logger) SSMStoreOption {
	return func(s *SSMStore) {
		s.logger = logger
	}
}

// NewSSMStore creates a new SSM Parameter Store backed store
func NewSSMStore(ctx context.Context, config SSMConfig, opts ...SSMStoreOption) (*SSMStore, error) {
	s := &SSMStore{
		logger: logging.New(false, false),
		config: config,
	}

	// Apply options (allows mock client injection)
	for _, opt := range opts {
		opt(s)
	}

	// If no client was provided via options, create real client
	if s.client == nil {
		cfg, err := LoadAWSConfig(ctx, config.AWS)
		if err != nil {
			return nil, err
		}
		s.client = ssm.NewFromConfig(cfg)
	}

	return s, nil
}

// Put writes a SecureString parameter, overwriting any existing value.
func (s *SSMStore) Put(ctx context.Context, key, value string, tier secrets.Tier) error {
	s.logger.Debug("PutParameter %s (%s tier): %s", key, tier, logging.Secret(value))

	input := &ssm.PutParameterInput{
		Name:      aws.String(key),
		Value:     aws.String(value),
		Type:      types.ParameterTypeSecureString,
		Overwrite: aws.Bool(true),
		Tier:      ssmTier(tier),
	}
	if s.config.KMSKeyID != "" {
		input.KeyId = aws.String(s.config.KMSKeyID)
	}

	if _, err := s.client.PutParameter(ctx, input); err != nil {
		return storeError("PutParameter", key, err)
	}
	return nil
}

// Get fetches and decrypts a parameter.
func (s *SSMStore) Get(ctx context.Context, key string) (string, error) {
	s.logger.Debug("GetParameter %s", key)

	result, err := s.client.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(key),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return "", storeError("GetParameter", key, err)
	}
	if result.Parameter == nil || result.Parameter.Value == nil {
		return "", &secrets.StoreError{
			Op:   "GetParameter",
			Key:  key,
			Kind: secrets.KindInvalid,
			Err:  ErrNoValue,
		}
	}
	return *result.Parameter.Value, nil
}

// Delete removes a parameter.
func (s *SSMStore) Delete(ctx context.Context, key string) error {
	s.logger.Debug("DeleteParameter %s", key)

	if _, err := s.client.DeleteParameter(ctx, &ssm.DeleteParameterInput{Name: aws.String(key)}); err != nil {
		return storeError("DeleteParameter", key, err)
	}
	return nil
}

// List returns the decrypted parameters below path, following every page.
func (s *SSMStore) List(ctx context.Context, path string, recursive bool) ([]secrets.Entry, error) {
	s.logger.Debug("GetParametersByPath %s (recursive=%t)", path, recursive)

	paginator := ssm.NewGetParametersByPathPaginator(s.client, &ssm.GetParametersByPathInput{
		Path:           aws.String(path),
		Recursive:      aws.Bool(recursive),
		WithDecryption: aws.Bool(true),
	})

	var entries []secrets.Entry
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, storeError("GetParametersByPath", path, err)
		}
		for _, p := range page.Parameters {
			entries = append(entries, secrets.Entry{
				Key:   aws.ToString(p.Name),
				Value: aws.ToString(p.Value),
			})
		}
	}

	s.logger.Debug("GetParametersByPath %s returned %d parameters", path, len(entries))
	return entries, nil
}

func ssmTier(tier secrets.Tier) types.ParameterTier {
	if tier == secrets.TierAdvanced {
		return types.ParameterTierAdvanced
	}
	return types.ParameterTierStandard
}

// storeError maps SDK errors onto the secrets error taxonomy.
// ParameterNotFound becomes secrets.ErrNotFound, everything else a
// *secrets.StoreError wrapping the original error.
func storeError(op, key string, err error) error {
	var notFound *types.ParameterNotFound
	if errors.As(err, &notFound) {
		return fmt.Errorf("%s %s: %w", op, key, secrets.ErrNotFound)
	}
	return &secrets.StoreError{
		Op:   op,
		Key:  key,
		Kind: classify(err),
		Err:  err,
	}
}

func classify(err error) secrets.Kind {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "AccessDeniedException", "AccessDenied", "UnrecognizedClientException",
			"ExpiredTokenException", "InvalidSignatureException", "InvalidClientTokenId":
			return secrets.KindAuthorization
		case "ThrottlingException", "TooManyUpdates":
			return secrets.KindThrottled
		case "ValidationException", "ParameterPatternMismatchException", "InvalidKeyId",
			"HierarchyLevelLimitExceededException", "ParameterLimitExceeded",
			"ParameterMaxVersionLimitExceeded", "UnsupportedParameterType", "InvalidFilterKey":
			return secrets.KindInvalid
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return secrets.KindTransport
	}
	return secrets.KindUnknown
}
