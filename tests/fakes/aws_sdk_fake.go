package fakes

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	ssmtypes "github.com/aws/aws-sdk-go-v2/service/ssm/types"
)

// DefaultPageSize mirrors the GetParametersByPath default of 10 results.
const DefaultPageSize = 10

// FakeSSMClient is an in-memory implementation of the SSM operations used by
// the Parameter Store backed secrets store.
type FakeSSMClient struct {
	mu sync.Mutex

	// Parameters maps parameter names to their data
	Parameters map[string]*ParameterData
	// Errors maps parameter names (or paths for GetParametersByPath) to errors to return
	Errors map[string]error
	// PageSize limits the results per GetParametersByPath page
	PageSize int

	// Calls records every operation name in call order
	Calls []string
	// PutInputs records every PutParameter input
	PutInputs []*ssm.PutParameterInput
	// PathInputs records every GetParametersByPath input
	PathInputs []*ssm.GetParametersByPathInput

	order []string
}

// ParameterData holds the data for a mock SSM parameter
type ParameterData struct {
	Name             *string
	Type             ssmtypes.ParameterType
	Value            *string
	Version          int64
	LastModifiedDate *time.Time
	Tier             ssmtypes.ParameterTier
	KeyID            *string
}

// NewFakeSSMClient creates a new mock SSM client
func NewFakeSSMClient() *FakeSSMClient {
	return &FakeSSMClient{
		Parameters: make(map[string]*ParameterData),
		Errors:     make(map[string]error),
		PageSize:   DefaultPageSize,
	}
}

// AddSecureStringParameter adds a SecureString parameter to the mock client
func (f *FakeSSMClient) AddSecureStringParameter(name, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.store(name, value, ssmtypes.ParameterTierStandard, nil)
}

// AddError configures the mock to return an error for a specific parameter or path
func (f *FakeSSMClient) AddError(name string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Errors[name] = err
}

func (f *FakeSSMClient) store(name, value string, tier ssmtypes.ParameterTier, keyID *string) {
	now := time.Now()
	version := int64(1)
	if existing, ok := f.Parameters[name]; ok {
		version = existing.Version + 1
	} else {
		f.order = append(f.order, name)
	}
	f.Parameters[name] = &ParameterData{
		Name:             aws.String(name),
		Type:             ssmtypes.ParameterTypeSecureString,
		Value:            aws.String(value),
		Version:          version,
		LastModifiedDate: &now,
		Tier:             tier,
		KeyID:            keyID,
	}
}

// PutParameter mocks the PutParameter operation
func (f *FakeSSMClient) PutParameter(ctx context.Context, params *ssm.PutParameterInput, optFns ...func(*ssm.Options)) (*ssm.PutParameterOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	name := aws.ToString(params.Name)
	f.Calls = append(f.Calls, "PutParameter")
	f.PutInputs = append(f.PutInputs, params)

	if err, exists := f.Errors[name]; exists {
		return nil, err
	}
	if _, exists := f.Parameters[name]; exists && !aws.ToBool(params.Overwrite) {
		return nil, &ssmtypes.ParameterAlreadyExists{Message: aws.String("The parameter already exists.")}
	}

	f.store(name, aws.ToString(params.Value), params.Tier, params.KeyId)
	return &ssm.PutParameterOutput{Version: f.Parameters[name].Version, Tier: params.Tier}, nil
}

// GetParameter mocks the GetParameter operation
func (f *FakeSSMClient) GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	name := aws.ToString(params.Name)
	f.Calls = append(f.Calls, "GetParameter")

	// Check for configured errors
	if err, exists := f.Errors[name]; exists {
		return nil, err
	}

	// Check if parameter exists
	data, exists := f.Parameters[name]
	if !exists {
		return nil, &ssmtypes.ParameterNotFound{
			Message: aws.String(fmt.Sprintf("Parameter %s not found", name)),
		}
	}

	return &ssm.GetParameterOutput{
		Parameter: &ssmtypes.Parameter{
			Name:             data.Name,
			Type:             data.Type,
			Value:            f.value(data, aws.ToBool(params.WithDecryption)),
			Version:          data.Version,
			LastModifiedDate: data.LastModifiedDate,
		},
	}, nil
}

// DeleteParameter mocks the DeleteParameter operation
func (f *FakeSSMClient) DeleteParameter(ctx context.Context, params *ssm.DeleteParameterInput, optFns ...func(*ssm.Options)) (*ssm.DeleteParameterOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	name := aws.ToString(params.Name)
	f.Calls = append(f.Calls, "DeleteParameter")

	if err, exists := f.Errors[name]; exists {
		return nil, err
	}
	if _, exists := f.Parameters[name]; !exists {
		return nil, &ssmtypes.ParameterNotFound{}
	}

	delete(f.Parameters, name)
	for i, n := range f.order {
		if n == name {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return &ssm.DeleteParameterOutput{}, nil
}

// GetParametersByPath mocks the GetParametersByPath operation, including
// pagination through NextToken.
func (f *FakeSSMClient) GetParametersByPath(ctx context.Context, params *ssm.GetParametersByPathInput, optFns ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	path := aws.ToString(params.Path)
	f.Calls = append(f.Calls, "GetParametersByPath")
	f.PathInputs = append(f.PathInputs, params)

	if err, exists := f.Errors[path]; exists {
		return nil, err
	}

	prefix := strings.TrimSuffix(path, "/") + "/"
	var matched []*ParameterData
	for _, name := range f.order {
		rest, ok := strings.CutPrefix(name, prefix)
		if !ok || rest == "" {
			continue
		}
		if !aws.ToBool(params.Recursive) && strings.Contains(rest, "/") {
			continue
		}
		matched = append(matched, f.Parameters[name])
	}

	start := 0
	if params.NextToken != nil {
		n, err := strconv.Atoi(aws.ToString(params.NextToken))
		if err != nil {
			return nil, &ssmtypes.InvalidNextToken{Message: aws.String("bad token")}
		}
		start = n
	}

	size := f.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}
	end := start + size
	if end > len(matched) {
		end = len(matched)
	}

	out := &ssm.GetParametersByPathOutput{}
	for _, data := range matched[start:end] {
		out.Parameters = append(out.Parameters, ssmtypes.Parameter{
			Name:    data.Name,
			Type:    data.Type,
			Value:   f.value(data, aws.ToBool(params.WithDecryption)),
			Version: data.Version,
		})
	}
	if end < len(matched) {
		out.NextToken = aws.String(strconv.Itoa(end))
	}
	return out, nil
}

// value returns the stored value, or a placeholder ciphertext when the caller
// did not ask for decryption.
func (f *FakeSSMClient) value(data *ParameterData, decrypt bool) *string {
	if decrypt || data.Type != ssmtypes.ParameterTypeSecureString {
		return data.Value
	}
	return aws.String("AQICAHh-encrypted")
}

// CallCount returns how often op was invoked.
func (f *FakeSSMClient) CallCount(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.Calls {
		if c == op {
			n++
		}
	}
	return n
}
