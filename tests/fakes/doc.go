// Package fakes provides test doubles for the AWS SDK interfaces used by eg2.
//
// Fakes are manually implemented (not generated) to provide precise control
// over test behavior, including injected errors and pagination.
//
// Usage:
//
//	fake := fakes.NewFakeSSMClient()
//	fake.AddSecureStringParameter("/eg2/app/dev/API_KEY", "secret123")
//	store, _ := providers.NewSSMStore(ctx, providers.SSMConfig{}, providers.WithSSMClient(fake))
//	// Test store methods...
package fakes
