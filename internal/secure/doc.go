// Package secure keeps secret values encrypted in memory until they are
// handed to a child process.
//
// Values are sealed in memguard enclaves (XSalsa20Poly1305, key held in
// guarded memory) as soon as they are fetched, and are only decrypted
// into locked buffers while the environment of the child is assembled.
//
//	env := secure.NewEnvironment()
//	env.SealAll(list)
//	defer env.Destroy()
//
//	vars, err := env.Environ()
//
// Call memguard.Purge at process exit to wipe every remaining enclave key.
package secure
