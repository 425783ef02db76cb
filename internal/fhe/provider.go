// Package fhe defines the boundary to the encrypted-arithmetic provider.
// The engine only ever sees opaque ciphertext handles and calls operations
// by semantic name; the actual scheme lives behind the Provider interface.
package fhe

import "errors"

// Handle is an opaque reference to an encrypted value. A handle's identity
// changes on every operation even when the decoded value does not.
type Handle string

// IsZero reports whether the handle is the absent value
func (h Handle) IsZero() bool {
	return h == ""
}

// Errors surfaced by providers
var (
	ErrUnknownHandle  = errors.New("unknown ciphertext handle")
	ErrNotAllowed     = errors.New("identity has no decryption grant for handle")
	ErrDomainMismatch = errors.New("ciphertext domains do not match")
)

// Provider supplies homomorphic operations over ciphertext handles plus the
// access-control grants that gate off-band decryption. Comparison results
// are encrypted booleans usable only by And and Select.
type Provider interface {
	// EncryptUint32 encrypts a constant into the 32-bit unsigned domain
	EncryptUint32(v uint32) (Handle, error)
	// EncryptUint8 encrypts a constant into the 8-bit unsigned domain
	EncryptUint8(v uint8) (Handle, error)

	// Add returns a+b without decrypting either operand
	Add(a, b Handle) (Handle, error)
	// Sub returns a-b (wrapping within the domain; callers clamp via Select)
	Sub(a, b Handle) (Handle, error)
	// Lt returns the encrypted boolean a < b
	Lt(a, b Handle) (Handle, error)
	// Ge returns the encrypted boolean a >= b
	Ge(a, b Handle) (Handle, error)
	// And combines two encrypted booleans
	And(a, b Handle) (Handle, error)
	// Select returns ifTrue where cond holds, else ifFalse, without
	// revealing cond
	Select(cond, ifTrue, ifFalse Handle) (Handle, error)

	// Allow grants identity permission to decrypt the handle off-band
	Allow(h Handle, identity string) error
	// AllowEngine grants the engine standing permission to keep operating
	// on the handle in future calls
	AllowEngine(h Handle) error
	// Decrypt decodes the handle for an identity holding a grant
	Decrypt(h Handle, identity string) (uint64, error)
}
