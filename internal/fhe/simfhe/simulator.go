// Package simfhe is a process-local stand-in for the external encrypted
// computation service. It preserves the provider's observable semantics:
// handles are opaque, every operation mints a fresh handle, and decryption
// is gated on per-handle grants. Values are held in plaintext internally,
// so it is suitable for development and tests, not for confidentiality.
package simfhe

import (
	"crypto/rand"
	"encoding/base64"
	"sync"

	"github.com/okradley/veilarena/internal/fhe"
)

// Ciphertext widths in bits. Booleans are their own domain.
const (
	widthBool  = 1
	widthUint8 = 8
	widthU32   = 32
)

// engineIdentity is the reserved grantee for AllowEngine
const engineIdentity = "engine"

type value struct {
	v     uint64
	width int
	acl   map[string]struct{}
}

// Simulator implements fhe.Provider with in-process plaintext storage
type Simulator struct {
	mu     sync.Mutex
	values map[fhe.Handle]*value
}

// New creates an empty simulator
func New() *Simulator {
	return &Simulator{
		values: make(map[fhe.Handle]*value),
	}
}

// Ensure Simulator implements the interface
var _ fhe.Provider = (*Simulator)(nil)

// mint stores a value under a fresh handle. Fresh handles model the
// probabilistic re-encryption the real scheme performs per operation.
func (s *Simulator) mint(v uint64, width int) fhe.Handle {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	h := fhe.Handle("ct_" + base64.RawURLEncoding.EncodeToString(b))

	s.values[h] = &value{
		v:     v & mask(width),
		width: width,
		acl:   map[string]struct{}{engineIdentity: {}},
	}
	return h
}

func mask(width int) uint64 {
	return (uint64(1) << width) - 1
}

func (s *Simulator) get(h fhe.Handle) (*value, error) {
	val, ok := s.values[h]
	if !ok {
		return nil, fhe.ErrUnknownHandle
	}
	return val, nil
}

func (s *Simulator) getPair(a, b fhe.Handle) (*value, *value, error) {
	va, err := s.get(a)
	if err != nil {
		return nil, nil, err
	}
	vb, err := s.get(b)
	if err != nil {
		return nil, nil, err
	}
	if va.width != vb.width {
		return nil, nil, fhe.ErrDomainMismatch
	}
	return va, vb, nil
}

// EncryptUint32 encrypts a constant into the 32-bit domain
func (s *Simulator) EncryptUint32(v uint32) (fhe.Handle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mint(uint64(v), widthU32), nil
}

// EncryptUint8 encrypts a constant into the 8-bit domain
func (s *Simulator) EncryptUint8(v uint8) (fhe.Handle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mint(uint64(v), widthUint8), nil
}

// Add returns a+b, wrapping within the operand domain
func (s *Simulator) Add(a, b fhe.Handle) (fhe.Handle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	va, vb, err := s.getPair(a, b)
	if err != nil {
		return "", err
	}
	return s.mint(va.v+vb.v, va.width), nil
}

// Sub returns a-b, wrapping within the operand domain
func (s *Simulator) Sub(a, b fhe.Handle) (fhe.Handle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	va, vb, err := s.getPair(a, b)
	if err != nil {
		return "", err
	}
	return s.mint(va.v-vb.v, va.width), nil
}

// Lt returns the encrypted boolean a < b
func (s *Simulator) Lt(a, b fhe.Handle) (fhe.Handle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	va, vb, err := s.getPair(a, b)
	if err != nil {
		return "", err
	}
	return s.mint(boolBit(va.v < vb.v), widthBool), nil
}

// Ge returns the encrypted boolean a >= b
func (s *Simulator) Ge(a, b fhe.Handle) (fhe.Handle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	va, vb, err := s.getPair(a, b)
	if err != nil {
		return "", err
	}
	return s.mint(boolBit(va.v >= vb.v), widthBool), nil
}

// And combines two encrypted booleans
func (s *Simulator) And(a, b fhe.Handle) (fhe.Handle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	va, vb, err := s.getPair(a, b)
	if err != nil {
		return "", err
	}
	if va.width != widthBool {
		return "", fhe.ErrDomainMismatch
	}
	return s.mint(va.v&vb.v, widthBool), nil
}

// Select returns ifTrue where cond holds, else ifFalse
func (s *Simulator) Select(cond, ifTrue, ifFalse fhe.Handle) (fhe.Handle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	vc, err := s.get(cond)
	if err != nil {
		return "", err
	}
	if vc.width != widthBool {
		return "", fhe.ErrDomainMismatch
	}
	vt, vf, err := s.getPair(ifTrue, ifFalse)
	if err != nil {
		return "", err
	}
	if vc.v != 0 {
		return s.mint(vt.v, vt.width), nil
	}
	return s.mint(vf.v, vf.width), nil
}

// Allow grants identity decryption rights on the handle
func (s *Simulator) Allow(h fhe.Handle, identity string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	val, err := s.get(h)
	if err != nil {
		return err
	}
	val.acl[identity] = struct{}{}
	return nil
}

// AllowEngine grants the engine standing rights on the handle. The grant is
// idempotent; it must be reissued after every mutation because the handle
// itself is fresh each time.
func (s *Simulator) AllowEngine(h fhe.Handle) error {
	return s.Allow(h, engineIdentity)
}

// Decrypt decodes the handle for an identity holding a grant
func (s *Simulator) Decrypt(h fhe.Handle, identity string) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	val, err := s.get(h)
	if err != nil {
		return 0, err
	}
	if _, ok := val.acl[identity]; !ok {
		return 0, fhe.ErrNotAllowed
	}
	return val.v, nil
}

func boolBit(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}
