// Package ed25519 implements the RFC 8032 Ed25519 digital signature
// scheme on top of the edwards25519 group and internal/scalar ring.
package ed25519

import (
	"crypto"
	"crypto/sha512"
	"errors"
	"io"

	"github.com/aral/noble-ed25519/edwards25519"
	"github.com/aral/noble-ed25519/internal/scalar"
)

// SeedSize is the length in bytes of an Ed25519 seed.
const SeedSize = 32

// PublicKeySize is the length in bytes of an Ed25519 public key.
const PublicKeySize = 32

// SignatureSize is the length in bytes of an Ed25519 signature.
const SignatureSize = 64

var (
	// ErrInvalidSeedSize is returned by GetPublicKey and Sign when the
	// seed is not exactly SeedSize bytes.
	ErrInvalidSeedSize = errors.New("ed25519: seed must be 32 bytes")
	// ErrInvalidPublicKey is returned when a public key does not decode
	// to a point on the curve.
	ErrInvalidPublicKey = errors.New("ed25519: invalid public key")
)

// expandSeed computes (a, hPre, A) from a 32-byte seed: h = SHA-512(seed),
// (hLo, hPre) = (h[0:32], h[32:64]), a = clamp(hLo) interpreted as a
// little-endian scalar, A = encode(a*B).
func expandSeed(seed []byte) (a scalar.Scalar, hPre [32]byte, pub [32]byte, err error) {
	if len(seed) != SeedSize {
		err = ErrInvalidSeedSize
		return
	}
	h := sha512.Sum512(seed)
	var hLo [32]byte
	copy(hLo[:], h[:32])
	copy(hPre[:], h[32:])

	clamp(&hLo)
	a.DecodeReduce(hLo[:])

	A := edwards25519.MultiplyBase(&a)
	pub = A.Encode()
	return
}

// clamp applies the Ed25519 clamping rule in place: clear the low 3 bits
// of byte 0, clear the high bit of byte 31, set bit 254 (the second
// highest bit of byte 31).
func clamp(b *[32]byte) {
	b[0] &= 0xF8
	b[31] &= 0x7F
	b[31] |= 0x40
}

// GetPublicKey derives the 32-byte Ed25519 public key from a 32-byte
// seed.
func GetPublicKey(seed []byte) ([]byte, error) {
	_, _, pub, err := expandSeed(seed)
	if err != nil {
		return nil, err
	}
	return pub[:], nil
}

// Sign computes the Ed25519 signature of message m under the private
// key derived from the 32-byte seed.
func Sign(message, seed []byte) ([]byte, error) {
	a, hPre, pub, err := expandSeed(seed)
	if err != nil {
		return nil, err
	}

	rh := sha512.New()
	rh.Write(hPre[:])
	rh.Write(message)
	var r scalar.Scalar
	r.DecodeReduce(rh.Sum(nil))

	R := edwards25519.MultiplyBase(&r)
	Rb := R.Encode()

	kh := sha512.New()
	kh.Write(Rb[:])
	kh.Write(pub[:])
	kh.Write(message)
	var k scalar.Scalar
	k.DecodeReduce(kh.Sum(nil))

	var s scalar.Scalar
	s.MulAdd(&k, &a, &r)
	sb := s.Bytes()

	sig := make([]byte, SignatureSize)
	copy(sig[:32], Rb[:])
	copy(sig[32:], sb[:])
	return sig, nil
}

// Verify checks a 64-byte Ed25519 signature over message m against a
// 32-byte public key, using the cofactorless check mandated by
// spec.md §4.E: s*B = R + k*A. Decoding failures and forged signatures
// are indistinguishable to the caller -- both simply yield false, so
// that verify never provides an oracle for malformed-input detection.
func Verify(sig, message, pub []byte) bool {
	if len(sig) != SignatureSize || len(pub) != PublicKeySize {
		return false
	}

	var s scalar.Scalar
	if !s.Decode(sig[32:]) {
		return false
	}

	A, err := edwards25519.Decode(pub)
	if err != nil {
		return false
	}
	extA := A.ToExtended()

	R, err := edwards25519.Decode(sig[:32])
	if err != nil {
		return false
	}
	extR := R.ToExtended()

	kh := sha512.New()
	kh.Write(sig[:32])
	kh.Write(pub)
	kh.Write(message)
	var k scalar.Scalar
	k.DecodeReduce(kh.Sum(nil))

	sB := edwards25519.MultiplyBase(&s)
	kA := edwards25519.MultiplyUnsafe(&k, &extA)
	var rhs edwards25519.ExtendedPoint
	rhs.Add(&extR, &kA)

	return sB.Equal(&rhs)
}

// VerifyCofactored checks the RFC 8032-permitted cofactored variant
// 8*s*B = 8*R + 8*k*A, offered alongside Verify as the Open Question
// resolution recorded in DESIGN.md; Verify (cofactorless) remains the
// mandated default.
func VerifyCofactored(sig, message, pub []byte) bool {
	if len(sig) != SignatureSize || len(pub) != PublicKeySize {
		return false
	}

	var s scalar.Scalar
	if !s.Decode(sig[32:]) {
		return false
	}

	A, err := edwards25519.Decode(pub)
	if err != nil {
		return false
	}
	extA := A.ToExtended()

	R, err := edwards25519.Decode(sig[:32])
	if err != nil {
		return false
	}
	extR := R.ToExtended()

	kh := sha512.New()
	kh.Write(sig[:32])
	kh.Write(pub)
	kh.Write(message)
	var k scalar.Scalar
	k.DecodeReduce(kh.Sum(nil))

	sB := edwards25519.MultiplyBase(&s)
	kA := edwards25519.MultiplyUnsafe(&k, &extA)
	var rhs edwards25519.ExtendedPoint
	rhs.Add(&extR, &kA)

	sB.Double(&sB)
	sB.Double(&sB)
	sB.Double(&sB)
	rhs.Double(&rhs)
	rhs.Double(&rhs)
	rhs.Double(&rhs)

	return sB.Equal(&rhs)
}

// PrivateKey is a 32-byte Ed25519 seed together with its derived public
// key, implementing crypto.Signer.
type PrivateKey struct {
	seed [32]byte
	pub  [32]byte
}

// NewPrivateKeyFromSeed derives a PrivateKey from a 32-byte seed.
func NewPrivateKeyFromSeed(seed []byte) (PrivateKey, error) {
	pub, err := GetPublicKey(seed)
	if err != nil {
		return PrivateKey{}, err
	}
	var pk PrivateKey
	copy(pk.seed[:], seed)
	copy(pk.pub[:], pub)
	return pk, nil
}

// GenerateKey creates a new PrivateKey from randomness read from rand.
func GenerateKey(rand io.Reader) (PrivateKey, error) {
	var seed [32]byte
	if _, err := io.ReadFull(rand, seed[:]); err != nil {
		return PrivateKey{}, err
	}
	return NewPrivateKeyFromSeed(seed[:])
}

// Public returns the PublicKey corresponding to pk.
func (pk PrivateKey) Public() crypto.PublicKey {
	return PublicKey{b: pk.pub}
}

// Sign implements crypto.Signer. opts and rand are accepted for
// interface compliance and ignored, matching the standard library's own
// crypto/ed25519.PrivateKey.Sign: Ed25519 signs the message directly, not
// a pre-hashed digest, and is deterministic given (seed, message).
func (pk PrivateKey) Sign(rand io.Reader, message []byte, opts crypto.SignerOpts) ([]byte, error) {
	return Sign(message, pk.seed[:])
}

// PublicKey is a 32-byte Ed25519 public key.
type PublicKey struct {
	b [32]byte
}

// NewPublicKey decodes a 32-byte public key, validating it lies on the
// curve.
func NewPublicKey(b []byte) (PublicKey, error) {
	if len(b) != PublicKeySize {
		return PublicKey{}, ErrInvalidPublicKey
	}
	if _, err := edwards25519.Decode(b); err != nil {
		return PublicKey{}, ErrInvalidPublicKey
	}
	var pk PublicKey
	copy(pk.b[:], b)
	return pk, nil
}

// Bytes returns the 32-byte encoding of pk.
func (pk PublicKey) Bytes() []byte {
	out := make([]byte, PublicKeySize)
	copy(out, pk.b[:])
	return out
}

// Equal implements crypto.PublicKey's conventional Equal method, as the
// teacher's Do255ePublicKey does.
func (pk PublicKey) Equal(x crypto.PublicKey) bool {
	other, ok := x.(PublicKey)
	if !ok {
		return false
	}
	return pk.b == other.b
}

// Verify checks sig over message against pk using the cofactorless
// default.
func (pk PublicKey) Verify(sig, message []byte) bool {
	return Verify(sig, message, pk.b[:])
}
