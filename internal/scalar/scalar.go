// Package scalar implements the scalar ring used by the Ed25519 protocol
// and the scalar-multiplication engine: arithmetic modulo the prime
// subgroup order n = 2^252 + 27742317777372353535851937790883648493.
//
// Scalar operations are not performance-critical the way field and group
// operations are (signing and verification do a handful of them, not
// millions), so this package leans on math/big for correctness rather
// than a hand-rolled Barrett/Montgomery reduction tied to a particular
// order shape. See DESIGN.md for why this departs from a from-scratch
// limb implementation.
package scalar

import "math/big"

// N is the prime subgroup order.
var N, _ = new(big.Int).SetString("27742317777372353535851937790883648493", 10)

func init() {
	// n = 2^252 + 27742317777372353535851937790883648493
	two252 := new(big.Int).Lsh(big.NewInt(1), 252)
	N.Add(N, two252)
}

// Scalar is a non-negative integer in [0, N).
type Scalar struct {
	v big.Int
}

// Zero returns the additive identity.
func Zero() Scalar {
	return Scalar{}
}

// One returns the multiplicative identity.
func One() Scalar {
	var s Scalar
	s.v.SetInt64(1)
	return s
}

// Set copies a into the receiver.
func (d *Scalar) Set(a *Scalar) *Scalar {
	d.v.Set(&a.v)
	return d
}

// SetUint64 sets d to the (reduced) value of x.
func (d *Scalar) SetUint64(x uint64) *Scalar {
	d.v.SetUint64(x)
	d.v.Mod(&d.v, N)
	return d
}

// Add sets d = a + b (mod N).
func (d *Scalar) Add(a, b *Scalar) *Scalar {
	d.v.Add(&a.v, &b.v)
	d.v.Mod(&d.v, N)
	return d
}

// Sub sets d = a - b (mod N).
func (d *Scalar) Sub(a, b *Scalar) *Scalar {
	d.v.Sub(&a.v, &b.v)
	d.v.Mod(&d.v, N)
	return d
}

// Mul sets d = a * b (mod N).
func (d *Scalar) Mul(a, b *Scalar) *Scalar {
	d.v.Mul(&a.v, &b.v)
	d.v.Mod(&d.v, N)
	return d
}

// MulAdd sets d = a*b + c (mod N), the combination used by Ed25519
// signing (s = r + k*a).
func (d *Scalar) MulAdd(a, b, c *Scalar) *Scalar {
	var t big.Int
	t.Mul(&a.v, &b.v)
	t.Add(&t, &c.v)
	d.v.Mod(&t, N)
	return d
}

// IsZero reports whether d == 0.
func (d *Scalar) IsZero() bool {
	return d.v.Sign() == 0
}

// Eq reports whether d == a.
func (d *Scalar) Eq(a *Scalar) bool {
	return d.v.Cmp(&a.v) == 0
}

// Decode sets d from 32 little-endian bytes, without reduction. It
// reports false (leaving d unspecified) if the value is not already
// less than N; callers that must accept only canonical scalars (e.g.
// Ed25519 signature verification's "s" component) use this, not
// DecodeReduce.
func (d *Scalar) Decode(src []byte) bool {
	if len(src) != 32 {
		return false
	}
	var v big.Int
	setLittleEndian(&v, src)
	if v.Cmp(N) >= 0 {
		return false
	}
	d.v.Set(&v)
	return true
}

// DecodeReduce sets d from an arbitrary number of little-endian bytes
// (typically 32 or 64), reducing modulo N. This cannot fail; it is the
// constructor used for the 64-byte SHA-512 outputs that become nonces
// and challenges.
func (d *Scalar) DecodeReduce(src []byte) *Scalar {
	var v big.Int
	setLittleEndian(&v, src)
	d.v.Mod(&v, N)
	return d
}

// Bytes returns the 32-byte little-endian canonical encoding of d.
func (d *Scalar) Bytes() [32]byte {
	var out [32]byte
	b := d.v.Bytes() // big-endian, no leading zeros
	for i, bi := range b {
		out[len(b)-1-i] = bi
	}
	return out
}

func setLittleEndian(v *big.Int, src []byte) {
	be := make([]byte, len(src))
	for i, b := range src {
		be[len(src)-1-i] = b
	}
	v.SetBytes(be)
}
