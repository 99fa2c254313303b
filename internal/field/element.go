package field

// Element is a value in the field of integers modulo
// p = 2^255 - 19, Curve25519's base field. It is represented as four
// 64-bit limbs in little-endian order, not necessarily normalized to
// the 0..p-1 range between operations; Encode and the comparison
// functions normalize internally.
type Element [4]uint64

const mq uint64 = 19

// Zero is the additive identity.
var Zero = Element{0, 0, 0, 0}

// One is the multiplicative identity.
var One = Element{1, 0, 0, 0}

// D is the twisted-Edwards curve parameter d = -121665/121666 mod p.
var D = Element{0x75EB4DCA135978A3, 0x00700A4D4141D8AB, 0x8CC740797779E898, 0x52036CEE2B6FFE73}

// SqrtM1 is a square root of -1 mod p.
var SqrtM1 = Element{0xC4EE1B274A0EA0B0, 0x2F431806AD2FE478, 0x2B4D00993DFBD7A7, 0x2B8324804FC1DF0B}

// BaseX, BaseY are the coordinates of the Ed25519 base point B.
var BaseX = Element{0xC9562D608F25D51A, 0x692CC7609525A7B2, 0xC0A4E231FDD6DC5C, 0x216936D3CD6E53FE}
var BaseY = Element{0x6666666666666658, 0x6666666666666666, 0x6666666666666666, 0x6666666666666666}

// Ristretto255 constants, hard-coded as little-endian 64-bit limbs. They
// are not recomputed from p and d at run time;
// TestBaseConstantsDecodeCanonically checks only that each one is a
// canonical field element.
var SqrtADMinusOne = Element{0x8168095FB684D1D2, 0x506271F3E487AB42, 0xF0C30336CE0A2E02, 0x4896CE40D47CB753}
var InvSqrtAMinusD = Element{0x99C8FDAA805D40EA, 0x9D2F16175A4172BE, 0x16C27B91FE01D840, 0x786C8905CFAFFCA2}
var OneMinusDSQ = Element{0xE27C09C1945FC176, 0x2C81A138CD5E350F, 0x9994ABDDBE70DFE4, 0x029072A8B2B3E0D7}
var DMinusOneSQ = Element{0x31AD5AAA44ED4D20, 0xD29E4A2CB01E1999, 0x4CDCD32F529B4EEB, 0x5968B37AF66C2241}

// Set copies a into d.
func (d *Element) Set(a *Element) *Element {
	copy(d[:], a[:])
	return d
}

// Add sets d = a + b.
func (d *Element) Add(a, b *Element) *Element {
	gf_add((*[4]uint64)(d), (*[4]uint64)(a), (*[4]uint64)(b), mq)
	return d
}

// Sub sets d = a - b.
func (d *Element) Sub(a, b *Element) *Element {
	gf_sub((*[4]uint64)(d), (*[4]uint64)(a), (*[4]uint64)(b), mq)
	return d
}

// Neg sets d = -a.
func (d *Element) Neg(a *Element) *Element {
	gf_neg((*[4]uint64)(d), (*[4]uint64)(a), mq)
	return d
}

// Select sets d = a if ctl == 1, or d = b if ctl == 0. ctl MUST be 0 or 1.
func (d *Element) Select(a, b *Element, ctl uint64) *Element {
	gf_select((*[4]uint64)(d), (*[4]uint64)(a), (*[4]uint64)(b), ctl)
	return d
}

// CondNegate sets d = -a if ctl == 1, or d = a if ctl == 0. ctl MUST be 0 or 1.
func (d *Element) CondNegate(a *Element, ctl uint64) *Element {
	gf_condneg((*[4]uint64)(d), (*[4]uint64)(a), mq, ctl)
	return d
}

// CondSelect is an alias of Select kept for callers that read more
// naturally with "conditional select" than "select".
func (d *Element) CondSelect(a, b *Element, ctl uint64) *Element {
	return d.Select(a, b, ctl)
}

// Mul sets d = a * b.
func (d *Element) Mul(a, b *Element) *Element {
	gf_mul((*[4]uint64)(d), (*[4]uint64)(a), (*[4]uint64)(b), mq)
	return d
}

// Sqr sets d = a^2.
func (d *Element) Sqr(a *Element) *Element {
	gf_sqr((*[4]uint64)(d), (*[4]uint64)(a), mq)
	return d
}

// SqrX sets d = a^(2^n) for n >= 0. Constant-time with regard to a and
// d, but not with regard to n.
func (d *Element) SqrX(a *Element, n uint) *Element {
	gf_sqr_x((*[4]uint64)(d), (*[4]uint64)(a), n, mq)
	return d
}

// Half sets d = a/2.
func (d *Element) Half(a *Element) *Element {
	gf_half((*[4]uint64)(d), (*[4]uint64)(a), mq)
	return d
}

// Lsh sets d = a*2^n, for 1 <= n <= 15.
func (d *Element) Lsh(a *Element, n uint) *Element {
	gf_lsh((*[4]uint64)(d), (*[4]uint64)(a), n, mq)
	return d
}

// IsZero returns 1 if d == 0 (mod p), 0 otherwise.
func (d *Element) IsZero() uint64 {
	return gf_iszero((*[4]uint64)(d), mq)
}

// Eq returns 1 if d == a (mod p), 0 otherwise.
func (d *Element) Eq(a *Element) uint64 {
	return gf_eq((*[4]uint64)(d), (*[4]uint64)(a), mq)
}

// Encode appends the 32-byte little-endian canonical encoding of d to
// dst and returns the extended slice.
func (d *Element) Encode(dst []byte) []byte {
	return gf_encode(dst, (*[4]uint64)(d), mq)
}

// Bytes returns the 32-byte little-endian canonical encoding of d.
func (d *Element) Bytes() [32]byte {
	var out [32]byte
	d.Encode(out[:0])
	return out
}

// Decode sets d from 32 bytes. Returns 1 on success (input was a
// canonical encoding of a value in 0..p-1), 0 otherwise (d is cleared
// to zero).
func (d *Element) Decode(src []byte) uint64 {
	return gf_decode((*[4]uint64)(d), src, mq)
}

// DecodeReduce sets d from an arbitrary number of bytes, interpreted as
// an unsigned little-endian integer reduced modulo p. Cannot fail.
func (d *Element) DecodeReduce(src []byte) *Element {
	gf_decodeReduce((*[4]uint64)(d), src, mq)
	return d
}

// Normalize reduces d to the canonical 0..p-1 representative.
func (d *Element) Normalize() *Element {
	gf_norm((*[4]uint64)(d), (*[4]uint64)(d), mq)
	return d
}

// IsNegative reports whether the canonical little-endian encoding of d
// has its least significant bit set. This is the Ristretto/RFC 8032
// sign convention for field elements (spec.md §9's Open Question
// resolution: "the low bit of canonical little-endian encoding").
func (d *Element) IsNegative() uint64 {
	var t [4]uint64
	gf_norm(&t, (*[4]uint64)(d), mq)
	return t[0] & 1
}

// Abs sets d to |a|, i.e. a if a's sign bit is 0, or -a otherwise.
func (d *Element) Abs(a *Element) *Element {
	var t Element
	t.Set(a)
	return d.CondNegate(&t, t.IsNegative())
}

// expInv is the exponent p-2, used for Fermat inversion.
var expInv = be32(
	0x7f, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xeb,
)

// expSqrt is the exponent (p-5)/8, used by SqrtRatioM1.
var expSqrt = be32(
	0x0f, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xfd,
)

func be32(b ...byte) [32]byte {
	var out [32]byte
	copy(out[:], b)
	return out
}

// Pow sets d = a^exp, where exp is a big-endian exponent of arbitrary
// length, by plain left-to-right square-and-multiply. Not constant-time
// in the usual side-channel sense (the multiply is skipped on zero
// bits), which matches spec.md's Non-goals: side-channel masking beyond
// algorithmic structure is explicitly out of scope.
func (d *Element) Pow(a *Element, exp []byte) *Element {
	var acc Element
	acc.Set(&One)
	for _, byt := range exp {
		for bit := 7; bit >= 0; bit-- {
			acc.Sqr(&acc)
			if (byt>>uint(bit))&1 == 1 {
				acc.Mul(&acc, a)
			}
		}
	}
	d.Set(&acc)
	return d
}

// Invert sets d = 1/a (mod p), via Fermat's little theorem: a^(p-2).
// By convention (spec.md §4.A), the inverse of zero is zero.
func (d *Element) Invert(a *Element) *Element {
	return d.Pow(a, expInv[:])
}

// SqrtRatioM1 computes r such that r^2 * v == u (mod p) if u/v is a
// nonzero square, following the Ristretto255 / RFC 8032 recipe built on
// SqrtM1. Returns (true, r) if u/v is a square; (false, r) otherwise,
// in which case r is the candidate square root of SqrtM1 * u/v (still
// useful to callers, per spec.md §4.A). The returned root is always
// the one whose canonical encoding has an even (zero) low bit; callers
// that need a particular sign re-sign it themselves.
func (d *Element) SqrtRatioM1(u, v *Element) (bool, *Element) {
	var v3, v7, r, check, uNeg, uNegTimesSqrtM1 Element

	v3.Sqr(v)
	v3.Mul(&v3, v)
	v7.Sqr(&v3)
	v7.Mul(&v7, v)

	var uv7 Element
	uv7.Mul(u, &v7)
	r.Pow(&uv7, expSqrt[:])
	r.Mul(&r, u)
	r.Mul(&r, &v3)

	check.Sqr(&r)
	check.Mul(&check, v)

	correct := check.Eq(u)
	uNeg.Neg(u)
	flipped := check.Eq(&uNeg)
	uNegTimesSqrtM1.Mul(&uNeg, &SqrtM1)
	flippedI := check.Eq(&uNegTimesSqrtM1)

	var rTimesSqrtM1 Element
	rTimesSqrtM1.Mul(&r, &SqrtM1)
	r.Select(&rTimesSqrtM1, &r, flipped|flippedI)

	wasSquare := (correct | flipped) == 1

	r.CondNegate(&r, r.IsNegative())

	d.Set(&r)
	return wasSquare, d
}
