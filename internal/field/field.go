package field

import (
	"encoding/binary"
	"math/bits"
)

// This file implements computations on the finite field of integers
// modulo 2^255 - mq, for a small mq (a "solinas-ish" prime shape shared
// by Curve25519 and its relatives). The implementation is portable (no
// assembly) but should be decently efficient on 64-bit architectures.
// It is constant-time as long as 64-bit operations (especially
// 64x64->128 multiplication, using math/bits.Mul64()) are constant-time,
// which should be true on most modern systems.

// =======================================================================
// Internal functions
// =======================================================================

// Unless otherwise stated, all functions below accept source and destination
// operands to be the same objects. Parameter order is destination first
// (similar to mathematical notation: "d = a + b").
// The 'mq' parameter is the small integer such that modulus is p = 2^255 - mq.
// For all fields supported by this module, mq < 2^15 = 32768.
//
// Storage format: an array of four 64-bit unsigned integers, which encode
// the value in base 2^64 (little-endian order: first limb is least
// significant). Values are not necessarily reduced on output; all functions
// accept inputs in the whole 0..2^256-1 range.

// Internal function for field addition.
func gf_add(d, a, b *[4]uint64, mq uint64) {
	var cc uint64 = 0
	for i := 0; i < 4; i++ {
		d[i], cc = bits.Add64(a[i], b[i], cc)
	}
	d[0], cc = bits.Add64(d[0], (mq<<1)&-cc, 0)
	for i := 1; i < 4; i++ {
		d[i], cc = bits.Add64(d[i], 0, cc)
	}
	d[0] += (mq << 1) & -cc
}

// Internal function for field subtraction.
func gf_sub(d, a, b *[4]uint64, mq uint64) {
	var cc uint64 = 0
	for i := 0; i < 4; i++ {
		d[i], cc = bits.Sub64(a[i], b[i], cc)
	}
	d[0], cc = bits.Sub64(d[0], (mq<<1)&-cc, 0)
	for i := 1; i < 4; i++ {
		d[i], cc = bits.Sub64(d[i], 0, cc)
	}
	d[0] -= (mq << 1) & -cc
}

// Internal function for field negation.
func gf_neg(d, a *[4]uint64, mq uint64) {
	var cc uint64
	d[0], cc = bits.Sub64(-(mq << 1), a[0], 0)
	for i := 1; i < 4; i++ {
		d[i], cc = bits.Sub64(0xFFFFFFFFFFFFFFFF, a[i], cc)
	}
	var e uint64 = -cc
	d[0], cc = bits.Add64(d[0], e&-mq, 0)
	for i := 1; i < 3; i++ {
		d[i], cc = bits.Add64(d[i], e, cc)
	}
	d[3], _ = bits.Add64(d[3], e>>1, cc)
}

// Internal function for constant-time selection. Output d is set to
// the value of a if ctl == 1, or to the value of b if ctl == 0.
// ctl MUST be 0 or 1.
func gf_select(d, a, b *[4]uint64, ctl uint64) {
	ma := -ctl
	mb := ^ma
	for i := 0; i < 4; i++ {
		d[i] = (a[i] & ma) | (b[i] & mb)
	}
}

// Conditional negation: if ctl == 1, then d is set to -a; otherwise,
// if ctl == 0, then d is set to a. ctl MUST be 0 or 1.
func gf_condneg(d, a *[4]uint64, mq uint64, ctl uint64) {
	var t [4]uint64
	gf_neg(&t, a, mq)
	gf_select(d, &t, a, ctl)
}

// Internal function for multiplication.
func gf_mul(d, a, b *[4]uint64, mq uint64) {
	var t [8]uint64
	var hi, lo, cc uint64

	// a0*b0, a1*b1, a2*b2, a3*b3
	t[1], t[0] = bits.Mul64(a[0], b[0])
	t[3], t[2] = bits.Mul64(a[1], b[1])
	t[5], t[4] = bits.Mul64(a[2], b[2])
	t[7], t[6] = bits.Mul64(a[3], b[3])

	// a0*b1, a0*b3, a2*b3
	hi, lo = bits.Mul64(a[0], b[1])
	t[1], cc = bits.Add64(t[1], lo, 0)
	t[2], cc = bits.Add64(t[2], hi, cc)
	hi, lo = bits.Mul64(a[0], b[3])
	t[3], cc = bits.Add64(t[3], lo, cc)
	t[4], cc = bits.Add64(t[4], hi, cc)
	hi, lo = bits.Mul64(a[2], b[3])
	t[5], cc = bits.Add64(t[5], lo, cc)
	t[6], cc = bits.Add64(t[6], hi, cc)
	t[7] += cc

	// a1*b0, a3*b0, a3*b2
	hi, lo = bits.Mul64(a[1], b[0])
	t[1], cc = bits.Add64(t[1], lo, 0)
	t[2], cc = bits.Add64(t[2], hi, cc)
	hi, lo = bits.Mul64(a[3], b[0])
	t[3], cc = bits.Add64(t[3], lo, cc)
	t[4], cc = bits.Add64(t[4], hi, cc)
	hi, lo = bits.Mul64(a[3], b[2])
	t[5], cc = bits.Add64(t[5], lo, cc)
	t[6], cc = bits.Add64(t[6], hi, cc)
	t[7] += cc

	// a0*b2, a1*b3
	hi, lo = bits.Mul64(a[0], b[2])
	t[2], cc = bits.Add64(t[2], lo, 0)
	t[3], cc = bits.Add64(t[3], hi, cc)
	hi, lo = bits.Mul64(a[1], b[3])
	t[4], cc = bits.Add64(t[4], lo, cc)
	t[5], cc = bits.Add64(t[5], hi, cc)
	t[6], cc = bits.Add64(t[6], 0, cc)
	t[7] += cc

	// a2*b0, a3*b1
	hi, lo = bits.Mul64(a[2], b[0])
	t[2], cc = bits.Add64(t[2], lo, 0)
	t[3], cc = bits.Add64(t[3], hi, cc)
	hi, lo = bits.Mul64(a[3], b[1])
	t[4], cc = bits.Add64(t[4], lo, cc)
	t[5], cc = bits.Add64(t[5], hi, cc)
	t[6], cc = bits.Add64(t[6], 0, cc)
	t[7] += cc

	// a1*b2, a2*b1
	var x0, x1, x2 uint64
	x1, x0 = bits.Mul64(a[1], b[2])
	hi, lo = bits.Mul64(a[2], b[1])
	x0, cc = bits.Add64(x0, lo, 0)
	x1, x2 = bits.Add64(x1, hi, cc)
	t[3], cc = bits.Add64(t[3], x0, 0)
	t[4], cc = bits.Add64(t[4], x1, cc)
	t[5], cc = bits.Add64(t[5], x2, cc)
	t[6], cc = bits.Add64(t[6], 0, cc)
	t[7] += cc

	// Fold upper half into lower half, multiplied by 2*mq.
	var h0, h1, h2, h3 uint64
	h0, lo = bits.Mul64(t[4], mq<<1)
	t[0], cc = bits.Add64(t[0], lo, 0)
	h1, lo = bits.Mul64(t[5], mq<<1)
	t[1], cc = bits.Add64(t[1], lo, cc)
	h2, lo = bits.Mul64(t[6], mq<<1)
	t[2], cc = bits.Add64(t[2], lo, cc)
	h3, lo = bits.Mul64(t[7], mq<<1)
	t[3], cc = bits.Add64(t[3], lo, cc)
	h3 += cc

	h3 = (h3 << 1) | (t[3] >> 63)
	t[3] &= 0x7FFFFFFFFFFFFFFF
	d[0], cc = bits.Add64(t[0], h3*mq, 0)
	d[1], cc = bits.Add64(t[1], h0, cc)
	d[2], cc = bits.Add64(t[2], h1, cc)
	d[3], cc = bits.Add64(t[3], h2, cc)
}

// Internal function for squaring.
func gf_sqr(d, a *[4]uint64, mq uint64) {
	var t [8]uint64
	var hi, lo, cc uint64

	// a0*a1, a0*a2, a0*a3, a1*a2, a1*a3, a2*a3
	t[2], t[1] = bits.Mul64(a[0], a[1])
	t[4], t[3] = bits.Mul64(a[0], a[3])
	t[6], t[5] = bits.Mul64(a[2], a[3])
	hi, lo = bits.Mul64(a[0], a[2])
	t[2], cc = bits.Add64(t[2], lo, 0)
	t[3], cc = bits.Add64(t[3], hi, cc)
	hi, lo = bits.Mul64(a[1], a[3])
	t[4], cc = bits.Add64(t[4], lo, cc)
	t[5], cc = bits.Add64(t[5], hi, cc)
	t[6] += cc
	hi, lo = bits.Mul64(a[1], a[2])
	t[3], cc = bits.Add64(t[3], lo, 0)
	t[4], cc = bits.Add64(t[4], hi, cc)
	t[5], cc = bits.Add64(t[5], 0, cc)
	t[6] += cc

	// Double the current sum.
	t[7] = t[6] >> 63
	t[6] = (t[6] << 1) | (t[5] >> 63)
	t[5] = (t[5] << 1) | (t[4] >> 63)
	t[4] = (t[4] << 1) | (t[3] >> 63)
	t[3] = (t[3] << 1) | (t[2] >> 63)
	t[2] = (t[2] << 1) | (t[1] >> 63)
	t[1] = t[1] << 1

	// Add the squares: a0*a0, a1*a1, a2*a2, a3*a3
	hi, t[0] = bits.Mul64(a[0], a[0])
	t[1], cc = bits.Add64(t[1], hi, 0)
	hi, lo = bits.Mul64(a[1], a[1])
	t[2], cc = bits.Add64(t[2], lo, cc)
	t[3], cc = bits.Add64(t[3], hi, cc)
	hi, lo = bits.Mul64(a[2], a[2])
	t[4], cc = bits.Add64(t[4], lo, cc)
	t[5], cc = bits.Add64(t[5], hi, cc)
	hi, lo = bits.Mul64(a[3], a[3])
	t[6], cc = bits.Add64(t[6], lo, cc)
	t[7], _ = bits.Add64(t[7], hi, cc)

	// Reduction modulo p (identical to the tail of gf_mul).
	var h0, h1, h2, h3 uint64
	h0, lo = bits.Mul64(t[4], mq<<1)
	t[0], cc = bits.Add64(t[0], lo, 0)
	h1, lo = bits.Mul64(t[5], mq<<1)
	t[1], cc = bits.Add64(t[1], lo, cc)
	h2, lo = bits.Mul64(t[6], mq<<1)
	t[2], cc = bits.Add64(t[2], lo, cc)
	h3, lo = bits.Mul64(t[7], mq<<1)
	t[3], cc = bits.Add64(t[3], lo, cc)
	h3 += cc

	h3 = (h3 << 1) | (t[3] >> 63)
	t[3] &= 0x7FFFFFFFFFFFFFFF
	d[0], cc = bits.Add64(t[0], h3*mq, 0)
	d[1], cc = bits.Add64(t[1], h0, cc)
	d[2], cc = bits.Add64(t[2], h1, cc)
	d[3], cc = bits.Add64(t[3], h2, cc)
}

// Internal multiplication of multiple squarings: d = a^(2^n)
func gf_sqr_x(d, a *[4]uint64, n uint, mq uint64) {
	if n == 0 {
		copy(d[:], a[:])
		return
	}
	gf_sqr(d, a, mq)
	for n -= 1; n != 0; n-- {
		gf_sqr(d, d, mq)
	}
}

// Internal function for halving (division by 2).
func gf_half(d, a *[4]uint64, mq uint64) {
	var e uint64 = -(a[0] & 1)
	var cc uint64
	d[0], cc = bits.Add64((a[0]>>1)|(a[1]<<63), e&-((mq-1)>>1), 0)
	for i := 1; i < 3; i++ {
		d[i], cc = bits.Add64((a[i]>>1)|(a[i+1]<<63), e, cc)
	}
	d[3], _ = bits.Add64(a[3]>>1, e>>2, cc)
}

// Internal function for left-shifting by some bits (1 <= n <= 15).
func gf_lsh(d, a *[4]uint64, n uint, mq uint64) {
	var g uint64 = a[0] >> (64 - n)
	d[0] = a[0] << n
	for i := 1; i < 4; i++ {
		w := a[i]
		d[i] = (w << n) | g
		g = w >> (64 - n)
	}
	g = (g << 1) | (d[3] >> 63)
	var cc uint64
	d[0], cc = bits.Add64(d[0], g*mq, 0)
	for i := 1; i < 3; i++ {
		d[i], cc = bits.Add64(d[i], 0, cc)
	}
	d[3] = (d[3] & 0x7FFFFFFFFFFFFFFF) + cc
}

// Internal function for normalization: ensures the output is in the
// 0..p-1 range. Meant to be called prior to encoding or comparisons.
func gf_norm(d, a *[4]uint64, mq uint64) {
	var cc uint64
	d[0], cc = bits.Add64(a[0], mq&-(a[3]>>63), 0)
	for i := 1; i < 3; i++ {
		d[i], cc = bits.Add64(a[i], 0, cc)
	}
	d[3] = (a[3] & 0x7FFFFFFFFFFFFFFF) + cc

	d[0], cc = bits.Sub64(d[0], -mq, 0)
	for i := 1; i < 3; i++ {
		d[i], cc = bits.Sub64(d[i], 0xFFFFFFFFFFFFFFFF, cc)
	}
	d[3], cc = bits.Sub64(d[3], 0x7FFFFFFFFFFFFFFF, cc)

	var e uint64 = -cc
	d[0], cc = bits.Add64(d[0], e&-mq, 0)
	for i := 1; i < 3; i++ {
		d[i], cc = bits.Add64(d[i], e, cc)
	}
	d[3], cc = bits.Add64(d[3], e>>1, cc)
}

// Internal function for comparing a value with zero (modulo p).
func gf_iszero(a *[4]uint64, mq uint64) uint64 {
	t0 := a[0]
	t1 := a[0] + mq
	t2 := a[0] + (mq << 1)
	for i := 1; i < 3; i++ {
		t0 |= a[i]
		t1 |= ^a[i]
		t2 |= ^a[i]
	}
	t0 |= a[3]
	t1 |= a[3] ^ 0x7FFFFFFFFFFFFFFF
	t2 |= ^a[3]
	return 1 - (((t0 | -t0) & (t1 | -t1) & (t2 | -t2)) >> 63)
}

// Internal function for comparing two values modulo p.
func gf_eq(a, b *[4]uint64, mq uint64) uint64 {
	var t [4]uint64
	gf_sub(&t, a, b, mq)
	return gf_iszero(&t, mq)
}

// Internal function for encoding a field element into 32 bytes, appended
// to the given slice; returns the (possibly reallocated) slice.
func gf_encode(b []byte, a *[4]uint64, mq uint64) []byte {
	len1 := len(b)
	len2 := len1 + 32
	var b2 []byte
	if cap(b) >= len2 {
		b2 = b[:len2]
	} else {
		b2 = make([]byte, len2)
		copy(b2, b)
	}
	dst := b2[len1:]
	var t [4]uint64
	gf_norm(&t, a, mq)
	for i := 0; i < 4; i++ {
		binary.LittleEndian.PutUint64(dst[8*i:], t[i])
	}
	return b2
}

// Internal function for decoding a field element from 32 bytes. If the
// source is out of the 0..p-1 range, the destination is set to zero and
// 0 is returned; otherwise, 1 is returned.
func gf_decode(d *[4]uint64, src []byte, mq uint64) uint64 {
	for i := 0; i < 4; i++ {
		d[i] = binary.LittleEndian.Uint64(src[8*i:])
	}
	_, cc := bits.Sub64(d[0], -mq, 0)
	_, cc = bits.Sub64(d[1], 0xFFFFFFFFFFFFFFFF, cc)
	_, cc = bits.Sub64(d[2], 0xFFFFFFFFFFFFFFFF, cc)
	_, cc = bits.Sub64(d[3], 0x7FFFFFFFFFFFFFFF, cc)
	for i := 0; i < 4; i++ {
		d[i] &= -cc
	}
	return cc
}

// Internal function for decoding a field element from an arbitrary number
// of bytes, with reduction. This process cannot fail.
func gf_decodeReduce(d *[4]uint64, src []byte, mq uint64) {
	var t [8]uint64

	n := len(src)
	j := n & 31
	if j == 0 && n != 0 {
		j = 32
	}
	n -= j
	var buf [32]byte
	copy(buf[:], src[n:])
	for i := 0; i < 4; i++ {
		t[i] = binary.LittleEndian.Uint64(buf[8*i:])
	}

	for n > 0 {
		n -= 32
		copy(t[4:], t[:4])
		for i := 0; i < 4; i++ {
			t[i] = binary.LittleEndian.Uint64(src[n+8*i:])
		}

		var h0, h1, h2, h3 uint64
		var lo, cc uint64
		h0, lo = bits.Mul64(t[4], mq<<1)
		t[0], cc = bits.Add64(t[0], lo, 0)
		h1, lo = bits.Mul64(t[5], mq<<1)
		t[1], cc = bits.Add64(t[1], lo, cc)
		h2, lo = bits.Mul64(t[6], mq<<1)
		t[2], cc = bits.Add64(t[2], lo, cc)
		h3, lo = bits.Mul64(t[7], mq<<1)
		t[3], cc = bits.Add64(t[3], lo, cc)
		h3 += cc

		h3 = (h3 << 1) | (t[3] >> 63)
		t[3] &= 0x7FFFFFFFFFFFFFFF
		t[0], cc = bits.Add64(t[0], h3*mq, 0)
		t[1], cc = bits.Add64(t[1], h0, cc)
		t[2], cc = bits.Add64(t[2], h1, cc)
		t[3], cc = bits.Add64(t[3], h2, cc)
	}

	copy(d[:], t[:4])
}
