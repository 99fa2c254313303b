// Package edwards25519 implements the twisted Edwards curve group
// underlying Ed25519 and Ristretto255: affine points, extended
// projective coordinates, and their arithmetic.
package edwards25519

import (
	"errors"

	"github.com/aral/noble-ed25519/internal/field"
)

// ErrInvalidEncoding is returned by decoding functions when the input
// is not the canonical encoding of a point on the curve.
var ErrInvalidEncoding = errors.New("edwards25519: invalid point encoding")

// Point is an affine point (x, y) on the twisted Edwards curve
// -x^2 + y^2 = 1 + d*x^2*y^2.
type Point struct {
	X, Y field.Element
}

// Identity is the affine neutral element (0, 1).
var Identity = Point{X: field.Zero, Y: field.One}

// Base is the standard Ed25519 base point B.
var Base = Point{X: field.BaseX, Y: field.BaseY}

// NewPoint constructs a Point from (x, y), checking the curve equation.
// Returns an error if the pair is not on the curve.
func NewPoint(x, y *field.Element) (Point, error) {
	p := Point{X: *x, Y: *y}
	if !p.onCurve() {
		return Point{}, ErrInvalidEncoding
	}
	return p, nil
}

func (p *Point) onCurve() bool {
	var x2, y2, lhs, rhs, dx2y2 field.Element
	x2.Sqr(&p.X)
	y2.Sqr(&p.Y)
	lhs.Neg(&x2)
	lhs.Add(&lhs, &y2)
	dx2y2.Mul(&x2, &y2)
	dx2y2.Mul(&dx2y2, &field.D)
	rhs.Add(&field.One, &dx2y2)
	return lhs.Eq(&rhs) == 1
}

// pointFromY reconstructs x from y and a sign bit: x^2 = (y^2-1)/(d*y^2+1),
// and the root with low bit equal to sign is selected. Returns an error
// if d*y^2+1 is zero or (y^2-1)/(d*y^2+1) is a non-square.
func pointFromY(y *field.Element, sign uint64) (Point, error) {
	var y2, u, v, dy2 field.Element
	y2.Sqr(y)
	u.Sub(&y2, &field.One)
	dy2.Mul(&field.D, &y2)
	v.Add(&dy2, &field.One)
	if v.IsZero() == 1 {
		return Point{}, ErrInvalidEncoding
	}

	var x2 field.Element
	ok, r := x2.SqrtRatioM1(&u, &v)
	if !ok {
		return Point{}, ErrInvalidEncoding
	}
	var x field.Element
	x.CondNegate(r, r.IsNegative()^(sign&1))
	return Point{X: x, Y: *y}, nil
}

// Decode parses a 32-byte RFC 8032 point encoding: y little-endian with
// the sign of x packed into the high bit of the last byte.
func Decode(b []byte) (Point, error) {
	if len(b) != 32 {
		return Point{}, ErrInvalidEncoding
	}
	var buf [32]byte
	copy(buf[:], b)
	sign := uint64(buf[31] >> 7)
	buf[31] &= 0x7F

	var y field.Element
	if y.Decode(buf[:]) != 1 {
		return Point{}, ErrInvalidEncoding
	}
	return pointFromY(&y, sign)
}

// Encode returns the 32-byte RFC 8032 encoding of p: y little-endian
// with the sign of x in the top bit of the last byte.
func (p *Point) Encode() [32]byte {
	out := p.Y.Bytes()
	out[31] |= byte(p.X.IsNegative() << 7)
	return out
}

// ToExtended lifts an affine point to extended coordinates.
func (p *Point) ToExtended() ExtendedPoint {
	var t field.Element
	t.Mul(&p.X, &p.Y)
	return ExtendedPoint{X: p.X, Y: p.Y, Z: field.One, T: t}
}

// ExtendedPoint is a point in extended projective coordinates
// (X, Y, Z, T) with x = X/Z, y = Y/Z, x*y = T/Z, Z != 0.
type ExtendedPoint struct {
	X, Y, Z, T field.Element
}

// ExtIdentity is the extended-coordinate neutral element.
var ExtIdentity = ExtendedPoint{X: field.Zero, Y: field.One, Z: field.One, T: field.Zero}

// ExtBase is the extended-coordinate Ed25519 base point.
var ExtBase = Base.ToExtended()

// ToAffine converts an extended point back to affine coordinates.
func (p *ExtendedPoint) ToAffine() Point {
	var zInv, x, y field.Element
	zInv.Invert(&p.Z)
	x.Mul(&p.X, &zInv)
	y.Mul(&p.Y, &zInv)
	return Point{X: x, Y: y}
}

// Encode returns the 32-byte RFC 8032 encoding of p.
func (p *ExtendedPoint) Encode() [32]byte {
	a := p.ToAffine()
	return a.Encode()
}

// Equal reports whether p and q represent the same affine point, via
// cross-multiplied comparison (no inversion needed): X1*Z2 == X2*Z1
// and Y1*Z2 == Y2*Z1.
func (p *ExtendedPoint) Equal(q *ExtendedPoint) bool {
	var l, r field.Element
	l.Mul(&p.X, &q.Z)
	r.Mul(&q.X, &p.Z)
	if l.Eq(&r) != 1 {
		return false
	}
	l.Mul(&p.Y, &q.Z)
	r.Mul(&q.Y, &p.Z)
	return l.Eq(&r) == 1
}

// Negate sets p = -q.
func (p *ExtendedPoint) Negate(q *ExtendedPoint) *ExtendedPoint {
	p.X.Neg(&q.X)
	p.Y = q.Y
	p.Z = q.Z
	p.T.Neg(&q.T)
	return p
}

// Add sets p = a + b using the complete a=-1 twisted-Edwards
// extended-coordinate addition formula (add-2008-hwcd-3); there is no
// exceptional case within the prime-order subgroup or its cofactor-8
// cover.
func (p *ExtendedPoint) Add(a, b *ExtendedPoint) *ExtendedPoint {
	var A, B, C, Dd, E, F, G, H field.Element

	A.Sub(&a.Y, &a.X)
	var t field.Element
	t.Sub(&b.Y, &b.X)
	A.Mul(&A, &t)

	B.Add(&a.Y, &a.X)
	t.Add(&b.Y, &b.X)
	B.Mul(&B, &t)

	C.Mul(&a.T, &b.T)
	C.Mul(&C, &field.D)
	C.Add(&C, &C)

	Dd.Mul(&a.Z, &b.Z)
	Dd.Add(&Dd, &Dd)

	E.Sub(&B, &A)
	F.Sub(&Dd, &C)
	G.Add(&Dd, &C)
	H.Add(&B, &A)

	p.X.Mul(&E, &F)
	p.Y.Mul(&G, &H)
	p.Z.Mul(&F, &G)
	p.T.Mul(&E, &H)
	return p
}

// Sub sets p = a - b.
func (p *ExtendedPoint) Sub(a, b *ExtendedPoint) *ExtendedPoint {
	var nb ExtendedPoint
	nb.Negate(b)
	return p.Add(a, &nb)
}

// Double sets p = 2*a, using the a=-1 specialization of the extended
// doubling formula (dbl-2008-hwcd-2).
func (p *ExtendedPoint) Double(a *ExtendedPoint) *ExtendedPoint {
	var A, B, C, Dd, E, F, G, H field.Element

	A.Sqr(&a.X)
	B.Sqr(&a.Y)
	C.Sqr(&a.Z)
	C.Add(&C, &C)
	Dd.Neg(&A)

	var xy field.Element
	xy.Add(&a.X, &a.Y)
	E.Sqr(&xy)
	E.Sub(&E, &A)
	E.Sub(&E, &B)

	G.Add(&Dd, &B)
	F.Sub(&G, &C)
	H.Sub(&Dd, &B)

	p.X.Mul(&E, &F)
	p.Y.Mul(&G, &H)
	p.Z.Mul(&F, &G)
	p.T.Mul(&E, &H)
	return p
}
