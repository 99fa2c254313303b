package edwards25519

import (
	"testing"

	"github.com/aral/noble-ed25519/internal/scalar"
)

func TestIdentityIsNeutral(t *testing.T) {
	var sum ExtendedPoint
	sum.Add(&ExtBase, &ExtIdentity)
	if !sum.Equal(&ExtBase) {
		t.Fatalf("B + identity != B")
	}
}

func TestAddMatchesDoubling(t *testing.T) {
	var doubled, added ExtendedPoint
	doubled.Double(&ExtBase)
	added.Add(&ExtBase, &ExtBase)
	if !doubled.Equal(&added) {
		t.Fatalf("double(B) != B+B")
	}
}

func TestPointNegateCancels(t *testing.T) {
	var neg, sum ExtendedPoint
	neg.Negate(&ExtBase)
	sum.Add(&ExtBase, &neg)
	if !sum.Equal(&ExtIdentity) {
		t.Fatalf("B + (-B) != identity")
	}
}

func TestScalarMulOrderIsN(t *testing.T) {
	// n*B is computed as (n-1)*B + B, since n itself reduces to 0 as a scalar.
	result := MultiplyUnsafe(scalarNMinus1(), &ExtBase)
	result.Add(&result, &ExtBase)
	if !result.Equal(&ExtIdentity) {
		t.Fatalf("n*B != identity")
	}
}

func TestMultiplyAgreesWithMultiplyUnsafe(t *testing.T) {
	table := Precompute(&ExtBase, DefaultWindow)
	var k scalar.Scalar
	k.SetUint64(123456789)
	want := MultiplyUnsafe(&k, &ExtBase)
	got := table.Multiply(&k)
	if !want.Equal(&got) {
		t.Fatalf("windowed multiply disagrees with double-and-add")
	}
}

func TestMultiplyAgreesAcrossWindowWidths(t *testing.T) {
	var k scalar.Scalar
	k.SetUint64(0xDEADBEEFCAFEBABE)
	t4 := Precompute(&ExtBase, 4)
	t8 := Precompute(&ExtBase, 8)
	r4 := t4.Multiply(&k)
	r8 := t8.Multiply(&k)
	if !r4.Equal(&r8) {
		t.Fatalf("W=4 and W=8 tables disagree")
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	enc := Base.Encode()
	p, err := Decode(enc[:])
	if err != nil {
		t.Fatalf("decode(encode(B)) failed: %v", err)
	}
	if p.X.Eq(&Base.X) != 1 || p.Y.Eq(&Base.Y) != 1 {
		t.Fatalf("decode(encode(B)) != B")
	}
}

func TestDecodeRejectsBadLength(t *testing.T) {
	if _, err := Decode(make([]byte, 31)); err == nil {
		t.Fatalf("expected error for short input")
	}
}

// scalarNMinus1 returns n-1 as a scalar, computed as 0 - 1 (mod n). A
// scalar.Scalar holds values in [0, n), so n itself cannot be passed to
// MultiplyUnsafe; the n*B == identity property is checked as (n-1)*B + B.
func scalarNMinus1() *scalar.Scalar {
	zero := scalar.Zero()
	one := scalar.One()
	var s scalar.Scalar
	s.Sub(&zero, &one)
	return &s
}
