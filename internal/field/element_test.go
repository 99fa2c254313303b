package field

import "testing"

func h2e(t *testing.T, hex string) Element {
	t.Helper()
	var e Element
	b := mustHex(t, hex)
	if len(b) != 32 {
		t.Fatalf("bad test vector length: %d", len(b))
	}
	if e.Decode(b) != 1 {
		t.Fatalf("non-canonical test vector: %s", hex)
	}
	return e
}

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	if len(s)%2 != 0 {
		t.Fatalf("odd length hex string")
	}
	out := make([]byte, len(s)/2)
	for i := range out {
		hi := hexNibble(t, s[2*i])
		lo := hexNibble(t, s[2*i+1])
		out[i] = hi<<4 | lo
	}
	return out
}

func hexNibble(t *testing.T, c byte) byte {
	t.Helper()
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	}
	t.Fatalf("bad hex digit %c", c)
	return 0
}

func TestAddSubNeg(t *testing.T) {
	var a, b, c, d Element
	a = One
	b.Lsh(&One, 4) // 16
	c.Add(&a, &b)  // 17
	var want Element
	want.Lsh(&One, 4)
	want.Add(&want, &One)
	if c.Eq(&want) != 1 {
		t.Fatalf("add mismatch")
	}
	d.Sub(&c, &a)
	if d.Eq(&b) != 1 {
		t.Fatalf("sub mismatch")
	}
	var neg Element
	neg.Neg(&a)
	var sum Element
	sum.Add(&neg, &a)
	if sum.IsZero() != 1 {
		t.Fatalf("a + (-a) != 0")
	}
}

func TestMulSqr(t *testing.T) {
	var three, nine, sq Element
	three.Lsh(&One, 1)
	three.Add(&three, &One) // 3
	nine.Mul(&three, &three)
	sq.Sqr(&three)
	if nine.Eq(&sq) != 1 {
		t.Fatalf("mul(3,3) != sqr(3)")
	}
}

func TestInvert(t *testing.T) {
	var seven, inv, prod Element
	seven.Lsh(&One, 3)
	seven.Sub(&seven, &One) // 7
	inv.Invert(&seven)
	prod.Mul(&seven, &inv)
	if prod.Eq(&One) != 1 {
		t.Fatalf("x * (1/x) != 1")
	}

	var zero, zinv Element
	zinv.Invert(&zero)
	if zinv.IsZero() != 1 {
		t.Fatalf("inverse of 0 must be 0 by convention")
	}
}

func TestSqrtRatioM1Square(t *testing.T) {
	var four, two, root Element
	two.Lsh(&One, 1)
	four.Sqr(&two)
	ok, r := root.SqrtRatioM1(&four, &One)
	if !ok {
		t.Fatalf("4/1 should be a square")
	}
	var check Element
	check.Sqr(r)
	if check.Eq(&four) != 1 {
		t.Fatalf("sqrt(4) squared != 4")
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	var x Element
	x.Lsh(&One, 10)
	x.Add(&x, &One)
	enc := x.Bytes()
	var y Element
	if y.Decode(enc[:]) != 1 {
		t.Fatalf("decode failed")
	}
	if x.Eq(&y) != 1 {
		t.Fatalf("round trip mismatch")
	}
}

func TestBaseConstantsDecodeCanonically(t *testing.T) {
	for name, c := range map[string]Element{
		"D": D, "SqrtM1": SqrtM1, "BaseX": BaseX, "BaseY": BaseY,
		"SqrtADMinusOne": SqrtADMinusOne, "InvSqrtAMinusD": InvSqrtAMinusD,
		"OneMinusDSQ": OneMinusDSQ, "DMinusOneSQ": DMinusOneSQ,
	} {
		enc := c.Bytes()
		var back Element
		if back.Decode(enc[:]) != 1 {
			t.Fatalf("%s is not a canonical field element", name)
		}
	}
}
