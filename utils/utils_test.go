package utils

import (
	"bytes"
	"testing"

	"github.com/aral/noble-ed25519/edwards25519"
	"github.com/aral/noble-ed25519/internal/scalar"
)

func TestRandomPrivateKeyProducesUsableKey(t *testing.T) {
	pk, err := RandomPrivateKey(nil)
	if err != nil {
		t.Fatalf("RandomPrivateKey: %v", err)
	}
	sig, err := pk.Sign(nil, []byte("message"), nil)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	pub := pk.Public()
	if !pub.(interface{ Verify([]byte, []byte) bool }).Verify(sig, []byte("message")) {
		t.Fatalf("signature from a random key failed to verify")
	}
}

func TestRandomPrivateKeyDiffers(t *testing.T) {
	a, err := RandomPrivateKey(nil)
	if err != nil {
		t.Fatalf("RandomPrivateKey: %v", err)
	}
	b, err := RandomPrivateKey(nil)
	if err != nil {
		t.Fatalf("RandomPrivateKey: %v", err)
	}
	aPub := a.Public().(interface{ Bytes() []byte }).Bytes()
	bPub := b.Public().(interface{ Bytes() []byte }).Bytes()
	if bytes.Equal(aPub, bPub) {
		t.Fatalf("two random private keys produced the same public key")
	}
}

func TestRandomRistrettoPointIsValid(t *testing.T) {
	p, err := RandomRistrettoPoint(nil)
	if err != nil {
		t.Fatalf("RandomRistrettoPoint: %v", err)
	}
	if p.Equal(&edwards25519.ExtIdentity) {
		t.Fatalf("random point landed exactly on identity (statistically implausible, check the wiring)")
	}
}

func TestPrecomputeAtWiderWindowAgreesWithMultiplyBase(t *testing.T) {
	var k scalar.Scalar
	k.SetUint64(987654321)
	want := edwards25519.MultiplyBase(&k)

	Precompute(8)
	got := edwards25519.MultiplyBase(&k)
	if !want.Equal(&got) {
		t.Fatalf("re-precomputing the base table at a wider window changed k*B")
	}
}
