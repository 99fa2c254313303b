// Package utils collects the convenience helpers that sit above the core
// field/scalar/group/protocol packages: random key and point generation,
// and rebuilding the process-wide base-point precompute table that
// edwards25519 caches.
package utils

import (
	cryptorand "crypto/rand"
	"io"

	"github.com/aral/noble-ed25519/ed25519"
	"github.com/aral/noble-ed25519/edwards25519"
	"github.com/aral/noble-ed25519/ristretto255"
)

// RandomPrivateKey generates an Ed25519 private key from rand. If rand is
// nil, crypto/rand.Reader is used, following the teacher's
// Do255eGenerateKeyPair convention ("If 'rand' is nil, then crypto/rand.Reader
// is used (this is the recommended way)").
func RandomPrivateKey(rand io.Reader) (ed25519.PrivateKey, error) {
	if rand == nil {
		rand = cryptorand.Reader
	}
	return ed25519.GenerateKey(rand)
}

// RandomRistrettoPoint draws a uniformly random Ristretto255 group element
// by feeding 64 random bytes through ristretto255.FromUniformBytes. If rand
// is nil, crypto/rand.Reader is used.
func RandomRistrettoPoint(rand io.Reader) (edwards25519.ExtendedPoint, error) {
	if rand == nil {
		rand = cryptorand.Reader
	}
	var buf [64]byte
	if _, err := io.ReadFull(rand, buf[:]); err != nil {
		return edwards25519.ExtendedPoint{}, err
	}
	return ristretto255.FromUniformBytes(buf), nil
}

// Precompute rebuilds the process-wide base-point table at window width w
// and installs it atomically via edwards25519.SetBaseTable, so callers who
// need faster base-point multiplication at the cost of more memory can
// opt in without synchronizing with in-flight signers: readers of
// edwards25519.MultiplyBase see either the old table or the fully-built
// new one, never a torn one.
func Precompute(w int) *edwards25519.PrecomputeTable {
	t := edwards25519.Precompute(&edwards25519.ExtBase, w)
	edwards25519.SetBaseTable(t)
	return t
}
