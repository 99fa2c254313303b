package edwards25519

import "github.com/aral/noble-ed25519/internal/field"

// ToX25519 converts an Edwards point's y-coordinate to the Montgomery
// u-coordinate used by X25519: u = (1+y)/(1-y) mod p. X25519 key
// exchange itself is out of scope (spec.md Non-goals); only this
// conversion is offered.
func (p *Point) ToX25519() [32]byte {
	var num, den, denInv, u field.Element
	num.Add(&field.One, &p.Y)
	den.Sub(&field.One, &p.Y)
	denInv.Invert(&den)
	u.Mul(&num, &denInv)
	return u.Bytes()
}
