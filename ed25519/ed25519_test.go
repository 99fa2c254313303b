package ed25519

import (
	"bytes"
	"encoding/hex"
	"testing"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("bad hex: %v", err)
	}
	return b
}

// E1: RFC 8032-style known-answer vector, empty message.
func TestKnownAnswerE1(t *testing.T) {
	seed := mustHex(t, "9d61b19deffd5a60ba844af492ec2cc44449c5697b326919703bac031cae7f60")
	wantPub := mustHex(t, "d75a980182b10ab7d54bfed3c964073a0ee172f3daa62325af021a68f707511a")
	wantSig := mustHex(t, "e5564300c360ac729086e2cc806e828a84877f1eb8e5d974d873e065224901555fb8821590a33bacc61e39701cf9b46bd25bf5f0595bbe24655141438e7a100b")

	pub, err := GetPublicKey(seed)
	if err != nil {
		t.Fatalf("GetPublicKey: %v", err)
	}
	if !bytes.Equal(pub, wantPub) {
		t.Fatalf("public key mismatch:\n got  %x\n want %x", pub, wantPub)
	}

	sig, err := Sign(nil, seed)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if !bytes.Equal(sig, wantSig) {
		t.Fatalf("signature mismatch:\n got  %x\n want %x", sig, wantSig)
	}

	if !Verify(sig, nil, pub) {
		t.Fatalf("Verify rejected a valid signature")
	}
}

// E2: known-answer vector, one-byte message.
func TestKnownAnswerE2(t *testing.T) {
	seed := mustHex(t, "4ccd089b28ff96da9db6c346ec114e0f5b8a319f35aba624da8cf6ed4fb8a6fb")
	message := mustHex(t, "72")
	wantSig := mustHex(t, "92a009a9f0d4cab8720e820b5f642540a2b27b5416503f8fb3762223ebdb69da085ac1e43e15996e458f3613d0f11d8c387b2eaeb4302aeeb00d291612bb0c00")

	sig, err := Sign(message, seed)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if !bytes.Equal(sig, wantSig) {
		t.Fatalf("signature mismatch:\n got  %x\n want %x", sig, wantSig)
	}

	pub, err := GetPublicKey(seed)
	if err != nil {
		t.Fatalf("GetPublicKey: %v", err)
	}
	if !Verify(sig, message, pub) {
		t.Fatalf("Verify rejected a valid signature")
	}
}

// E3: flipping any bit of a valid signature must make verification fail.
func TestBitFlipBreaksVerification(t *testing.T) {
	seed := mustHex(t, "9d61b19deffd5a60ba844af492ec2cc44449c5697b326919703bac031cae7f60")
	message := []byte("arbitrary message for bit-flip test")

	pub, err := GetPublicKey(seed)
	if err != nil {
		t.Fatalf("GetPublicKey: %v", err)
	}
	sig, err := Sign(message, seed)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if !Verify(sig, message, pub) {
		t.Fatalf("baseline signature failed to verify")
	}

	for i := range sig {
		for bit := 0; bit < 8; bit++ {
			flipped := make([]byte, len(sig))
			copy(flipped, sig)
			flipped[i] ^= 1 << uint(bit)
			if Verify(flipped, message, pub) {
				t.Fatalf("bit-flipped signature at byte %d bit %d verified", i, bit)
			}
		}
	}
}

func TestVerifyFailsOnWrongMessage(t *testing.T) {
	seed := mustHex(t, "9d61b19deffd5a60ba844af492ec2cc44449c5697b326919703bac031cae7f60")
	pub, _ := GetPublicKey(seed)
	sig, _ := Sign([]byte("hello"), seed)
	if Verify(sig, []byte("goodbye"), pub) {
		t.Fatalf("verify accepted signature over a different message")
	}
}

func TestVerifyRejectsOutOfRangeS(t *testing.T) {
	seed := mustHex(t, "9d61b19deffd5a60ba844af492ec2cc44449c5697b326919703bac031cae7f60")
	pub, _ := GetPublicKey(seed)
	sig, _ := Sign([]byte("m"), seed)
	// Force s to n itself, which must be rejected as out of range.
	tampered := make([]byte, len(sig))
	copy(tampered, sig)
	nBytes := []byte{
		0xed, 0xd3, 0xf5, 0x5c, 0x1a, 0x63, 0x12, 0x58,
		0xd6, 0x9c, 0xf7, 0xa2, 0xde, 0xf9, 0xde, 0x14,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x10,
	}
	copy(tampered[32:], nBytes)
	if Verify(tampered, []byte("m"), pub) {
		t.Fatalf("verify accepted a signature with s >= n")
	}
}

func TestPrivateKeyImplementsSignerShape(t *testing.T) {
	seed := mustHex(t, "9d61b19deffd5a60ba844af492ec2cc44449c5697b326919703bac031cae7f60")
	pk, err := NewPrivateKeyFromSeed(seed)
	if err != nil {
		t.Fatalf("NewPrivateKeyFromSeed: %v", err)
	}
	sig, err := pk.Sign(nil, []byte("hello"), nil)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	pub := pk.Public().(PublicKey)
	if !pub.Verify(sig, []byte("hello")) {
		t.Fatalf("PublicKey.Verify rejected PrivateKey.Sign's output")
	}
}

func TestPublicKeyEqual(t *testing.T) {
	seed1 := mustHex(t, "9d61b19deffd5a60ba844af492ec2cc44449c5697b326919703bac031cae7f60")
	seed2 := mustHex(t, "4ccd089b28ff96da9db6c346ec114e0f5b8a319f35aba624da8cf6ed4fb8a6fb")
	pk1, _ := NewPrivateKeyFromSeed(seed1)
	pk2, _ := NewPrivateKeyFromSeed(seed2)
	pub1 := pk1.Public().(PublicKey)
	pub2 := pk2.Public().(PublicKey)
	if !pub1.Equal(pub1) {
		t.Fatalf("pub1 != pub1")
	}
	if pub1.Equal(pub2) {
		t.Fatalf("pub1 == pub2 for distinct keys")
	}
}
