package p256k1

import (
	"crypto/rand"
	"testing"
)

func TestECDSASignVerify(t *testing.T) {
	// Generate a random private key
	seckey := make([]byte, 32)
	if _, err := rand.Read(seckey); err != nil {
		t.Fatal(err)
	}
	
	// Ensure it's a valid private key
	var scalar Scalar
	for !scalar.setB32Seckey(seckey) {
		if _, err := rand.Read(seckey); err != nil {
			t.Fatal(err)
		}
	}
	
	// Create public key
	var pubkey PublicKey
	if err := ECPubkeyCreate(&pubkey, seckey); err != nil {
		t.Fatalf("failed to create public key: %v", err)
	}
	
	// Create message hash
	msghash := make([]byte, 32)
	if _, err := rand.Read(msghash); err != nil {
		t.Fatal(err)
	}
	
	// Sign
	var sig ECDSASignature
	if err := ECDSASign(&sig, msghash, seckey); err != nil {
		t.Fatalf("failed to sign: %v", err)
	}
	
	// Verify
	if !ECDSAVerify(&sig, msghash, &pubkey) {
		t.Error("signature verification failed")
	}
	
	// Test with wrong message
	wrongMsg := make([]byte, 32)
	copy(wrongMsg, msghash)
	wrongMsg[0] ^= 1
	if ECDSAVerify(&sig, wrongMsg, &pubkey) {
		t.Error("signature verification should fail with wrong message")
	}
}

func TestECDSASignCompact(t *testing.T) {
	// Generate a random private key
	seckey := make([]byte, 32)
	if _, err := rand.Read(seckey); err != nil {
		t.Fatal(err)
	}
	
	// Ensure it's a valid private key
	var scalar Scalar
	for !scalar.setB32Seckey(seckey) {
		if _, err := rand.Read(seckey); err != nil {
			t.Fatal(err)
		}
	}
	
	// Create public key
	var pubkey PublicKey
	if err := ECPubkeyCreate(&pubkey, seckey); err != nil {
		t.Fatalf("failed to create public key: %v", err)
	}
	
	// Create message hash
	msghash := make([]byte, 32)
	if _, err := rand.Read(msghash); err != nil {
		t.Fatal(err)
	}
	
	// Sign using compact format
	var compactSig ECDSASignatureCompact
	if err := ECDSASignCompact(&compactSig, msghash, seckey); err != nil {
		t.Fatalf("failed to sign: %v", err)
	}
	
	// Verify compact signature
	if !ECDSAVerifyCompact(&compactSig, msghash, &pubkey) {
		t.Error("compact signature verification failed")
	}
	
	// Test conversion
	var sig ECDSASignature
	if err := sig.FromCompact(&compactSig); err != nil {
		t.Fatalf("failed to parse compact signature: %v", err)
	}
	
	// Verify using regular format
	if !ECDSAVerify(&sig, msghash, &pubkey) {
		t.Error("signature verification failed after conversion")
	}
}

// TestECDSAVerifyRejectsHighS checks the default-strict low-S rule: for any
// valid low-S signature (r, s), the malleable twin (r, n-s) satisfies the
// same verification equation (negating s negates R, which leaves X(R)
// unchanged) but must still be rejected.
func TestECDSAVerifyRejectsHighS(t *testing.T) {
	seckey := make([]byte, 32)
	var scalar Scalar
	for {
		if _, err := rand.Read(seckey); err != nil {
			t.Fatal(err)
		}
		if scalar.setB32Seckey(seckey) {
			break
		}
	}

	var pubkey PublicKey
	if err := ECPubkeyCreate(&pubkey, seckey); err != nil {
		t.Fatalf("failed to create public key: %v", err)
	}

	msghash := make([]byte, 32)
	if _, err := rand.Read(msghash); err != nil {
		t.Fatal(err)
	}

	var sig ECDSASignature
	if err := ECDSASign(&sig, msghash, seckey); err != nil {
		t.Fatalf("failed to sign: %v", err)
	}
	if sig.s.isHigh() {
		t.Fatal("ECDSASign must produce a low-S signature")
	}
	if !ECDSAVerify(&sig, msghash, &pubkey) {
		t.Error("low-S signature should verify")
	}

	twin := sig
	twin.s.negate(&twin.s)
	if !twin.s.isHigh() {
		t.Fatal("negated s should be the high-S twin")
	}
	if ECDSAVerify(&twin, msghash, &pubkey) {
		t.Error("high-S malleable twin should be rejected under strict verification")
	}
}

// TestECDSAVerifyLowSBoundary exercises the s = n/2 vs s = n/2 + 1 boundary
// directly: s = n/2 is accepted by the strict low-S gate, s = n/2 + 1 is not.
func TestECDSAVerifyLowSBoundary(t *testing.T) {
	half := Scalar{d: [4]uint64{scalarNH0, scalarNH1, scalarNH2, scalarNH3}}
	if half.isHigh() {
		t.Fatal("n/2 must not be classified as high")
	}

	var one Scalar
	one.d[0] = 1
	var halfPlusOne Scalar
	halfPlusOne.add(&half, &one)
	if !halfPlusOne.isHigh() {
		t.Fatal("n/2 + 1 must be classified as high")
	}
}

