package p256k1

import (
	"errors"
	"unsafe"
)

// RecoverableSignature is an ECDSA signature carrying the extra recovery
// id needed to reconstruct the signer's public key from the signature and
// message hash alone.
type RecoverableSignature struct {
	r, s  Scalar
	recid int
}

// ECDSASignRecoverable signs msghash32 with seckey and records the
// recovery id alongside r and s. Follows the same RFC 6979 nonce and
// low-S normalization as ECDSASign, tracking R's oddness through the
// normalization so the recid matches the returned (r, s).
func ECDSASignRecoverable(sig *RecoverableSignature, msghash32 []byte, seckey []byte) error {
	if len(msghash32) != 32 {
		return errors.New("message hash must be 32 bytes")
	}

	var sec Scalar
	if !sec.setB32Seckey(seckey) {
		return errors.New("invalid private key")
	}

	var msg Scalar
	msg.setB32(msghash32)

	nonceKey := make([]byte, 64)
	copy(nonceKey[:32], seckey)
	copy(nonceKey[32:], msghash32)
	rng := NewRFC6979HMACSHA256(nonceKey)
	memclear(unsafe.Pointer(&nonceKey[0]), 64)

	var nonceBytes [32]byte
	rng.Generate(nonceBytes[:])
	var nonce Scalar
	if !nonce.setB32Seckey(nonceBytes[:]) {
		rng.Generate(nonceBytes[:])
		if !nonce.setB32Seckey(nonceBytes[:]) {
			rng.Finalize()
			rng.Clear()
			return errors.New("nonce generation failed")
		}
	}
	rng.Finalize()
	rng.Clear()

	var rp GroupElementJacobian
	EcmultGen(&rp, &nonce)
	var rAff GroupElementAffine
	rAff.setGEJ(&rp)
	rAff.x.normalize()
	rAff.y.normalize()

	recid := 0
	if rAff.y.isOdd() {
		recid = 1
	}

	var rBytes [32]byte
	rAff.x.getB32(rBytes[:])

	var r Scalar
	if r.setB32(rBytes[:]) {
		// x(R) overflowed n and was reduced; recovery must add n back
		// before lifting r to the x-coordinate.
		recid |= 2
	}
	if r.isZero() {
		return errors.New("signature r is zero")
	}

	var n Scalar
	n.mul(&r, &sec)
	n.add(&n, &msg)

	var nonceInv Scalar
	nonceInv.inverse(&nonce)

	var s Scalar
	s.mul(&nonceInv, &n)
	if s.isZero() {
		return errors.New("signature s is zero")
	}
	if s.isHigh() {
		s.condNegate(true)
		recid ^= 1
	}

	sig.r = r
	sig.s = s
	sig.recid = recid

	sec.clear()
	msg.clear()
	nonce.clear()
	n.clear()
	nonceInv.clear()
	rp.clear()
	rAff.clear()

	return nil
}

// ECDSARecoverableSignatureConvert drops the recovery id, yielding a plain
// ECDSA signature.
func ECDSARecoverableSignatureConvert(sig *RecoverableSignature) *ECDSASignature {
	return &ECDSASignature{r: sig.r, s: sig.s}
}

// ECDSARecover reconstructs the public key that produced sig over
// msghash32: Q = r^-1 * (s*R - z*G), where R is rebuilt from r and the
// recovery id's parity bit.
func ECDSARecover(pubkey *PublicKey, sig *RecoverableSignature, msghash32 []byte) error {
	if len(msghash32) != 32 {
		return errors.New("message hash must be 32 bytes")
	}
	if sig.r.isZero() || sig.s.isZero() {
		return errors.New("invalid signature: r or s is zero")
	}
	if sig.recid < 0 || sig.recid > 3 {
		return errors.New("invalid recovery id")
	}

	var rBytes [32]byte
	sig.r.getB32(rBytes[:])
	var x FieldElement
	if err := x.setB32(rBytes[:]); err != nil {
		return errors.New("invalid signature r")
	}
	if sig.recid&2 != 0 {
		// x = r + n, only relevant for the (practically unreachable) case
		// where x(R) was at least the group order n during signing.
		var nFe FieldElement
		if err := nFe.setB32(scalarOrderBytes[:]); err != nil {
			return errors.New("invalid curve order constant")
		}
		x.add(&nFe)
		x.normalize()
	}

	var R GroupElementAffine
	if !R.setXOVar(&x, sig.recid&1 != 0) {
		return errors.New("invalid signature: r is not a valid x-coordinate")
	}

	var msg Scalar
	msg.setB32(msghash32)

	var rInv Scalar
	rInv.inverse(&sig.r)

	// u1 = -r^-1*z, u2 = r^-1*s ; Q = u1*G + u2*R
	var u1, u2 Scalar
	u1.mul(&rInv, &msg)
	u1.negate(&u1)
	u2.mul(&rInv, &sig.s)

	var Q GroupElementJacobian
	EcmultDualBase(&Q, &u1, &u2, &R)

	if Q.isInfinity() {
		return errors.New("recovered point is infinity")
	}

	var qAff GroupElementAffine
	qAff.setGEJ(&Q)
	qAff.toBytes(pubkey.data[:])

	msg.clear()
	rInv.clear()
	u1.clear()
	u2.clear()

	return nil
}

// scalarOrderBytes is the curve order n, big-endian.
var scalarOrderBytes = [32]byte{
	0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF,
	0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFE,
	0xBA, 0xAE, 0xDC, 0xE6, 0xAF, 0x48, 0xA0, 0x3B,
	0xBF, 0xD2, 0x5E, 0x8C, 0xD0, 0x36, 0x41, 0x41,
}
