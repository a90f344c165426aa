package p256k1

import (
	"errors"
)

// PublicKey holds a secp256k1 point in an opaque internal representation
// (raw X||Y, not a wire format) — mirrors libsecp256k1's secp256k1_pubkey.
// Use ECPubkeySerialize/ECPubkeyParse to cross a wire boundary.
type PublicKey struct {
	data [64]byte
}

// SEC1 serialization format flags.
const (
	ECCompressed   = 0x02
	ECUncompressed = 0x04
)

// ECPubkeyCreate derives the public key for a secret key: pubkey = seckey*G.
func ECPubkeyCreate(pubkey *PublicKey, seckey []byte) error {
	if len(seckey) != 32 {
		return errors.New("private key must be 32 bytes")
	}

	var scalar Scalar
	if !scalar.setB32Seckey(seckey) {
		return errors.New("invalid private key")
	}

	var point GroupElementJacobian
	EcmultGen(&point, &scalar)

	var affine GroupElementAffine
	affine.setGEJ(&point)
	affine.toBytes(pubkey.data[:])

	scalar.clear()
	point.clear()

	return nil
}

// ECPubkeyParse parses a SEC1 compressed (33-byte) or uncompressed (65-byte)
// public key.
func ECPubkeyParse(pubkey *PublicKey, input []byte) error {
	var point GroupElementAffine

	switch len(input) {
	case 33:
		if input[0] != 0x02 && input[0] != 0x03 {
			return errors.New("invalid compressed public key prefix")
		}
		var x FieldElement
		if err := x.setB32(input[1:33]); err != nil {
			return err
		}
		odd := input[0] == 0x03
		if !point.setXOVar(&x, odd) {
			return errors.New("x coordinate is not on the curve")
		}

	case 65:
		if input[0] != 0x04 {
			return errors.New("invalid uncompressed public key prefix")
		}
		var x, y FieldElement
		if err := x.setB32(input[1:33]); err != nil {
			return err
		}
		if err := y.setB32(input[33:65]); err != nil {
			return err
		}
		point.setXY(&x, &y)

	default:
		return errors.New("invalid public key length")
	}

	if !point.isValid() {
		return errors.New("public key is not on the curve")
	}

	point.toBytes(pubkey.data[:])
	return nil
}

// ECPubkeySerialize encodes a public key in SEC1 compressed or uncompressed
// form. Returns the number of bytes written, or 0 on error.
func ECPubkeySerialize(output []byte, pubkey *PublicKey, flags uint) int {
	var point GroupElementAffine
	point.fromBytes(pubkey.data[:])
	if point.isInfinity() {
		return 0
	}

	point.x.normalize()
	point.y.normalize()

	switch flags {
	case ECCompressed:
		if len(output) < 33 {
			return 0
		}
		if point.y.isOdd() {
			output[0] = 0x03
		} else {
			output[0] = 0x02
		}
		point.x.getB32(output[1:33])
		return 33

	case ECUncompressed:
		if len(output) < 65 {
			return 0
		}
		output[0] = 0x04
		point.x.getB32(output[1:33])
		point.y.getB32(output[33:65])
		return 65

	default:
		return 0
	}
}

// ECPubkeyCmp orders two public keys by their compressed SEC1 encoding.
func ECPubkeyCmp(pubkey1, pubkey2 *PublicKey) int {
	var point1, point2 GroupElementAffine
	point1.fromBytes(pubkey1.data[:])
	point2.fromBytes(pubkey2.data[:])

	if point1.equal(&point2) {
		return 0
	}

	var buf1, buf2 [33]byte
	ECPubkeySerialize(buf1[:], pubkey1, ECCompressed)
	ECPubkeySerialize(buf2[:], pubkey2, ECCompressed)

	for i := 0; i < 33; i++ {
		if buf1[i] != buf2[i] {
			if buf1[i] < buf2[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}
