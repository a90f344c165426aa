package signer

import (
	"errors"

	"secp256k1.dev"
)

// NativeSigner implements I using this module's own BIP-340
// Schnorr and ECDH primitives.
type NativeSigner struct {
	keypair   *p256k1.KeyPair
	xonlyPub  *p256k1.XOnlyPubkey
	hasSecret bool
}

// NewNativeSigner returns an empty signer; call Generate, InitSec, or
// InitPub before using it.
func NewNativeSigner() *NativeSigner {
	return &NativeSigner{}
}

// evenKeypair returns kp if its public key has an even Y coordinate,
// otherwise negates the secret key and rebuilds the keypair so x-only
// ECDH (which fixes even Y by convention) stays consistent.
func evenKeypair(kp *p256k1.KeyPair) (*p256k1.KeyPair, *p256k1.XOnlyPubkey, error) {
	xonly, parity, err := p256k1.XOnlyPubkeyFromPubkey(kp.Pubkey())
	if err != nil {
		return nil, nil, err
	}
	if parity == 0 {
		return kp, xonly, nil
	}

	seckey := kp.Seckey()
	if !p256k1.ECSeckeyNegate(seckey) {
		return nil, nil, errors.New("failed to negate secret key")
	}
	negated, err := p256k1.KeyPairCreate(seckey)
	if err != nil {
		return nil, nil, err
	}
	xonly, _, err = p256k1.XOnlyPubkeyFromPubkey(negated.Pubkey())
	if err != nil {
		return nil, nil, err
	}
	return negated, xonly, nil
}

// Generate creates a fresh key pair from system entropy.
func (s *NativeSigner) Generate() error {
	kp, err := p256k1.KeyPairGenerate()
	if err != nil {
		return err
	}
	kp, xonly, err := evenKeypair(kp)
	if err != nil {
		return err
	}
	s.keypair = kp
	s.xonlyPub = xonly
	s.hasSecret = true
	return nil
}

// InitSec loads a 32-byte secret key and derives the matching public key.
func (s *NativeSigner) InitSec(sec []byte) error {
	if len(sec) != 32 {
		return errors.New("secret key must be 32 bytes")
	}
	kp, err := p256k1.KeyPairCreate(sec)
	if err != nil {
		return err
	}
	kp, xonly, err := evenKeypair(kp)
	if err != nil {
		return err
	}
	s.keypair = kp
	s.xonlyPub = xonly
	s.hasSecret = true
	return nil
}

// InitPub loads a 32-byte x-only public key for verification only.
func (s *NativeSigner) InitPub(pub []byte) error {
	if len(pub) != 32 {
		return errors.New("public key must be 32 bytes")
	}
	xonly, err := p256k1.XOnlyPubkeyParse(pub)
	if err != nil {
		return err
	}
	s.xonlyPub = xonly
	s.keypair = nil
	s.hasSecret = false
	return nil
}

func (s *NativeSigner) Sec() []byte {
	if !s.hasSecret || s.keypair == nil {
		return nil
	}
	return s.keypair.Seckey()
}

func (s *NativeSigner) Pub() []byte {
	if s.xonlyPub == nil {
		return nil
	}
	serialized := s.xonlyPub.Serialize()
	return serialized[:]
}

func (s *NativeSigner) Sign(msg []byte) ([]byte, error) {
	if !s.hasSecret || s.keypair == nil {
		return nil, errors.New("no secret key available for signing")
	}
	if len(msg) != 32 {
		return nil, errors.New("message must be 32 bytes")
	}
	var sig64 [64]byte
	if err := p256k1.SchnorrSign(sig64[:], msg, s.keypair, nil); err != nil {
		return nil, err
	}
	return sig64[:], nil
}

func (s *NativeSigner) Verify(msg, sig []byte) (bool, error) {
	if s.xonlyPub == nil {
		return false, errors.New("no public key available for verification")
	}
	if len(msg) != 32 {
		return false, errors.New("message must be 32 bytes")
	}
	if len(sig) != 64 {
		return false, errors.New("signature must be 64 bytes")
	}
	return p256k1.SchnorrVerify(sig, msg, s.xonlyPub), nil
}

func (s *NativeSigner) Zero() {
	if s.keypair != nil {
		s.keypair.Clear()
		s.keypair = nil
	}
	s.hasSecret = false
	s.xonlyPub = nil
}

// ECDH derives a shared secret with a 32-byte x-only peer public key,
// lifting it to the even-Y compressed point this module's PublicKey
// type requires.
func (s *NativeSigner) ECDH(pub []byte) ([]byte, error) {
	if !s.hasSecret || s.keypair == nil {
		return nil, errors.New("no secret key available for ECDH")
	}
	if len(pub) != 32 {
		return nil, errors.New("public key must be 32 bytes")
	}

	var compressedPub [33]byte
	compressedPub[0] = 0x02
	copy(compressedPub[1:], pub)

	var pubkey p256k1.PublicKey
	if err := p256k1.ECPubkeyParse(&pubkey, compressedPub[:]); err != nil {
		return nil, err
	}

	var sharedSecret [32]byte
	if err := p256k1.ECDH(sharedSecret[:], &pubkey, s.keypair.Seckey(), nil); err != nil {
		return nil, err
	}
	return sharedSecret[:], nil
}

// NativeGen implements Gen for BIP-340 key generation, tracking the
// compressed public key alongside the x-only form so Negate can flip
// parity without regenerating the key.
type NativeGen struct {
	keypair       *p256k1.KeyPair
	xonlyPub      *p256k1.XOnlyPubkey
	compressedPub *p256k1.PublicKey
}

func NewNativeGen() *NativeGen {
	return &NativeGen{}
}

// Generate returns the 33-byte compressed public key, preserving Y
// parity so the caller can decide whether to Negate.
func (g *NativeGen) Generate() ([]byte, error) {
	kp, err := p256k1.KeyPairGenerate()
	if err != nil {
		return nil, err
	}
	g.keypair = kp

	pubkey := *kp.Pubkey()
	var compressed [33]byte
	if n := p256k1.ECPubkeySerialize(compressed[:], &pubkey, p256k1.ECCompressed); n != 33 {
		return nil, errors.New("failed to serialize compressed public key")
	}
	g.compressedPub = &pubkey

	return compressed[:], nil
}

// Negate flips the key pair's public-key Y parity in place.
func (g *NativeGen) Negate() {
	if g.keypair == nil {
		return
	}
	seckey := g.keypair.Seckey()
	if !p256k1.ECSeckeyNegate(seckey) {
		return
	}
	kp, err := p256k1.KeyPairCreate(seckey)
	if err != nil {
		return
	}
	g.keypair = kp

	pubkey := *kp.Pubkey()
	var compressed [33]byte
	p256k1.ECPubkeySerialize(compressed[:], &pubkey, p256k1.ECCompressed)
	g.compressedPub = &pubkey

	if xonly, err := kp.XOnlyPubkey(); err == nil {
		g.xonlyPub = xonly
	}
}

// KeyPairBytes returns the raw secret key and the 32-byte x-only public key.
func (g *NativeGen) KeyPairBytes() (secBytes, pubBytes []byte) {
	if g.keypair == nil {
		return nil, nil
	}
	secBytes = g.keypair.Seckey()

	if g.xonlyPub == nil {
		xonly, err := g.keypair.XOnlyPubkey()
		if err != nil {
			return secBytes, nil
		}
		g.xonlyPub = xonly
	}
	serialized := g.xonlyPub.Serialize()
	return secBytes, serialized[:]
}
