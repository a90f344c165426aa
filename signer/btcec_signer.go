package signer

import (
	"errors"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
)

// BtcecSigner implements I using btcsuite's battle-tested secp256k1
// and schnorr packages, for callers that want a drop-in cross-check
// against NativeSigner or prefer that dependency's audit trail.
type BtcecSigner struct {
	privKey   *btcec.PrivateKey
	pubKey    *btcec.PublicKey
	xonlyPub  []byte
	hasSecret bool
}

func NewBtcecSigner() *BtcecSigner {
	return &BtcecSigner{}
}

func evenPrivKey(privKey *btcec.PrivateKey) (*btcec.PrivateKey, *btcec.PublicKey, []byte) {
	pubKey := privKey.PubKey()
	xonlyPub := schnorr.SerializePubKey(pubKey)

	if pubKey.SerializeCompressed()[0] == 0x03 {
		scalar := privKey.Key
		scalar.Negate()
		privKey = &btcec.PrivateKey{Key: scalar}
		pubKey = privKey.PubKey()
		xonlyPub = schnorr.SerializePubKey(pubKey)
	}
	return privKey, pubKey, xonlyPub
}

func (s *BtcecSigner) Generate() error {
	privKey, err := btcec.NewPrivateKey()
	if err != nil {
		return err
	}
	s.privKey, s.pubKey, s.xonlyPub = evenPrivKey(privKey)
	s.hasSecret = true
	return nil
}

func (s *BtcecSigner) InitSec(sec []byte) error {
	if len(sec) != 32 {
		return errors.New("secret key must be 32 bytes")
	}
	privKey, _ := btcec.PrivKeyFromBytes(sec)
	s.privKey, s.pubKey, s.xonlyPub = evenPrivKey(privKey)
	s.hasSecret = true
	return nil
}

func (s *BtcecSigner) InitPub(pub []byte) error {
	if len(pub) != 32 {
		return errors.New("public key must be 32 bytes")
	}
	pubKey, err := schnorr.ParsePubKey(pub)
	if err != nil {
		return err
	}
	s.pubKey = pubKey
	s.xonlyPub = pub
	s.privKey = nil
	s.hasSecret = false
	return nil
}

func (s *BtcecSigner) Sec() []byte {
	if !s.hasSecret || s.privKey == nil {
		return nil
	}
	return s.privKey.Serialize()
}

func (s *BtcecSigner) Pub() []byte {
	return s.xonlyPub
}

func (s *BtcecSigner) Sign(msg []byte) ([]byte, error) {
	if !s.hasSecret || s.privKey == nil {
		return nil, errors.New("no secret key available for signing")
	}
	if len(msg) != 32 {
		return nil, errors.New("message must be 32 bytes")
	}
	signature, err := schnorr.Sign(s.privKey, msg)
	if err != nil {
		return nil, err
	}
	return signature.Serialize(), nil
}

func (s *BtcecSigner) Verify(msg, sig []byte) (bool, error) {
	if s.pubKey == nil {
		return false, errors.New("no public key available for verification")
	}
	if len(msg) != 32 {
		return false, errors.New("message must be 32 bytes")
	}
	if len(sig) != 64 {
		return false, errors.New("signature must be 64 bytes")
	}
	signature, err := schnorr.ParseSignature(sig)
	if err != nil {
		return false, err
	}
	return signature.Verify(msg, s.pubKey), nil
}

func (s *BtcecSigner) Zero() {
	if s.privKey != nil {
		s.privKey.Zero()
		s.privKey = nil
	}
	s.hasSecret = false
	s.pubKey = nil
	s.xonlyPub = nil
}

func (s *BtcecSigner) ECDH(pub []byte) ([]byte, error) {
	if !s.hasSecret || s.privKey == nil {
		return nil, errors.New("no secret key available for ECDH")
	}
	if len(pub) != 32 {
		return nil, errors.New("public key must be 32 bytes")
	}
	pubKey, err := schnorr.ParsePubKey(pub)
	if err != nil {
		return nil, err
	}
	return btcec.GenerateSharedSecret(s.privKey, pubKey), nil
}
