// Package signer adapts this module's Schnorr/ECDH primitives (and,
// as an alternate backend, btcec) to the signer interface consumed by
// next.orly.dev, so either implementation can be swapped in without the
// caller depending on package p256k1 directly.
package signer

import (
	orlysigner "next.orly.dev/pkg/interfaces/signer"
)

// I is the signing/verification/ECDH surface a caller depends on.
type I = orlysigner.I

// Gen is the key-generation surface used by callers that need raw
// secret/public key material rather than a bound signer.
type Gen = orlysigner.Gen
