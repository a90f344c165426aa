package signer

import (
	"crypto/rand"
	"testing"
)

// Compares NativeSigner (this module's own engine) against BtcecSigner
// (github.com/btcsuite/btcd/btcec/v2) for the same operations, so a
// regression in the native engine's performance shows up relative to
// an established baseline rather than in isolation.

var (
	compBenchSeckey  []byte
	compBenchMsghash []byte
)

func initComparisonBenchData() {
	if compBenchSeckey != nil {
		return
	}

	compBenchSeckey = make([]byte, 32)
	for {
		if _, err := rand.Read(compBenchSeckey); err != nil {
			panic(err)
		}
		s := NewNativeSigner()
		if err := s.InitSec(compBenchSeckey); err == nil {
			break
		}
	}

	compBenchMsghash = make([]byte, 32)
	if _, err := rand.Read(compBenchMsghash); err != nil {
		panic(err)
	}
}

func BenchmarkPubkeyDerivation_Native(b *testing.B) {
	initComparisonBenchData()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s := NewNativeSigner()
		if err := s.InitSec(compBenchSeckey); err != nil {
			b.Fatalf("failed to init signer: %v", err)
		}
		_ = s.Pub()
	}
}

func BenchmarkPubkeyDerivation_Btcec(b *testing.B) {
	initComparisonBenchData()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s := NewBtcecSigner()
		if err := s.InitSec(compBenchSeckey); err != nil {
			b.Fatalf("failed to init signer: %v", err)
		}
		_ = s.Pub()
	}
}

func BenchmarkSign_Native(b *testing.B) {
	initComparisonBenchData()
	s := NewNativeSigner()
	if err := s.InitSec(compBenchSeckey); err != nil {
		b.Fatalf("failed to init signer: %v", err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := s.Sign(compBenchMsghash); err != nil {
			b.Fatalf("failed to sign: %v", err)
		}
	}
}

func BenchmarkSign_Btcec(b *testing.B) {
	initComparisonBenchData()
	s := NewBtcecSigner()
	if err := s.InitSec(compBenchSeckey); err != nil {
		b.Fatalf("failed to init signer: %v", err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := s.Sign(compBenchMsghash); err != nil {
			b.Fatalf("failed to sign: %v", err)
		}
	}
}

func BenchmarkVerify_Native(b *testing.B) {
	initComparisonBenchData()
	s := NewNativeSigner()
	if err := s.InitSec(compBenchSeckey); err != nil {
		b.Fatalf("failed to init signer: %v", err)
	}
	sig, err := s.Sign(compBenchMsghash)
	if err != nil {
		b.Fatalf("failed to sign: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		verifier := NewNativeSigner()
		if err := verifier.InitPub(s.Pub()); err != nil {
			b.Fatalf("failed to init verifier: %v", err)
		}
		valid, err := verifier.Verify(compBenchMsghash, sig)
		if err != nil || !valid {
			b.Fatalf("verification failed: %v", err)
		}
	}
}

func BenchmarkVerify_Btcec(b *testing.B) {
	initComparisonBenchData()
	s := NewBtcecSigner()
	if err := s.InitSec(compBenchSeckey); err != nil {
		b.Fatalf("failed to init signer: %v", err)
	}
	sig, err := s.Sign(compBenchMsghash)
	if err != nil {
		b.Fatalf("failed to sign: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		verifier := NewBtcecSigner()
		if err := verifier.InitPub(s.Pub()); err != nil {
			b.Fatalf("failed to init verifier: %v", err)
		}
		valid, err := verifier.Verify(compBenchMsghash, sig)
		if err != nil || !valid {
			b.Fatalf("verification failed: %v", err)
		}
	}
}

func BenchmarkECDH_Native(b *testing.B) {
	initComparisonBenchData()
	s1 := NewNativeSigner()
	if err := s1.Generate(); err != nil {
		b.Fatalf("failed to generate: %v", err)
	}
	s2 := NewNativeSigner()
	if err := s2.Generate(); err != nil {
		b.Fatalf("failed to generate: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := s1.ECDH(s2.Pub()); err != nil {
			b.Fatalf("ECDH failed: %v", err)
		}
	}
}

func BenchmarkECDH_Btcec(b *testing.B) {
	initComparisonBenchData()
	s1 := NewBtcecSigner()
	if err := s1.Generate(); err != nil {
		b.Fatalf("failed to generate: %v", err)
	}
	s2 := NewBtcecSigner()
	if err := s2.Generate(); err != nil {
		b.Fatalf("failed to generate: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := s1.ECDH(s2.Pub()); err != nil {
			b.Fatalf("ECDH failed: %v", err)
		}
	}
}
