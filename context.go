package p256k1

import (
	"crypto/rand"
	"errors"
)

// Context flag bits, mirroring libsecp256k1's secp256k1_context_create
// flags: callers request the capabilities they need and the engine only
// builds the precomputed state those capabilities require.
const (
	ContextNone   uint = 0
	ContextSign   uint = 1 << 0
	ContextVerify uint = 1 << 1
)

// Context holds the precomputed state needed for signing and verification.
// Verification needs no secret-dependent precomputation; signing needs the
// generator-multiplication table and its blinding state.
type Context struct {
	flags        uint
	ecmultGenCtx *EcmultGenContext
}

// ContextCreate allocates a context with the requested capabilities.
func ContextCreate(flags uint) *Context {
	ctx := &Context{flags: flags}
	if flags&ContextSign != 0 {
		ctx.ecmultGenCtx = NewEcmultGenContext()
	}
	return ctx
}

// ContextDestroy clears and releases a context's secret-dependent state.
func ContextDestroy(ctx *Context) {
	if ctx == nil {
		return
	}
	if ctx.ecmultGenCtx != nil {
		ctx.ecmultGenCtx.clear()
		ctx.ecmultGenCtx = nil
	}
	ctx.flags = 0
}

// ContextRandomize rekeys a signing context's blinding factor from seed,
// or from fresh randomness when seed is nil.
func ContextRandomize(ctx *Context, seed []byte) error {
	if ctx == nil {
		return errors.New("context cannot be nil")
	}
	if seed != nil && len(seed) != 32 {
		return errors.New("seed must be 32 bytes")
	}
	if ctx.ecmultGenCtx == nil {
		ctx.ecmultGenCtx = NewEcmultGenContext()
	}

	if seed == nil {
		var fresh [32]byte
		if _, err := rand.Read(fresh[:]); err != nil {
			return err
		}
		seed = fresh[:]
	}
	return ctx.ecmultGenCtx.Blind(seed)
}

func (ctx *Context) canSign() bool {
	return ctx.flags&ContextSign != 0
}

func (ctx *Context) canVerify() bool {
	return ctx.flags&ContextVerify != 0
}

// ContextStatic is a verify-only context requiring no teardown, matching
// libsecp256k1's secp256k1_context_static.
var ContextStatic = &Context{flags: ContextVerify}
