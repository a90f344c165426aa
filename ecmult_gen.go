package p256k1

import (
	"errors"
	"sync"
	"unsafe"
)

const (
	// Number of bytes in a 256-bit scalar
	numBytes = 32
	// Number of possible byte values
	numByteValues = 256
)

// bytePointTable stores precomputed byte points for each byte position
// bytePoints[byteNum][byteVal] = byteVal * 2^(8*(31-byteNum)) * G
// where byteNum is 0-31 (MSB to LSB) and byteVal is 0-255
// Each entry stores [X, Y] coordinates as 32-byte arrays
type bytePointTable [numBytes][numByteValues][2][32]byte

// EcmultGenContext holds precomputed data for generator multiplication,
// plus a blinding scalar/point pair used to randomize the intermediate
// state of EcmultGen against side-channel leakage.
type EcmultGenContext struct {
	bytePoints  bytePointTable
	initialized bool

	blindScalar Scalar
	blindPoint  GroupElementJacobian
}

var (
	// Global context for generator multiplication (initialized once)
	globalGenContext *EcmultGenContext
	genContextOnce   sync.Once
)

// initGenContext initializes the precomputed byte points table
func (ctx *EcmultGenContext) initGenContext() {
	var gJac GroupElementJacobian
	gJac.setGE(&Generator)

	var byteBases [numBytes]GroupElementJacobian

	// Base for byte 31 (LSB): 2^0 * G = G
	byteBases[31] = gJac

	for i := numBytes - 2; i >= 0; i-- {
		byteBases[i] = byteBases[i+1]
		for j := 0; j < 8; j++ {
			byteBases[i].double(&byteBases[i])
		}
	}

	for byteNum := 0; byteNum < numBytes; byteNum++ {
		base := byteBases[byteNum]

		var baseAff GroupElementAffine
		baseAff.setGEJ(&base)

		var ptJac GroupElementJacobian
		ptJac.setGE(&baseAff)
		var ptAff GroupElementAffine
		ptAff.setGEJ(&ptJac)
		ptAff.x.normalize()
		ptAff.y.normalize()
		ptAff.x.getB32(ctx.bytePoints[byteNum][1][0][:])
		ptAff.y.getB32(ctx.bytePoints[byteNum][1][1][:])

		var accJac GroupElementJacobian = ptJac
		var accAff GroupElementAffine

		for byteVal := 2; byteVal < numByteValues; byteVal++ {
			accJac.addVar(&accJac, &ptJac)
			accAff.setGEJ(&accJac)
			accAff.x.normalize()
			accAff.y.normalize()
			accAff.x.getB32(ctx.bytePoints[byteNum][byteVal][0][:])
			accAff.y.getB32(ctx.bytePoints[byteNum][byteVal][1][:])
		}
	}

	ctx.blindScalar.setInt(0)
	ctx.blindPoint.setInfinity()
	ctx.initialized = true
}

// getGlobalGenContext returns the global precomputed context
func getGlobalGenContext() *EcmultGenContext {
	genContextOnce.Do(func() {
		globalGenContext = &EcmultGenContext{}
		globalGenContext.initGenContext()
	})
	return globalGenContext
}

// NewEcmultGenContext creates a new generator multiplication context
func NewEcmultGenContext() *EcmultGenContext {
	ctx := &EcmultGenContext{}
	ctx.initGenContext()
	return ctx
}

// lookupBytePoint performs a constant-time scan of the 256 entries for a
// single byte position, selecting the one matching byteVal via cmov.
func (ctx *EcmultGenContext) lookupBytePoint(byteNum int, byteVal byte) GroupElementJacobian {
	var xFe, yFe FieldElement
	for v := 0; v < numByteValues; v++ {
		var xCand, yCand FieldElement
		xCand.setB32(ctx.bytePoints[byteNum][v][0][:])
		yCand.setB32(ctx.bytePoints[byteNum][v][1][:])
		flag := boolToInt(v == int(byteVal))
		xFe.cmov(&xCand, flag)
		yFe.cmov(&yCand, flag)
	}

	var ptAff GroupElementAffine
	ptAff.setXY(&xFe, &yFe)
	// Entry 0 of each byte position is the point at infinity; the table
	// holds no coordinates for it.
	ptAff.infinity = byteVal == 0
	var ptJac GroupElementJacobian
	ptJac.setGE(&ptAff)
	return ptJac
}

// ecmultGen computes r = n * G in constant time, using a per-byte
// precomputed table and a scalar blind to decorrelate intermediate state
// from the secret scalar.
func (ctx *EcmultGenContext) ecmultGen(r *GroupElementJacobian, n *Scalar) {
	if !ctx.initialized {
		panic("ecmult_gen context not initialized")
	}

	var blinded Scalar
	blinded.sub(n, &ctx.blindScalar)

	var scalarBytes [32]byte
	blinded.getB32(scalarBytes[:])

	acc := ctx.lookupBytePoint(0, scalarBytes[0])
	for byteNum := 1; byteNum < numBytes; byteNum++ {
		term := ctx.lookupBytePoint(byteNum, scalarBytes[byteNum])
		acc.addVar(&acc, &term)
	}

	acc.addVar(&acc, &ctx.blindPoint)
	*r = acc

	blinded.clear()
	memclear(unsafe.Pointer(&scalarBytes[0]), 32)
}

// Blind rekeys the blinding scalar/point pair from seed (32 bytes), or
// clears blinding when seed is nil.
func (ctx *EcmultGenContext) Blind(seed []byte) error {
	if seed == nil {
		ctx.blindScalar.setInt(0)
		ctx.blindPoint.setInfinity()
		return nil
	}
	if len(seed) != 32 {
		return errors.New("blind seed must be 32 bytes")
	}

	var blind Scalar
	blind.setB32(seed)

	var blindPointJac GroupElementJacobian
	ctx.ecmultGenUnblinded(&blindPointJac, &blind)

	ctx.blindScalar = blind
	ctx.blindPoint = blindPointJac
	return nil
}

// ecmultGenUnblinded computes n*G without applying the current blind,
// used internally to rekey the blind itself.
func (ctx *EcmultGenContext) ecmultGenUnblinded(r *GroupElementJacobian, n *Scalar) {
	var scalarBytes [32]byte
	n.getB32(scalarBytes[:])

	acc := ctx.lookupBytePoint(0, scalarBytes[0])
	for byteNum := 1; byteNum < numBytes; byteNum++ {
		term := ctx.lookupBytePoint(byteNum, scalarBytes[byteNum])
		acc.addVar(&acc, &term)
	}
	*r = acc
}

// clear wipes the blinding state of the context.
func (ctx *EcmultGenContext) clear() {
	ctx.blindScalar.clear()
	ctx.blindPoint.clear()
	ctx.initialized = false
}

// EcmultGen is the public interface for generator multiplication: r = n*G.
// Constant-time with respect to n.
func EcmultGen(r *GroupElementJacobian, n *Scalar) {
	if n.isZero() {
		r.setInfinity()
		return
	}
	ctx := getGlobalGenContext()
	ctx.ecmultGen(r, n)
}
