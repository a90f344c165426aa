package p256k1

// EcmultConst computes r = q*a for a variable base point in constant time,
// using the GLV endomorphism split and signed-digit table lookup.
func EcmultConst(r *GroupElementJacobian, a *GroupElementAffine, q *Scalar) {
	if a.isInfinity() || q.isZero() {
		r.setInfinity()
		return
	}
	ecmultConstGLV(r, a, q)
}

// EcmultSimple performs variable-time scalar multiplication: r = k*P.
func EcmultSimple(r *GroupElementJacobian, k *Scalar, p *GroupElementAffine) {
	if k.isZero() || p.infinity {
		r.setInfinity()
		return
	}

	r.setInfinity()
	for i := 255; i >= 0; i-- {
		r.double(r)
		if k.getBits(uint(i), 1) != 0 {
			r.addGE(r, p)
		}
	}
}

// EcmultDualBase computes r = a*G + b*Q in a single interleaved pass
// (Shamir's trick): one doubling per bit, with the G- and Q-multiples
// added into the same accumulator as their bits come up, instead of
// computing a*G and b*Q as two independent multiplications and adding
// the results. Both scalars are public in verification (ECDSA's
// u1*G + u2*P, Schnorr's s*G - e*P), so this is variable-time.
func EcmultDualBase(r *GroupElementJacobian, a *Scalar, b *Scalar, q *GroupElementAffine) {
	r.setInfinity()
	for bitPos := 255; bitPos >= 0; bitPos-- {
		r.double(r)
		if a.getBits(uint(bitPos), 1) != 0 {
			r.addGE(r, &GeneratorAffine)
		}
		if b.getBits(uint(bitPos), 1) != 0 {
			r.addGE(r, q)
		}
	}
}

// EcmultMulti performs multi-scalar multiplication: r = sum(k[i] * P[i]).
// Variable-time; intended for batch verification, not secret-dependent inputs.
func EcmultMulti(r *GroupElementJacobian, scalars []*Scalar, points []*GroupElementAffine) {
	if len(scalars) != len(points) {
		panic("scalars and points must have same length")
	}

	r.setInfinity()
	for i := 0; i < len(scalars); i++ {
		if !scalars[i].isZero() && !points[i].infinity {
			var temp GroupElementJacobian
			EcmultConst(&temp, points[i], scalars[i])
			r.addVar(r, &temp)
		}
	}
}

// EcmultStrauss performs Strauss multi-scalar multiplication using an
// interleaved binary method. Variable-time.
func EcmultStrauss(r *GroupElementJacobian, scalars []*Scalar, points []*GroupElementAffine) {
	if len(scalars) != len(points) {
		panic("scalars and points must have same length")
	}

	r.setInfinity()
	for bitPos := 255; bitPos >= 0; bitPos-- {
		r.double(r)
		for i := 0; i < len(scalars); i++ {
			if scalars[i].getBits(uint(bitPos), 1) != 0 {
				r.addGE(r, points[i])
			}
		}
	}
}

// EcmultEndomorphism performs scalar multiplication using the GLV
// endomorphism split, via Strauss' method on the two half-size scalars.
func EcmultEndomorphism(r *GroupElementJacobian, k *Scalar, p *GroupElementAffine) {
	if k.isZero() || p.infinity {
		r.setInfinity()
		return
	}

	var k1, k2 Scalar
	scalarSplitLambda(&k1, &k2, k)

	var betaP GroupElementAffine
	geMulLambda(&betaP, p)

	points := [2]*GroupElementAffine{p, &betaP}
	scalars := [2]*Scalar{&k1, &k2}

	EcmultStrauss(r, scalars[:], points[:])
}
