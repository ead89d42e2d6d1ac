package nscp

import "math"

// NSCP 2015 elastic moduli, used to turn material grades into the E of a
// rigidity definition

const (
	// Modulus of elasticity for steel (Section 420.2.2)
	Es = 200000.0 // MPa

	// Normal-weight concrete modulus coefficient (Section 419.2.2.1)
	ecCoefficient = 4700.0
)

// Ec calculates the modulus of elasticity of normal-weight concrete in MPa
// NSCP 2015 Section 419.2.2.1: Ec = 4700√f'c
func Ec(fc float64) float64 {
	if fc <= 0 {
		return 0
	}
	return ecCoefficient * math.Sqrt(fc)
}

// GPa converts a modulus in MPa to the GPa used by rigidity definitions
func GPa(mpa float64) float64 {
	return mpa / 1000
}
