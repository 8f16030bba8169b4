package fractal

// MaxIter is the iteration budget per sample point. Points that survive it
// are treated as members of the set.
const MaxIter = 256

// bailout is the squared escape radius.
const bailout = 4.0

// Escape iterates z = z*z + c from z = 0 and returns the first step n at
// which |z| > 2, or maxIter if the orbit stays bounded.
//
// Products are converted to float64 explicitly so the compiler cannot fuse
// them into multiply-add instructions on architectures that have them.
func Escape(c complex128, maxIter int) int {
	cr, ci := real(c), imag(c)
	var zr, zi float64
	for n := 0; n < maxIter; n++ {
		rr := float64(zr * zr)
		ii := float64(zi * zi)
		if rr+ii > bailout {
			return n
		}
		zi = float64(2*zr*zi) + ci
		zr = rr - ii + cr
	}
	return maxIter
}
