package dynamo

import "gonum.org/v1/gonum/spatial/r2"

// Distance returns |a - b|. It is symmetric in its arguments and zero only when
// a and b are equal.
func Distance(a, b r2.Vec) float64 {
	return r2.Norm(r2.Sub(a, b))
}

// Normalize returns v scaled to unit length. The zero vector is returned
// unchanged rather than as NaN, which r2.Unit would produce.
func Normalize(v r2.Vec) r2.Vec {
	if v.X == 0 && v.Y == 0 {
		return r2.Vec{}
	}
	return r2.Scale(1/r2.Norm(v), v)
}
