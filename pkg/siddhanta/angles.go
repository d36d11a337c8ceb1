package siddhanta

import "math"

// Norm360 wraps an angle in degrees to the range [0, 360).
func Norm360(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

func sinDeg(deg float64) float64 {
	return math.Sin(deg * math.Pi / 180)
}

func asinDeg(v float64) float64 {
	return math.Asin(v) * 180 / math.Pi
}

// MeanLongitude returns the mean longitude in degrees after dayCount days for
// a body completing revolutions circuits per mahāyuga. Negative revolution
// counts model retrograde motion (the nodes) directly; the same function
// serves mean, apsis, and node longitudes.
func MeanLongitude(dayCount, revolutions float64) float64 {
	return Norm360(dayCount * revolutions / MahayugaDays * 360)
}
