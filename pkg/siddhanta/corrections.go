package siddhanta

// MandaCorrect applies the equation-of-center correction to a mean longitude
// given the apsis (mandocca) longitude. The evaluation is a fixed two-pass
// scheme: a half-strength first pass re-reads the anomaly, a second pass
// produces the final equation. It never iterates to a tolerance.
//
// The anomaly's sine is not scaled by an epicycle radius; the correction is
// bounded by asin's range alone. This is a flagged simplification of the
// classical geometry and the calibrated parameter table depends on it.
func MandaCorrect(meanLon, apsisLon float64) float64 {
	d1 := asinDeg(sinDeg(meanLon - apsisLon))
	l1 := meanLon + d1/2
	d2 := asinDeg(sinDeg(l1 - apsisLon))
	return Norm360(meanLon + d2)
}

// SighraCorrect applies the synodic correction to a manda-corrected
// longitude. diameterDeg is the full epicycle diameter in degrees; half of
// it, in arcminutes, is taken against the trigonometric radius. The ratio is
// clamped into [-1, 1] before asin: large epicycles (Venus, Mercury) push it
// out of range over much of the synodic cycle and the clamp is part of the
// model, not an error.
func SighraCorrect(lon, sunTrueLon, diameterDeg float64) float64 {
	h := diameterDeg * 30 // half-diameter in arcminutes
	ratio := h / SineRadius * sinDeg(lon-sunTrueLon)
	if ratio > 1 {
		ratio = 1
	} else if ratio < -1 {
		ratio = -1
	}
	return Norm360(lon - asinDeg(ratio))
}

// Latitude returns the ecliptic latitude in degrees for a true longitude,
// node longitude, and orbital inclination. Its magnitude never exceeds the
// inclination.
func Latitude(trueLon, nodeLon, inclinationDeg float64) float64 {
	return asinDeg(sinDeg(trueLon-nodeLon) * sinDeg(inclinationDeg))
}

// Declination returns the classical declination (krānti) in degrees for an
// ecliptic longitude, using the fixed obliquity of the model.
func Declination(lonDeg float64) float64 {
	return asinDeg(sinDeg(lonDeg) * sinDeg(ObliquityDeg))
}
