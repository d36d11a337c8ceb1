package siddhanta

// Parameters holds the immutable per-body constants of the model. Revolution
// counts are per mahāyuga; negative node revolutions encode the retrograde
// regression of the nodes.
type Parameters struct {
	Revolutions        float64
	ApsidalRevolutions float64
	NodeRevolutions    float64
	// SighraDiameterDeg is the full diameter of the śīghra epicycle in
	// degrees, or nil for bodies without a synodic correction (the Sun).
	SighraDiameterDeg *float64
	InclinationDeg    float64
}

// NodeRevs is the revolution count of the lunar node (Rāhu) per mahāyuga.
const NodeRevs = -232_238.0

func diam(d float64) *float64 { return &d }

// DefaultParameters returns the standard parameter table: canonical Sūrya
// Siddhānta revolution counts with bīja-style refinements fitted against a
// modern sidereal ephemeris. Fractional apsidal rates and epicycle diameters
// are calibration outputs, not canonical text values.
func DefaultParameters() map[Body]Parameters {
	return map[Body]Parameters{
		Sun: {
			Revolutions:        4_320_000,
			ApsidalRevolutions: 387,
		},
		Moon: {
			Revolutions:        57_753_336,
			ApsidalRevolutions: 488_203,
			NodeRevolutions:    NodeRevs,
			SighraDiameterDeg:  diam(63.33333333),
			InclinationDeg:     4.5,
		},
		Mercury: {
			Revolutions:        17_937_060,
			ApsidalRevolutions: 759.99208276,
			NodeRevolutions:    -488,
			SighraDiameterDeg:  diam(133),
			InclinationDeg:     2,
		},
		Venus: {
			Revolutions:        7_022_218.08765957,
			ApsidalRevolutions: 535,
			NodeRevolutions:    -903,
			SighraDiameterDeg:  diam(262),
			InclinationDeg:     2,
		},
		Mars: {
			Revolutions:        2_296_832,
			ApsidalRevolutions: 204,
			NodeRevolutions:    -214,
			SighraDiameterDeg:  diam(136.40396972),
			InclinationDeg:     1.5,
		},
		Jupiter: {
			Revolutions:        364_220,
			ApsidalRevolutions: 900,
			NodeRevolutions:    -174,
			SighraDiameterDeg:  diam(70),
			InclinationDeg:     1,
		},
		Saturn: {
			Revolutions:        146_568,
			ApsidalRevolutions: 39,
			NodeRevolutions:    -662,
			SighraDiameterDeg:  diam(39),
			InclinationDeg:     2,
		},
	}
}
