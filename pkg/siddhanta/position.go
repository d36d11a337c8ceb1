package siddhanta

// Position is the computed state of one body at one instant. Longitudes are
// normalized into [0, 360).
type Position struct {
	LongitudeDeg   float64 `json:"longitude_deg"`
	LatitudeDeg    float64 `json:"latitude_deg"`
	DeclinationDeg float64 `json:"declination_deg"`
	// MeanLongitudeDeg and NodeLongitudeDeg are diagnostic values; for
	// Rāhu and Ketu they repeat the reported longitude.
	MeanLongitudeDeg float64 `json:"mean_longitude_deg"`
	NodeLongitudeDeg float64 `json:"node_longitude_deg"`
}

// Result is the outcome of a position query for a single instant.
type Result struct {
	JulianDay float64           `json:"julian_day"`
	DayCount  float64           `json:"day_count"`
	Positions map[Body]Position `json:"positions"`
}

// Engine evaluates the position pipeline over an immutable parameter table.
// It holds no mutable state; one Engine may be shared by any number of
// goroutines.
type Engine struct {
	params map[Body]Parameters

	// RahuOffsetDeg is a fixed offset added to the node longitude before
	// reporting Rāhu. Some traditions place Rāhu 180° from the computed
	// node; the convention is not settled, so it is configurable and
	// defaults to zero.
	RahuOffsetDeg float64
}

// New returns an Engine over a parameter table. The table is copied; later
// mutation of the argument does not affect the Engine.
func New(params map[Body]Parameters) *Engine {
	p := make(map[Body]Parameters, len(params))
	for b, v := range params {
		p[b] = v
	}
	return &Engine{params: p}
}

// NewDefault returns an Engine over the standard parameter table.
func NewDefault() *Engine {
	return New(DefaultParameters())
}

// Parameters returns the table entry for a body.
func (e *Engine) Parameters(b Body) (Parameters, bool) {
	p, ok := e.params[b]
	return p, ok
}

// truePosition runs mean motion, manda, and (when the body carries an
// epicycle) the śīghra correction for one body. sunTrue is the Sun's fully
// corrected longitude at the same instant; it is ignored for the Sun itself.
func (e *Engine) truePosition(dayCount float64, p Parameters, sunTrue float64) (lon, mean float64) {
	mean = MeanLongitude(dayCount, p.Revolutions)
	apsis := MeanLongitude(dayCount, p.ApsidalRevolutions)
	lon = MandaCorrect(mean, apsis)
	if p.SighraDiameterDeg != nil {
		lon = SighraCorrect(lon, sunTrue, *p.SighraDiameterDeg)
	}
	return lon, mean
}

// Compute evaluates every body at the given day count. The Sun is resolved
// first; its true longitude feeds every śīghra correction. The call is a pure
// function of the day count and the parameter table.
func (e *Engine) Compute(dayCount float64) map[Body]Position {
	out := make(map[Body]Position, len(e.params)+2)

	sunPar := e.params[Sun]
	sunTrue, sunMean := e.truePosition(dayCount, sunPar, 0)
	out[Sun] = Position{
		LongitudeDeg:     sunTrue,
		DeclinationDeg:   Declination(sunTrue),
		MeanLongitudeDeg: sunMean,
	}

	for b, p := range e.params {
		if b == Sun {
			continue
		}
		lon, mean := e.truePosition(dayCount, p, sunTrue)
		node := MeanLongitude(dayCount, p.NodeRevolutions)
		out[b] = Position{
			LongitudeDeg:     lon,
			LatitudeDeg:      Latitude(lon, node, p.InclinationDeg),
			DeclinationDeg:   Declination(lon),
			MeanLongitudeDeg: mean,
			NodeLongitudeDeg: node,
		}
	}

	rahu := Norm360(MeanLongitude(dayCount, NodeRevs) + e.RahuOffsetDeg)
	ketu := Norm360(rahu + 180)
	out[Rahu] = Position{
		LongitudeDeg:     rahu,
		DeclinationDeg:   Declination(rahu),
		MeanLongitudeDeg: rahu,
		NodeLongitudeDeg: rahu,
	}
	out[Ketu] = Position{
		LongitudeDeg:     ketu,
		DeclinationDeg:   Declination(ketu),
		MeanLongitudeDeg: ketu,
		NodeLongitudeDeg: ketu,
	}
	return out
}

// At evaluates every body at a civil instant. It validates the calendar
// components and reports the Julian Day and day count alongside the
// positions.
func (e *Engine) At(c CivilTime) (*Result, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	jd := c.JulianDay()
	dc := jd - JDKaliEpoch
	return &Result{
		JulianDay: jd,
		DayCount:  dc,
		Positions: e.Compute(dc),
	}, nil
}
