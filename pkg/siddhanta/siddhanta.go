// Package siddhanta computes geocentric ecliptic positions of the Sun, Moon,
// the five classical planets, and the two lunar nodes using the epicyclic
// model of the Sūrya Siddhānta: uniform mean motion over a mahāyuga, a fixed
// two-pass equation-of-center (manda) correction, and a synodic (śīghra)
// correction relative to the Sun. The model is deliberately the simplified
// one: the manda pass applies asin(sin(anomaly)) with no epicycle-radius
// scaling. Constants in the default parameter table carry bīja-style fitted
// refinements on top of the canonical revolution counts.
package siddhanta

// Body identifies one of the nine computed bodies (navagraha).
type Body string

const (
	Sun     Body = "Sun"
	Moon    Body = "Moon"
	Mercury Body = "Mercury"
	Venus   Body = "Venus"
	Mars    Body = "Mars"
	Jupiter Body = "Jupiter"
	Saturn  Body = "Saturn"
	Rahu    Body = "Rahu"
	Ketu    Body = "Ketu"
)

// Bodies lists all computed bodies in traditional order. The slice is shared;
// callers must not modify it.
var Bodies = []Body{Sun, Moon, Mercury, Venus, Mars, Jupiter, Saturn, Rahu, Ketu}

// ParseBody returns the Body for a name, or false if the name is unknown.
func ParseBody(name string) (Body, bool) {
	for _, b := range Bodies {
		if string(b) == name {
			return b, true
		}
	}
	return "", false
}
