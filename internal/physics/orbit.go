package physics

// Dominant returns the most massive body. Ties go to the earliest body in
// slice order. It returns nil for an empty slice.
func Dominant(bodies []*Body) *Body {
	var best *Body
	for _, b := range bodies {
		if best == nil || b.Mass > best.Mass {
			best = b
		}
	}
	return best
}

// InitializeOrbits gives every body other than the dominant one a circular
// orbital velocity around it. Static and pinned bodies are skipped, and a
// body sitting on the dominant body keeps zero velocity. It returns the
// dominant body.
func InitializeOrbits(bodies []*Body, g float64) *Body {
	central := Dominant(bodies)
	if central == nil {
		return nil
	}
	for _, b := range bodies {
		if b == central || b.Pinned {
			continue
		}
		b.OrbitalVelocityFor(central, g)
	}
	return central
}
