// Package sim runs the orbital simulation loop.
//
// A [System] owns an ordered body collection and a camera. Setup is
// AddBody for every body, then InitializeOrbits exactly once. After that
// each Step runs the force accumulator over all bodies, then the integrator,
// then any registered metrics and observers. Render emits draw calls for the
// current state through a [Drawer].
//
//	s, _ := sim.New(sim.DefaultConfig())
//	_ = s.AddBody(sun)
//	_ = s.AddBody(earth)
//	_ = s.InitializeOrbits()
//	for running {
//	    s.Step()
//	    s.Render(drawer)
//	}
//
// # Thread Safety
//
// A System is not safe for concurrent use. Front-ends must call Step, Pan
// and Zoom from the same goroutine. [Ensemble] runs independent systems in
// parallel.
package sim
