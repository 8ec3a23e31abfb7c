package utils

// RunGate serializes conversion runs triggered from multiple sources (the
// HTTP handler, the file watcher, the periodic ticker). The fingerprint
// check-and-update and the output write form one critical section, so only
// one run may be in flight at a time.
type RunGate struct {
	slot chan struct{}
}

// NewRunGate creates an idle RunGate.
func NewRunGate() *RunGate {
	return &RunGate{slot: make(chan struct{}, 1)}
}

// Run executes fn, blocking until any in-flight run has finished.
func (g *RunGate) Run(fn func()) {
	g.slot <- struct{}{}
	defer func() { <-g.slot }()
	fn()
}

// TryRun executes fn only if no run is in flight, and reports whether fn
// ran. It never blocks.
func (g *RunGate) TryRun(fn func()) bool {
	select {
	case g.slot <- struct{}{}:
	default:
		return false
	}
	defer func() { <-g.slot }()
	fn()
	return true
}
