package frame

// Scheduler runs a tick function once per frame until cancelled.
// Each tick runs to completion before the next frame is requested.
type Scheduler struct {
	frames  Source
	tick    func()
	handle  Handle
	running bool
	gen     uint64 // bumped on start and cancel; stale callbacks compare against it
	ticks   uint64
}

// NewScheduler creates a stopped scheduler on top of a frame source.
func NewScheduler(frames Source) *Scheduler {
	return &Scheduler{frames: frames}
}

// Start begins requesting frames for tick. Starting a running scheduler does nothing.
func (s *Scheduler) Start(tick func()) {
	if s.running {
		return
	}
	s.tick = tick
	s.running = true
	s.gen++
	s.request()
}

func (s *Scheduler) request() {
	gen := s.gen
	s.handle = s.frames.RequestFrame(func() { s.run(gen) })
}

func (s *Scheduler) run(gen uint64) {
	if !s.running || gen != s.gen {
		return
	}
	s.ticks++
	s.tick()
	// The tick itself may have cancelled us
	if s.running && gen == s.gen {
		s.request()
	}
}

// Cancel stops the loop and withdraws the pending frame request.
// Safe to call on a stopped scheduler.
func (s *Scheduler) Cancel() {
	if !s.running {
		return
	}
	s.running = false
	s.gen++
	s.frames.CancelFrame(s.handle)
	s.tick = nil
}

// Running reports whether ticks are being scheduled.
func (s *Scheduler) Running() bool {
	return s.running
}

// Ticks returns the number of ticks run so far.
func (s *Scheduler) Ticks() uint64 {
	return s.ticks
}
