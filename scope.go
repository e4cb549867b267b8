package canvasfx

// Scope is a scoped-cleanup registrar. Release actions registered with
// OnCleanup run exactly once, last registered first, when the scope
// closes. Registering on a closed scope runs the action immediately.
//
// A Scope is not safe for concurrent use; it lives on the frame goroutine
// like everything else it tears down.
type Scope struct {
	actions []func()
	closed  bool
}

// NewScope returns an open scope.
func NewScope() *Scope {
	return &Scope{}
}

// OnCleanup registers fn to run when the scope closes.
func (s *Scope) OnCleanup(fn func()) {
	if fn == nil {
		return
	}
	if s.closed {
		fn()
		return
	}
	s.actions = append(s.actions, fn)
}

// Close runs every registered action in reverse order. Calling Close again
// does nothing.
func (s *Scope) Close() {
	if s.closed {
		return
	}
	s.closed = true
	for i := len(s.actions) - 1; i >= 0; i-- {
		fn := s.actions[i]
		s.actions[i] = nil
		fn()
	}
	s.actions = nil
}

// Closed reports whether Close has run.
func (s *Scope) Closed() bool {
	return s.closed
}

// Len returns the number of pending release actions.
func (s *Scope) Len() int {
	return len(s.actions)
}

// once wraps a release function so that only its first call has effect.
func once(fn func()) func() {
	if fn == nil {
		return func() {}
	}
	done := false
	return func() {
		if done {
			return
		}
		done = true
		fn()
	}
}
