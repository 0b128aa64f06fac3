package turn

// State is one primary turn phase. Enter must fully initialize the state's
// resources (subscriptions included) before any Update runs; Exit must
// release everything Enter acquired, even when the exit is caused by a
// queued overlapping transition.
type State interface {
	Kind() Kind
	Enter(tc *Context)
	Exit(tc *Context)
	Update(tc *Context)
}

// Overlay is a suspending phase pushed above the primary state. While any
// overlay is present the primary state receives no updates, but keeps all
// its data.
type Overlay interface {
	OverlayKind() OverlayKind
	Enter(tc *Context)
	Exit(tc *Context)
	Update(tc *Context)
}

// Machine runs the two channels. Exactly one primary state is active at all
// times except inside the atomic transition itself. Transitions requested
// while one is mid-flight are queued in order, never dropped or interleaved.
type Machine struct {
	current  State
	overlays []Overlay

	queue         []State
	transitioning bool
}

// NewMachine creates a machine with no active state. Call Transition with
// the initial state to start it.
func NewMachine() *Machine {
	return &Machine{}
}

// Current returns the active primary state, or nil before the first
// transition.
func (m *Machine) Current() State {
	return m.current
}

// CurrentKind returns the active primary phase kind.
func (m *Machine) CurrentKind() Kind {
	if m.current == nil {
		return Kind(-1)
	}
	return m.current.Kind()
}

// Overlay returns the top of the overlay stack, or nil.
func (m *Machine) Overlay() Overlay {
	if len(m.overlays) == 0 {
		return nil
	}
	return m.overlays[len(m.overlays)-1]
}

// OverlayDepth returns the number of overlays on the stack.
func (m *Machine) OverlayDepth() int {
	return len(m.overlays)
}

// Transition requests a switch to a new primary state. A request for a state
// of the same kind as the currently active one is a no-op: the active
// state's identity, subscriptions and resources are untouched.
func (m *Machine) Transition(tc *Context, s State) {
	if s == nil {
		return
	}
	if m.current != nil && m.current.Kind() == s.Kind() {
		return
	}
	m.queue = append(m.queue, s)
	if m.transitioning {
		return
	}
	m.drain(tc)
}

// drain executes queued transitions one at a time, in request order. Any
// transition requested from inside an Enter or Exit lands on the queue and
// runs after the current one completes.
func (m *Machine) drain(tc *Context) {
	m.transitioning = true
	defer func() { m.transitioning = false }()

	for len(m.queue) > 0 {
		next := m.queue[0]
		m.queue = m.queue[1:]

		// Re-check against the state that is current by now: an earlier
		// queued transition may have made this one redundant.
		if m.current != nil && m.current.Kind() == next.Kind() {
			continue
		}

		// The outgoing state exits first so its subscriptions are gone
		// before its overlays unwind: overlay teardown may publish (an
		// abandoned fork ends its move), and a live handler would enqueue
		// a transition the caller never asked for.
		if m.current != nil {
			m.current.Exit(tc)
		}
		for len(m.overlays) > 0 {
			m.popTop(tc)
		}
		m.current = next
		next.Enter(tc)
	}
}

// PushOverlay suspends the primary channel under a new overlay. Overlays
// nest: a confirmation may stack above a fork selection.
func (m *Machine) PushOverlay(tc *Context, o Overlay) {
	if o == nil {
		return
	}
	m.overlays = append(m.overlays, o)
	o.Enter(tc)
}

// PopOverlay removes the top overlay, resuming whatever it suspended.
// Popping an empty stack is a no-op.
func (m *Machine) PopOverlay(tc *Context) {
	if len(m.overlays) == 0 {
		return
	}
	m.popTop(tc)
}

func (m *Machine) popTop(tc *Context) {
	top := m.overlays[len(m.overlays)-1]
	m.overlays = m.overlays[:len(m.overlays)-1]
	top.Exit(tc)
}

// Update runs one scheduler tick: the top overlay if any, otherwise the
// primary state.
func (m *Machine) Update(tc *Context) {
	if top := m.Overlay(); top != nil {
		top.Update(tc)
		return
	}
	if m.current != nil {
		m.current.Update(tc)
	}
}
