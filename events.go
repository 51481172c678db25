package collide

// EventKind identifies a callback of CollisionHandler.
type EventKind uint8

const (
	EventCollisionEnter EventKind = iota
	EventCollisionStay
	EventCollisionExit
	EventTriggerEnter
	EventTriggerStay
	EventTriggerExit
	EventSleep
	EventWake
)

func (k EventKind) String() string {
	switch k {
	case EventCollisionEnter:
		return "CollisionEnter"
	case EventCollisionStay:
		return "CollisionStay"
	case EventCollisionExit:
		return "CollisionExit"
	case EventTriggerEnter:
		return "TriggerEnter"
	case EventTriggerStay:
		return "TriggerStay"
	case EventTriggerExit:
		return "TriggerExit"
	case EventSleep:
		return "Sleep"
	case EventWake:
		return "Wake"
	}
	return "Unknown"
}

// IsTrigger reports whether k is one of the trigger callbacks.
func (k EventKind) IsTrigger() bool {
	return k >= EventTriggerEnter && k <= EventTriggerExit
}

type contactPhase uint8

const (
	phaseEnter contactPhase = iota
	phaseStay
	phaseExit
)

func contactEventKind(phase contactPhase, trigger bool) EventKind {
	k := EventCollisionEnter + EventKind(phase)
	if trigger {
		k += EventTriggerEnter
	}
	return k
}

// Event is one queued notification. Contact is set for the collision and
// trigger kinds, Body for Sleep and Wake.
type Event struct {
	Kind    EventKind
	Contact *Contact
	Body    *RigidBody
}

// ContactFunc receives a contact event. The contact is owned by the world:
// copy what you need, it is recycled once the step that reported it or the
// one after ends.
type ContactFunc func(w *World, c *Contact)

// BodyFunc receives a sleep or wake notification.
type BodyFunc func(w *World, b *RigidBody)

// CollisionHandler holds the callbacks a World dispatches at the end of every
// step. Nil fields are skipped.
//
// Callbacks run while the world is still locked: they may read contacts,
// colliders and bodies, move entities and change velocities, but adding or
// removing colliders and bodies must go through World.AddPostStepCallback.
type CollisionHandler struct {
	CollisionEnter ContactFunc
	CollisionStay  ContactFunc
	CollisionExit  ContactFunc

	TriggerEnter ContactFunc
	TriggerStay  ContactFunc
	TriggerExit  ContactFunc

	Sleep BodyFunc
	Wake  BodyFunc
}

// dispatch calls the callback for ev. A panicking callback is logged and
// does not stop the step.
func (h *CollisionHandler) dispatch(w *World, ev Event) {
	if h == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			w.log.Printf("%v callback: %v", ev.Kind, r)
		}
	}()
	var f ContactFunc
	switch ev.Kind {
	case EventCollisionEnter:
		f = h.CollisionEnter
	case EventCollisionStay:
		f = h.CollisionStay
	case EventCollisionExit:
		f = h.CollisionExit
	case EventTriggerEnter:
		f = h.TriggerEnter
	case EventTriggerStay:
		f = h.TriggerStay
	case EventTriggerExit:
		f = h.TriggerExit
	case EventSleep:
		if h.Sleep != nil {
			h.Sleep(w, ev.Body)
		}
		return
	case EventWake:
		if h.Wake != nil {
			h.Wake(w, ev.Body)
		}
		return
	}
	if f != nil {
		f(w, ev.Contact)
	}
}
