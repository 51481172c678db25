package collide

import (
	"fmt"
	"log"
	"math"
	"slices"

	"github.com/setanarut/vec"
)

// PostStepCallbackFunc runs once the world is unlocked at the end of a step.
type PostStepCallbackFunc func(w *World, key, data any)

type postStepCallback struct {
	f    PostStepCallbackFunc
	key  any
	data any
}

type candidate struct {
	a, b *Collider
	key  uint64
}

// World runs the collision pipeline over its colliders and bodies.
//
// Every Step integrates the bodies, collects candidate pairs from a spatial
// hash, runs the narrow phase on each pair in key order, resolves solid
// contacts, then reports Enter, Stay and Exit events and puts still bodies
// to sleep. A World is not safe for concurrent use.
type World struct {
	cfg      Config
	registry *Registry
	handler  *CollisionHandler
	log      *onceLogger

	hash       *SpatialHash[*Collider]
	contacts   *contactSet
	checked    map[uint64]struct{}
	candidates []candidate
	solid      []*Contact
	events     []Event
	bodyEvents []Event
	scratch    satScratch

	postStep     []postStepCallback
	skipPostStep bool

	stamp  uint64
	locked bool
}

// NewWorld returns an empty world. A nil cfg uses DefaultConfig; an invalid
// one is an error.
func NewWorld(cfg *Config) (*World, error) {
	c := DefaultConfig()
	if cfg != nil {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		c = *cfg
	}
	return &World{
		cfg:      c,
		registry: NewRegistry(),
		log:      newOnceLogger(NewLogger(nil)),
		hash:     NewSpatialHash[*Collider](c.CellSize),
		contacts: newContactSet(),
		checked:  make(map[uint64]struct{}),
	}, nil
}

// Config returns the current settings.
func (w *World) Config() Config {
	return w.cfg
}

// ApplyConfig validates and installs cfg. A change of gravity wakes every
// body, since sleeping bodies would otherwise ignore it.
func (w *World) ApplyConfig(cfg Config) error {
	if w.locked {
		return ErrWorldLocked
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.CellSize != w.cfg.CellSize {
		w.hash.SetCellSize(cfg.CellSize)
	}
	gravityChanged := cfg.Gravity != w.cfg.Gravity
	w.cfg = cfg
	if gravityChanged || !cfg.Sleep.Enabled {
		w.WakeAll()
	}
	return nil
}

// Gravity returns the gravity applied to bodies that use it.
func (w *World) Gravity() vec.Vec2 {
	return w.cfg.Gravity
}

// SetGravity changes gravity and wakes every body.
func (w *World) SetGravity(g vec.Vec2) {
	w.cfg.Gravity = g
	w.WakeAll()
}

// TimeStep returns the fixed step length in seconds.
func (w *World) TimeStep() float64 {
	return w.cfg.FixedDeltaTime
}

// SetHandler installs the callbacks dispatched at the end of each step.
func (w *World) SetHandler(h *CollisionHandler) {
	w.handler = h
}

// SetLogger redirects error output. A nil logger discards it.
func (w *World) SetLogger(l *log.Logger) {
	w.log.setOutput(l)
}

// Registry returns the store of colliders and bodies.
func (w *World) Registry() *Registry {
	return w.registry
}

// Stamp returns the number of the running step, or of the last one.
func (w *World) Stamp() uint64 {
	return w.stamp
}

// IsLocked returns true from inside a callback when colliders and bodies
// cannot be added or removed.
func (w *World) IsLocked() bool {
	return w.locked
}

// AddBody adds b to the world.
func (w *World) AddBody(b *RigidBody) error {
	if w.locked {
		return ErrWorldLocked
	}
	if b.Entity == nil {
		return ErrDetached
	}
	if b.world == w {
		return nil
	}
	if b.world != nil {
		return fmt.Errorf("collide: body %d already belongs to another world", b.id)
	}
	if b.Type == Dynamic && !(b.mass > 0) {
		return ErrInvalidMass
	}
	b.world = w
	b.snapshot()
	w.registry.addBody(b)
	return nil
}

// RemoveBody removes b. Colliders that reference it keep doing so; remove
// them first or use RemoveEntity.
func (w *World) RemoveBody(b *RigidBody) error {
	if w.locked {
		return ErrWorldLocked
	}
	if b.world != w || !w.registry.removeBody(b) {
		return fmt.Errorf("collide: body %d is not in this world", b.id)
	}
	b.world = nil
	return nil
}

// AddCollider adds c, and its body if the body is not in the world yet.
// The collider and its body must share one entity.
func (w *World) AddCollider(c *Collider) error {
	if w.locked {
		return ErrWorldLocked
	}
	if c.Entity == nil {
		return ErrDetached
	}
	if c.world == w {
		return nil
	}
	if c.world != nil {
		return fmt.Errorf("collide: collider %d already belongs to another world", c.id)
	}
	if err := c.Material.Validate(); err != nil {
		return err
	}
	if c.Body != nil {
		if c.Body.Entity != c.Entity {
			return ErrBodyMismatch
		}
		if err := w.AddBody(c.Body); err != nil {
			return err
		}
		c.Body.Wake()
	}
	c.world = w
	w.registry.addCollider(c)
	return nil
}

// RemoveCollider removes c. Contacts it had in the last step end with an
// Exit event in the next one.
func (w *World) RemoveCollider(c *Collider) error {
	if w.locked {
		return ErrWorldLocked
	}
	if c.world != w || !w.registry.removeCollider(c) {
		return fmt.Errorf("collide: collider %d is not in this world", c.id)
	}
	c.Body.Wake()
	c.world = nil
	c.isColliding = false
	return nil
}

// RemoveEntity removes every collider and body of e.
func (w *World) RemoveEntity(e *Entity) error {
	if w.locked {
		return ErrWorldLocked
	}
	for _, c := range w.registry.CollidersOf(e) {
		if err := w.RemoveCollider(c); err != nil {
			return err
		}
	}
	for {
		b, ok := w.registry.BodyOf(e)
		if !ok {
			return nil
		}
		if err := w.RemoveBody(b); err != nil {
			return err
		}
	}
}

// WakeAll wakes every sleeping body.
func (w *World) WakeAll() {
	for _, b := range w.registry.bodies {
		b.Wake()
	}
}

// Contacts returns the contacts found by the last step in key order. They
// are owned by the world and recycled when the next step ends.
func (w *World) Contacts() []*Contact {
	return w.contacts.active()
}

// ContactCount returns how many pairs touched in the last step.
func (w *World) ContactCount() int {
	return len(w.contacts.previous)
}

// AddPostStepCallback schedules f to run right after the current step
// unlocks the world, or at once if no step is running. Only one callback per
// non-nil key is kept; a second one for the same key is ignored and false
// is returned.
func (w *World) AddPostStepCallback(f PostStepCallbackFunc, key, data any) bool {
	if f == nil {
		return false
	}
	if !w.locked {
		f(w, key, data)
		return true
	}
	if key != nil {
		for _, cb := range w.postStep {
			if cb.key == key {
				return false
			}
		}
	}
	w.postStep = append(w.postStep, postStepCallback{f: f, key: key, data: data})
	return true
}

func (w *World) queueBodyEvent(kind EventKind, b *RigidBody) {
	w.bodyEvents = append(w.bodyEvents, Event{Kind: kind, Body: b})
}

// Step advances the world by one fixed step.
func (w *World) Step() {
	if w.locked {
		w.log.Printf("Step called from inside a step")
		return
	}
	dt := w.cfg.FixedDeltaTime
	w.stamp++
	w.locked = true
	defer w.unlock()
	defer w.recoverStep()

	w.integrate(dt)
	w.broadPhase()
	w.solid = w.solid[:0]
	for _, cand := range w.candidates {
		w.narrowPhase(cand, dt)
	}
	w.relax()
	w.events = w.contacts.diff(w.events[:0])
	w.markColliding()
	w.updateSleep(dt)
	w.dispatch()
	w.contacts.swap()
}

// recoverStep logs a panic that escaped the per-body and per-pair guards.
// The contacts of the failed step are dropped, so the next step is compared
// with the last completed one.
func (w *World) recoverStep() {
	r := recover()
	if r == nil {
		return
	}
	w.log.Printf("step failed: %v", r)
	w.contacts.discard()
	w.solid = w.solid[:0]
	clear(w.events)
	w.events = w.events[:0]
	clear(w.bodyEvents)
	w.bodyEvents = w.bodyEvents[:0]
}

// integrate snapshots every body, then moves awake dynamic and kinematic ones.
func (w *World) integrate(dt float64) {
	for _, b := range w.registry.bodies {
		w.integrateBody(b, dt)
	}
}

func (w *World) integrateBody(b *RigidBody, dt float64) {
	defer func() {
		if r := recover(); r != nil {
			w.log.Printf("body %d: %v", b.id, r)
		}
	}()
	if b.Entity == nil {
		w.log.Printf("body %d: %v", b.id, ErrDetached)
		return
	}
	b.snapshot()
	switch b.Type {
	case Dynamic:
		if b.sleeping {
			return
		}
		if err := b.integrateVelocity(w.cfg.Gravity, dt); err != nil {
			w.log.Printf("body %d: %v", b.id, err)
			return
		}
		b.integratePosition(dt)
	case Kinematic:
		b.integratePosition(dt)
	}
}

// sweptBounds covers the collider at both the start and the end of the step.
func sweptBounds(c *Collider) Bounds {
	end := c.Bounds()
	b := c.Body
	if b == nil || b.Type == Static || b.sleeping {
		return end
	}
	return end.Merge(c.boundsAt(b.startTransform()))
}

// broadPhase fills w.candidates with the unique pairs sharing a cell, sorted by key.
func (w *World) broadPhase() {
	w.hash.Clear()
	for _, c := range w.registry.colliders {
		if !c.Enabled {
			continue
		}
		if err := c.attached(); err != nil {
			w.log.Printf("collider %d: %v", c.id, err)
			continue
		}
		bb := sweptBounds(c)
		w.hash.Insert(bb.Min, bb.Max, c)
	}

	clear(w.checked)
	w.candidates = w.candidates[:0]
	for bucket := range w.hash.Buckets() {
		for i := 0; i < len(bucket); i++ {
			for j := i + 1; j < len(bucket); j++ {
				a, b := bucket[i], bucket[j]
				if a == b {
					continue
				}
				if a.id > b.id {
					a, b = b, a
				}
				key := PairKey(a.id, b.id)
				if _, ok := w.checked[key]; ok {
					continue
				}
				w.checked[key] = struct{}{}
				if rejectPair(a, b) {
					continue
				}
				w.candidates = append(w.candidates, candidate{a: a, b: b, key: key})
			}
		}
	}
	slices.SortFunc(w.candidates, func(x, y candidate) int {
		switch {
		case x.key < y.key:
			return -1
		case x.key > y.key:
			return 1
		}
		return 0
	})
}

// rejectPair filters pairs that may never touch.
func rejectPair(a, b *Collider) bool {
	if a.Body != nil && a.Body == b.Body {
		return true
	}
	if a.Entity == b.Entity && (a.IgnoreSelfCollisions || b.IgnoreSelfCollisions) {
		return true
	}
	if a.Filter.Reject(b.Filter) {
		return true
	}
	return a.fixed() && b.fixed()
}

// narrowPhase tests one candidate pair. A failure is logged once and only
// drops this pair for this step.
func (w *World) narrowPhase(cand candidate, dt float64) {
	a, b := cand.a, cand.b
	defer func() {
		if r := recover(); r != nil {
			w.log.Printf("pair %d/%d: %v", a.id, b.id, r)
		}
	}()

	if a.immobile() && b.immobile() {
		w.contacts.carry(cand.key, w.stamp)
		return
	}

	c := w.contacts.get()
	ok, err := collide(c, a, b, &w.scratch)
	if err != nil {
		w.contacts.put(c)
		w.log.Printf("%v", err)
		return
	}
	if !ok {
		w.contacts.put(c)
		return
	}
	c.Key = cand.key
	c.stamp = w.stamp
	c.Trigger = a.IsTrigger || b.IsTrigger
	if !c.Trigger {
		w.wakeTouching(a.Body, b.Body)
		resolveContact(c, dt, w.cfg.rules())
		w.solid = append(w.solid, c)
	}
	w.contacts.add(c)
}

// relax repeats the positional correction over the solid contacts of the
// step, in key order, until no overlap deeper than PositionSlop is left or
// PositionIterations passes have run. A single pass leaves stacks sunk into
// their support: lifting a box off the floor can push it into the box below.
func (w *World) relax() {
	for range w.cfg.PositionIterations {
		worst := 0.0
		for _, c := range w.solid {
			worst = math.Max(worst, w.separate(c))
		}
		if worst <= w.cfg.PositionSlop {
			return
		}
	}
}

// separate pushes the bodies of c apart by their current overlap along the
// contact normal and returns that overlap.
func (w *World) separate(c *Contact) float64 {
	shareA, shareB := CorrectionShares(c.A.Body, c.B.Body)
	if shareA == 0 && shareB == 0 {
		return 0
	}
	if o := c.A.Bounds().Overlap(c.B.Bounds()); o.X <= 0 || o.Y <= 0 {
		return 0
	}
	w.scratch.vertsA = c.A.Vertices(w.scratch.vertsA[:0])
	w.scratch.vertsB = c.B.Vertices(w.scratch.vertsB[:0])
	_, maxA := project(w.scratch.vertsA, c.Normal)
	minB, _ := project(w.scratch.vertsB, c.Normal)
	depth := maxA - minB
	if depth <= w.cfg.PositionSlop {
		return depth
	}
	correctPositions(c, depth, shareA, shareB)
	return depth
}

// wakeTouching wakes a sleeping body that a moving body ran into.
func (w *World) wakeTouching(a, b *RigidBody) {
	if a.IsSleeping() && b.isMoving(w.cfg.Sleep) {
		a.Wake()
	}
	if b.IsSleeping() && a.isMoving(w.cfg.Sleep) {
		b.Wake()
	}
}

func (w *World) markColliding() {
	for _, c := range w.registry.colliders {
		c.isColliding = false
	}
	for _, c := range w.contacts.current {
		c.A.isColliding = true
		c.B.isColliding = true
	}
}

func (w *World) updateSleep(dt float64) {
	for _, b := range w.registry.bodies {
		b.updateSleep(w.cfg.Sleep, dt)
	}
}

// dispatch hands the step's contact events, then the body events, to the handler.
func (w *World) dispatch() {
	if w.handler == nil {
		w.bodyEvents = w.bodyEvents[:0]
		return
	}
	for _, ev := range w.events {
		w.handler.dispatch(w, ev)
	}
	clear(w.events)
	// sleep and wake callbacks may wake more bodies
	for i := 0; i < len(w.bodyEvents); i++ {
		w.handler.dispatch(w, w.bodyEvents[i])
	}
	clear(w.bodyEvents)
	w.bodyEvents = w.bodyEvents[:0]
}

func (w *World) unlock() {
	w.locked = false
	if w.skipPostStep {
		return
	}
	w.skipPostStep = true
	for i := 0; i < len(w.postStep); i++ {
		w.runPostStep(w.postStep[i])
	}
	clear(w.postStep)
	w.postStep = w.postStep[:0]
	w.skipPostStep = false
}

func (w *World) runPostStep(cb postStepCallback) {
	defer func() {
		if r := recover(); r != nil {
			w.log.Printf("post-step callback: %v", r)
		}
	}()
	cb.f(w, cb.key, cb.data)
}
