package game

// ActionHandle refers to an action stored in an ActionArena. A handle whose action was
// released never resolves again, even after its slot is reused.
type ActionHandle struct {
	index      uint32
	generation uint32
}

type actionSlot struct {
	action     Action
	generation uint32
	used       bool
}

// ActionArena stores the actions of all unit queues.
type ActionArena struct {
	slots []actionSlot
	free  []uint32
	live  int
}

func NewActionArena() *ActionArena {
	return &ActionArena{}
}

// Add stores the action and returns its handle.
func (r *ActionArena) Add(action Action) ActionHandle {
	var index uint32
	if n := len(r.free); n > 0 {
		index = r.free[n-1]
		r.free = r.free[:n-1]
	} else {
		index = uint32(len(r.slots))
		r.slots = append(r.slots, actionSlot{})
	}
	slot := &r.slots[index]
	slot.action = action
	slot.used = true
	r.live++
	return ActionHandle{index: index, generation: slot.generation}
}

// Get resolves a handle. The pointer stays valid until the handle is released or the arena grows.
func (r *ActionArena) Get(handle ActionHandle) (*Action, bool) {
	if int(handle.index) >= len(r.slots) {
		return nil, false
	}
	slot := &r.slots[handle.index]
	if !slot.used || slot.generation != handle.generation {
		return nil, false
	}
	return &slot.action, true
}

// Release frees the action behind handle. Releasing a stale handle does nothing.
func (r *ActionArena) Release(handle ActionHandle) bool {
	if _, ok := r.Get(handle); !ok {
		return false
	}
	slot := &r.slots[handle.index]
	slot.action = Action{}
	slot.used = false
	slot.generation++
	r.free = append(r.free, handle.index)
	r.live--
	return true
}

// Len returns the number of live actions.
func (r *ActionArena) Len() int {
	return r.live
}
