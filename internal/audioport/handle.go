package audioport

import "sync/atomic"

// Handle is a process-unique port identifier.
type Handle int32

// HandleNone is the handle of a port that is not attached.
const HandleNone Handle = 0

// ModuleHandle identifies a hardware module.
type ModuleHandle int32

// ModuleNone is the handle reported by ports without a module.
const ModuleNone ModuleHandle = 0

// IDAllocator allocates process-unique handles.
type IDAllocator interface {
	NextUniqueID() Handle
}

// SequenceAllocator is an IDAllocator backed by an atomic counter.
// The zero value is ready to use; the first handle returned is 1.
type SequenceAllocator struct {
	last atomic.Int32
}

// NextUniqueID returns the next handle in sequence. It never returns HandleNone.
func (a *SequenceAllocator) NextUniqueID() Handle {
	return Handle(a.last.Add(1))
}

// HwModule is a hardware module that devices attach to.
type HwModule struct {
	Handle ModuleHandle
	Name   string
}

// NewHwModule creates a module whose handle is drawn from ids.
func NewHwModule(name string, ids IDAllocator) *HwModule {
	return &HwModule{
		Handle: ModuleHandle(ids.NextUniqueID()),
		Name:   name,
	}
}
