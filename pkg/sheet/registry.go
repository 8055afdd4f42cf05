package sheet

import "github.com/matzehuels/sheetdock/pkg/geom"

// Registry is the explicit collection of live sheets owned by the composition
// root. Sheets register on creation and deregister on destruction; the snap
// algorithm scans it directly in registration order.
//
// A Registry also carries the single controller slot: at most one drag
// controller may be attached to it at a time.
type Registry struct {
	sheets     []*Sheet
	nextID     ID
	controller bool
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{nextID: 1}
}

// Register adds s, assigns its ID and rebinds its blocks' handles.
// Registering an already registered sheet returns its existing ID.
func (r *Registry) Register(s *Sheet) ID {
	if s.id != None && r.Get(s.id) == s {
		return s.id
	}
	id := r.nextID
	r.nextID++
	s.bind(id)
	r.sheets = append(r.sheets, s)
	return id
}

// Deregister removes the sheet with the given ID. It reports whether a sheet
// was removed.
func (r *Registry) Deregister(id ID) bool {
	for i, s := range r.sheets {
		if s.id == id {
			r.sheets = append(r.sheets[:i], r.sheets[i+1:]...)
			s.bind(None)
			return true
		}
	}
	return false
}

// Clear removes every sheet. The controller slot is left untouched.
func (r *Registry) Clear() {
	for _, s := range r.sheets {
		s.bind(None)
	}
	r.sheets = nil
}

// Get returns the sheet with the given ID, or nil.
func (r *Registry) Get(id ID) *Sheet {
	if id == None {
		return nil
	}
	for _, s := range r.sheets {
		if s.id == id {
			return s
		}
	}
	return nil
}

// Len returns the number of registered sheets.
func (r *Registry) Len() int { return len(r.sheets) }

// All returns the registered sheets in registration order. The returned slice
// is a copy; the sheets are not.
func (r *Registry) All() []*Sheet {
	out := make([]*Sheet, len(r.sheets))
	copy(out, r.sheets)
	return out
}

// Others returns every sheet except id, in registration order.
func (r *Registry) Others(id ID) []*Sheet {
	out := make([]*Sheet, 0, len(r.sheets))
	for _, s := range r.sheets {
		if s.id != id {
			out = append(out, s)
		}
	}
	return out
}

// Block resolves a block handle, returning nil for stale handles.
func (r *Registry) Block(ref BlockRef) *TextBlock {
	s := r.Get(ref.Sheet)
	if s == nil {
		return nil
	}
	return s.Block(ref.Block)
}

// SheetAt returns the topmost sheet containing the world point p, or None.
// Later registrations are drawn above earlier ones.
func (r *Registry) SheetAt(p geom.Vec) ID {
	for i := len(r.sheets) - 1; i >= 0; i-- {
		if r.sheets[i].Contains(p) {
			return r.sheets[i].id
		}
	}
	return None
}

// ClaimController reserves the controller slot. It returns false if another
// controller already holds it.
func (r *Registry) ClaimController() bool {
	if r.controller {
		return false
	}
	r.controller = true
	return true
}

// ReleaseController frees the controller slot.
func (r *Registry) ReleaseController() {
	r.controller = false
}
