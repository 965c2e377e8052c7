// Package vault implements the vault format engine: a command grammar, a
// history executor that folds commands into a dataset, share-namespacing,
// merge preprocessing, flattening, and a describe generator. See envelope
// and cryptoenv for the on-disk framing and default crypto primitives.
package vault

// RootID is the literal parent token used by groups directly under the
// pseudo-root of a vault.
const RootID = "0"

// Dataset is the in-memory materialisation produced by replaying a History.
type Dataset struct {
	ID         string
	Attributes map[string]string
	Groups     []*Group
	Format     string
}

// Group is a node in the vault's group tree. ParentID is either RootID or
// the ID of another group.
type Group struct {
	ID         string
	Title      string
	ParentID   string
	Attributes map[string]string
	Entries    []*Entry
	Groups     []*Group
}

// Entry holds user-facing properties (title, username, password, ...) and
// system-managed attributes, owned by exactly one group.
type Entry struct {
	ID         string
	ParentID   string
	Properties map[string]string
	Attributes map[string]string
}

// NewDataset returns an empty dataset, as produced by replaying an empty
// history or by Executor.Clear.
func NewDataset() *Dataset {
	return &Dataset{Attributes: map[string]string{}}
}

func newGroup(id, parentID string) *Group {
	return &Group{ID: id, ParentID: parentID, Attributes: map[string]string{}}
}

func newEntry(id, parentID string) *Entry {
	return &Entry{ID: id, ParentID: parentID, Properties: map[string]string{}, Attributes: map[string]string{}}
}

// FindGroup walks the dataset's group tree looking for id. ok is false if
// no group with that id exists.
func (d *Dataset) FindGroup(id string) (g *Group, ok bool) {
	if id == RootID {
		return nil, false
	}
	for _, top := range d.Groups {
		if g, ok = top.find(id); ok {
			return g, true
		}
	}
	return nil, false
}

func (g *Group) find(id string) (*Group, bool) {
	if g.ID == id {
		return g, true
	}
	for _, child := range g.Groups {
		if found, ok := child.find(id); ok {
			return found, true
		}
	}
	return nil, false
}

// FindEntry searches every group in the dataset for an entry with id.
func (d *Dataset) FindEntry(id string) (*Entry, bool) {
	for _, top := range d.Groups {
		if e, ok := top.findEntry(id); ok {
			return e, true
		}
	}
	return nil, false
}

func (g *Group) findEntry(id string) (*Entry, bool) {
	for _, e := range g.Entries {
		if e.ID == id {
			return e, true
		}
	}
	for _, child := range g.Groups {
		if e, ok := child.findEntry(id); ok {
			return e, true
		}
	}
	return nil, false
}

// GroupExists reports whether id names a real group, or is the root token.
func (d *Dataset) GroupExists(id string) bool {
	if id == RootID {
		return true
	}
	_, ok := d.FindGroup(id)
	return ok
}

// childSlot returns a getter for the slice that owns (or should own) the
// child groups of the group/root identified by parentID, plus a setter to
// reattach it. Both are nil if parentID names no group.
func (d *Dataset) childSlot(parentID string) (get func() []*Group, set func([]*Group)) {
	if parentID == RootID {
		return func() []*Group { return d.Groups }, func(v []*Group) { d.Groups = v }
	}
	parent, ok := d.FindGroup(parentID)
	if !ok {
		return nil, nil
	}
	return func() []*Group { return parent.Groups }, func(v []*Group) { parent.Groups = v }
}

// isDescendantOf reports whether candidateID names a group somewhere in the
// subtree rooted at ancestorID (or is ancestorID itself).
func (d *Dataset) isDescendantOf(candidateID, ancestorID string) bool {
	ancestor, ok := d.FindGroup(ancestorID)
	if !ok {
		return false
	}
	if ancestor.ID == candidateID {
		return true
	}
	var walk func(*Group) bool
	walk = func(g *Group) bool {
		for _, child := range g.Groups {
			if child.ID == candidateID {
				return true
			}
			if walk(child) {
				return true
			}
		}
		return false
	}
	return walk(ancestor)
}

// GetAllGroups returns every group in the dataset in describe order
// (pre-order, siblings left to right).
func (d *Dataset) GetAllGroups() []*Group {
	var out []*Group
	var walk func(*Group)
	walk = func(g *Group) {
		out = append(out, g)
		for _, child := range g.Groups {
			walk(child)
		}
	}
	for _, top := range d.Groups {
		walk(top)
	}
	return out
}

// GetAllEntries returns every entry in the dataset in describe order.
func (d *Dataset) GetAllEntries() []*Entry {
	var out []*Entry
	for _, g := range d.GetAllGroups() {
		out = append(out, g.Entries...)
	}
	return out
}

func removeGroup(groups []*Group, id string) []*Group {
	out := groups[:0]
	for _, g := range groups {
		if g.ID != id {
			out = append(out, g)
		}
	}
	return out
}

func removeEntry(entries []*Entry, id string) []*Entry {
	out := entries[:0]
	for _, e := range entries {
		if e.ID != id {
			out = append(out, e)
		}
	}
	return out
}
