package vault

// ExecOptions carries per-command dispatch context. ShareID is set when the
// command line bore a share prefix (§3).
type ExecOptions struct {
	ShareID string
}

// executorFunc is a pure function (w.r.t. the dataset reference it is
// given) implementing one command's semantics (§4.5). Positional args are
// already decoded per the manifest's encode flags.
type executorFunc func(d *Dataset, opts ExecOptions, args []string) error

var executors = map[string]executorFunc{
	"aid": execSetVaultID,
	"cmm": execComment,
	"fmt": execSetFormat,

	"cgr": execCreateGroup,
	"dgr": execDeleteGroup,
	"mgr": execMoveGroup,
	"tgr": execSetGroupTitle,

	"sga": execSetGroupAttribute,
	"dga": execDeleteGroupAttribute,

	"cen": execCreateEntry,
	"den": execDeleteEntry,
	"men": execMoveEntry,

	"sep": execSetEntryProperty,
	"dep": execDeleteEntryProperty,

	"sea": execSetEntryAttribute,
	"dea": execDeleteEntryAttribute,

	"sem": execSetEntryProperty,    // deprecated alias, routes to sep (§4.1)
	"dem": execDeleteEntryProperty, // deprecated alias, routes to dep (§4.1)

	"saa": execSetVaultAttribute,
	"daa": execDeleteVaultAttribute,

	"pad": execPad,
}

func execSetVaultID(d *Dataset, _ ExecOptions, args []string) error {
	d.ID = args[0]
	return nil
}

func execComment(_ *Dataset, _ ExecOptions, _ []string) error {
	return nil // no-op by design
}

func execSetFormat(d *Dataset, _ ExecOptions, args []string) error {
	d.Format = args[0]
	return nil
}

func execCreateGroup(d *Dataset, _ ExecOptions, args []string) error {
	parentID, newID := args[0], args[1]
	if !d.GroupExists(parentID) {
		return errParentNotFound
	}
	if d.GroupExists(newID) {
		return errDuplicateID
	}
	get, set := d.childSlot(parentID)
	if get == nil {
		return errParentNotFound
	}
	set(append(get(), newGroup(newID, parentID)))
	return nil
}

func execDeleteGroup(d *Dataset, _ ExecOptions, args []string) error {
	id := args[0]
	if !d.GroupExists(id) || id == RootID {
		return errTargetNotFound
	}
	g, _ := d.FindGroup(id)
	get, set := d.childSlot(g.ParentID)
	if get == nil {
		return errTargetNotFound
	}
	set(removeGroup(get(), id))
	return nil
}

func execMoveGroup(d *Dataset, _ ExecOptions, args []string) error {
	id, newParentID := args[0], args[1]
	g, ok := d.FindGroup(id)
	if !ok {
		return errTargetNotFound
	}
	if !d.GroupExists(newParentID) {
		return errParentNotFound
	}
	if newParentID == id || d.isDescendantOf(newParentID, id) {
		return errCyclicMove
	}
	oldGet, oldSet := d.childSlot(g.ParentID)
	oldSet(removeGroup(oldGet(), id))
	g.ParentID = newParentID
	newGet, newSet := d.childSlot(newParentID)
	newSet(append(newGet(), g))
	return nil
}

func execSetGroupTitle(d *Dataset, _ ExecOptions, args []string) error {
	g, ok := d.FindGroup(args[0])
	if !ok {
		return errTargetNotFound
	}
	g.Title = args[1]
	return nil
}

func execSetGroupAttribute(d *Dataset, _ ExecOptions, args []string) error {
	g, ok := d.FindGroup(args[0])
	if !ok {
		return errTargetNotFound
	}
	g.Attributes[args[1]] = args[2]
	return nil
}

func execDeleteGroupAttribute(d *Dataset, _ ExecOptions, args []string) error {
	g, ok := d.FindGroup(args[0])
	if !ok {
		return errTargetNotFound
	}
	delete(g.Attributes, args[1])
	return nil
}

func execCreateEntry(d *Dataset, _ ExecOptions, args []string) error {
	groupID, newID := args[0], args[1]
	if !d.GroupExists(groupID) {
		return errParentNotFound
	}
	if _, ok := d.FindEntry(newID); ok {
		return errDuplicateID
	}
	if groupID == RootID {
		return errParentNotFound // entries may not live directly under root
	}
	g, _ := d.FindGroup(groupID)
	g.Entries = append(g.Entries, newEntry(newID, groupID))
	return nil
}

func execDeleteEntry(d *Dataset, _ ExecOptions, args []string) error {
	e, ok := d.FindEntry(args[0])
	if !ok {
		return errTargetNotFound
	}
	g, ok := d.FindGroup(e.ParentID)
	if !ok {
		return errTargetNotFound
	}
	g.Entries = removeEntry(g.Entries, e.ID)
	return nil
}

func execMoveEntry(d *Dataset, _ ExecOptions, args []string) error {
	entryID, newGroupID := args[0], args[1]
	e, ok := d.FindEntry(entryID)
	if !ok {
		return errTargetNotFound
	}
	if !d.GroupExists(newGroupID) || newGroupID == RootID {
		return errParentNotFound
	}
	oldGroup, ok := d.FindGroup(e.ParentID)
	if !ok {
		return errTargetNotFound
	}
	oldGroup.Entries = removeEntry(oldGroup.Entries, entryID)
	e.ParentID = newGroupID
	newGroup, _ := d.FindGroup(newGroupID)
	newGroup.Entries = append(newGroup.Entries, e)
	return nil
}

func execSetEntryProperty(d *Dataset, _ ExecOptions, args []string) error {
	e, ok := d.FindEntry(args[0])
	if !ok {
		return errTargetNotFound
	}
	e.Properties[args[1]] = args[2]
	return nil
}

func execDeleteEntryProperty(d *Dataset, _ ExecOptions, args []string) error {
	e, ok := d.FindEntry(args[0])
	if !ok {
		return errTargetNotFound
	}
	delete(e.Properties, args[1])
	return nil
}

func execSetEntryAttribute(d *Dataset, _ ExecOptions, args []string) error {
	e, ok := d.FindEntry(args[0])
	if !ok {
		return errTargetNotFound
	}
	e.Attributes[args[1]] = args[2]
	return nil
}

func execDeleteEntryAttribute(d *Dataset, _ ExecOptions, args []string) error {
	e, ok := d.FindEntry(args[0])
	if !ok {
		return errTargetNotFound
	}
	delete(e.Attributes, args[1])
	return nil
}

func execSetVaultAttribute(d *Dataset, _ ExecOptions, args []string) error {
	d.Attributes[args[0]] = args[1]
	return nil
}

func execDeleteVaultAttribute(d *Dataset, _ ExecOptions, args []string) error {
	delete(d.Attributes, args[0])
	return nil
}

func execPad(_ *Dataset, _ ExecOptions, _ []string) error {
	return nil // no-op; the argument is opaque obfuscation
}
