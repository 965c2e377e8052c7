package vault

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rsms/go-testutil"
)

// seed scenario 1: create group at root.
func TestSeedCreateGroupAtRoot(t *testing.T) {
	assert := testutil.NewAssert(t)

	x := NewExecutor()
	const g1 = "11111111-1111-1111-1111-111111111111"
	err := x.Execute(MustBuildCommand("cgr", RootID, g1))
	assert.Ok("execute ok", err == nil)

	g, ok := x.Dataset().FindGroup(g1)
	assert.Ok("group exists", ok)
	assert.Eq("group parent is root", g.ParentID, RootID)

	h := x.GetHistory()
	assert.Eq("history has cgr + auto-pad", len(h), 2)
	assert.Ok("history[0] is the cgr line", strings.HasPrefix(h[0], "cgr "))
	assert.Ok("history[1] is the pad line", strings.HasPrefix(h[1], "pad "))
	assert.Ok("dirty after execute", x.IsDirty())
}

// seed scenario 2: round-trip through envelope is exercised in
// envelope/envelope_test.go, where the Env/Credentials implementations
// live; here we cover the lower-level Replay half of that round trip.
func TestSeedReplayFromRawLines(t *testing.T) {
	assert := testutil.NewAssert(t)

	lines := History{"fmt a", "aid 22222222-2222-2222-2222-222222222222"}
	d, err := Replay(lines)
	assert.Ok("replay ok", err == nil)
	assert.Eq("format", d.Format, "a")
	assert.Eq("id", d.ID, "22222222-2222-2222-2222-222222222222")
}

// seed scenario 3: share demux.
func TestSeedShareDemux(t *testing.T) {
	assert := testutil.NewAssert(t)

	const shareID = "5555aaaa-5555-aaaa-5555-aaaaaaaaaaaa"
	lines := History{
		"cgr 0 G1",
		"$" + shareID + " cen G1 E1",
		"cmm hello",
	}
	buckets := Demux(lines)

	assert.Eq("base bucket", []string(buckets[BaseKey]), []string{"cgr 0 G1", "cmm hello"})
	assert.Eq("share bucket", []string(buckets[shareID]), []string{"cen G1 E1"})
}

// seed scenario 4: destructive strip.
func TestSeedDestructiveStrip(t *testing.T) {
	assert := testutil.NewAssert(t)

	lines := History{"cgr 0 G1", "cen G1 E1", "dep E1 password", "den E1", "dgr G1"}
	stripped, report := StripDestructive(lines)

	assert.Eq("stripped history", []string(stripped), []string{"cgr 0 G1", "cen G1 E1"})
	assert.Eq("total stripped", report.TotalStripped, 3)
	assert.Eq("dep count", report.StrippedByShort["dep"], 1)
	assert.Eq("den count", report.StrippedByShort["den"], 1)
	assert.Eq("dgr count", report.StrippedByShort["dgr"], 1)
}

// seed scenario 4b: stripping is idempotent.
func TestStripDestructiveIsIdempotent(t *testing.T) {
	assert := testutil.NewAssert(t)

	lines := History{"cgr 0 G1", "cen G1 E1", "dep E1 password", "den E1", "dgr G1"}
	once, _ := StripDestructive(lines)
	twice, report := StripDestructive(once)

	assert.Eq("second pass removes nothing", report.TotalStripped, 0)
	assert.Eq("stable under a second pass", []string(once), []string(twice))
}

// seed scenario 5: flatten preserves state, driven by a fixed action-mix
// generator over 200 commands.
func TestSeedFlattenPreservesState(t *testing.T) {
	assert := testutil.NewAssert(t)

	x := NewExecutor()
	applyActionMix(t, x, 200)

	before := x.GetHistory()
	beforeDataset := snapshotDataset(x.Dataset())

	x.Flatten()

	afterDataset := snapshotDataset(x.Dataset())
	assert.Ok("dataset unchanged by flatten", cmp.Equal(beforeDataset, afterDataset))
	assert.Ok("new history length <= old", len(x.GetHistory()) <= len(before))
}

// seed scenario 6: legacy meta alias routes to the property executor.
func TestSeedLegacyMetaAlias(t *testing.T) {
	assert := testutil.NewAssert(t)

	x := NewExecutor()
	const g1 = "11111111-1111-1111-1111-111111111111"
	const e1 = "22222222-2222-2222-2222-222222222222"
	err := x.Execute(
		MustBuildCommand("cgr", RootID, g1),
		MustBuildCommand("cen", g1, e1),
	)
	assert.Ok("setup ok", err == nil)

	err = x.Execute(MustBuildCommand("sem", e1, "note", "hi"))
	assert.Ok("sem executes ok", err == nil)

	e, ok := x.Dataset().FindEntry(e1)
	assert.Ok("entry exists", ok)
	assert.Eq("meta alias set a property", e.Properties["note"], "hi")
}

// boundary: empty history yields empty dataset.
func TestEmptyHistoryYieldsEmptyDataset(t *testing.T) {
	assert := testutil.NewAssert(t)
	d, err := Replay(nil)
	assert.Ok("replay ok", err == nil)
	assert.Eq("no groups", len(d.Groups), 0)
}

// boundary: cen against a missing group is rejected and history is
// unchanged.
func TestCreateEntryMissingGroupRejected(t *testing.T) {
	assert := testutil.NewAssert(t)

	x := NewExecutor()
	err := x.Execute(MustBuildCommand("cen", "does-not-exist", NewID()))
	assert.Ok("rejected", err != nil)

	var cee *CommandExecutionError
	assert.Ok("is a CommandExecutionError", asCommandExecutionError(err, &cee))
	assert.Eq("short key recorded", cee.Short, "cen")

	assert.Eq("history unchanged", len(x.GetHistory()), 0)
	assert.Ok("not dirty", !x.IsDirty())
}

// boundary: duplicate group id rejected.
func TestCreateGroupDuplicateIDRejected(t *testing.T) {
	assert := testutil.NewAssert(t)

	x := NewExecutor()
	g1 := NewID()
	assert.Ok("first create ok", x.Execute(MustBuildCommand("cgr", RootID, g1)) == nil)
	err := x.Execute(MustBuildCommand("cgr", RootID, g1))
	assert.Ok("duplicate rejected", err != nil)
}

// boundary: moving a group beneath its own descendant is rejected.
func TestMoveGroupBeneathDescendantRejected(t *testing.T) {
	assert := testutil.NewAssert(t)

	x := NewExecutor()
	parent, child := NewID(), NewID()
	assert.Ok("setup ok", x.Execute(
		MustBuildCommand("cgr", RootID, parent),
		MustBuildCommand("cgr", parent, child),
	) == nil)

	err := x.Execute(MustBuildCommand("mgr", parent, child))
	assert.Ok("cyclic move rejected", err != nil)
}

// boundary: a property value with spaces and quotes round-trips exactly.
func TestPropertyValueRoundTripsByteExactly(t *testing.T) {
	assert := testutil.NewAssert(t)

	x := NewExecutor()
	g1, e1 := NewID(), NewID()
	const value = `has spaces and "quotes" too`
	assert.Ok("setup ok", x.Execute(
		MustBuildCommand("cgr", RootID, g1),
		MustBuildCommand("cen", g1, e1),
		MustBuildCommand("sep", e1, "note", value),
	) == nil)

	e, _ := x.Dataset().FindEntry(e1)
	assert.Eq("value round-trips", e.Properties["note"], value)
}

// boundary: a share-prefixed line mutates the dataset and is preserved
// with its prefix in history.
func TestSharePrefixedLinePreservedInHistory(t *testing.T) {
	assert := testutil.NewAssert(t)

	x := NewExecutor()
	g1 := NewID()
	assert.Ok("setup ok", x.Execute(MustBuildCommand("cgr", RootID, g1)) == nil)

	shareID := NewID()
	line := "$" + shareID + " " + MustBuildCommand("tgr", g1, "Shared Title")
	assert.Ok("share line executes", x.Execute(line) == nil)

	g, _ := x.Dataset().FindGroup(g1)
	assert.Eq("title applied", g.Title, "Shared Title")

	h := x.GetHistory()
	found := false
	for _, l := range h {
		if l == line {
			found = true
		}
	}
	assert.Ok("share-prefixed line preserved verbatim", found)
}

// invariant: clear() returns the executor to a fresh-constructed state.
func TestClearReturnsToFreshState(t *testing.T) {
	assert := testutil.NewAssert(t)

	x := NewExecutor()
	assert.Ok("setup ok", x.Execute(MustBuildCommand("cgr", RootID, NewID())) == nil)
	x.Clear()

	assert.Eq("history empty", len(x.GetHistory()), 0)
	assert.Ok("not dirty", !x.IsDirty())
	assert.Eq("dataset has no groups", len(x.Dataset().Groups), 0)
}

// invariant: for every history accepted by the executor, replay(history)
// equals the live dataset.
func TestReplayMatchesLiveDataset(t *testing.T) {
	assert := testutil.NewAssert(t)

	x := NewExecutor()
	applyActionMix(t, x, 40)

	replayed, err := Replay(x.GetHistory())
	assert.Ok("replay ok", err == nil)
	assert.Ok("replay matches live dataset", cmp.Equal(snapshotDataset(replayed), snapshotDataset(x.Dataset())))
}

func TestValidateReportsFirstFailure(t *testing.T) {
	assert := testutil.NewAssert(t)
	err := Validate(History{"cgr 0 G1", "cen does-not-exist E1"})
	assert.Ok("validate reports the cen failure", err != nil)
}

// asCommandExecutionError is errors.As without importing errors in every
// test file that needs it.
func asCommandExecutionError(err error, target **CommandExecutionError) bool {
	for err != nil {
		if cee, ok := err.(*CommandExecutionError); ok {
			*target = cee
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

// applyActionMix drives x through n commands using the action mix named in
// spec.md §8 seed scenario 5: new-entry 8, new-group 4, delete-entry 2,
// delete-group 1, move-entry 2, move-group 1, set-prop 15, set-meta 12.
func applyActionMix(t *testing.T, x *Executor, n int) {
	t.Helper()
	rng := rand.New(rand.NewSource(1))
	weights := []struct {
		weight int
		action string
	}{
		{8, "new-entry"}, {4, "new-group"}, {2, "delete-entry"}, {1, "delete-group"},
		{2, "move-entry"}, {1, "move-group"}, {15, "set-prop"}, {12, "set-meta"},
	}
	total := 0
	for _, w := range weights {
		total += w.weight
	}

	var groups, entries []string
	pick := func() string {
		r := rng.Intn(total)
		for _, w := range weights {
			if r < w.weight {
				return w.action
			}
			r -= w.weight
		}
		return weights[len(weights)-1].action
	}

	for i := 0; i < n; i++ {
		switch pick() {
		case "new-group":
			parent := RootID
			if len(groups) > 0 && rng.Intn(2) == 0 {
				parent = groups[rng.Intn(len(groups))]
			}
			id := NewID()
			if x.Execute(MustBuildCommand("cgr", parent, id)) == nil {
				groups = append(groups, id)
			}
		case "new-entry":
			if len(groups) == 0 {
				continue
			}
			parent := groups[rng.Intn(len(groups))]
			id := NewID()
			if x.Execute(MustBuildCommand("cen", parent, id)) == nil {
				entries = append(entries, id)
			}
		case "delete-group":
			if len(groups) == 0 {
				continue
			}
			idx := rng.Intn(len(groups))
			id := groups[idx]
			if x.Execute(MustBuildCommand("dgr", id)) == nil {
				groups = append(groups[:idx], groups[idx+1:]...)
			}
		case "delete-entry":
			if len(entries) == 0 {
				continue
			}
			idx := rng.Intn(len(entries))
			id := entries[idx]
			if x.Execute(MustBuildCommand("den", id)) == nil {
				entries = append(entries[:idx], entries[idx+1:]...)
			}
		case "move-group":
			if len(groups) < 2 {
				continue
			}
			id := groups[rng.Intn(len(groups))]
			newParent := groups[rng.Intn(len(groups))]
			_ = x.Execute(MustBuildCommand("mgr", id, newParent))
		case "move-entry":
			if len(entries) == 0 || len(groups) == 0 {
				continue
			}
			id := entries[rng.Intn(len(entries))]
			newParent := groups[rng.Intn(len(groups))]
			_ = x.Execute(MustBuildCommand("men", id, newParent))
		case "set-prop":
			if len(entries) == 0 {
				continue
			}
			id := entries[rng.Intn(len(entries))]
			_ = x.Execute(MustBuildCommand("sep", id, "key", "value"))
		case "set-meta":
			if len(entries) == 0 {
				continue
			}
			id := entries[rng.Intn(len(entries))]
			_ = x.Execute(MustBuildCommand("sem", id, "meta", "value"))
		}
	}
}

// snapshotDataset is a cmp-friendly copy: sibling order within Groups and
// Entries slices is not semantically meaningful, so it sorts each slice by
// ID before comparing (spec.md §8: "structural equality up to ordering
// within sibling sets where order is declared irrelevant").
func snapshotDataset(d *Dataset) *Dataset {
	var clone func(*Group) *Group
	clone = func(g *Group) *Group {
		out := &Group{ID: g.ID, Title: g.Title, ParentID: g.ParentID, Attributes: g.Attributes}
		for _, e := range g.Entries {
			out.Entries = append(out.Entries, e)
		}
		for _, child := range g.Groups {
			out.Groups = append(out.Groups, clone(child))
		}
		sortGroups(out.Groups)
		sortEntries(out.Entries)
		return out
	}
	out := &Dataset{ID: d.ID, Format: d.Format, Attributes: d.Attributes}
	for _, g := range d.Groups {
		out.Groups = append(out.Groups, clone(g))
	}
	sortGroups(out.Groups)
	return out
}

func sortGroups(gs []*Group) {
	for i := 1; i < len(gs); i++ {
		for j := i; j > 0 && gs[j-1].ID > gs[j].ID; j-- {
			gs[j-1], gs[j] = gs[j], gs[j-1]
		}
	}
}

func sortEntries(es []*Entry) {
	for i := 1; i < len(es); i++ {
		for j := i; j > 0 && es[j-1].ID > es[j].ID; j-- {
			es[j-1], es[j] = es[j], es[j-1]
		}
	}
}
