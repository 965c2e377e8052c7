package vault

import (
	"testing"

	"github.com/rsms/go-testutil"
)

func TestStatsOf(t *testing.T) {
	assert := testutil.NewAssert(t)

	g1, e1 := NewID(), NewID()
	x := NewExecutor()
	err := x.Execute(
		MustBuildCommand("cgr", RootID, g1),
		MustBuildCommand("cen", g1, e1),
		MustBuildCommand("sep", e1, "note", "hi"),
		MustBuildCommand("dep", e1, "note"),
	)
	assert.Ok("setup ok", err == nil)

	st, err := StatsOf(x.GetHistory())
	assert.Ok("stats ok", err == nil)
	assert.Eq("groups", st.Groups, 1)
	assert.Eq("entries", st.Entries, 1)
	assert.Eq("destructive", st.Destructive, 1) // dep
	assert.Eq("commands == history length", st.Commands, len(x.GetHistory()))
}

func TestStatsOfRejectsInvalidHistory(t *testing.T) {
	assert := testutil.NewAssert(t)
	_, err := StatsOf(History{"cen does-not-exist E1"})
	assert.Ok("invalid history rejected", err != nil)
}
