package vault

import (
	"testing"

	"github.com/rsms/go-testutil"
)

func TestNewIDIsParseable(t *testing.T) {
	assert := testutil.NewAssert(t)
	id := NewID()
	parsed, err := ParseID(id)
	assert.Ok("parses ok", err == nil)
	assert.Eq("round trips", parsed, id)
}

func TestParseIDRejectsGarbage(t *testing.T) {
	assert := testutil.NewAssert(t)
	_, err := ParseID("not-a-uuid")
	assert.Ok("rejected", err == ErrInvalidCommand)
}

func TestPadTokenVaries(t *testing.T) {
	assert := testutil.NewAssert(t)
	assert.Ok("two pad tokens differ", padToken() != padToken())
}
