package redis

import (
	"testing"

	"github.com/rsms/go-testutil"
)

func TestKeyNaming(t *testing.T) {
	assert := testutil.NewAssert(t)
	assert.Eq("envelope key", envelopeKey("v1"), "vault:envelope:v1")
	assert.Eq("history key", historyKey("v1"), "vault:history:v1")
}

func TestCloseOnUnopened(t *testing.T) {
	assert := testutil.NewAssert(t)
	r := &Redis{}
	assert.Ok("close on never-opened Redis is a no-op", r.Close() == nil)
}

func TestSetConnectionsRejectsDouble(t *testing.T) {
	assert := testutil.NewAssert(t)
	r := &Redis{}
	assert.Ok("first SetConnections with nil pools ok", r.SetConnections(nil, nil) == nil)
	assert.Ok("second SetConnections rejected", r.SetConnections(nil, nil) != nil)
}
