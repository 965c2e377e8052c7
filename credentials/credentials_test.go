package credentials

import (
	"testing"

	"github.com/rsms/go-testutil"
)

func TestStoreSetAndPassword(t *testing.T) {
	assert := testutil.NewAssert(t)
	s := NewStore()
	s.Set("default", "pw")

	pw, err := s.Password("default")
	assert.Ok("password found", err == nil)
	assert.Eq("password value", pw, "pw")
}

func TestStoreForget(t *testing.T) {
	assert := testutil.NewAssert(t)
	s := NewStore()
	s.Set("default", "pw")
	s.Forget("default")

	_, err := s.Password("default")
	assert.Ok("forgotten credentials not found", err == ErrNotFound)
}

func TestStoreUnknownCredentialsID(t *testing.T) {
	assert := testutil.NewAssert(t)
	s := NewStore()
	_, err := s.Password("nope")
	assert.Ok("unknown id not found", err == ErrNotFound)
}
