package vault

import uuid "github.com/rsms/go-uuid"

// NewID generates a fresh vault/group/entry ID in the canonical UUID form
// required by the ABNF `uuid` rule in spec.md §6. This is the "UUID
// generation" collaborator named out of scope in spec.md §1 — callers that
// already have an ID source (e.g. an application-level Vault object) are
// free to bypass this and build command strings directly.
func NewID() string {
	return uuid.MustGen().String()
}

// ParseID validates that s is a well-formed UUID, returning ErrInvalidCommand
// if not. The executors, describe and flatten do not call it; command IDs
// are not validated against the UUID form.
func ParseID(s string) (string, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return "", ErrInvalidCommand
	}
	return id.String(), nil
}

// padToken returns a fresh random opaque argument for a pad command (§4.1,
// §4.6). It is not interpreted by any executor; its only purpose is to vary
// the length and content of the final line of a committed batch.
func padToken() string {
	return uuid.MustGen().String()
}
