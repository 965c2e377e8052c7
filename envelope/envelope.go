// Package envelope implements the Envelope Codec (spec §4.10): the
// signature + compression + encryption framing around a history's on-disk
// bytes, plus the Env interface through which callers pass the compression
// and encryption primitives into Encode and Decode.
package envelope

import (
	"encoding/base64"
	"errors"
	"strings"

	log "github.com/rsms/go-log"

	"github.com/rsms/vaultfmt"
)

// Signature is the fixed ASCII tag prefixed to every on-disk envelope,
// identifying the envelope version and format so legacy content is
// rejected cleanly (§6). Changing it is a breaking on-disk format change.
const Signature = "vlt1;"

// Env exposes the four injectable primitives named in spec.md §4.10/§6,
// keyed by the fixed property names the wider ecosystem expects:
// compression/v1/compressText, compression/v1/decompressText,
// crypto/v1/encryptText, crypto/v1/decryptText. It replaces the source's
// global environment registry singleton with an explicit context passed
// into Encode/Decode (§9, "Global environment registry").
type Env interface {
	CompressText(plaintext []byte) ([]byte, error)
	DecompressText(compressed []byte) ([]byte, error)
	EncryptText(plaintext []byte, password string) ([]byte, error)
	DecryptText(ciphertext []byte, password string) ([]byte, error)
}

// Credentials resolves a master password by credentials ID, mirroring the
// "credentials channel" collaborator named out of scope in spec.md §1.
type Credentials interface {
	Password(credentialsID string) (string, error)
}

var (
	errEmptyAfterDecrypt = errors.New("envelope: decrypted payload was empty")
)

// HasValidSignature reports whether raw begins with Signature.
func HasValidSignature(raw string) bool {
	return strings.HasPrefix(raw, Signature)
}

// StripSignature removes the signature prefix from raw. The caller must
// have already checked HasValidSignature.
func StripSignature(raw string) string {
	return raw[len(Signature):]
}

// Encode joins history with "\n", compresses it, encrypts the result with
// the password for credentialsID, and prepends the signature (§4.10).
func Encode(env Env, creds Credentials, credentialsID string, history vault.History) (string, error) {
	password, err := creds.Password(credentialsID)
	if err != nil {
		return "", err
	}
	joined := strings.Join([]string(history), "\n")

	compressed, err := env.CompressText([]byte(joined))
	if err != nil {
		log.Error("envelope encode: compress: %v", err)
		return "", err
	}

	ciphertext, err := env.EncryptText(compressed, password)
	if err != nil {
		log.Error("envelope encode: encrypt: %v", err)
		return "", err
	}

	return Signature + base64.StdEncoding.EncodeToString(ciphertext), nil
}

// Decode verifies the signature, strips it, decrypts with the password for
// credentialsID, and -- if the decrypted payload is non-empty -- decompresses
// and splits it on "\n" into a History (§4.10).
func Decode(env Env, creds Credentials, credentialsID string, raw string) (vault.History, error) {
	if !HasValidSignature(raw) {
		return nil, vault.ErrInvalidSignature
	}
	body := StripSignature(raw)

	ciphertext, err := base64.StdEncoding.DecodeString(body)
	if err != nil {
		return nil, vault.ErrInvalidSignature
	}

	password, err := creds.Password(credentialsID)
	if err != nil {
		return nil, err
	}

	compressed, err := env.DecryptText(ciphertext, password)
	if err != nil {
		log.Debug("envelope decode: decrypt failed: %v", err)
		return nil, vault.ErrDecryptionFailed
	}
	if len(compressed) == 0 {
		log.Debug("envelope decode: %v", errEmptyAfterDecrypt)
		return nil, vault.ErrDecryptionFailed
	}

	plaintext, err := env.DecompressText(compressed)
	if err != nil {
		log.Debug("envelope decode: decompress failed: %v", err)
		return nil, vault.ErrDecompressionFailed
	}

	if len(plaintext) == 0 {
		return vault.History{}, nil
	}
	return vault.History(strings.Split(string(plaintext), "\n")), nil
}
