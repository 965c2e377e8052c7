package cryptoenv

import (
	"testing"

	"github.com/rsms/go-testutil"
)

func TestCompressDecompressRoundTrip(t *testing.T) {
	assert := testutil.NewAssert(t)
	env := Default{}

	plaintext := []byte("the quick brown fox jumps over the lazy dog, repeated, repeated, repeated")
	compressed, err := env.CompressText(plaintext)
	assert.Ok("compress ok", err == nil)

	decompressed, err := env.DecompressText(compressed)
	assert.Ok("decompress ok", err == nil)
	assert.Eq("round trips", string(decompressed), string(plaintext))
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	assert := testutil.NewAssert(t)
	env := Default{}

	plaintext := []byte("super secret")
	ciphertext, err := env.EncryptText(plaintext, "correct horse")
	assert.Ok("encrypt ok", err == nil)

	decrypted, err := env.DecryptText(ciphertext, "correct horse")
	assert.Ok("decrypt ok", err == nil)
	assert.Eq("round trips", string(decrypted), string(plaintext))
}

func TestDecryptWrongPasswordFails(t *testing.T) {
	assert := testutil.NewAssert(t)
	env := Default{}

	ciphertext, err := env.EncryptText([]byte("data"), "right")
	assert.Ok("encrypt ok", err == nil)

	_, err = env.DecryptText(ciphertext, "wrong")
	assert.Ok("wrong password rejected", err != nil)
}

func TestEncryptProducesDistinctCiphertextsForSamePlaintext(t *testing.T) {
	assert := testutil.NewAssert(t)
	env := Default{}

	a, err := env.EncryptText([]byte("data"), "pw")
	assert.Ok("encrypt a ok", err == nil)
	b, err := env.EncryptText([]byte("data"), "pw")
	assert.Ok("encrypt b ok", err == nil)

	assert.Ok("fresh salt+nonce produce distinct wire forms", string(a) != string(b))
}

func TestDecryptRejectsTruncatedCiphertext(t *testing.T) {
	assert := testutil.NewAssert(t)
	_, err := (Default{}).DecryptText([]byte("short"), "pw")
	assert.Ok("rejected", err == errCiphertextTooShort)
}
