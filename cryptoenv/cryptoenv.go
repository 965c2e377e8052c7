// Package cryptoenv provides the default envelope.Env implementation:
// scrypt-derived keys with NaCl secretbox encryption, and zstd compression.
// These are the "default instances... assembled at startup" referenced in
// spec.md §9 ("Global environment registry"); any of the four primitives
// can be swapped by implementing envelope.Env directly.
package cryptoenv

import (
	"crypto/rand"
	"errors"
	"io"

	"golang.org/x/crypto/nacl/secretbox"
	"golang.org/x/crypto/scrypt"

	"github.com/klauspost/compress/zstd"
)

const (
	saltSize  = 16
	nonceSize = 24
	keySize   = 32

	scryptN = 1 << 15
	scryptR = 8
	scryptP = 1
)

var errCiphertextTooShort = errors.New("cryptoenv: ciphertext shorter than salt+nonce")

// Default is the standard compress-then-encrypt environment: zstd
// compression (github.com/klauspost/compress/zstd) wrapping scrypt+secretbox
// encryption (golang.org/x/crypto).
type Default struct{}

// CompressText implements envelope.Env using a one-shot zstd encoder.
func (Default) CompressText(plaintext []byte) ([]byte, error) {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, err
	}
	defer enc.Close()
	return enc.EncodeAll(plaintext, nil), nil
}

// DecompressText implements envelope.Env using a one-shot zstd decoder.
func (Default) DecompressText(compressed []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return dec.DecodeAll(compressed, nil)
}

// EncryptText derives a 32-byte key from password via scrypt (with a fresh
// random salt) and seals plaintext with NaCl secretbox under a fresh random
// nonce. The wire form is salt || nonce || sealed box.
func (Default) EncryptText(plaintext []byte, password string) ([]byte, error) {
	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, err
	}
	key, err := deriveKey(password, salt)
	if err != nil {
		return nil, err
	}

	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return nil, err
	}

	out := make([]byte, 0, saltSize+nonceSize+len(plaintext)+secretbox.Overhead)
	out = append(out, salt...)
	out = append(out, nonce[:]...)
	var keyArr [keySize]byte
	copy(keyArr[:], key)
	out = secretbox.Seal(out, plaintext, &nonce, &keyArr)
	return out, nil
}

// DecryptText reverses EncryptText, re-deriving the key from the embedded
// salt. A wrong password or corrupted box surfaces as a plain error; the
// envelope package maps it to vault.ErrDecryptionFailed.
func (Default) DecryptText(ciphertext []byte, password string) ([]byte, error) {
	if len(ciphertext) < saltSize+nonceSize {
		return nil, errCiphertextTooShort
	}
	salt := ciphertext[:saltSize]
	var nonce [nonceSize]byte
	copy(nonce[:], ciphertext[saltSize:saltSize+nonceSize])
	box := ciphertext[saltSize+nonceSize:]

	key, err := deriveKey(password, salt)
	if err != nil {
		return nil, err
	}
	var keyArr [keySize]byte
	copy(keyArr[:], key)

	plaintext, ok := secretbox.Open(nil, box, &nonce, &keyArr)
	if !ok {
		return nil, errors.New("cryptoenv: secretbox open failed (wrong password or corrupt data)")
	}
	return plaintext, nil
}

func deriveKey(password string, salt []byte) ([]byte, error) {
	return scrypt.Key([]byte(password), salt, scryptN, scryptR, scryptP, keySize)
}
