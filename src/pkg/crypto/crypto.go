// Package crypto seals the persisted session record at rest.
package crypto

import (
	"crypto/rand"
	"errors"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)

const (
	keyLen   = 32
	saltLen  = 16
	nonceLen = chacha20poly1305.NonceSizeX

	argonTime    uint32 = 3
	argonMemory  uint32 = 64 * 1024
	argonThreads uint8  = 1
)

var errTooShort = errors.New("sealed record too short")

func randBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	_, err := rand.Read(b)
	return b, err
}

func deriveKey(secret, salt []byte) []byte {
	return argon2.IDKey(secret, salt, argonTime, argonMemory, argonThreads, keyLen)
}

// Seal encrypts plaintext with a key derived from secret. Layout of the
// output is salt || nonce || ciphertext.
func Seal(secret, plaintext []byte) ([]byte, error) {
	salt, err := randBytes(saltLen)
	if err != nil {
		return nil, err
	}
	aead, err := chacha20poly1305.NewX(deriveKey(secret, salt))
	if err != nil {
		return nil, err
	}
	nonce, err := randBytes(nonceLen)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, saltLen+nonceLen+len(plaintext)+aead.Overhead())
	out = append(out, salt...)
	out = append(out, nonce...)
	out = append(out, aead.Seal(nil, nonce, plaintext, nil)...)
	return out, nil
}

// Open decrypts a record produced by Seal.
func Open(secret, sealed []byte) ([]byte, error) {
	if len(sealed) < saltLen+nonceLen {
		return nil, errTooShort
	}
	salt := sealed[:saltLen]
	nonce := sealed[saltLen : saltLen+nonceLen]
	ct := sealed[saltLen+nonceLen:]
	aead, err := chacha20poly1305.NewX(deriveKey(secret, salt))
	if err != nil {
		return nil, err
	}
	return aead.Open(nil, nonce, ct, nil)
}
