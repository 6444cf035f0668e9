package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gtank/cryptopasta"
)

const keyLen = 32

var (
	// ErrSignature is returned when a sealed payload fails HMAC validation.
	ErrSignature = errors.New("signature validation failed")
	// ErrKey is returned for keys too short to use.
	ErrKey = fmt.Errorf("key too short for sealing, want at least %d chars", keyLen)
)

// NewRandomKey generates a random key suitable for Seal & Open.
func NewRandomKey() (string, error) {
	key := &[keyLen + 1]byte{}
	_, err := io.ReadFull(rand.Reader, key[:])
	return base64.RawURLEncoding.EncodeToString(key[:]), err
}

// Open checks the HMAC of a payload made by Seal and decrypts it.
func Open(sealed, key, sig string) ([]byte, error) {
	rawkey, err := toKey(key)
	if err != nil {
		return nil, err
	}
	rawsig, err := toKey(sig)
	if err != nil {
		return nil, err
	}

	bits := strings.SplitN(strings.TrimSpace(sealed), ".", 2)
	if len(bits) != 2 {
		return nil, fmt.Errorf("%w: payload is not <cyphertext>.<signature>", ErrSignature)
	}

	cypher, err := base64.RawURLEncoding.DecodeString(bits[0])
	if err != nil {
		return nil, fmt.Errorf("decode cyphertext: %w", err)
	}
	signature, err := base64.RawURLEncoding.DecodeString(bits[1])
	if err != nil {
		return nil, fmt.Errorf("decode signature: %w", err)
	}

	if !cryptopasta.CheckHMAC(cypher, signature, rawsig) {
		return nil, ErrSignature
	}
	return cryptopasta.Decrypt(cypher, rawkey)
}

// Seal encrypts plaintext with key and signs the cyphertext with sig. The
// result is "<cyphertext>.<signature>", both base64 (raw URL alphabet).
func Seal(plaintext []byte, key, sig string) (string, error) {
	rawkey, err := toKey(key)
	if err != nil {
		return "", err
	}
	rawsig, err := toKey(sig)
	if err != nil {
		return "", err
	}

	cyphertext, err := cryptopasta.Encrypt(plaintext, rawkey)
	if err != nil {
		return "", err
	}
	signature := cryptopasta.GenerateHMAC(cyphertext, rawsig)

	return base64.RawURLEncoding.EncodeToString(cyphertext) + "." +
		base64.RawURLEncoding.EncodeToString(signature), nil
}

// toKey derives the *[32]byte cryptopasta wants from a string of at least
// 32 chars. Longer strings are hashed so every char counts.
func toKey(s string) (*[32]byte, error) {
	if len(s) < keyLen {
		return nil, ErrKey
	}
	data := &[32]byte{}
	if len(s) == keyLen {
		copy(data[:], s)
		return data, nil
	}
	sum := sha256.Sum256([]byte(s))
	copy(data[:], sum[:])
	return data, nil
}
