package store

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"

	t "github.com/chatline/relay/server/store/types"
)

// EncryptionService seals and opens message content at rest. Messages are
// never written in plaintext: the service is mandatory and configured with a
// process-wide symmetric key.
type EncryptionService struct {
	aead cipher.AEAD
}

// NewEncryptionService creates an encryption service from a symmetric key.
func NewEncryptionService(key []byte) (*EncryptionService, error) {
	// AES supports 16, 24 or 32 byte keys.
	if len(key) != 16 && len(key) != 24 && len(key) != 32 {
		return nil, fmt.Errorf("encryption key must be 16, 24, or 32 bytes, got %d", len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM mode: %w", err)
	}

	return &EncryptionService{aead: aead}, nil
}

// Encrypt seals plaintext with a fresh random nonce.
func (es *EncryptionService) Encrypt(plaintext string) (t.EncryptedValue, error) {
	nonce := make([]byte, es.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return t.EncryptedValue{}, fmt.Errorf("failed to generate nonce: %w", err)
	}

	return t.EncryptedValue{
		Data:  es.aead.Seal(nil, nonce, []byte(plaintext), nil),
		Nonce: nonce,
	}, nil
}

// Decrypt opens a sealed value. Tampered or foreign-key ciphertext fails
// authentication and produces an error.
func (es *EncryptionService) Decrypt(value t.EncryptedValue) (string, error) {
	if len(value.Nonce) != es.aead.NonceSize() {
		return "", fmt.Errorf("invalid nonce size %d", len(value.Nonce))
	}
	plain, err := es.aead.Open(nil, value.Nonce, value.Data, nil)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt content: %w", err)
	}
	return string(plain), nil
}
