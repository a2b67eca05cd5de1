package crypto

import (
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/blake2b"
)

// ErrHashMismatch indicates content that does not match its expected hash
var ErrHashMismatch = errors.New("content hash mismatch")

// HashContent возвращает hex-encoded BLAKE2b-256 хеш содержимого вложения.
// Хеш используется как адрес вложения в облачном хранилище.
func HashContent(data []byte) string {
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// VerifyContent проверяет, что содержимое соответствует ожидаемому хешу
func VerifyContent(data []byte, hash string) error {
	if hash == "" {
		return fmt.Errorf("expected hash cannot be empty")
	}

	if computed := HashContent(data); computed != hash {
		return fmt.Errorf("%w: want %s, got %s", ErrHashMismatch, hash, computed)
	}

	return nil
}
