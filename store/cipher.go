package store

import (
	"crypto/rand"
	"io"

	goerrors "github.com/goliatone/go-errors"
	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"
)

const saltSize = 16

// scrypt cost parameters. Interactive-grade: the box seals a short token on
// the user's own machine, not a server-side password database.
const (
	scryptN = 1 << 15
	scryptR = 8
	scryptP = 1
)

// SecretBox seals short secrets with a key derived from a passphrase. Each
// Seal call uses a fresh salt and nonce, prepended to the ciphertext.
type SecretBox struct {
	passphrase []byte
}

func NewSecretBox(passphrase []byte) *SecretBox {
	return &SecretBox{passphrase: passphrase}
}

func (b *SecretBox) key(salt []byte) ([]byte, error) {
	key, err := scrypt.Key(b.passphrase, salt, scryptN, scryptR, scryptP, chacha20poly1305.KeySize)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryOperation, "derive key")
	}
	return key, nil
}

func (b *SecretBox) Seal(plaintext []byte) ([]byte, error) {
	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryOperation, "generate salt")
	}

	key, err := b.key(salt)
	if err != nil {
		return nil, err
	}

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryOperation, "build cipher")
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryOperation, "generate nonce")
	}

	out := make([]byte, 0, saltSize+len(nonce)+len(plaintext)+aead.Overhead())
	out = append(out, salt...)
	out = append(out, nonce...)
	return aead.Seal(out, nonce, plaintext, nil), nil
}

func (b *SecretBox) Open(blob []byte) ([]byte, error) {
	if len(blob) < saltSize+chacha20poly1305.NonceSizeX {
		return nil, goerrors.New("sealed blob too short", goerrors.CategoryOperation)
	}

	salt := blob[:saltSize]
	nonce := blob[saltSize : saltSize+chacha20poly1305.NonceSizeX]
	ct := blob[saltSize+chacha20poly1305.NonceSizeX:]

	key, err := b.key(salt)
	if err != nil {
		return nil, err
	}

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryOperation, "build cipher")
	}

	plaintext, err := aead.Open(nil, nonce, ct, nil)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryOperation, "open sealed blob")
	}
	return plaintext, nil
}
