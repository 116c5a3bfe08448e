package session

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/nacl/secretbox"
)

const nonceSize = 24

var ErrSealedState = errors.New("persisted session cannot be decrypted")

// SealedPersister encrypts state at rest before handing it to the wrapped
// persister.
type SealedPersister struct {
	inner Persister
	key   [32]byte
}

func NewSealedPersister(inner Persister, secret string) *SealedPersister {
	return &SealedPersister{inner: inner, key: sha256.Sum256([]byte(secret))}
}

func (p *SealedPersister) Load(ctx context.Context, key string) ([]byte, bool, error) {
	sealed, found, err := p.inner.Load(ctx, key)
	if err != nil || !found {
		return nil, found, err
	}

	if len(sealed) < nonceSize {
		return nil, false, ErrSealedState
	}

	var nonce [nonceSize]byte
	copy(nonce[:], sealed[:nonceSize])

	plain, ok := secretbox.Open(nil, sealed[nonceSize:], &nonce, &p.key)
	if !ok {
		return nil, false, ErrSealedState
	}
	return plain, true, nil
}

func (p *SealedPersister) Save(ctx context.Context, key string, data []byte) error {
	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return fmt.Errorf("generate nonce: %w", err)
	}

	sealed := secretbox.Seal(nonce[:], data, &nonce, &p.key)
	return p.inner.Save(ctx, key, sealed)
}

func (p *SealedPersister) Delete(ctx context.Context, key string) error {
	return p.inner.Delete(ctx, key)
}
