package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLinkedInCacheRepository_NilClientIsMiss(t *testing.T) {
	repo := NewLinkedInCacheRepository(nil)

	snapshot, err := repo.Get(context.Background(), "default")
	assert.NoError(t, err)
	assert.Nil(t, snapshot)

	err = repo.Upsert(context.Background(), "default", nil, 0)
	assert.NoError(t, err)
}
