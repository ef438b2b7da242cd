package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoopRepositories(t *testing.T) {
	ctx := context.Background()

	read := NewNoopUserReadRepository()
	write := NewNoopUserWriteRepository()

	user, err := read.GetByEmail(ctx, "alice@example.com")
	assert.NoError(t, err)
	assert.Nil(t, user)

	user, err = read.GetByID(ctx, 1)
	assert.NoError(t, err)
	assert.Nil(t, user)

	id, err := write.Save(ctx, "Alice", "alice@example.com", "$2a$10$hash", false)
	assert.NoError(t, err)
	assert.Zero(t, id)

	assert.NoError(t, write.UpdatePassword(ctx, 1, "$2a$10$new"))
	assert.NoError(t, write.SetVerified(ctx, 1))
	assert.NoError(t, write.IncrementLoginStats(ctx, 1))
	assert.NoError(t, write.Update(ctx, 1, nil, nil))
	assert.NoError(t, write.Delete(ctx, 1))
}
