package auth

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/violethawk/server/internal/model"
)

func TestCanRead(t *testing.T) {
	owner := uuid.New()
	admin := &model.Principal{ID: uuid.New(), Admin: true}
	ownerP := &model.Principal{ID: owner}
	stranger := &model.Principal{ID: uuid.New()}

	public := model.Post{Owner: owner, Published: true}
	private := model.Post{Owner: owner, Published: false}

	assert.True(t, CanRead(nil, public))
	assert.True(t, CanRead(stranger, public))

	assert.False(t, CanRead(nil, private))
	assert.False(t, CanRead(stranger, private))
	assert.True(t, CanRead(ownerP, private))
	assert.True(t, CanRead(admin, private))
}

func TestCanWrite(t *testing.T) {
	owner := uuid.New()
	admin := &model.Principal{ID: uuid.New(), Admin: true}
	ownerP := &model.Principal{ID: owner}
	stranger := &model.Principal{ID: uuid.New()}

	res := model.Post{Owner: owner, Published: true}

	assert.False(t, CanWrite(nil, res), "guests can never write")
	assert.False(t, CanWrite(stranger, res))
	assert.True(t, CanWrite(ownerP, res))
	assert.True(t, CanWrite(admin, res))
}

func TestCanModerate(t *testing.T) {
	assert.False(t, CanModerate(nil))
	assert.False(t, CanModerate(&model.Principal{ID: uuid.New()}))
	assert.True(t, CanModerate(&model.Principal{ID: uuid.New(), Admin: true}))
}
