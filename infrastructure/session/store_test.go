package session_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"linkedpost/infrastructure/session"
)

func TestStore_CreateAndGet(t *testing.T) {
	store := session.NewStore()

	sess := store.Create()
	assert.NotEmpty(t, sess.ID)
	assert.Same(t, sess, store.Get(sess.ID))
}

func TestStore_GetOrCreate(t *testing.T) {
	store := session.NewStore()

	first := store.GetOrCreate("")
	assert.NotEmpty(t, first.ID)

	// Known id returns the existing session.
	again := store.GetOrCreate(first.ID)
	assert.Same(t, first, again)

	// Unknown id (e.g. a cookie from before a restart) gets a fresh session.
	fresh := store.GetOrCreate("no-such-session")
	assert.NotEqual(t, first.ID, fresh.ID)
}

func TestStore_Delete(t *testing.T) {
	store := session.NewStore()
	sess := store.Create()

	store.Delete(sess.ID)
	assert.Nil(t, store.Get(sess.ID))
}
