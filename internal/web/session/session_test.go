package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/melitabakes/bakery/internal/admin"
)

func TestDataRoundTrip(t *testing.T) {
	Init(nil, time.Minute)

	id, err := GenerateSessionID()
	require.NoError(t, err)
	assert.Len(t, id, 64)

	in := &Data{AdminID: 7, AdminEmail: "admin@example.com"}
	require.NoError(t, in.Write(id, time.Minute))

	out := new(Data)
	require.NoError(t, out.Read(id))
	assert.Equal(t, in, out)
	assert.True(t, out.Valid())

	require.NoError(t, Delete(id))
	require.ErrorIs(t, new(Data).Read(id), ErrNoSession)
	require.ErrorIs(t, new(Data).Read(""), ErrNoSession)

	assert.False(t, (&Data{}).Valid())
}

func TestGenerateSessionIDIsRandom(t *testing.T) {
	a, err := GenerateSessionID()
	require.NoError(t, err)

	b, err := GenerateSessionID()
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	ctrl := admin.NewController(nil)

	_, ok := r.Get("a")
	assert.False(t, ok)

	r.Put("a", ctrl)
	r.Put("b", admin.NewController(nil))

	got, ok := r.Get("a")
	require.True(t, ok)
	assert.Same(t, ctrl, got)
	assert.Equal(t, 2, r.Len())

	deleted, ok := r.Delete("a")
	require.True(t, ok)
	assert.Same(t, ctrl, deleted)

	_, ok = r.Delete("a")
	assert.False(t, ok)

	assert.Zero(t, r.Prune(time.Hour))
	assert.Equal(t, 1, r.Prune(-time.Second))
	assert.Zero(t, r.Len())
}
