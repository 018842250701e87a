package file

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(t.TempDir())
	require.NoError(t, err)
	return s
}

func TestGet_Absent(t *testing.T) {
	s := newStore(t)

	_, ok, err := s.Get("cart")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSetGet_RoundTrip(t *testing.T) {
	s := newStore(t)

	require.NoError(t, s.Set("token", "abc.def.ghi"))

	got, ok, err := s.Get("token")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "abc.def.ghi", got)
}

func TestSet_Overwrite(t *testing.T) {
	s := newStore(t)

	require.NoError(t, s.Set("cart", "[]"))
	require.NoError(t, s.Set("cart", `[{"id":1}]`))

	got, ok, err := s.Get("cart")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `[{"id":1}]`, got)
}

func TestRemove(t *testing.T) {
	s := newStore(t)

	require.NoError(t, s.Set("user", "{}"))
	require.NoError(t, s.Remove("user"))

	_, ok, err := s.Get("user")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRemove_AbsentIsNoop(t *testing.T) {
	s := newStore(t)

	require.NoError(t, s.Remove("never-set"))
}

func TestInvalidKey(t *testing.T) {
	s := newStore(t)

	for _, key := range []string{"", "a/b", `a\b`, ".", ".."} {
		_, _, err := s.Get(key)
		assert.Error(t, err, "key %q", key)
		assert.Error(t, s.Set(key, "v"), "key %q", key)
	}
}

func TestNew_EmptyDir(t *testing.T) {
	_, err := New("")
	require.Error(t, err)
}
