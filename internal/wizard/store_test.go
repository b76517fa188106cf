package wizard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStore_CreateGetDelete(t *testing.T) {
	st := NewStore()

	sess, ctx, err := st.Create(time.Now())
	require.NoError(t, err)
	require.NotEmpty(t, sess.ID)
	require.NoError(t, ctx.Err())

	got, err := st.Get(sess.ID)
	require.NoError(t, err)
	require.Same(t, sess, got)

	require.NoError(t, st.Delete(sess.ID))
	_, err = st.Get(sess.ID)
	require.ErrorIs(t, err, ErrNotFound)

	// teardown cancels anything scoped to the session
	require.Error(t, ctx.Err())
}

func TestStore_DeleteUnknown(t *testing.T) {
	st := NewStore()
	require.ErrorIs(t, st.Delete("nope"), ErrNotFound)
}

func TestStore_Close(t *testing.T) {
	st := NewStore()
	_, ctx1, err := st.Create(time.Now())
	require.NoError(t, err)
	_, ctx2, err := st.Create(time.Now())
	require.NoError(t, err)
	require.Equal(t, 2, st.Len())

	st.Close()
	require.Equal(t, 0, st.Len())
	require.Error(t, ctx1.Err())
	require.Error(t, ctx2.Err())
}
