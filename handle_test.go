package stow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserHandle(t *testing.T) (Handle[user], *Transaction) {
	t.Helper()
	tx := NewTransaction(newRecordingTx())
	h, err := Create(tx, &user{Name: "x", Count: 1})
	require.NoError(t, err)
	return h, tx
}

func TestBorrow_SharedReadersCoexist(t *testing.T) {
	h, _ := newUserHandle(t)

	r1 := h.Borrow()
	r2 := h.Borrow()
	assert.Equal(t, "x", r1.Value().Name)
	assert.Equal(t, "x", r2.Value().Name)
	r1.Release()
	r2.Release()

	// Reading never dirties the entry.
	assert.Equal(t, StateClean, h.State())
}

func TestBorrowMut_MarksModified(t *testing.T) {
	h, _ := newUserHandle(t)

	mut := h.BorrowMut()
	assert.Equal(t, StateModified, h.State(), "state flips on acquire, not release")
	mut.Value().Count = 2
	mut.Release()
	assert.Equal(t, StateModified, h.State())
}

func TestBorrowMut_SecondWriterPanics(t *testing.T) {
	h, _ := newUserHandle(t)

	mut := h.BorrowMut()
	defer mut.Release()

	require.Panics(t, func() { h.BorrowMut() })
}

func TestBorrow_WhileWriterActivePanics(t *testing.T) {
	h, _ := newUserHandle(t)

	mut := h.BorrowMut()
	defer mut.Release()

	require.Panics(t, func() { h.Borrow() })
}

func TestBorrowMut_WhileReaderActivePanics(t *testing.T) {
	h, _ := newUserHandle(t)

	ref := h.Borrow()
	defer ref.Release()

	require.Panics(t, func() { h.BorrowMut() })
}

func TestBorrow_AfterReleaseSucceeds(t *testing.T) {
	h, _ := newUserHandle(t)

	mut := h.BorrowMut()
	mut.Release()

	ref := h.Borrow()
	ref.Release()

	mut = h.BorrowMut()
	mut.Release()
}

func TestDelete_WhileBorrowedPanics(t *testing.T) {
	h, _ := newUserHandle(t)
	ref := h.Borrow()
	require.Panics(t, func() { h.Delete() })
	ref.Release()

	mut := h.BorrowMut()
	require.Panics(t, func() { h.Delete() })
	mut.Release()

	h.Delete()
	assert.Equal(t, StateRemoved, h.State())
}

func TestDelete_TwicePanics(t *testing.T) {
	h, _ := newUserHandle(t)
	h.Delete()
	require.Panics(t, func() { h.Delete() })
}

func TestUseAfterDelete_Panics(t *testing.T) {
	h, _ := newUserHandle(t)
	h.Delete()

	require.Panics(t, func() { h.Borrow() })
	require.Panics(t, func() { h.BorrowMut() })

	// State stays inspectable after removal.
	assert.Equal(t, StateRemoved, h.State())
}

func TestHandle_ClonesShareExclusivity(t *testing.T) {
	h, _ := newUserHandle(t)
	clone := h

	mut := clone.BorrowMut()
	require.Panics(t, func() { h.Borrow() }, "clone's writer blocks the original")
	mut.Release()

	assert.Equal(t, StateModified, h.State())
}

func TestRef_ReleaseTwicePanics(t *testing.T) {
	h, _ := newUserHandle(t)

	ref := h.Borrow()
	ref.Release()
	require.Panics(t, func() { ref.Release() })

	mut := h.BorrowMut()
	mut.Release()
	require.Panics(t, func() { mut.Release() })
}

func TestRef_UseAfterReleasePanics(t *testing.T) {
	h, _ := newUserHandle(t)

	ref := h.Borrow()
	ref.Release()
	require.Panics(t, func() { ref.Value() })

	mut := h.BorrowMut()
	mut.Release()
	require.Panics(t, func() { mut.Value() })
}

func TestHandle_WrongTypePanics(t *testing.T) {
	tx := NewTransaction(newRecordingTx())
	h, err := Create(tx, &user{Name: "x"})
	require.NoError(t, err)

	// The cache is keyed by identity alone; requesting the same identity as
	// a different type yields a handle whose downcast fails at borrow time.
	wrong, err := Get[gadget](tx, h.ID())
	require.NoError(t, err)
	require.Panics(t, func() { wrong.Borrow() })
	require.Panics(t, func() { wrong.BorrowMut() })
}
