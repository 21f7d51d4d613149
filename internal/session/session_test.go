package session

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/adb-reso/adb-reso-go/internal/domain"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestSession_SelectReplacesPrevious(t *testing.T) {
	s := newSession("s1", time.Now())

	assert.Equal(t, "", s.Select(CategoryPreset, "pubg-extreme"))
	assert.Equal(t, "pubg-extreme", s.Select(CategoryPreset, "ml-pro"))

	id, ok := s.Selected(CategoryPreset)
	require.True(t, ok)
	assert.Equal(t, "ml-pro", id)

	_, ok = s.Selected(CategoryCommand)
	assert.False(t, ok)
}

func TestSession_ClearBlanksDependentOutput(t *testing.T) {
	s := newSession("s1", time.Now())
	s.Select(CategoryPreset, "flagship")
	s.SetOutput(domain.PagePreset, "preset output")
	s.SetOutput(domain.PageResolution, "resolution output")

	s.Clear(CategoryPreset)

	_, ok := s.Selected(CategoryPreset)
	assert.False(t, ok)
	assert.Empty(t, s.Output(domain.PagePreset))
	assert.Equal(t, "resolution output", s.Output(domain.PageResolution))
}

func TestSession_ClearPageDeselects(t *testing.T) {
	s := newSession("s1", time.Now())
	s.Select(CategoryCommand, "reboot")
	s.SetOutput(domain.PageCatalog, "adb reboot")

	s.ClearPage(domain.PageCatalog)

	_, ok := s.Selected(CategoryCommand)
	assert.False(t, ok)
	assert.Empty(t, s.Output(domain.PageCatalog))
}

func TestSession_LatestOutputOrder(t *testing.T) {
	s := newSession("s1", time.Now())

	_, _, ok := s.LatestOutput()
	assert.False(t, ok)

	s.SetOutput(domain.PageCatalog, "catalog")
	s.SetOutput(domain.PagePreset, "preset")

	page, out, ok := s.LatestOutput()
	require.True(t, ok)
	assert.Equal(t, domain.PagePreset, page)
	assert.Equal(t, "preset", out)

	s.SetOutput(domain.PageResolution, "resolution")
	page, _, _ = s.LatestOutput()
	assert.Equal(t, domain.PageResolution, page)
}

func TestSession_ClearAll(t *testing.T) {
	s := newSession("s1", time.Now())
	s.Select(CategoryMethod, "termux")
	s.SetOutput(domain.PageDPI, "adb shell wm density 440")

	s.ClearAll()

	v := s.view()
	assert.Empty(t, v.Selections)
	assert.Empty(t, v.Outputs)
}

func TestSession_ApplyCommandFollowsOutput(t *testing.T) {
	s := newSession("s1", time.Now())
	s.SetOutput(domain.PageDPI, "# DPI Preset: 440 DPI\nadb shell wm density 440")
	s.SetApplyCommand(domain.PageDPI, "adb shell wm density 440")

	cmd, ok := s.ApplyCommand(domain.PageDPI)
	require.True(t, ok)
	assert.Equal(t, "adb shell wm density 440", cmd)

	s.SetOutput(domain.PageDPI, "replaced")
	_, ok = s.ApplyCommand(domain.PageDPI)
	assert.False(t, ok, "new output drops the stale command")

	s.SetApplyCommand(domain.PageDPI, "adb shell wm density 480")
	s.Clear(CategoryDensityPreset)
	_, ok = s.ApplyCommand(domain.PageDPI)
	assert.False(t, ok)
}

func TestStore_CreateGetDelete(t *testing.T) {
	store := NewStore(time.Hour, testLogger())

	v := store.Create()
	require.NotEmpty(t, v.ID)
	assert.Equal(t, 1, store.Len())

	got, err := store.Get(v.ID)
	require.NoError(t, err)
	assert.Equal(t, v.ID, got.ID)

	assert.True(t, store.Delete(v.ID))
	assert.False(t, store.Delete(v.ID))

	_, err = store.Get(v.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_UpdateErrorKeepsState(t *testing.T) {
	store := NewStore(time.Hour, testLogger())
	v := store.Create()

	_, err := store.Update(v.ID, func(s *Session) error {
		s.SetOutput(domain.PageResolution, "first")
		return nil
	})
	require.NoError(t, err)

	_, err = store.Update(v.ID, func(s *Session) error {
		return domain.NewInputError("width", "abc", domain.ErrNonNumericInput)
	})
	require.Error(t, err)

	got, err := store.Get(v.ID)
	require.NoError(t, err)
	assert.Equal(t, "first", got.Outputs[domain.PageResolution])
}

func TestStore_ViewIsACopy(t *testing.T) {
	store := NewStore(time.Hour, testLogger())
	v := store.Create()

	got, err := store.Update(v.ID, func(s *Session) error {
		s.Select(CategoryPreset, "flagship")
		return nil
	})
	require.NoError(t, err)

	got.Selections[CategoryPreset] = "tampered"

	again, err := store.Get(v.ID)
	require.NoError(t, err)
	assert.Equal(t, "flagship", again.Selections[CategoryPreset])
}

func TestStore_Sweep(t *testing.T) {
	store := NewStore(time.Minute, testLogger())
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	stale := store.Create()
	now = now.Add(30 * time.Second)
	fresh := store.Create()

	now = now.Add(45 * time.Second)
	assert.Equal(t, 1, store.Sweep())

	_, err := store.Get(stale.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = store.Get(fresh.ID)
	assert.NoError(t, err)
}

func TestStore_SweepDisabled(t *testing.T) {
	store := NewStore(0, testLogger())
	store.Create()
	assert.Equal(t, 0, store.Sweep())
	assert.Equal(t, 1, store.Len())
}

func TestStore_JanitorStopsOnCancel(t *testing.T) {
	store := NewStore(time.Millisecond, testLogger())
	store.Create()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		store.StartJanitor(ctx, 5*time.Millisecond, nil)
		close(done)
	}()

	assert.Eventually(t, func() bool { return store.Len() == 0 }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop")
	}
}

func TestStore_SetTTL(t *testing.T) {
	store := NewStore(0, testLogger())
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	store.Create()
	now = now.Add(2 * time.Minute)
	assert.Equal(t, 0, store.Sweep())

	store.SetTTL(time.Minute)
	assert.Equal(t, 1, store.Sweep())
	assert.Equal(t, 0, store.Len())
}
