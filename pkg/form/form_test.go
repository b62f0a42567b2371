package form

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoosis/fluid/internal/store"
	"github.com/dkoosis/fluid/pkg/render"
)

type fakeClipboard struct {
	writes []string
	err    error
}

func (c *fakeClipboard) WriteAll(text string) error {
	if c.err != nil {
		return c.err
	}
	c.writes = append(c.writes, text)
	return nil
}

type countingStore struct {
	store.Store
	sets int
}

func (s *countingStore) Set(key, value string) error {
	s.sets++
	return s.Store.Set(key, value)
}

type failingStore struct{ store.Memory }

func (*failingStore) Get(string) (string, bool, error) { return "", false, errors.New("disk on fire") }

var (
	keyTab       = tea.KeyMsg{Type: tea.KeyTab}
	keyShiftTab  = tea.KeyMsg{Type: tea.KeyShiftTab}
	keyEnter     = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc       = tea.KeyMsg{Type: tea.KeyEsc}
	keySpace     = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	keyBackspace = tea.KeyMsg{Type: tea.KeyBackspace}
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestModel(clip Clipboard, s store.Store) Model {
	return NewModel(DefaultValues(), clip, s, render.MonoTheme(), nil)
}

// press feeds msgs to m in order and returns the model and the last command.
func press(t *testing.T, m Model, msgs ...tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m, cmd
}

func TestModel_ShowsDefaultExpression_When_Opened(t *testing.T) {
	m := newTestModel(&fakeClipboard{}, nil)
	assert.Equal(t, "clamp(32px, 1.333vw + 26.667px, 48px)", m.Expression())
	assert.Contains(t, m.View(), "clamp(32px, 1.333vw + 26.667px, 48px)")
	assert.Contains(t, m.View(), "[ ] rem")
}

func TestModel_RecomputesOnEveryKeystroke(t *testing.T) {
	m := newTestModel(&fakeClipboard{}, nil)

	m, _ = press(t, m, keyBackspace)
	assert.Equal(t, "3", m.Values().MinSize)
	assert.Equal(t, "clamp(3px, 3.75vw + -12px, 48px)", m.Expression())

	m, _ = press(t, m, keyBackspace, runes("16"))
	assert.Equal(t, "16", m.Values().MinSize)
	assert.Equal(t, "clamp(16px, 2.667vw + 5.333px, 48px)", m.Expression())
}

func TestModel_TreatsGarbageAsZero(t *testing.T) {
	m := newTestModel(&fakeClipboard{}, nil)
	m, _ = press(t, m, keyBackspace, keyBackspace, runes("abc"))
	assert.Equal(t, "abc", m.Values().MinSize)
	assert.Equal(t, "clamp(0px, 4vw + -16px, 48px)", m.Expression())
}

func TestModel_TogglesUnit_When_FocusOnToggle(t *testing.T) {
	m := newTestModel(&fakeClipboard{}, nil)

	m, _ = press(t, m, keyTab, keyTab, keyTab, keyTab, keySpace)
	assert.True(t, m.Values().RootRelative)
	assert.Equal(t, "clamp(2rem,1.333vw+1.667rem,3rem)", m.Expression())
	assert.Contains(t, m.View(), "[x] rem")

	m, _ = press(t, m, runes("x"))
	assert.False(t, m.Values().RootRelative)
	assert.Equal(t, "clamp(32px, 1.333vw + 26.667px, 48px)", m.Expression())
}

func TestModel_FocusWraps(t *testing.T) {
	m := newTestModel(&fakeClipboard{}, nil)

	m, _ = press(t, m, keyShiftTab, keySpace)
	assert.True(t, m.Values().RootRelative, "shift+tab from the first field lands on the toggle")

	m, _ = press(t, m, keyTab, keyBackspace, keyBackspace, runes("8"))
	assert.Equal(t, "8", m.Values().MinSize)
}

func TestModel_CopiesAndSavesOnce_When_Submitted(t *testing.T) {
	clip := &fakeClipboard{}
	st := &countingStore{Store: store.NewMemory()}
	m := newTestModel(clip, st)

	m, cmd := press(t, m, keyTab, keyTab, keyTab, keyTab, keySpace, keyEnter)
	require.NotNil(t, cmd)

	m, cmd = press(t, m, cmd())
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	assert.Equal(t, []string{"clamp(2rem,1.333vw+1.667rem,3rem)"}, clip.writes)
	assert.True(t, m.Copied())
	assert.Equal(t, StatusCopied, m.Status())
	assert.Equal(t, 5, st.sets)

	loaded, err := LoadValues(st, Values{})
	require.NoError(t, err)
	want := DefaultValues()
	want.RootRelative = true
	if diff := cmp.Diff(want, loaded); diff != "" {
		t.Errorf("saved values mismatch (-want +got):\n%s", diff)
	}

	// A duplicate confirmation must not write again.
	_, _ = press(t, m, copiedMsg{expression: m.Expression()})
	assert.Equal(t, 5, st.sets)
}

func TestModel_StaysOpenWithoutSaving_When_ClipboardFails(t *testing.T) {
	clip := &fakeClipboard{err: errors.New("no clipboard utility")}
	st := &countingStore{Store: store.NewMemory()}
	m := newTestModel(clip, st)

	m, cmd := press(t, m, keyEnter)
	require.NotNil(t, cmd)
	m, cmd = press(t, m, cmd())

	assert.Nil(t, cmd)
	assert.False(t, m.Copied())
	assert.EqualError(t, m.Err(), "no clipboard utility")
	assert.Contains(t, m.View(), "Copy failed: no clipboard utility")
	assert.Zero(t, st.sets)
}

func TestModel_Cancels_When_EscPressed(t *testing.T) {
	m := newTestModel(&fakeClipboard{}, nil)
	m, cmd := press(t, m, keyEsc)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, m.Cancelled())
	assert.False(t, m.Copied())
}

func TestLoadValues_FallsBackPerKey(t *testing.T) {
	st := store.NewMemory()
	require.NoError(t, st.Set(KeyMaxSize, "64"))
	require.NoError(t, st.Set(KeyRootRelative, "maybe"))

	got, err := LoadValues(st, DefaultValues())
	require.NoError(t, err)

	want := DefaultValues()
	want.MaxSize = "64"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("LoadValues mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadValues_ReturnsFallback_When_StoreFails(t *testing.T) {
	got, err := LoadValues(&failingStore{}, DefaultValues())
	assert.Error(t, err)
	assert.Equal(t, DefaultValues(), got)
}

func TestSaveValues_KeepsTextVerbatim(t *testing.T) {
	st := store.NewMemory()
	v := Values{MinSize: "1.", MaxSize: " 2e1 ", MinViewport: "0x10", MaxViewport: "", RootRelative: true}
	require.NoError(t, SaveValues(st, v))

	got, err := LoadValues(st, DefaultValues())
	require.NoError(t, err)
	assert.Equal(t, v, got)

	spec := got.Spec()
	assert.Equal(t, 1.0, spec.MinSize)
	assert.Equal(t, 20.0, spec.MaxSize)
	assert.Equal(t, 16.0, spec.MinViewport)
	assert.Equal(t, 0.0, spec.MaxViewport)
}
