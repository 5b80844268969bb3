package ledger

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/stockroom/pkg/types"
)

var fixedNow = time.Date(2026, time.October, 19, 9, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func seedLedger(l *Ledger[types.LogEntry]) {
	l.Add(NewEntry(1, "ItemA", 10, fixedClock))
	l.Add(NewEntry(2, "ItemB", 5, fixedClock))
	l.Add(NewEntry(3, "ItemC", 20, fixedClock))
}

func TestSaveThenLoadInFreshLedger(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)

	first := New[types.LogEntry](path)
	seedLedger(first)
	require.NoError(t, first.Save())

	second := New[types.LogEntry](path)
	assert.Equal(t, 0, second.Len(), "nothing is read before Load")
	require.NoError(t, second.Load())

	assert.Equal(t, first.All(), second.All())
	assert.Equal(t, 3, second.Len())
}

func TestLoadMissingFileResetsToEmpty(t *testing.T) {
	l := New[types.LogEntry](filepath.Join(t.TempDir(), "nope.jsonl"))
	seedLedger(l)

	require.NoError(t, l.Load())
	assert.Empty(t, l.All())
}

func TestLoadCorruptFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("{broken\n"), 0o644))

	l := New[types.LogEntry](path)
	l.Add(NewEntry(1, "ItemA", 10, fixedClock))

	require.Error(t, l.Load())
	assert.Equal(t, 1, l.Len(), "a failed load keeps the in-memory log")
}

func TestAllReturnsCopy(t *testing.T) {
	l := New[types.LogEntry](filepath.Join(t.TempDir(), FileName))
	seedLedger(l)

	got := l.All()
	got[0].Name = "Changed"

	assert.Equal(t, "ItemA", l.All()[0].Name)
}

func TestAddKeepsDuplicates(t *testing.T) {
	l := New[types.LogEntry](filepath.Join(t.TempDir(), FileName))
	l.Add(types.LogEntry{ID: 1, Name: "ItemA"})
	l.Add(types.LogEntry{ID: 1, Name: "ItemA"})

	assert.Equal(t, 2, l.Len())
}

func TestNewEntry(t *testing.T) {
	e := NewEntry(4, "ItemD", 7, fixedClock)

	assert.Equal(t, 4, e.ID)
	assert.Equal(t, "ItemD", e.Name)
	assert.Equal(t, 7, e.Quantity)
	assert.True(t, e.DateAdded.Equal(fixedNow))

	parsed, err := uuid.Parse(e.Ref)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())

	other := NewEntry(4, "ItemD", 7, fixedClock)
	assert.NotEqual(t, e.Ref, other.Ref)
}

func TestNewEntryDefaultClock(t *testing.T) {
	before := time.Now().Add(-time.Second)
	e := NewEntry(1, "ItemA", 1, nil)
	assert.True(t, e.DateAdded.After(before))
}
