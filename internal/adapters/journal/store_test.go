package journal_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/smoke/internal/adapters/journal"
	"go.trai.ch/smoke/internal/core/domain"
)

func TestStore_AppendAndList(t *testing.T) {
	store, err := journal.NewStore(filepath.Join(t.TempDir(), "runs.json"))
	require.NoError(t, err)

	first := domain.RunRecord{ID: "a", Target: "linux", Phase: domain.PhaseDone, ExitCode: 0}
	second := domain.RunRecord{ID: "b", Target: "windows", Phase: domain.PhaseFailed, FailedAt: domain.PhaseConsumerCompiled, ExitCode: 127}

	require.NoError(t, store.Append(first))
	require.NoError(t, store.Append(second))

	got, err := store.List()
	require.NoError(t, err)
	assert.Equal(t, []domain.RunRecord{first, second}, got)
}

func TestStore_Persistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "runs.json")
	started := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)

	store1, err := journal.NewStore(path)
	require.NoError(t, err)
	require.NoError(t, store1.Append(domain.RunRecord{
		ID:         "run-1",
		Target:     "linux",
		Phase:      domain.PhaseDone,
		HeaderHash: "00ff00ff00ff00ff",
		StartedAt:  started,
		FinishedAt: started.Add(time.Second),
	}))

	store2, err := journal.NewStore(path)
	require.NoError(t, err)

	got, err := store2.List()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "run-1", got[0].ID)
	assert.Equal(t, "00ff00ff00ff00ff", got[0].HeaderHash)
	assert.True(t, started.Equal(got[0].StartedAt))

	assert.NoFileExists(t, path+".tmp")
}

func TestStore_ListReturnsCopy(t *testing.T) {
	store, err := journal.NewStore(filepath.Join(t.TempDir(), "runs.json"))
	require.NoError(t, err)
	require.NoError(t, store.Append(domain.RunRecord{ID: "x"}))

	got, err := store.List()
	require.NoError(t, err)
	got[0].ID = "mutated"

	again, err := store.List()
	require.NoError(t, err)
	assert.Equal(t, "x", again[0].ID)
}

func TestStore_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.json")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	store, err := journal.NewStore(path)
	require.NoError(t, err)

	got, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := journal.NewStore(path)
	require.ErrorContains(t, err, "failed to unmarshal run journal")
}

func TestOpener(t *testing.T) {
	opener := journal.NewOpener()

	discard, err := opener.Open("")
	require.NoError(t, err)
	require.NoError(t, discard.Append(domain.RunRecord{ID: "ignored"}))
	got, err := discard.List()
	require.NoError(t, err)
	assert.Empty(t, got)

	path := filepath.Join(t.TempDir(), "runs.json")
	store, err := opener.Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Append(domain.RunRecord{ID: "kept"}))
	assert.FileExists(t, path)
}

func TestStore_FailedAppendIsNotKept(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.json")
	store, err := journal.NewStore(path)
	require.NoError(t, err)

	// A non-empty directory in the journal's place makes the final rename fail.
	require.NoError(t, os.MkdirAll(filepath.Join(path, "blocker"), 0o750))

	err = store.Append(domain.RunRecord{ID: "lost", Target: "linux"})
	require.ErrorContains(t, err, "failed to replace run journal")

	got, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, os.RemoveAll(path))
	kept := domain.RunRecord{ID: "kept", Target: "linux", Phase: domain.PhaseDone}
	require.NoError(t, store.Append(kept))

	reopened, err := journal.NewStore(path)
	require.NoError(t, err)
	got, err = reopened.List()
	require.NoError(t, err)
	assert.Equal(t, []domain.RunRecord{kept}, got)
}
