package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunDirFlat(t *testing.T) {
	outputDir := filepath.Join(t.TempDir(), "output")
	fm := NewFileManager(outputDir, false)

	dir, err := fm.RunDir()
	require.NoError(t, err)
	assert.Equal(t, outputDir, dir)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestRunDirTimestamped(t *testing.T) {
	outputDir := filepath.Join(t.TempDir(), "output")
	fm := NewFileManager(outputDir, true)

	first, err := fm.RunDir()
	require.NoError(t, err)
	second, err := fm.RunDir()
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "runs within the same second get distinct directories")
	for _, dir := range []string{first, second} {
		assert.True(t, strings.HasPrefix(filepath.Base(dir), "run_"))
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}

func TestWriteRunSummary(t *testing.T) {
	dir := t.TempDir()
	summary := RunSummary{
		GeneratedAt:       time.Date(2024, 1, 15, 14, 30, 22, 0, time.UTC),
		Seed:              42,
		Duration:          1200 * time.Millisecond,
		TotalTransactions: 112,
		RecurringCount:    12,
		RandomCount:       100,
		DuplicatesAdded:   1,
		IrregularityCount: 13,
		Kinds: []KindBreakdown{
			{Kind: "high_amount", Requested: 2, Applied: 2},
			{Kind: "missing_id", Requested: 3, Applied: 1},
		},
		Files: []string{
			filepath.Join(dir, "fake_transactions.csv"),
			filepath.Join(dir, "irregularities.csv"),
		},
	}

	path, err := WriteRunSummary(summary, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "run_summary_20240115_143022.txt"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)

	assert.Contains(t, content, "Seed:       42")
	assert.Contains(t, content, "Total Transactions: 112")
	assert.Contains(t, content, "high_amount")
	assert.Contains(t, content, "requested 3, applied 1")
	assert.Contains(t, content, "fake_transactions.csv")
	assert.Contains(t, content, "End of Summary")
}

func TestCleanOldRuns(t *testing.T) {
	outputDir := t.TempDir()

	oldRun := filepath.Join(outputDir, "run_20200101_000000")
	require.NoError(t, os.Mkdir(oldRun, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(oldRun, "fake_transactions.csv"), []byte("x"), 0644))
	past := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(oldRun, past, past))

	freshRun := filepath.Join(outputDir, "run_20990101_000000")
	require.NoError(t, os.Mkdir(freshRun, 0755))

	// Neither plain files nor unrelated directories are retention targets.
	require.NoError(t, os.WriteFile(filepath.Join(outputDir, "fake_transactions.csv"), []byte("x"), 0644))
	unrelated := filepath.Join(outputDir, "archive")
	require.NoError(t, os.Mkdir(unrelated, 0755))
	require.NoError(t, os.Chtimes(unrelated, past, past))

	removed, err := CleanOldRuns(outputDir, 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	assert.False(t, FileExists(oldRun))
	assert.True(t, FileExists(freshRun))
	assert.True(t, FileExists(filepath.Join(outputDir, "fake_transactions.csv")))
	assert.True(t, FileExists(unrelated))
}

func TestGetFileSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sized.txt")
	require.NoError(t, os.WriteFile(path, []byte("12345"), 0644))

	size, err := GetFileSize(path)
	require.NoError(t, err)
	assert.Equal(t, int64(5), size)

	_, err = GetFileSize(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}
