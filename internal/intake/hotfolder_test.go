package intake

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mzyy94/spoolsniff/internal/spool"
)

func startHotFolder(t *testing.T, dir string, f *fakeSubmitter) *HotFolder {
	t.Helper()
	h := NewHotFolder(dir, f)
	h.Debounce = 50 * time.Millisecond
	require.NoError(t, h.Start(context.Background()))
	t.Cleanup(h.Stop)
	return h
}

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, data, 0644))
}

func TestHotFolder_ProcessesNewFile(t *testing.T) {
	dir := t.TempDir()
	f := newFakeSubmitter(1 << 20)
	startHotFolder(t, dir, f)

	writeFile(t, filepath.Join(dir, "invoice.afp"), []byte{0x5A, 0x00, 0x05, 0xD3, 0xA8, 0xA8})

	job := waitJob(t, f)
	assert.Equal(t, "invoice.afp", job.Name)
	assert.Equal(t, spool.SourceHotFolder, job.Source)

	assert.Eventually(t, func() bool {
		_, err := os.Stat(filepath.Join(dir, doneDir, "invoice.afp"))
		return err == nil
	}, 5*time.Second, 20*time.Millisecond)
	assert.NoFileExists(t, filepath.Join(dir, "invoice.afp"))
}

func TestHotFolder_ProcessesExistingFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), []byte("hello"))
	writeFile(t, filepath.Join(dir, ".hidden"), []byte("skip me"))

	f := newFakeSubmitter(1 << 20)
	startHotFolder(t, dir, f)

	job := waitJob(t, f)
	assert.Equal(t, "a.txt", job.Name)
	assert.Equal(t, []byte("hello"), job.Data)

	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, 1, f.count())
	assert.FileExists(t, filepath.Join(dir, ".hidden"))
}

func TestHotFolder_FailedJobMovesToFailed(t *testing.T) {
	dir := t.TempDir()
	f := newFakeSubmitter(1 << 20)
	f.err = errors.New("rejected")
	startHotFolder(t, dir, f)

	writeFile(t, filepath.Join(dir, "bad.bin"), []byte{0x01})
	waitJob(t, f)

	assert.Eventually(t, func() bool {
		_, err := os.Stat(filepath.Join(dir, failedDir, "bad.bin"))
		return err == nil
	}, 5*time.Second, 20*time.Millisecond)
}

func TestHotFolder_OversizedFileIsNotSubmitted(t *testing.T) {
	dir := t.TempDir()
	f := newFakeSubmitter(4)
	startHotFolder(t, dir, f)

	writeFile(t, filepath.Join(dir, "big.txt"), []byte("far too large"))

	assert.Eventually(t, func() bool {
		_, err := os.Stat(filepath.Join(dir, failedDir, "big.txt"))
		return err == nil
	}, 5*time.Second, 20*time.Millisecond)
	assert.Equal(t, 0, f.count())
}

func TestHotFolder_Debounce(t *testing.T) {
	h := NewHotFolder(t.TempDir(), newFakeSubmitter(1))
	h.Debounce = time.Second

	now := time.Now()
	h.pending["old"] = now.Add(-2 * time.Second)
	h.pending["new"] = now

	assert.Equal(t, []string{"old"}, h.ready(now))
	assert.Empty(t, h.ready(now))
	assert.Equal(t, []string{"new"}, h.ready(now.Add(time.Second)))
}

func TestIgnoredName(t *testing.T) {
	assert.True(t, ignoredName(".DS_Store"))
	assert.True(t, ignoredName("job.tmp"))
	assert.True(t, ignoredName("job.part"))
	assert.False(t, ignoredName("job.afp"))
}

func TestHotFolder_StartCreatesLayout(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "spool", "in")
	startHotFolder(t, dir, newFakeSubmitter(1))

	assert.DirExists(t, filepath.Join(dir, doneDir))
	assert.DirExists(t, filepath.Join(dir, failedDir))
}
