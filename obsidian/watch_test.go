package obsidian

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchReimportsOnChange(t *testing.T) {
	v := newVault(t)
	v.note(t, "first.md", "---\ndescription: d\ndate: 2024-01-01\n---\nFirst\n")
	im := v.importer(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- im.Watch(ctx) }()

	firstOut := filepath.Join(v.cfg.TargetDir, "first", "index.md")
	require.Eventually(t, func() bool {
		_, err := os.Stat(firstOut)
		return err == nil
	}, 5*time.Second, 20*time.Millisecond)

	v.note(t, "second.md", "---\ndescription: d\ndate: 2024-01-02\n---\nSecond\n")
	secondOut := filepath.Join(v.cfg.TargetDir, "second", "index.md")
	require.Eventually(t, func() bool {
		_, err := os.Stat(secondOut)
		return err == nil
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}

func TestWatchMissingDirectory(t *testing.T) {
	v := newVault(t)
	v.cfg.SourceAttachmentDir = filepath.Join(t.TempDir(), "absent")

	err := v.importer(t).Watch(context.Background())
	require.Error(t, err)
}
