package integration

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hmmkit/internal/app"
)

const slowFetch = `#!/bin/sh
[ "$1" = "-h" ] && exit 0
exec sleep 30
`

func TestCancelMidExtractExit130(t *testing.T) {
	dir := t.TempDir()
	fetch := writeScript(t, dir, "hmmfetch", slowFetch)
	stage := t.TempDir()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(200 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	code := app.RunContext(ctx, []string{
		"extract", "-t", "4", "--no-progress", "--hmmfetch", fetch, "--tmp-dir", stage,
		"-o", filepath.Join(t.TempDir(), "o.hmm"), "db.hmm", "A", "B", "C", "D", "E", "F",
	}, io.Discard, io.Discard)

	assert.Equal(t, 130, code)
	assert.Less(t, time.Since(start), 10*time.Second, "cancellation must not wait for the fetchers")

	left, err := os.ReadDir(stage)
	require.NoError(t, err)
	assert.Empty(t, left, "staged files left behind after cancel")
}
