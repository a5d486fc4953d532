//go:build unix

package digester_test

import (
	"context"
	"os"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hkanpak21/funhash/digester"
	"github.com/hkanpak21/funhash/ikh"
)

func TestDigestFiles_cancel_while_waiting_for_slot(t *testing.T) {
	t.Parallel()

	fifo := filepath.Join(t.TempDir(), "slow.fifo")
	require.NoError(t, syscall.Mkfifo(fifo, 0o600))

	paths := []string{fifo, writeTemp(t, "next.txt", "next")}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	type outcome struct {
		results []digester.Result
		err     error
	}

	done := make(chan outcome, 1)

	go func() {
		res, err := digester.DigestFiles(ctx, ikh.Canonical, paths, 1)
		done <- outcome{results: res, err: err}
	}()

	// The writer end only opens once the worker holds the
	// single slot and is reading the fifo.
	var wr *os.File

	require.Eventually(t, func() bool {
		f, err := os.OpenFile(fifo, os.O_WRONLY|syscall.O_NONBLOCK, 0)
		if err != nil {
			return false
		}

		wr = f

		return true
	}, 5*time.Second, 10*time.Millisecond)

	cancel()

	_, err := wr.WriteString("slow")
	require.NoError(t, err)
	require.NoError(t, wr.Close())

	var got outcome

	select {
	case got = <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("DigestFiles did not return")
	}

	require.ErrorIs(t, got.err, context.Canceled)
	assert.Equal(t, ikh.Hex("slow"), got.results[0].Digest)
	assert.Empty(t, got.results[1].Digest)
}
