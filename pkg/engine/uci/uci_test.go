package uci_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/corvid-chess/corvid/pkg/engine"
	"github.com/corvid-chess/corvid/pkg/engine/uci"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readUntil(t *testing.T, out <-chan string, want string, timeout time.Duration) []string {
	t.Helper()
	var lines []string
	deadline := time.After(timeout)
	for {
		select {
		case line, ok := <-out:
			if !ok {
				t.Fatalf("output closed before seeing %q; got %v", want, lines)
			}
			lines = append(lines, line)
			if strings.Contains(line, want) {
				return lines
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %q; got %v", want, lines)
		}
	}
}

func TestHandshake(t *testing.T) {
	ctx := context.Background()
	e := engine.New(ctx, "corvid", "corvid-chess")

	in := make(chan string, 10)
	_, out := uci.NewDriver(ctx, e, in)

	lines := readUntil(t, out, "uciok", time.Second)
	joined := strings.Join(lines, "\n")
	assert.Contains(t, joined, "id name corvid")
	assert.Contains(t, joined, "id author corvid-chess")
	assert.Contains(t, joined, "option name Hash")
	assert.Contains(t, joined, "option name Threads")
}

func TestQuitClosesDriver(t *testing.T) {
	ctx := context.Background()
	e := engine.New(ctx, "corvid", "corvid-chess")

	in := make(chan string, 10)
	driver, out := uci.NewDriver(ctx, e, in)
	readUntil(t, out, "uciok", time.Second)

	in <- "quit"

	select {
	case <-driver.Closed():
	case <-time.After(time.Second):
		t.Fatal("driver did not close after quit")
	}
}

func TestIsReady(t *testing.T) {
	ctx := context.Background()
	e := engine.New(ctx, "corvid", "corvid-chess")

	in := make(chan string, 10)
	_, out := uci.NewDriver(ctx, e, in)
	readUntil(t, out, "uciok", time.Second)

	in <- "isready"
	readUntil(t, out, "readyok", time.Second)
}

func TestGoInfiniteThenStopRespondsPromptly(t *testing.T) {
	ctx := context.Background()
	e := engine.New(ctx, "corvid", "corvid-chess")

	in := make(chan string, 10)
	_, out := uci.NewDriver(ctx, e, in)
	readUntil(t, out, "uciok", time.Second)

	in <- "position startpos moves e2e4"
	in <- "go infinite"

	time.Sleep(100 * time.Millisecond)
	in <- "stop"

	lines := readUntil(t, out, "bestmove", 2*time.Second)
	require.NotEmpty(t, lines)
}
