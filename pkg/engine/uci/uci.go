// Package uci contains a driver for using the engine under the UCI protocol.
//
// See: http://wbec-ridderkerk.nl/html/UCIProtocol.html
package uci

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/corvid-chess/corvid/pkg/board"
	"github.com/corvid-chess/corvid/pkg/board/fen"
	"github.com/corvid-chess/corvid/pkg/engine"
	"github.com/corvid-chess/corvid/pkg/search"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
	"go.uber.org/atomic"
)

const ProtocolName = "uci"

// Driver implements a UCI driver for an engine. It is activated once "uci" is received.
type Driver struct {
	e *engine.Engine

	out chan<- string

	active       atomic.Bool
	ponder       chan search.PV
	lastPosition string

	quit   chan struct{}
	closed atomic.Bool
}

// NewDriver wires a Driver to an engine, reading commands from in and writing protocol lines to
// the returned channel until in closes or "quit" is received.
func NewDriver(ctx context.Context, e *engine.Engine, in <-chan string) (*Driver, <-chan string) {
	out := make(chan string, 100)
	d := &Driver{
		e:      e,
		out:    out,
		ponder: make(chan search.PV, 400),
		quit:   make(chan struct{}),
	}
	go d.process(ctx, in)
	return d, out
}

func (d *Driver) Close() {
	if d.closed.CAS(false, true) {
		close(d.quit)
	}
}

func (d *Driver) Closed() <-chan struct{} {
	return d.quit
}

func (d *Driver) process(ctx context.Context, in <-chan string) {
	defer d.Close()
	defer close(d.out)

	logw.Infof(ctx, "UCI protocol initialized")

	d.out <- fmt.Sprintf("id name %v", d.e.Name())
	d.out <- fmt.Sprintf("id author %v", d.e.Author())
	d.out <- "option name Hash type spin default 64 min 1 max 4096"
	d.out <- "option name Threads type spin default 1 min 1 max 64"
	d.out <- "option name Clear Hash type button"
	d.out <- "option name Ponder type check default false"
	d.out <- "option name UCI_AnalyseMode type check default false"
	d.out <- "uciok"

	for {
		select {
		case line, ok := <-in:
			if !ok {
				logw.Infof(ctx, "Input stream broken. Exiting")
				return
			}
			if !d.handle(ctx, line) {
				return
			}

		case pv := <-d.ponder:
			if d.active.Load() {
				d.out <- printPV(pv)
			}

		case <-d.quit:
			d.ensureInactive(ctx)
			logw.Infof(ctx, "Driver closed")
			return
		}
	}
}

// handle processes one input line. Returns false if the driver should shut down.
func (d *Driver) handle(ctx context.Context, line string) bool {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return true
	}
	cmd, args := strings.ToLower(parts[0]), parts[1:]

	switch cmd {
	case "isready":
		d.out <- "readyok"

	case "debug":
		// No additional debug output implemented.

	case "setoption":
		d.setOption(ctx, args)

	case "register":
		// Registration is not required by this engine.

	case "ucinewgame":
		d.ensureInactive(ctx)
		d.lastPosition = ""

	case "position":
		d.position(ctx, line, args)

	case "go":
		d.goCmd(ctx, line, args)

	case "stop":
		pv, err := d.e.Halt(ctx)
		if err == nil {
			d.searchCompleted(ctx, pv)
		}

	case "ponderhit":
		// Accepted and ignored: a running search continues unchanged until "stop" or its own limits.

	case "quit":
		return false

	default:
		logw.Warningf(ctx, "Unknown command %q: %v", cmd, args)
	}
	return true
}

func (d *Driver) setOption(ctx context.Context, args []string) {
	// "setoption name <id> [value <x>]"
	var name, value string
	inName, inValue := false, false
	for _, a := range args {
		switch a {
		case "name":
			inName, inValue = true, false
			continue
		case "value":
			inName, inValue = false, true
			continue
		}
		switch {
		case inName:
			if name != "" {
				name += " "
			}
			name += a
		case inValue:
			if value != "" {
				value += " "
			}
			value += a
		}
	}

	switch name {
	case "Hash":
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			d.e.SetHash(uint(n))
		}
	case "Threads":
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			d.e.SetThreads(n)
		}
	case "Clear Hash":
		d.e.ClearHash()
	case "Ponder":
		// No engine-side state: with or without this option, "go ponder" runs as a normal search
		// and "ponderhit" is ignored.
	case "UCI_AnalyseMode":
		// No distinct analysis mode: the engine always searches and reports the same way.
	default:
		logw.Debugf(ctx, "Ignoring unsupported option %q", name)
	}
}

func (d *Driver) position(ctx context.Context, line string, args []string) {
	d.ensureInactive(ctx)

	if d.lastPosition != "" && strings.HasPrefix(line, d.lastPosition) {
		moves := strings.TrimSpace(strings.TrimPrefix(line, d.lastPosition))
		for _, arg := range strings.Fields(moves) {
			if arg == "moves" {
				continue
			}
			if err := d.e.Move(ctx, arg); err != nil {
				logw.Errorf(ctx, "Invalid position move %q: %v: %v", arg, line, err)
				return
			}
		}
		d.lastPosition = line
		return
	}

	pos := fen.Startpos
	if len(args) >= 7 && args[0] == "fen" {
		pos = strings.Join(args[1:7], " ")
	}
	if err := d.e.Reset(ctx, pos); err != nil {
		logw.Errorf(ctx, "Invalid position: %v", line)
		return
	}

	move := false
	for _, arg := range args {
		if arg == "moves" {
			move = true
			continue
		}
		if !move {
			continue
		}
		if err := d.e.Move(ctx, arg); err != nil {
			logw.Errorf(ctx, "Invalid position move %q: %v: %v", arg, line, err)
			return
		}
	}
	d.lastPosition = line
}

func (d *Driver) goCmd(ctx context.Context, line string, args []string) {
	d.ensureInactive(ctx)

	var opt search.Options
	infinite := false
	var tc search.TimeControl
	haveTC := false

	for i := 0; i < len(args); i++ {
		cmd := args[i]
		switch cmd {
		case "wtime", "btime", "winc", "binc", "movestogo", "depth", "nodes", "mate", "movetime":
			i++
			if i == len(args) {
				logw.Errorf(ctx, "No argument for %v: %v", cmd, line)
				return
			}
			n, err := strconv.Atoi(args[i])
			if err != nil {
				logw.Errorf(ctx, "Invalid argument for %v: %v", line, err)
				return
			}
			switch cmd {
			case "depth":
				opt.DepthLimit = lang.Some(n)
			case "nodes":
				opt.NodesLimit = lang.Some(uint64(n))
			case "mate":
				opt.MateLimit = n
			case "movetime":
				opt.MoveTime = time.Millisecond * time.Duration(n)
			case "wtime":
				tc.White, haveTC = time.Millisecond*time.Duration(n), true
			case "btime":
				tc.Black, haveTC = time.Millisecond*time.Duration(n), true
			case "movestogo":
				tc.Moves, haveTC = n, true
			case "winc", "binc":
				// Increments aren't modeled by TimeControl.Limits; ignored.
			}

		case "infinite":
			infinite = true
		case "ponder":
			// Treated the same as a normal search; a later "ponderhit" does not change it.
		case "searchmoves":
			for i+1 < len(args) {
				m, err := board.ParseMove(args[i+1])
				if err != nil {
					break
				}
				opt.SearchMoves = append(opt.SearchMoves, m)
				i++
			}
		default:
			// Silently ignore anything not handled.
		}
	}

	opt.Infinite = infinite
	if haveTC {
		opt.TimeControl = lang.Some(tc)
	}

	out, err := d.e.Analyze(ctx, opt)
	if err != nil {
		logw.Errorf(ctx, "Analyze failed: %v", err)
		return
	}
	d.active.Store(true)

	go func() {
		var last search.PV
		for pv := range out {
			last = pv
			d.ponder <- pv
		}
		if !infinite {
			d.searchCompleted(ctx, last)
		}
	}()
}

func (d *Driver) ensureInactive(ctx context.Context) {
	d.active.Store(false)
	_, _ = d.e.Halt(ctx)
}

func (d *Driver) searchCompleted(ctx context.Context, pv search.PV) {
	if d.active.CAS(true, false) {
		if len(pv.Moves) > 0 {
			d.out <- printPV(pv)
			d.out <- fmt.Sprintf("bestmove %v", pv.Moves[0])
		} else {
			d.out <- "bestmove 0000"
		}
	}
}

// pliesToMoves converts a signed ply distance to mate (positive: this side mates; negative: this
// side gets mated) into the signed move count the "score mate" token expects.
func pliesToMoves(plies int) int {
	if plies < 0 {
		return -((-plies + 1) / 2)
	}
	return (plies + 1) / 2
}

func printPV(pv search.PV) string {
	parts := []string{"info", fmt.Sprintf("depth %v", pv.Depth)}
	if pv.MateIn != 0 {
		parts = append(parts, fmt.Sprintf("score mate %v", pliesToMoves(pv.MateIn)))
	} else {
		parts = append(parts, fmt.Sprintf("score cp %v", int(pv.Score)))
	}
	if pv.Nodes > 0 {
		parts = append(parts, fmt.Sprintf("nodes %v", pv.Nodes))
	}
	if pv.Time > 0 {
		parts = append(parts, fmt.Sprintf("time %v", pv.Time.Milliseconds()))
		if pv.Nodes > 0 {
			parts = append(parts, fmt.Sprintf("nps %v", uint64(time.Second)*pv.Nodes/uint64(pv.Time)))
		}
	}
	parts = append(parts, fmt.Sprintf("hashfull %v", pv.Hashfull))
	if len(pv.Moves) > 0 {
		parts = append(parts, "pv", board.FormatMoves(pv.Moves))
	}
	return strings.Join(parts, " ")
}
