package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/corvid-chess/corvid/pkg/engine"
	"github.com/corvid-chess/corvid/pkg/engine/uci"
	"github.com/seekerror/logw"
)

var (
	hash    = flag.Uint("hash", 64, "Transposition table size in MB")
	threads = flag.Int("threads", 1, "Number of search worker threads")
	depth   = flag.Int("depth", 0, "Default search depth limit (zero if unbounded)")
)

func init() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `usage: corvid [options]

CORVID is a UCI chess engine.
Options:
`)
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	ctx := context.Background()

	e := engine.New(ctx, "corvid", "corvid-chess", engine.WithOptions(engine.Options{
		Depth:   *depth,
		Hash:    *hash,
		Threads: *threads,
	}))

	in := engine.ReadStdinLines(ctx)
	switch <-in {
	case uci.ProtocolName:
		driver, out := uci.NewDriver(ctx, e, in)
		go engine.WriteStdoutLines(ctx, out)

		<-driver.Closed()

	default:
		flag.Usage()
		logw.Exitf(ctx, "Protocol not supported")
	}
}
