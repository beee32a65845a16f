// Runs a randomized differential test of the van Emde Boas set (or the dense
// bitset) against a roaring bitmap and prints a summary.
package main

import (
	"fmt"
	"os"

	"github.com/anacrolix/log"
	"github.com/anacrolix/tagflag"

	"github.com/aglyzov/go-veb/stress"
)

func main() {
	def := stress.DefaultConfig()

	flags := struct {
		Universe  int   `help:"universe size, rounded up to a power of two (at most 2^24 for the vEB tree)"`
		Ops       int   `help:"number of random operations"`
		Seed      int64 `help:"random seed"`
		Sparse    bool  `help:"draw keys from a small fixed pool"`
		Dense     bool  `help:"exercise the dense bitset instead of the vEB tree"`
		WalkEvery int   `help:"steps between full ordered comparisons, 0 disables"`
		Debug     bool  `help:"log every walk"`
	}{
		Universe:  def.Universe,
		Ops:       def.Ops,
		Seed:      def.Seed,
		WalkEvery: def.WalkEvery,
	}
	tagflag.Parse(&flags)

	level := log.Info
	if flags.Debug {
		level = log.Debug
	}

	cfg := stress.Config{
		Universe:  flags.Universe,
		Ops:       flags.Ops,
		Seed:      flags.Seed,
		Sparse:    flags.Sparse,
		Dense:     flags.Dense,
		WalkEvery: flags.WalkEvery,
		Logger:    log.Default.WithNames("vebstress").FilterLevel(level),
	}

	report, err := stress.Run(cfg)
	if err != nil {
		cfg.Logger.Levelf(log.Error, "%v", err)
		os.Exit(1)
	}
	fmt.Println(report)
}
