// Package stress drives an ordered integer set through a seeded random
// sequence of operations and checks every answer against a roaring bitmap
// holding the same keys.
package stress

import (
	"fmt"
	"time"

	"github.com/RoaringBitmap/roaring"
	g "github.com/anacrolix/generics"
	"github.com/anacrolix/log"
	"github.com/brianvoe/gofakeit/v6"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"

	"github.com/aglyzov/go-veb/bitset"
	"github.com/aglyzov/go-veb/veb"
)

// SparsePool bounds the number of distinct keys a sparse run draws from.
const SparsePool = 1024

var (
	ErrBadConfig = errors.New("stress: bad config")
	ErrDiverged  = errors.New("stress: subject diverged from model")
)

type Config struct {
	Universe int
	Ops      int
	Seed     int64
	// Sparse draws keys from a small fixed pool instead of the whole universe.
	Sparse bool
	// Dense exercises bitset.Set instead of veb.Set.
	Dense bool
	// WalkEvery is the number of steps between full ordered comparisons.
	// Zero disables them; one walk is always done at the end.
	WalkEvery int
	// Logger must be set, DefaultConfig names one after the package.
	Logger log.Logger
}

func DefaultConfig() Config {
	return Config{
		Universe:  1 << 16,
		Ops:       100000,
		Seed:      1,
		WalkEvery: 10000,
		Logger:    log.Default.WithNames("stress"),
	}
}

type Report struct {
	Subject  string
	Universe uint64
	Ops      int
	Adds     int // successful insertions
	Dels     int // successful removals
	Hits     int // membership queries answered true
	Misses   int
	Final    int // keys left at the end
	Elapsed  time.Duration
}

func (r Report) String() string {
	return fmt.Sprintf("%s u=%s: %s ops (%s adds, %s dels, %s hits, %s misses), %s keys left, %v",
		r.Subject, humanize.Comma(int64(r.Universe)), humanize.Comma(int64(r.Ops)),
		humanize.Comma(int64(r.Adds)), humanize.Comma(int64(r.Dels)),
		humanize.Comma(int64(r.Hits)), humanize.Comma(int64(r.Misses)),
		humanize.Comma(int64(r.Final)), r.Elapsed)
}

// orderedSet is the contract shared by veb.Set[uint64] and bitset.Set.
type orderedSet interface {
	Universe() uint64
	Len() int
	Empty() bool
	Has(uint64) (bool, error)
	Add(uint64) (bool, error)
	Del(uint64) (bool, error)
	Min() g.Option[uint64]
	Max() g.Option[uint64]
	Successor(uint64) (g.Option[uint64], error)
	Predecessor(uint64) (g.Option[uint64], error)
	Keys() []uint64
}

type ranker interface {
	Rank(uint64) (int, error)
}

// Run executes cfg.Ops random operations and returns a report, or the first
// divergence from the model wrapped in ErrDiverged.
func Run(cfg Config) (Report, error) {
	if cfg.Ops < 0 || cfg.WalkEvery < 0 {
		return Report{}, errors.Wrapf(ErrBadConfig, "ops %d, walk every %d", cfg.Ops, cfg.WalkEvery)
	}

	var (
		subject orderedSet
		name    string
		err     error
	)
	if cfg.Dense {
		name = "bitset"
		subject, err = bitset.New(cfg.Universe)
	} else {
		name = "veb"
		subject, err = veb.New[uint64](cfg.Universe)
	}
	if err != nil {
		return Report{}, errors.Wrap(err, "creating subject")
	}

	return run(cfg, name, subject)
}

type runner struct {
	subject orderedSet
	model   *roaring.Bitmap
	fake    *gofakeit.Faker
	pool    []uint64
	report  Report
}

func run(cfg Config, name string, subject orderedSet) (Report, error) {
	r := &runner{
		subject: subject,
		model:   roaring.New(),
		fake:    gofakeit.New(cfg.Seed),
		report: Report{
			Subject:  name,
			Universe: subject.Universe(),
		},
	}

	if r.model.GetCardinality() != uint64(subject.Len()) {
		return r.report, errors.Wrapf(ErrBadConfig, "subject starts with %d keys", subject.Len())
	}

	if cfg.Sparse {
		size := SparsePool
		if u := subject.Universe(); u < SparsePool {
			size = int(u)
		}
		r.pool = make([]uint64, size)
		for i := range r.pool {
			r.pool[i] = r.randomKey()
		}
	}

	cfg.Logger.Levelf(log.Info, "starting %s run: universe %d, %d ops, seed %d, sparse %v",
		name, subject.Universe(), cfg.Ops, cfg.Seed, cfg.Sparse)

	start := time.Now()

	for i := 0; i < cfg.Ops; i++ {
		if err := r.step(i); err != nil {
			cfg.Logger.Levelf(log.Error, "%s run diverged: %v", name, err)
			return r.report, err
		}
		if cfg.WalkEvery > 0 && (i+1)%cfg.WalkEvery == 0 {
			if err := r.walk(i); err != nil {
				cfg.Logger.Levelf(log.Error, "%s run diverged: %v", name, err)
				return r.report, err
			}
			cfg.Logger.Levelf(log.Debug, "step %d: walked %d keys", i, subject.Len())
		}
	}

	if err := r.walk(cfg.Ops); err != nil {
		cfg.Logger.Levelf(log.Error, "%s run diverged: %v", name, err)
		return r.report, err
	}

	r.report.Elapsed = time.Since(start)
	r.report.Final = subject.Len()

	cfg.Logger.Levelf(log.Info, "finished: %v", r.report)

	return r.report, nil
}

func (r *runner) randomKey() uint64 {
	return uint64(r.fake.Number(0, int(r.subject.Universe()-1)))
}

func (r *runner) nextKey() uint64 {
	if r.pool != nil {
		return r.pool[r.fake.Number(0, len(r.pool)-1)]
	}
	return r.randomKey()
}

func (r *runner) step(i int) error {
	var (
		key = r.nextKey()
		x   = uint32(key)
	)

	r.report.Ops++

	switch r.fake.Number(0, 4) {
	case 0, 1:
		ok, err := r.subject.Add(key)
		if err != nil {
			return errors.Wrapf(err, "op %d: add(%d)", i, key)
		}
		if want := r.model.CheckedAdd(x); ok != want {
			return diverged(i, "add", key, ok, want)
		}
		if ok {
			r.report.Adds++
		}
	case 2:
		ok, err := r.subject.Del(key)
		if err != nil {
			return errors.Wrapf(err, "op %d: del(%d)", i, key)
		}
		if want := r.model.CheckedRemove(x); ok != want {
			return diverged(i, "del", key, ok, want)
		}
		if ok {
			r.report.Dels++
		}
	case 3:
		ok, err := r.subject.Has(key)
		if err != nil {
			return errors.Wrapf(err, "op %d: has(%d)", i, key)
		}
		if want := r.model.Contains(x); ok != want {
			return diverged(i, "has", key, ok, want)
		}
		if ok {
			r.report.Hits++
		} else {
			r.report.Misses++
		}
	case 4:
		if err := r.checkNeighbours(i, key); err != nil {
			return err
		}
	}

	if got, want := r.subject.Len(), int(r.model.GetCardinality()); got != want {
		return diverged(i, "len", key, got, want)
	}
	if got, want := r.subject.Empty(), r.model.IsEmpty(); got != want {
		return diverged(i, "empty", key, got, want)
	}
	if got, want := r.subject.Min(), modelMin(r.model); got != want {
		return diverged(i, "min", key, got, want)
	}
	if got, want := r.subject.Max(), modelMax(r.model); got != want {
		return diverged(i, "max", key, got, want)
	}

	return nil
}

func (r *runner) checkNeighbours(i int, key uint64) error {
	succ, err := r.subject.Successor(key)
	if err != nil {
		return errors.Wrapf(err, "op %d: successor(%d)", i, key)
	}
	if want := modelSuccessor(r.model, key); succ != want {
		return diverged(i, "successor", key, succ, want)
	}

	pred, err := r.subject.Predecessor(key)
	if err != nil {
		return errors.Wrapf(err, "op %d: predecessor(%d)", i, key)
	}
	if want := modelPredecessor(r.model, key); pred != want {
		return diverged(i, "predecessor", key, pred, want)
	}

	if rk, ok := r.subject.(ranker); ok {
		rank, err := rk.Rank(key)
		if err != nil {
			return errors.Wrapf(err, "op %d: rank(%d)", i, key)
		}
		if want := modelRank(r.model, key); rank != want {
			return diverged(i, "rank", key, rank, want)
		}
	}

	return nil
}

// walk compares the full ordered contents of the subject and the model.
func (r *runner) walk(i int) error {
	var (
		keys = r.subject.Keys()
		j    int
		err  error
	)

	r.model.Iterate(func(x uint32) bool {
		if j >= len(keys) || keys[j] != uint64(x) {
			err = errors.Wrapf(ErrDiverged, "op %d: walk: position %d holds %v, want %d", i, j, keyAt(keys, j), x)
			return false
		}
		j++
		return true
	})
	if err != nil {
		return err
	}
	if j != len(keys) {
		return errors.Wrapf(ErrDiverged, "op %d: walk: %d extra keys from %d", i, len(keys)-j, keys[j])
	}

	return nil
}

func keyAt(keys []uint64, j int) interface{} {
	if j < len(keys) {
		return keys[j]
	}
	return "nothing"
}

func diverged(i int, op string, key uint64, got, want interface{}) error {
	return errors.Wrapf(ErrDiverged, "op %d: %s(%d): got %v, want %v", i, op, key, got, want)
}
