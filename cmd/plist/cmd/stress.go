package cmd

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc/pool"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/aweris/plist"
)

var stressCmd = &cobra.Command{
	Use:   "stress",
	Short: "Stress teardown on long shared chains",
	Long: "Build a long chain, fork versions that share suffixes of it, release everything in random order " +
		"and check that every node was reclaimed. Trials run in parallel, each on its own arena.",
	Args: cobra.NoArgs,
	RunE: runStress,
}

func init() {
	rootCmd.AddCommand(stressCmd)

	f := stressCmd.Flags()
	f.Int("length", 100_000, "nodes in the base chain")
	f.Int("versions", 16, "versions forked off the base chain per trial")
	f.Int("trials", 4, "number of independent trials")
	f.Int("workers", 4, "trials run at once")
	f.Uint64("seed", 1, "random seed")

	viper.BindPFlag("length", f.Lookup("length"))
	viper.BindPFlag("versions", f.Lookup("versions"))
	viper.BindPFlag("trials", f.Lookup("trials"))
	viper.BindPFlag("workers", f.Lookup("workers"))
	viper.BindPFlag("seed", f.Lookup("seed"))
}

type stressConfig struct {
	Length   int
	Versions int
	Trials   int
	Workers  int
	Seed     uint64
}

type trialReport struct {
	Trial     int
	Allocated int
	Reclaimed int
	Slots     int
	Elapsed   time.Duration
}

func runStress(cmd *cobra.Command, args []string) error {
	cfg := stressConfig{
		Length:   viper.GetInt("length"),
		Versions: viper.GetInt("versions"),
		Trials:   viper.GetInt("trials"),
		Workers:  viper.GetInt("workers"),
		Seed:     viper.GetUint64("seed"),
	}

	reports, err := stress(cmd.Context(), cfg)
	if err != nil {
		return fmt.Errorf("stress failed: %w", err)
	}

	out := cmd.OutOrStdout()
	for _, r := range reports {
		fmt.Fprintf(out, "trial %d\tallocated=%d\treclaimed=%d\tslots=%d\t%s\n",
			r.Trial, r.Allocated, r.Reclaimed, r.Slots, r.Elapsed.Round(time.Microsecond))
	}
	return nil
}

func stress(ctx context.Context, cfg stressConfig) ([]trialReport, error) {
	if cfg.Length < 0 || cfg.Versions < 0 || cfg.Trials < 0 {
		return nil, fmt.Errorf("length, versions and trials must be non-negative")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}

	p := pool.NewWithResults[trialReport]().WithMaxGoroutines(workers).WithContext(ctx).WithCancelOnError()
	for i := 0; i < cfg.Trials; i++ {
		p.Go(func(ctx context.Context) (trialReport, error) {
			return runTrial(ctx, i, cfg.Length, cfg.Versions, cfg.Seed+uint64(i))
		})
	}

	reports, err := p.Wait()
	if err != nil {
		return nil, err
	}
	sort.Slice(reports, func(i, j int) bool { return reports[i].Trial < reports[j].Trial })
	return reports, nil
}

// runTrial owns its arena for its whole lifetime; nothing escapes the goroutine.
// Cancellation is checked between phases; the arena is released either way.
func runTrial(ctx context.Context, trial, length, versions int, seed uint64) (trialReport, error) {
	if err := ctx.Err(); err != nil {
		return trialReport{}, err
	}
	start := time.Now()
	rng := rand.New(rand.NewPCG(seed, uint64(trial)))
	tlog := log.WithField("trial", trial)

	base := plist.New[int](plist.WithCapacity(length+versions), plist.WithLogger(tlog))
	for i := 0; i < length; i++ {
		next := base.Prepend(i)
		base.Release()
		base = next
	}
	if err := ctx.Err(); err != nil {
		base.Release()
		return trialReport{}, err
	}

	forks := make([]*plist.List[int], 0, versions)
	depths := make([]int, 0, versions)
	for v := 0; v < versions; v++ {
		depth := rng.IntN(length + 1)
		l := base.Clone()
		for d := 0; d < depth; d++ {
			next := l.Tail()
			l.Release()
			l = next
		}
		fork := l.Prepend(-v - 1)
		l.Release()

		forks = append(forks, fork)
		depths = append(depths, depth)
	}
	if err := ctx.Err(); err != nil {
		releaseAll(base, forks)
		return trialReport{}, err
	}

	for v, fork := range forks {
		head, _ := fork.Head()
		if head != -v-1 {
			releaseAll(base, forks)
			return trialReport{}, fmt.Errorf("trial %d: version %d has head %d", trial, v, head)
		}
		if want := length - depths[v] + 1; fork.Len() != want {
			releaseAll(base, forks)
			return trialReport{}, fmt.Errorf("trial %d: version %d has %d elements, want %d", trial, v, fork.Len(), want)
		}
	}

	// order of release must not matter
	rng.Shuffle(len(forks), func(i, j int) { forks[i], forks[j] = forks[j], forks[i] })
	releaseAll(base, forks)

	st := base.Stats()
	if st.Live != 0 {
		return trialReport{}, fmt.Errorf("trial %d: %d nodes leaked", trial, st.Live)
	}

	r := trialReport{
		Trial:     trial,
		Allocated: st.Allocated,
		Reclaimed: st.Reclaimed,
		Slots:     st.Slots,
		Elapsed:   time.Since(start),
	}
	tlog.WithFields(logrus.Fields{
		"allocated": r.Allocated,
		"reclaimed": r.Reclaimed,
		"elapsed":   r.Elapsed,
	}).Debug("trial done")
	return r, nil
}

func releaseAll(base *plist.List[int], forks []*plist.List[int]) {
	base.Release()
	for _, fork := range forks {
		fork.Release()
	}
}
