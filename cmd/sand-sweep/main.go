package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"sand-ca/internal/sims/sand"
)

type job struct {
	scenario string
	size     int
	seed     int64
}

func (j job) String() string {
	return fmt.Sprintf("%s %dx%d seed=%d", j.scenario, j.size, j.size, j.seed)
}

type result struct {
	job
	sand.SettleResult
	elapsed time.Duration
}

func main() {
	scenarioList := flag.String("scenarios", strings.Join(sand.ScenarioNames(), ","), "comma-separated scenarios to run")
	sizeList := flag.String("sizes", "32,64,96", "comma-separated square grid sizes")
	seeds := flag.Int("seeds", 8, "seeds per scenario and size")
	firstSeed := flag.Int64("seed", 1, "first seed")
	maxTicks := flag.Int("max-ticks", 2000, "tick budget per run")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	top := flag.Int("top", 5, "slowest runs to list")
	flag.Parse()

	scenarios := map[string]sand.Scenario{}
	var names []string
	for _, name := range splitList(*scenarioList) {
		s, err := sand.LookupScenario(name)
		if err != nil {
			log.Fatal(err)
		}
		scenarios[name] = s
		names = append(names, name)
	}
	var sizes []int
	for _, v := range splitList(*sizeList) {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			log.Fatalf("bad size %q", v)
		}
		sizes = append(sizes, n)
	}

	var jobs []job
	for _, name := range names {
		for _, size := range sizes {
			for i := 0; i < *seeds; i++ {
				jobs = append(jobs, job{scenario: name, size: size, seed: *firstSeed + int64(i)})
			}
		}
	}

	fmt.Printf("Sweeping %d runs (%d workers, %d tick budget)\n", len(jobs), *workers, *maxTicks)

	queue := make(chan job)
	results := make(chan result)
	var wg sync.WaitGroup

	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range queue {
				results <- run(j, scenarios[j.scenario], *maxTicks)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, j := range jobs {
			queue <- j
		}
		close(queue)
	}()

	start := time.Now()
	var all []result
	failed := 0
	for res := range results {
		all = append(all, res)
		// Lone water cells can wander forever, so this is informational.
		if !res.Settled {
			fmt.Printf("Did not settle within %d ticks: %s\n", *maxTicks, res.job)
		}
		if !res.Conserved() {
			failed++
			fmt.Printf("Cell counts changed: %s initial=%v final=%v\n", res.job, res.Initial, res.Final)
		}
	}
	elapsed := time.Since(start)

	report(all, *top, elapsed)
	if failed > 0 {
		os.Exit(1)
	}
}

func run(j job, scenario sand.Scenario, maxTicks int) result {
	cfg := sand.DefaultConfig()
	cfg.Width = j.size
	cfg.Height = j.size
	cfg.Seed = j.seed
	start := time.Now()
	res := sand.Settle(cfg, scenario, maxTicks)
	return result{job: j, SettleResult: res, elapsed: time.Since(start)}
}

type group struct {
	scenario string
	size     int
}

func report(all []result, top int, elapsed time.Duration) {
	type summary struct {
		runs, settled   int
		minT, maxT, sum int
		peak            int
	}
	sums := map[group]*summary{}
	var keys []group
	for _, res := range all {
		k := group{res.scenario, res.size}
		s, ok := sums[k]
		if !ok {
			s = &summary{minT: res.Ticks, maxT: res.Ticks}
			sums[k] = s
			keys = append(keys, k)
		}
		s.runs++
		if res.Settled {
			s.settled++
		}
		s.sum += res.Ticks
		s.minT = min(s.minT, res.Ticks)
		s.maxT = max(s.maxT, res.Ticks)
		s.peak = max(s.peak, res.PeakMoved)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].scenario != keys[j].scenario {
			return keys[i].scenario < keys[j].scenario
		}
		return keys[i].size < keys[j].size
	})

	fmt.Printf("\nSettle ticks by scenario (elapsed %s):\n", elapsed.Round(time.Millisecond))
	for _, k := range keys {
		s := sums[k]
		fmt.Printf("%-10s %4dx%-4d settled=%d/%d ticks min=%d avg=%.1f max=%d peakMoved=%d\n",
			k.scenario, k.size, k.size, s.settled, s.runs, s.minT, float64(s.sum)/float64(s.runs), s.maxT, s.peak)
	}

	sort.Slice(all, func(i, j int) bool { return all[i].Ticks > all[j].Ticks })
	fmt.Printf("\nSlowest %d runs:\n", min(top, len(all)))
	for i := 0; i < len(all) && i < top; i++ {
		res := all[i]
		fmt.Printf("%2d) ticks=%d peakMoved=%d elapsed=%s %s\n",
			i+1, res.Ticks, res.PeakMoved, res.elapsed.Round(time.Microsecond), res.job)
	}
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
