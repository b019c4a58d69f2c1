package dedupe

import (
	"context"
	"log/slog"
	"runtime"
	"sort"
	"sync"

	"github.com/opencoc/pitpipe/pkg/frame"
)

// Annotation is the per-record outcome of a detection run.
type Annotation struct {
	Score    Score
	Reason   string
	Partners []int // 0-based row indices of every matching partner, sorted
}

// Detector runs the pairwise duplicate scan over one source's records.
type Detector struct {
	// Region selects the rule variant by display name; anything but
	// the known regions uses the universal rules.
	Region string
	// Workers caps the shard goroutines; 0 means GOMAXPROCS.
	Workers int
	Logger  *slog.Logger
}

// Detect annotates every row of t. The upper-triangular pair matrix is
// sharded by first index across workers; per-shard results merge by
// taking the highest-priority score per record and the union of partner
// sets, so the outcome is independent of sharding. Detection is
// stateless: each call recomputes everything.
func (d *Detector) Detect(ctx context.Context, t *frame.Table) ([]Annotation, NameMode, error) {
	mode := DetectNameMode(t)
	recs := prepare(t, mode)
	rules := ruleSetFor(d.Region)
	n := len(recs)

	if d.Logger != nil {
		d.Logger.Info("duplicate scan", "records", n, "name_mode", mode.String(), "region", d.Region)
	}

	workers := d.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > n {
		workers = 1
	}

	type shardResult struct {
		best     map[int]verdict
		partners map[int]map[int]bool
	}

	rows := make(chan int)
	results := make([]shardResult, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			res := shardResult{
				best:     make(map[int]verdict),
				partners: make(map[int]map[int]bool),
			}
			for i := range rows {
				if recs[i].noName {
					continue
				}
				for j := i + 1; j < n; j++ {
					if recs[j].noName {
						continue
					}
					v := comparePair(recs[i], recs[j], rules)
					if v.Score == NotDuplicate {
						continue
					}
					link(res.partners, i, j)
					link(res.partners, j, i)
					for _, idx := range [2]int{i, j} {
						if v.Score > res.best[idx].Score {
							res.best[idx] = v
						}
					}
				}
			}
			results[w] = res
		}(w)
	}

	// Feed row shards, checking for cancellation between batches.
	var feedErr error
	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			feedErr = ctx.Err()
		case rows <- i:
			continue
		}
		break
	}
	close(rows)
	wg.Wait()
	if feedErr != nil {
		return nil, mode, feedErr
	}

	// Merge shards: max-priority verdict per record, union of partners.
	best := make(map[int]verdict)
	partners := make(map[int]map[int]bool)
	for _, res := range results {
		for idx, v := range res.best {
			if v.Score > best[idx].Score {
				best[idx] = v
			}
		}
		for idx, set := range res.partners {
			for p := range set {
				link(partners, idx, p)
			}
		}
	}

	out := make([]Annotation, n)
	for i := range out {
		switch {
		case recs[i].noName:
			out[i] = Annotation{Score: NoName, Reason: "Cannot evaluate - Missing name information"}
		default:
			v := best[i]
			out[i] = Annotation{Score: v.Score, Reason: v.Reason, Partners: sortedKeys(partners[i])}
		}
	}
	return out, mode, nil
}

func link(m map[int]map[int]bool, from, to int) {
	set := m[from]
	if set == nil {
		set = make(map[int]bool)
		m[from] = set
	}
	set[to] = true
}

func sortedKeys(set map[int]bool) []int {
	if len(set) == 0 {
		return nil
	}
	keys := make([]int, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// Summary tallies a detection run by score category.
type Summary struct {
	Total        int `json:"total"`
	Likely       int `json:"likely"`
	Somewhat     int `json:"somewhat"`
	Possible     int `json:"possible"`
	NoName       int `json:"no_name"`
	NotDuplicate int `json:"not_duplicate"`
	Flagged      int `json:"flagged"`
}

// Summarize counts annotations per category; Flagged is everything but
// Not Duplicate.
func Summarize(anns []Annotation) Summary {
	s := Summary{Total: len(anns)}
	for _, a := range anns {
		switch a.Score {
		case Likely:
			s.Likely++
		case SomewhatLikely:
			s.Somewhat++
		case Possible:
			s.Possible++
		case NoName:
			s.NoName++
		default:
			s.NotDuplicate++
		}
	}
	s.Flagged = s.Total - s.NotDuplicate
	return s
}
