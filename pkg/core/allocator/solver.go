package allocator

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

// Status is the solver outcome
type Status string

const (
	// StatusOptimal means the search space was exhausted: the incumbent is
	// a proven optimum
	StatusOptimal Status = "optimal"

	// StatusFeasible means the time budget ran out; the incumbent is the
	// best solution found so far, not proven optimal
	StatusFeasible Status = "feasible"

	// StatusInfeasible means the hard constraints admit no solution
	StatusInfeasible Status = "infeasible"

	// StatusModelInvalid means the model is internally inconsistent
	StatusModelInvalid Status = "invalid_model"

	// StatusUnknown means the budget ran out before any solution was found
	StatusUnknown Status = "unknown"
)

// IsSolved reports whether the status carries a usable assignment
func (s Status) IsSolved() bool {
	return s == StatusOptimal || s == StatusFeasible
}

// SolveOptions bounds the search
type SolveOptions struct {
	// Timeout is the wall-clock budget. Zero means no limit.
	Timeout time.Duration

	// Workers is the number of cooperating search goroutines. With one
	// worker the search, and therefore tie-breaking between
	// equal-objective solutions, is fully deterministic; with more, the
	// winner among equal scores depends on goroutine timing.
	Workers int
}

// Solution is the best assignment found
type Solution struct {
	Status Status

	// Objective is the achieved objective value
	Objective int

	WallTime time.Duration

	// Chosen maps each fixture index to the chosen variable index in
	// Model.Vars, or -1 when the fixture is unallocated. A fixture's
	// allocated indicator is true iff its entry is not -1.
	Chosen []int
}

// AllocatedCount returns how many fixtures received a slot
func (s *Solution) AllocatedCount() int {
	count := 0
	for _, c := range s.Chosen {
		if c >= 0 {
			count++
		}
	}
	return count
}

// Solve runs a parallel branch-and-bound search for the assignment
// maximizing the model's objective.
//
// The search explores fixtures in ascending candidate-count order and each
// fixture's candidates in descending weight order. The empty assignment
// seeds the incumbent, so a timeout always yields a feasible (possibly
// empty) solution rather than a failure. Worker parallelism is contained
// entirely inside this call; cancellation is via the timeout or the caller's
// context only.
func Solve(ctx context.Context, m *Model, opts SolveOptions) (*Solution, error) {
	start := time.Now()

	if m == nil {
		return &Solution{Status: StatusModelInvalid}, nil
	}
	if err := m.validate(); err != nil {
		return &Solution{Status: StatusModelInvalid}, err
	}

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	run := newRun(m)

	if len(run.order) == 0 {
		return run.solution(StatusOptimal, start), nil
	}

	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}

	first := run.order[0]
	branches := slices.Clone(m.VarsByFixture[first])
	// -1 is the "leave unallocated" branch
	branches = append(branches, -1)

	if workers == 1 || len(branches) == 1 {
		s := newSearcher(run, ctx)
		s.dfs(0)
	} else {
		tasks := make(chan int)
		g, gctx := errgroup.WithContext(ctx)
		for range min(workers, len(branches)) {
			g.Go(func() error {
				for branch := range tasks {
					s := newSearcher(run, gctx)
					s.searchBranch(first, branch)
				}
				return nil
			})
		}
		for _, b := range branches {
			tasks <- b
		}
		close(tasks)
		// Workers never return errors; Wait is for completion only
		_ = g.Wait()
	}

	status := StatusOptimal
	if run.timedOut.Load() {
		status = StatusFeasible
	}
	return run.solution(status, start), nil
}

// run holds state shared between search workers
type run struct {
	model *Model

	// order is the fixture visit order: ascending candidate count, index
	// as tie-break. Fixtures with no candidates are excluded; they stay
	// unallocated.
	order []int

	// suffix[k] is an optimistic bound on the score obtainable from
	// fixtures order[k:]: each contributes at most the allocation reward
	// plus its best candidate weight (penalties only subtract, so ignoring
	// them keeps the bound admissible)
	suffix []int

	best      atomic.Int64
	timedOut  atomic.Bool
	mu        sync.Mutex
	incumbent []int
}

func newRun(m *Model) *run {
	r := &run{model: m}

	for fi := range m.Fixtures {
		if len(m.VarsByFixture[fi]) > 0 {
			r.order = append(r.order, fi)
		}
	}
	slices.SortStableFunc(r.order, func(a, b int) int {
		return len(m.VarsByFixture[a]) - len(m.VarsByFixture[b])
	})

	r.suffix = make([]int, len(r.order)+1)
	for k := len(r.order) - 1; k >= 0; k-- {
		fi := r.order[k]
		bestVar := m.Vars[m.VarsByFixture[fi][0]]
		r.suffix[k] = r.suffix[k+1] + max(0, m.AllocationReward+bestVar.Weight)
	}

	// Seed the empty assignment so a timeout is never empty-handed
	r.incumbent = make([]int, len(m.Fixtures))
	for i := range r.incumbent {
		r.incumbent[i] = -1
	}
	r.best.Store(0)

	return r
}

// offer records a complete assignment if it strictly beats the incumbent.
// Ties keep the first solution found.
func (r *run) offer(score int, chosen []int) {
	if int64(score) <= r.best.Load() {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if int64(score) > r.best.Load() {
		copy(r.incumbent, chosen)
		r.best.Store(int64(score))
	}
}

func (r *run) solution(status Status, start time.Time) *Solution {
	r.mu.Lock()
	defer r.mu.Unlock()
	return &Solution{
		Status:    status,
		Objective: int(r.best.Load()),
		WallTime:  time.Since(start),
		Chosen:    slices.Clone(r.incumbent),
	}
}

// searcher is one worker's private search state
type searcher struct {
	run *run
	ctx context.Context

	slotUsed []bool
	dpCount  []int
	dpEarly  []bool
	dpMid    []bool
	chosen   []int
	score    int
	nodes    uint64
}

func newSearcher(r *run, ctx context.Context) *searcher {
	s := &searcher{
		run:      r,
		ctx:      ctx,
		slotUsed: make([]bool, len(r.model.Slots)),
		dpCount:  make([]int, len(r.model.DayPitches)),
		dpEarly:  make([]bool, len(r.model.DayPitches)),
		dpMid:    make([]bool, len(r.model.DayPitches)),
		chosen:   make([]int, len(r.model.Fixtures)),
	}
	for i := range s.chosen {
		s.chosen[i] = -1
	}
	return s
}

// searchBranch explores one top-level branch of the first fixture:
// a specific variable, or -1 for the skip branch
func (s *searcher) searchBranch(fixture, branch int) {
	if branch < 0 {
		s.dfs(1)
		return
	}
	v := &s.run.model.Vars[branch]
	delta := s.apply(v)
	s.chosen[fixture] = branch
	s.dfs(1)
	s.chosen[fixture] = -1
	s.undo(v, delta)
}

// dfs explores assignments for fixtures order[k:]. Returns false when the
// time budget forced an early unwind.
func (s *searcher) dfs(k int) bool {
	s.nodes++
	if s.nodes&1023 == 0 && s.ctx.Err() != nil {
		s.run.timedOut.Store(true)
		return false
	}

	if k == len(s.run.order) {
		s.run.offer(s.score, s.chosen)
		return true
	}

	// Bound: even the most optimistic completion cannot beat the incumbent
	if int64(s.score+s.run.suffix[k]) <= s.run.best.Load() {
		return true
	}

	fi := s.run.order[k]
	for _, vi := range s.run.model.VarsByFixture[fi] {
		v := &s.run.model.Vars[vi]
		if s.slotUsed[v.SlotID] || s.dpCount[v.DayPitch] >= MaxGamesPerPitchPerDay {
			continue
		}

		delta := s.apply(v)
		s.chosen[fi] = vi
		ok := s.dfs(k + 1)
		s.chosen[fi] = -1
		s.undo(v, delta)
		if !ok {
			return false
		}
	}

	// Skip branch: fixture stays unallocated
	return s.dfs(k + 1)
}

// apply books the variable's slot and returns the score delta, including
// any back-to-back penalty this booking triggers
func (s *searcher) apply(v *Var) int {
	s.slotUsed[v.SlotID] = true
	s.dpCount[v.DayPitch]++

	delta := s.run.model.AllocationReward + v.Weight

	if s.run.model.DayPitches[v.DayPitch].Penalized {
		if (v.Early && s.dpMid[v.DayPitch]) || (v.Mid && s.dpEarly[v.DayPitch]) {
			delta -= s.run.model.BackToBackPenalty
		}
	}

	if v.Early {
		s.dpEarly[v.DayPitch] = true
	}
	if v.Mid {
		s.dpMid[v.DayPitch] = true
	}

	s.score += delta
	return delta
}

func (s *searcher) undo(v *Var, delta int) {
	s.score -= delta
	if v.Early {
		s.dpEarly[v.DayPitch] = false
	}
	if v.Mid {
		s.dpMid[v.DayPitch] = false
	}
	s.dpCount[v.DayPitch]--
	s.slotUsed[v.SlotID] = false
}
