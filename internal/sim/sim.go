// Package sim plays the engine against scripted players to measure how
// each engine mode fares against simple human habits.
package sim

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/vovakirdan/swg/internal/engine"
	"github.com/vovakirdan/swg/internal/match"
	"github.com/vovakirdan/swg/internal/rules"
	"github.com/vovakirdan/swg/internal/stats"
)

// Matchup is the aggregated result of one strategy against one engine mode.
// Stats are from the scripted player's point of view.
type Matchup struct {
	Strategy string
	Mode     engine.Mode
	Sessions int
	Stats    stats.Stats
}

// EngineWinRate returns the percentage of rounds won by the engine.
func (m Matchup) EngineWinRate() float64 {
	if m.Stats.Total == 0 {
		return 0
	}
	return float64(m.Stats.Losses) / float64(m.Stats.Total) * 100
}

// Tournament runs every strategy against every engine mode.
type Tournament struct {
	Rules      *rules.Ruleset
	Strategies []Factory
	Modes      []engine.Mode
	Rounds     int   // rounds per session
	Sessions   int   // sessions per matchup
	Workers    int   // defaults to GOMAXPROCS
	Seed       int64 // 0 seeds from the clock
	Window     int   // engine frequency window, 0 for whole history
}

type workRequest struct {
	strategy  int
	mode      engine.Mode
	sessionID int
}

type sessionResult struct {
	strategy int
	mode     engine.Mode
	stats    stats.Stats
}

// Run plays all sessions and returns one Matchup per strategy and mode,
// ordered by strategy then mode. A cancelled ctx returns the sessions
// finished so far together with ctx.Err().
func (t *Tournament) Run(ctx context.Context) ([]Matchup, error) {
	if t.Rules == nil {
		return nil, fmt.Errorf("sim: no ruleset")
	}
	strategies := t.Strategies
	if len(strategies) == 0 {
		strategies = DefaultStrategies()
	}
	modes := t.Modes
	if len(modes) == 0 {
		modes = engine.Modes
	}
	workers := t.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	sessions := max(t.Sessions, 1)
	seed := t.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	workQueue := make(chan workRequest, workers*2)
	resultQueue := make(chan sessionResult, workers*2)

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for req := range workQueue {
				if ctx.Err() != nil {
					continue
				}
				st := t.playSession(strategies[req.strategy], req.mode, seed+int64(req.sessionID))
				resultQueue <- sessionResult{strategy: req.strategy, mode: req.mode, stats: st}
			}
		}()
	}

	go func() {
		defer close(workQueue)
		id := 0
		for si := range strategies {
			for _, mode := range modes {
				for range sessions {
					id++
					select {
					case workQueue <- workRequest{strategy: si, mode: mode, sessionID: id}:
					case <-ctx.Done():
						return
					}
				}
			}
		}
	}()

	go func() {
		wg.Wait()
		close(resultQueue)
	}()

	type key struct {
		strategy int
		mode     engine.Mode
	}
	agg := make(map[key]*Matchup)
	for res := range resultQueue {
		k := key{res.strategy, res.mode}
		m, ok := agg[k]
		if !ok {
			m = &Matchup{Strategy: strategies[res.strategy].Name, Mode: res.mode}
			agg[k] = m
		}
		m.Sessions++
		m.Stats.Wins += res.stats.Wins
		m.Stats.Losses += res.stats.Losses
		m.Stats.Draws += res.stats.Draws
		m.Stats.Total += res.stats.Total
	}

	keys := make([]key, 0, len(agg))
	for k := range agg {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].strategy != keys[j].strategy {
			return keys[i].strategy < keys[j].strategy
		}
		return keys[i].mode < keys[j].mode
	})

	out := make([]Matchup, 0, len(keys))
	for _, k := range keys {
		out = append(out, *agg[k])
	}
	return out, ctx.Err()
}

// playSession runs one full session through match.Session so the
// simulated rounds follow the interactive game's rules exactly.
func (t *Tournament) playSession(f Factory, mode engine.Mode, seed int64) stats.Stats {
	eng := engine.New(t.Rules, mode,
		engine.WithWindow(t.Window),
		engine.WithSource(engine.NewSource(seed)),
	)
	strat := f.New(t.Rules, engine.NewSource(^seed))

	var st stats.Stats
	sess := match.NewSession(t.Rules, eng, t.Rounds, &st)
	for !sess.Done() {
		// Strategies only return members of the ruleset.
		if _, err := sess.Play(strat.Move(sess.Round()).String()); err != nil {
			break
		}
	}
	return st
}
