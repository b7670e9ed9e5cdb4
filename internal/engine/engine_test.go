package engine

import (
	"testing"

	"github.com/vovakirdan/swg/internal/rules"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		input   string
		want    Mode
		wantErr bool
	}{
		{"1", ModeUniform, false},
		{"random", ModeUniform, false},
		{"Uniform", ModeUniform, false},
		{"2", ModeAdaptive, false},
		{" smart ", ModeAdaptive, false},
		{"adaptive", ModeAdaptive, false},
		{"3", ModeUniform, true},
		{"", ModeUniform, true},
	}

	for _, tt := range tests {
		got, err := ParseMode(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMode(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseMode(%q) = %v, expected %v", tt.input, got, tt.want)
		}
	}
}

func TestAdaptiveCountersMostFrequentMove(t *testing.T) {
	rs := rules.SnakeWaterGun()
	e := New(rs, ModeAdaptive, WithSeed(1))

	for _, c := range []rules.Choice{"snake", "snake", "water"} {
		e.RecordOpponentMove(c)
	}

	if got := e.SelectMove(); got != "gun" {
		t.Errorf("SelectMove() = %s, expected gun", got)
	}
}

func TestAdaptiveCounterPropertyAllRulesets(t *testing.T) {
	for _, rs := range []*rules.Ruleset{rules.SnakeWaterGun(), rules.RockPaperScissors(), rules.Elements()} {
		t.Run(rs.Name(), func(t *testing.T) {
			for _, favorite := range rs.Choices() {
				e := New(rs, ModeAdaptive, WithSeed(7))
				e.RecordOpponentMove(favorite)
				e.RecordOpponentMove(favorite)
				for _, other := range rs.Choices() {
					if other != favorite {
						e.RecordOpponentMove(other)
						break
					}
				}

				move := e.SelectMove()
				if rs.Beats(move) != favorite {
					t.Errorf("SelectMove() = %s does not beat favourite %s", move, favorite)
				}
			}
		})
	}
}

func TestPredictTieBreaksByDeclarationOrder(t *testing.T) {
	rs := rules.SnakeWaterGun()

	tests := []struct {
		history []rules.Choice
		want    rules.Choice
	}{
		{[]rules.Choice{"gun", "water"}, "water"},
		{[]rules.Choice{"water", "snake"}, "snake"},
		{[]rules.Choice{"gun", "water", "snake"}, "snake"},
		{[]rules.Choice{"gun", "gun", "water", "water"}, "water"},
	}

	for _, tt := range tests {
		e := New(rs, ModeAdaptive, WithSeed(1))
		for _, c := range tt.history {
			e.RecordOpponentMove(c)
		}
		got, ok := e.Predict()
		if !ok || got != tt.want {
			t.Errorf("Predict() after %v = (%s, %v), expected %s", tt.history, got, ok, tt.want)
		}
		if move := e.SelectMove(); move != rs.CounterOf(tt.want) {
			t.Errorf("SelectMove() after %v = %s, expected %s", tt.history, move, rs.CounterOf(tt.want))
		}
	}
}

func TestPredictEmptyHistory(t *testing.T) {
	e := New(rules.SnakeWaterGun(), ModeAdaptive)
	if c, ok := e.Predict(); ok {
		t.Errorf("Predict() on empty history = %s, expected none", c)
	}
}

func TestAdaptiveFirstMoveIsRandom(t *testing.T) {
	rs := rules.SnakeWaterGun()
	seen := make(map[rules.Choice]bool)
	for seed := int64(1); seed <= 60; seed++ {
		e := New(rs, ModeAdaptive, WithSeed(seed))
		move := e.SelectMove()
		if !rs.Contains(move) {
			t.Fatalf("SelectMove() = %q is not a member", move)
		}
		seen[move] = true
	}
	if len(seen) != rs.Len() {
		t.Errorf("Expected every choice as an opening move over 60 seeds, saw %v", seen)
	}
}

func TestUniformDistribution(t *testing.T) {
	rs := rules.SnakeWaterGun()
	e := New(rs, ModeUniform, WithSeed(42))

	const samples = 3000
	counts := make(map[rules.Choice]int)
	for range samples {
		counts[e.SelectMove()]++
		// History must not influence uniform play.
		e.RecordOpponentMove("snake")
	}

	// Chi-square with 2 degrees of freedom; 13.82 is the p=0.001 critical value.
	expected := float64(samples) / float64(rs.Len())
	chi2 := 0.0
	for _, c := range rs.Choices() {
		d := float64(counts[c]) - expected
		chi2 += d * d / expected
	}
	if chi2 > 13.82 {
		t.Errorf("Uniform draws look biased: chi2=%.2f counts=%v", chi2, counts)
	}
}

func TestRecordOpponentMoveIgnoresNonMembers(t *testing.T) {
	e := New(rules.SnakeWaterGun(), ModeAdaptive)
	e.RecordOpponentMove("rock")
	e.RecordOpponentMove("")
	if n := len(e.History()); n != 0 {
		t.Errorf("Expected empty history, got %d moves", n)
	}
}

func TestWindowLimitsAnalysis(t *testing.T) {
	rs := rules.SnakeWaterGun()
	e := New(rs, ModeAdaptive, WithWindow(2), WithSeed(3))

	for _, c := range []rules.Choice{"snake", "snake", "snake", "water", "water"} {
		e.RecordOpponentMove(c)
	}

	got, _ := e.Predict()
	if got != "water" {
		t.Errorf("Predict() with window 2 = %s, expected water", got)
	}
	if freq := e.Frequencies(); freq[0] != 0 || freq[1] != 2 || freq[2] != 0 {
		t.Errorf("Frequencies() = %v, expected [0 2 0]", freq)
	}
	if len(e.History()) != 5 {
		t.Errorf("Window must not truncate history, got %d moves", len(e.History()))
	}
}

func TestWholeHistoryByDefault(t *testing.T) {
	e := New(rules.SnakeWaterGun(), ModeAdaptive, WithSeed(3))
	for _, c := range []rules.Choice{"snake", "snake", "snake", "water", "water"} {
		e.RecordOpponentMove(c)
	}
	if got, _ := e.Predict(); got != "snake" {
		t.Errorf("Predict() = %s, expected snake", got)
	}
}

func TestSeedIsDeterministic(t *testing.T) {
	rs := rules.Elements()
	a := New(rs, ModeUniform, WithSeed(99))
	b := New(rs, ModeUniform, WithSeed(99))
	for i := range 50 {
		if x, y := a.SelectMove(), b.SelectMove(); x != y {
			t.Fatalf("move %d differs with equal seeds: %s vs %s", i, x, y)
		}
	}
}

func TestReset(t *testing.T) {
	e := New(rules.SnakeWaterGun(), ModeAdaptive)
	e.RecordOpponentMove("gun")
	e.Reset()
	if len(e.History()) != 0 {
		t.Error("Reset() did not clear history")
	}
}

type fixedSource struct{ n int }

func (f fixedSource) IntN(int) int { return f.n }

func TestWithSource(t *testing.T) {
	e := New(rules.SnakeWaterGun(), ModeUniform, WithSource(fixedSource{n: 2}))
	if got := e.SelectMove(); got != "gun" {
		t.Errorf("SelectMove() = %s, expected gun", got)
	}
}
