package timemap

import (
	"math"
	"math/rand"
	"sort"
	"testing"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestDeriveGapsAroundSingleRange(t *testing.T) {
	gaps := DeriveGaps([]Interval{{Start: 40, End: 50}}, 100, 2)
	if len(gaps) != 2 {
		t.Fatalf("expected 2 gaps, got %v", gaps)
	}
	if gaps[0] != (Interval{Start: 0, End: 40}) {
		t.Fatalf("unexpected leading gap: %+v", gaps[0])
	}
	if gaps[1] != (Interval{Start: 50, End: 100}) {
		t.Fatalf("unexpected trailing gap: %+v", gaps[1])
	}
}

func TestDeriveGapsFiltersShortSpans(t *testing.T) {
	protected := []Interval{
		{Start: 1, End: 10},  // leading candidate 0-1 is 1s, not > 2
		{Start: 11, End: 20}, // interior candidate 10-11 is 1s < 2
		{Start: 22, End: 30}, // interior candidate 20-22 is exactly 2, kept
	}
	gaps := DeriveGaps(protected, 31.5, 2) // trailing candidate 30-31.5 is 1.5s, dropped
	if len(gaps) != 1 {
		t.Fatalf("expected 1 gap, got %v", gaps)
	}
	if gaps[0] != (Interval{Start: 20, End: 22}) {
		t.Fatalf("unexpected gap: %+v", gaps[0])
	}
}

func TestDeriveGapsUnsortedInput(t *testing.T) {
	protected := []Interval{
		{Start: 60, End: 70},
		{Start: 10, End: 20},
	}
	gaps := DeriveGaps(protected, 100, 2)
	want := []Interval{{0, 10}, {20, 60}, {70, 100}}
	if len(gaps) != len(want) {
		t.Fatalf("expected %d gaps, got %v", len(want), gaps)
	}
	for i := range want {
		if gaps[i] != want[i] {
			t.Fatalf("gap %d: expected %+v, got %+v", i, want[i], gaps[i])
		}
	}
}

func TestDeriveGapsNoRoom(t *testing.T) {
	gaps := DeriveGaps([]Interval{{Start: 0, End: 100}}, 100, 2)
	if len(gaps) != 0 {
		t.Fatalf("expected no gaps, got %v", gaps)
	}
}

func TestDeriveGapsNoProtectedRanges(t *testing.T) {
	gaps := DeriveGaps(nil, 30, 2)
	if len(gaps) != 1 || gaps[0] != (Interval{Start: 0, End: 30}) {
		t.Fatalf("expected whole video as gap, got %v", gaps)
	}
	if gaps := DeriveGaps(nil, 1.5, 2); len(gaps) != 0 {
		t.Fatalf("short video should yield no gap, got %v", gaps)
	}
}

func TestBuildSpeedUpScenario(t *testing.T) {
	// video 100s, protected (40,50), factor 3: gaps (0,40) and (50,100),
	// new duration 40/3 + 10 + 50/3 = 40.
	protected := []Interval{{Start: 40, End: 50}}
	gaps := DeriveGaps(protected, 100, 2)
	mapping := Build(gaps, protected, 100, 3)

	if !approx(mapping.NewDuration, 40.0) {
		t.Fatalf("expected new duration 40, got %v", mapping.NewDuration)
	}
	if !approx(mapping.Map(0), 0) {
		t.Fatalf("Map(0) = %v", mapping.Map(0))
	}
	if !approx(mapping.Map(100), 40.0) {
		t.Fatalf("Map(100) = %v", mapping.Map(100))
	}
	// Midpoint of the protected range: 40/3 + 5.
	if !approx(mapping.Map(45), 40.0/3+5) {
		t.Fatalf("Map(45) = %v, want %v", mapping.Map(45), 40.0/3+5)
	}
	// Inside the first gap: compressed by 3.
	if !approx(mapping.Map(30), 10.0) {
		t.Fatalf("Map(30) = %v, want 10", mapping.Map(30))
	}
}

func TestBuildIdentityWhenNoGaps(t *testing.T) {
	mapping := Build(nil, []Interval{{0, 100}}, 100, 3)
	if !mapping.IsIdentity() {
		t.Fatalf("expected identity mapping, got %+v", mapping)
	}
	if !approx(mapping.Map(42.5), 42.5) {
		t.Fatalf("identity Map(42.5) = %v", mapping.Map(42.5))
	}
}

func TestBuildEndpointIdentityProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for trial := 0; trial < 30; trial++ {
		videoDuration := 60 + rng.Float64()*240
		protected := randomRanges(rng, videoDuration)
		gaps := DeriveGaps(protected, videoDuration, 2)
		mapping := Build(gaps, protected, videoDuration, 3)

		if mapping.Map(0) != 0 {
			t.Fatalf("trial %d: Map(0) = %v", trial, mapping.Map(0))
		}
		if !approx(mapping.Map(videoDuration), mapping.NewDuration) {
			t.Fatalf("trial %d: Map(duration) = %v, want %v",
				trial, mapping.Map(videoDuration), mapping.NewDuration)
		}
		if mapping.NewDuration > videoDuration+1e-9 {
			t.Fatalf("trial %d: speed-up lengthened video: %v > %v",
				trial, mapping.NewDuration, videoDuration)
		}
		if len(gaps) == 0 && !mapping.IsIdentity() {
			t.Fatalf("trial %d: no gaps but mapping not identity", trial)
		}
	}
}

func TestMapMonotonicityProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(13))
	for trial := 0; trial < 30; trial++ {
		videoDuration := 60 + rng.Float64()*240
		protected := randomRanges(rng, videoDuration)
		gaps := DeriveGaps(protected, videoDuration, 2)
		mapping := Build(gaps, protected, videoDuration, 2+rng.Float64()*4)

		prevT, prevMapped := 0.0, mapping.Map(0.0)
		for i := 0; i < 200; i++ {
			sample := rng.Float64() * videoDuration
			mapped := mapping.Map(sample)
			if sample >= prevT && mapped < prevMapped-1e-9 {
				t.Fatalf("trial %d: Map not monotonic: Map(%v)=%v after Map(%v)=%v",
					trial, sample, mapped, prevT, prevMapped)
			}
			if sample >= prevT {
				prevT, prevMapped = sample, mapped
			}
		}
	}
}

func TestMapClampsBeyondLastBreakpoint(t *testing.T) {
	protected := []Interval{{Start: 40, End: 50}}
	gaps := DeriveGaps(protected, 100, 2)
	mapping := Build(gaps, protected, 100, 3)
	if !approx(mapping.Map(150), mapping.NewDuration) {
		t.Fatalf("expected clamp to %v, got %v", mapping.NewDuration, mapping.Map(150))
	}
}

func TestMapIntervalProjectsBothEnds(t *testing.T) {
	protected := []Interval{{Start: 40, End: 50}}
	gaps := DeriveGaps(protected, 100, 2)
	mapping := Build(gaps, protected, 100, 3)
	projected := mapping.MapInterval(Interval{Start: 40, End: 50})
	if !approx(projected.Start, 40.0/3) || !approx(projected.End, 40.0/3+10) {
		t.Fatalf("unexpected projection: %+v", projected)
	}
}

func TestTotalDuration(t *testing.T) {
	total := TotalDuration([]Interval{{0, 10}, {20, 25}})
	if !approx(total, 15) {
		t.Fatalf("expected 15, got %v", total)
	}
}

// randomRanges builds a sorted, non-overlapping protected set.
func randomRanges(rng *rand.Rand, videoDuration float64) []Interval {
	n := rng.Intn(5)
	points := make([]float64, 0, n*2)
	for i := 0; i < n*2; i++ {
		points = append(points, rng.Float64()*videoDuration)
	}
	sort.Float64s(points)
	ranges := make([]Interval, 0, n)
	for i := 0; i+1 < len(points); i += 2 {
		if points[i+1] > points[i] {
			ranges = append(ranges, Interval{Start: points[i], End: points[i+1]})
		}
	}
	return ranges
}
