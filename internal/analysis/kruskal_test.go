package analysis

import (
	"errors"
	"math"
	"testing"

	"github.com/jwarwick/hr-explore/domain/batted"
	"github.com/jwarwick/hr-explore/domain/core"
	"github.com/jwarwick/hr-explore/domain/stats"
)

func sample(seg batted.Segment, values ...float64) stats.DistributionSample {
	return stats.NewDistributionSample(seg, values)
}

// Gold standard, no ties: [1,2,3] vs [4,5,6] gives rank sums 6 and 15,
// H = 12/42*(36/3+225/3) - 21 = 27/7, p ~= 0.0495. Matches
// scipy.stats.kruskal.
func TestKruskalWallis_GoldStandardNoTies(t *testing.T) {
	res, err := KruskalWallis([]stats.DistributionSample{
		sample(batted.SegmentPre, 1, 2, 3),
		sample(batted.SegmentPost, 4, 5, 6),
	})
	if err != nil {
		t.Fatalf("kruskal-wallis: %v", err)
	}

	wantH := 27.0 / 7.0
	if math.Abs(res.Statistic-wantH) > 1e-9 {
		t.Fatalf("expected H %.9f, got %.9f", wantH, res.Statistic)
	}
	if res.DegreesOfFreedom != 1 {
		t.Fatalf("expected df 1, got %d", res.DegreesOfFreedom)
	}
	if math.Abs(res.PValue-0.0495) > 1e-3 {
		t.Fatalf("expected p ~= 0.0495, got %.4f", res.PValue)
	}
}

// Tie correction: [1,1,2] vs [2,3,3] pools to two tie blocks of 2 and
// one of 2 among 6 observations. Uncorrected H = 3.0, tie correction
// 1 - 18/210 shrinks the denominator, giving H = 10/3.
func TestKruskalWallis_TieCorrection(t *testing.T) {
	res, err := KruskalWallis([]stats.DistributionSample{
		sample(batted.SegmentPre, 1, 1, 2),
		sample(batted.SegmentPost, 2, 3, 3),
	})
	if err != nil {
		t.Fatalf("kruskal-wallis: %v", err)
	}

	wantH := 10.0 / 3.0
	if math.Abs(res.Statistic-wantH) > 1e-9 {
		t.Fatalf("expected H %.9f, got %.9f", wantH, res.Statistic)
	}
	if math.Abs(res.PValue-0.0679) > 1e-3 {
		t.Fatalf("expected p ~= 0.0679, got %.4f", res.PValue)
	}
}

func TestKruskalWallis_IdenticalGroupsGiveHighP(t *testing.T) {
	res, err := KruskalWallis([]stats.DistributionSample{
		sample(batted.SegmentPre, 10, 20, 30, 40),
		sample(batted.SegmentPost, 10, 20, 30, 40),
	})
	if err != nil {
		t.Fatalf("kruskal-wallis: %v", err)
	}
	if res.PValue < 0.9 {
		t.Fatalf("identical groups should not look different: p=%.4f", res.PValue)
	}
}

func TestKruskalWallis_RequiresTwoGroups(t *testing.T) {
	_, err := KruskalWallis([]stats.DistributionSample{
		sample(batted.SegmentPre, 1, 2, 3),
	})
	if !errors.Is(err, core.ErrInsufficientSample) {
		t.Fatalf("expected ErrInsufficientSample, got %v", err)
	}
}

func TestKruskalWallis_RejectsEmptyGroup(t *testing.T) {
	_, err := KruskalWallis([]stats.DistributionSample{
		sample(batted.SegmentPre, 1, 2, 3),
		sample(batted.SegmentPost),
	})
	if !errors.Is(err, core.ErrInsufficientSample) {
		t.Fatalf("expected ErrInsufficientSample, got %v", err)
	}
}

func TestKruskalWallis_AllValuesEqualIsDegenerate(t *testing.T) {
	_, err := KruskalWallis([]stats.DistributionSample{
		sample(batted.SegmentPre, 5, 5, 5),
		sample(batted.SegmentPost, 5, 5, 5),
	})
	if !errors.Is(err, core.ErrInsufficientSample) {
		t.Fatalf("expected ErrInsufficientSample for all-tied input, got %v", err)
	}
}

func TestMidRanks_AveragesTieBlocks(t *testing.T) {
	// 7 appears twice at positions 2 and 3: both get rank 2.5.
	ranks := midRanks([]float64{7, 3, 7, 9})

	want := []float64{2.5, 1, 2.5, 4}
	for i := range want {
		if math.Abs(ranks[i]-want[i]) > 1e-12 {
			t.Fatalf("rank %d: expected %g, got %g", i, want[i], ranks[i])
		}
	}
}
