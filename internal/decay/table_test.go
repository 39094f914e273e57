package decay

import (
	"math/rand"
	"testing"

	"github.com/nuphys/nusim/internal/params"
)

func channelSet(channels map[string]any) *params.Set {
	return params.NewSet(map[string]any{"Channels": channels})
}

func TestBranchingConfigure(t *testing.T) {
	b := NewBranching()
	set := channelSet(map[string]any{"nu e e": 0.6, "nu mu mu": 0.4})
	if err := b.Configure(set); err != nil {
		t.Fatalf("configure: %v", err)
	}

	if got := b.Fraction("nu e e"); got != 0.6 {
		t.Errorf("fraction: got %v, expected 0.6", got)
	}
	if got := b.Fraction("unknown"); got != 0 {
		t.Errorf("unknown mode should have zero fraction, got %v", got)
	}
	if modes := b.Modes(); len(modes) != 2 {
		t.Errorf("expected 2 modes, got %v", modes)
	}
}

func TestBranchingRejectsBadSum(t *testing.T) {
	b := NewBranching()
	good := channelSet(map[string]any{"a": 0.5, "b": 0.5})
	if err := b.Configure(good); err != nil {
		t.Fatalf("configure: %v", err)
	}

	bad := channelSet(map[string]any{"a": 0.5, "b": 0.2})
	if err := b.Configure(bad); err == nil {
		t.Fatal("expected rejection of non-unit sum")
	}

	// previous table survives
	if got := b.Fraction("a"); got != 0.5 {
		t.Errorf("expected last-known-good table, fraction a = %v", got)
	}
}

func TestBranchingSample(t *testing.T) {
	b := NewBranching()
	set := channelSet(map[string]any{"dominant": 0.99, "rare": 0.01})
	if err := b.Configure(set); err != nil {
		t.Fatalf("configure: %v", err)
	}

	r := rand.New(rand.NewSource(1))
	counts := map[string]int{}
	for i := 0; i < 1000; i++ {
		counts[b.Sample(r)]++
	}
	if counts["dominant"] < 900 {
		t.Errorf("dominant mode undersampled: %v", counts)
	}
}
