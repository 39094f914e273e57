package quad

import (
	"math"
	"testing"

	"github.com/nuphys/nusim/internal/params"
)

func configure(t *testing.T, integ Integrator, values map[string]any) {
	t.Helper()
	if err := integ.Configure(params.NewSet(values)); err != nil {
		t.Fatalf("configure: %v", err)
	}
}

func TestSimpsonAccuracy(t *testing.T) {
	s := NewSimpson()
	configure(t, s, map[string]any{"NSteps": 200})

	got, err := s.Integrate(math.Sin, 0, math.Pi)
	if err != nil {
		t.Fatalf("integrate: %v", err)
	}
	if math.Abs(got-2.0) > 1e-8 {
		t.Errorf("integral of sin over [0,pi]: got %.10f, expected 2", got)
	}
}

func TestSimpsonRejectsOddSteps(t *testing.T) {
	s := NewSimpson()
	if err := s.Configure(params.NewSet(map[string]any{"NSteps": 3})); err == nil {
		t.Error("expected rejection of odd NSteps")
	}
}

func TestGaussAccuracy(t *testing.T) {
	g := NewGauss()
	configure(t, g, map[string]any{"NIntervals": 8})

	f := func(x float64) float64 { return x * x * math.Exp(-x) }
	got, err := g.Integrate(f, 0, 10)
	if err != nil {
		t.Fatalf("integrate: %v", err)
	}
	// \int_0^10 x^2 e^-x dx = 2 - 122 e^-10
	expected := 2.0 - 122.0*math.Exp(-10)
	if math.Abs(got-expected) > 1e-9 {
		t.Errorf("got %.12f, expected %.12f", got, expected)
	}
}

func TestMonteCarloConverges(t *testing.T) {
	m := NewMonteCarlo()
	configure(t, m, map[string]any{"NCalls": 200000, "Seed": 42})

	got, err := m.Integrate(func(x float64) float64 { return x }, 0, 1)
	if err != nil {
		t.Fatalf("integrate: %v", err)
	}
	if math.Abs(got-0.5) > 5e-3 {
		t.Errorf("got %.4f, expected ~0.5", got)
	}
}

func TestMonteCarloReproducible(t *testing.T) {
	values := map[string]any{"NCalls": 1000, "Seed": 7}

	a := NewMonteCarlo()
	configure(t, a, values)
	b := NewMonteCarlo()
	configure(t, b, values)

	ra, _ := a.Integrate(math.Cos, 0, 1)
	rb, _ := b.Integrate(math.Cos, 0, 1)
	if ra != rb {
		t.Errorf("same seed should reproduce: %v != %v", ra, rb)
	}
}

func TestInvertedInterval(t *testing.T) {
	s := NewSimpson()
	configure(t, s, map[string]any{"NSteps": 10})

	if _, err := s.Integrate(math.Sin, 1, 0); err == nil {
		t.Error("expected error for inverted interval")
	}
}
