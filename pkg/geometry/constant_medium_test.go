package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

func TestConstantMedium_InterceptionRate(t *testing.T) {
	tests := []struct {
		name    string
		density float64
	}{
		{"thin fog", 0.01},
		{"smoke", 0.5},
		{"dense", 100},
	}

	// The ray crosses 2 units of a unit sphere; Beer-Lambert gives the hit probability
	ray := core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1))
	const n = 50000

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			medium := NewConstantMediumColor(NewSphere(core.NewVec3(0, 0, 0), 1, nil), tt.density, core.NewVec3(1, 1, 1))
			sampler := core.NewSeededSampler(42)

			hits := 0
			for i := 0; i < n; i++ {
				hit, ok := medium.Hit(ray, defaultRayT, sampler)
				if !ok {
					continue
				}
				hits++
				if hit.T < 4 || hit.T > 6 {
					t.Fatalf("Scatter point t=%v lies outside the boundary", hit.T)
				}
			}

			expected := 1 - math.Exp(-2*tt.density)
			got := float64(hits) / n
			if math.Abs(got-expected) > 0.01 {
				t.Errorf("Expected interception rate %v, got %v", expected, got)
			}
		})
	}
}

func TestConstantMedium_HitRecord(t *testing.T) {
	medium := NewConstantMediumColor(NewBox(core.NewVec3(-1, -1, -1), core.NewVec3(1, 1, 1), nil), 1000, core.NewVec3(0.2, 0.4, 0.6))
	hit, ok := medium.Hit(core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1)), defaultRayT, core.NewSeededSampler(1))
	if !ok {
		t.Fatal("Expected a dense medium to scatter")
	}
	if !hit.FrontFace || !hit.Normal.Equals(core.NewVec3(1, 0, 0)) {
		t.Errorf("Expected synthesized front-facing normal (1,0,0), got %v front=%v", hit.Normal, hit.FrontFace)
	}
	if _, ok := hit.Material.(*material.Isotropic); !ok {
		t.Errorf("Expected isotropic phase function, got %T", hit.Material)
	}
}

func TestConstantMedium_RayStartingInside(t *testing.T) {
	medium := NewConstantMediumColor(NewSphere(core.NewVec3(0, 0, 0), 1, nil), 1000, core.NewVec3(1, 1, 1))
	hit, ok := medium.Hit(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0)), defaultRayT, core.NewSeededSampler(2))
	if !ok {
		t.Fatal("Expected hit from inside a dense medium")
	}
	if hit.T < 0.001 || hit.T > 0.1 {
		t.Errorf("Expected a scatter just ahead of the origin, got t=%v", hit.T)
	}

	// Interval ending before the boundary entry rejects the medium
	if _, ok := medium.Hit(core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1)), core.NewInterval(0.001, 3), core.NewSeededSampler(2)); ok {
		t.Error("Expected miss when the interval ends before the medium")
	}
}
