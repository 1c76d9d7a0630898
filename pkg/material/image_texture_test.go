package material

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

// testImage is an in-memory ImageSource
type testImage struct {
	width, height int
	pixels        [][3]byte
}

func (i *testImage) Width() int  { return i.width }
func (i *testImage) Height() int { return i.height }
func (i *testImage) PixelData(x, y int) [3]byte {
	x = min(max(x, 0), i.width-1)
	y = min(max(y, 0), i.height-1)
	return i.pixels[y*i.width+x]
}

// TestImageTextureEvaluate tests basic texture sampling
func TestImageTextureEvaluate(t *testing.T) {
	// Layout:
	//   white black
	//   black white
	img := &testImage{width: 2, height: 2, pixels: [][3]byte{
		{255, 255, 255}, {0, 0, 0},
		{0, 0, 0}, {255, 255, 255},
	}}
	texture := NewImageTexture(img)

	white := core.NewVec3(1, 1, 1)
	black := core.NewVec3(0, 0, 0)

	tests := []struct {
		name     string
		uv       core.Vec2
		expected core.Vec3
	}{
		{"bottom left", core.NewVec2(0.1, 0.1), black},
		{"bottom right", core.NewVec2(0.9, 0.1), white},
		{"top left", core.NewVec2(0.1, 0.9), white},
		{"top right", core.NewVec2(0.9, 0.9), black},
		{"clamped above", core.NewVec2(1.5, 2.0), black},
		{"clamped below", core.NewVec2(-1, -1), black},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := texture.Evaluate(tt.uv, core.Vec3{})
			if !result.Equals(tt.expected) {
				t.Errorf("UV%v: expected %v, got %v", tt.uv, tt.expected, result)
			}
		})
	}
}

func TestImageTexture_MissingDataIsMagenta(t *testing.T) {
	tests := []struct {
		name  string
		image ImageSource
	}{
		{"nil image", nil},
		{"empty image", &testImage{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewImageTexture(tt.image).Evaluate(core.NewVec2(0.5, 0.5), core.Vec3{})
			if !got.Equals(core.NewVec3(1, 0, 1)) {
				t.Errorf("Expected magenta, got %v", got)
			}
		})
	}
}

func TestCheckerTexture_Parity(t *testing.T) {
	red := core.NewVec3(1, 0, 0)
	blue := core.NewVec3(0, 0, 1)
	checker := NewCheckerColors(0.5, red, blue)

	tests := []struct {
		point    core.Vec3
		expected core.Vec3
	}{
		{core.NewVec3(0.1, 0.1, 0.1), red},
		{core.NewVec3(0.6, 0.1, 0.1), blue},
		{core.NewVec3(0.6, 0.6, 0.1), red},
		{core.NewVec3(-0.1, 0.1, 0.1), blue},
		{core.NewVec3(-0.1, -0.1, 0.1), red},
		{core.NewVec3(-0.1, -0.1, -0.1), blue},
	}

	for _, tt := range tests {
		if got := checker.Evaluate(core.Vec2{}, tt.point); !got.Equals(tt.expected) {
			t.Errorf("Point %v: expected %v, got %v", tt.point, tt.expected, got)
		}
	}
}

func TestNoiseTexture(t *testing.T) {
	a := NewNoiseTexture(4, core.NewSeededSampler(42))
	b := NewNoiseTexture(4, core.NewSeededSampler(42))

	sampler := core.NewSeededSampler(7)
	for i := 0; i < 200; i++ {
		r := sampler.Get3D()
		p := core.NewVec3(10*r.X-5, 10*r.Y-5, 10*r.Z-5)

		ca := a.Evaluate(core.Vec2{}, p)
		if ca.X < 0 || ca.X > 1 || ca.X != ca.Y || ca.Y != ca.Z {
			t.Fatalf("Expected gray level in [0,1], got %v", ca)
		}
		if cb := b.Evaluate(core.Vec2{}, p); !cb.Equals(ca) {
			t.Fatalf("Same seed should give same noise: %v vs %v", ca, cb)
		}
	}
}

func TestPerlin_NoiseIsSmoothAndBounded(t *testing.T) {
	perlin := NewPerlin(core.NewSeededSampler(42))

	// Lattice points have zero gradient contribution
	if n := perlin.Noise(core.NewVec3(3, -2, 7)); math.Abs(n) > 1e-12 {
		t.Errorf("Expected zero noise at lattice point, got %v", n)
	}

	p := core.NewVec3(1.3, 2.7, -0.4)
	n0 := perlin.Noise(p)
	n1 := perlin.Noise(p.Add(core.NewVec3(1e-6, 0, 0)))
	if math.Abs(n0-n1) > 1e-4 {
		t.Errorf("Noise should be continuous, got %v vs %v", n0, n1)
	}
	if math.Abs(n0) > 1.5 {
		t.Errorf("Noise out of expected range: %v", n0)
	}
}
