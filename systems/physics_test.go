package systems

import (
	"math"
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/drift/components"
)

func TestStepOrder(t *testing.T) {
	in := DefaultIntegrator()
	pos := components.Position{X: 10, Y: 10}
	vel := components.Velocity{X: 1, Y: 2}

	in.Step(&pos, &vel, Pointer{}, Bounds{Width: 100, Height: 100})

	// Position integrates the undamped velocity
	if pos.X != 11 || pos.Y != 12 {
		t.Errorf("position = (%v, %v), want (11, 12)", pos.X, pos.Y)
	}
	if vel.X != 1*0.98 {
		t.Errorf("vx = %v, want %v", vel.X, 1*0.98)
	}
	want := 2.0
	want *= 0.98
	want += -0.002
	if vel.Y != want {
		t.Errorf("vy = %v, want %v", vel.Y, want)
	}
}

func TestStepAppliesForceBeforeIntegrating(t *testing.T) {
	in := DefaultIntegrator()
	pointer := Pointer{X: 50, Y: 50, Active: true}
	pos := components.Position{X: 60, Y: 50}
	vel := components.Velocity{}

	dvx, _ := in.Force.ForceOn(pos, pointer)
	in.Step(&pos, &vel, pointer, Bounds{Width: 100, Height: 100})

	if pos.X != 60+dvx {
		t.Errorf("x = %v, want %v", pos.X, 60+dvx)
	}
	if vel.X != dvx*0.98 {
		t.Errorf("vx = %v, want %v", vel.X, dvx*0.98)
	}
}

func TestStepHorizontalWrap(t *testing.T) {
	in := DefaultIntegrator()
	b := Bounds{Width: 800, Height: 480}

	tests := []struct {
		name  string
		x, vx float64
		want  float64
	}{
		{"past left edge", 0, -0.001, 800},
		{"past right edge", 800, 0.001, 0},
		{"on right edge", 799.5, 0.5, 800},
		{"inside", 400, 1, 401},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := components.Position{X: tt.x, Y: 200}
			vel := components.Velocity{X: tt.vx}
			in.Step(&pos, &vel, Pointer{}, b)
			if pos.X != tt.want {
				t.Errorf("x = %v, want exactly %v", pos.X, tt.want)
			}
		})
	}
}

func TestStepVerticalWrapIsOneSided(t *testing.T) {
	in := DefaultIntegrator()
	b := Bounds{Width: 800, Height: 480}

	// Crossing the top lands exactly on the bottom edge
	pos := components.Position{X: 100, Y: 0.01}
	vel := components.Velocity{Y: -0.5}
	in.Step(&pos, &vel, Pointer{}, b)
	if pos.Y != 480 {
		t.Errorf("y = %v, want exactly 480", pos.Y)
	}

	// Falling past the bottom is not corrected
	pos = components.Position{X: 100, Y: 500}
	vel = components.Velocity{Y: 3}
	in.Step(&pos, &vel, Pointer{}, b)
	if pos.Y != 503 {
		t.Errorf("y = %v, want 503 (no wrap below the bottom)", pos.Y)
	}
}

func TestStepBoundsOverManyTicks(t *testing.T) {
	in := DefaultIntegrator()
	b := Bounds{Width: 320, Height: 200}
	particles := SpawnParticles(NewSource(7), b, DefaultParticleCount, DefaultSpawnConfig())

	for tick := 0; tick < 3000; tick++ {
		for i := range particles {
			p := &particles[i]
			in.Step(&p.Pos, &p.Vel, Pointer{}, b)
			if p.Pos.X < 0 || p.Pos.X > b.Width {
				t.Fatalf("tick %d: x = %v outside [0, %v]", tick, p.Pos.X, b.Width)
			}
			if p.Pos.Y > b.Height {
				t.Fatalf("tick %d: y = %v above height %v", tick, p.Pos.Y, b.Height)
			}
		}
	}
}

func TestStepBoundsWithPointer(t *testing.T) {
	in := DefaultIntegrator()
	b := Bounds{Width: 320, Height: 200}
	particles := SpawnParticles(NewSource(11), b, DefaultParticleCount, DefaultSpawnConfig())

	for tick := 0; tick < 2000; tick++ {
		// Sweep the pointer across the surface
		pointer := Pointer{
			X:      float64(tick%320) + 0.5,
			Y:      100 + 60*math.Sin(float64(tick)/40),
			Active: tick%500 < 400,
		}
		for i := range particles {
			p := &particles[i]
			in.Step(&p.Pos, &p.Vel, pointer, b)
			if p.Pos.X < 0 || p.Pos.X > b.Width {
				t.Fatalf("tick %d: x = %v outside [0, %v]", tick, p.Pos.X, b.Width)
			}
			if p.Pos.Y < 0 {
				t.Fatalf("tick %d: y = %v left uncorrected", tick, p.Pos.Y)
			}
		}
	}
}

func TestStepDampingConvergence(t *testing.T) {
	in := DefaultIntegrator()
	b := Bounds{Width: 800, Height: 480}
	pos := components.Position{X: 400, Y: 240}
	vel := components.Velocity{X: 0.049, Y: -0.149}

	for i := 0; i < 3000; i++ {
		in.Step(&pos, &vel, Pointer{}, b)
	}

	// v = 0.98v - 0.002  =>  v = -0.1
	if math.Abs(vel.Y+0.1) > 1e-9 {
		t.Errorf("vy = %v, want equilibrium -0.1", vel.Y)
	}
	if math.Abs(vel.X) > 1e-12 {
		t.Errorf("|vx| = %v, want decay toward 0", math.Abs(vel.X))
	}
}

func TestPhysicsSystemUpdateMatchesStep(t *testing.T) {
	w := ecs.NewWorld()
	ps := NewParticleSystem(w, NewSource(3), 50, DefaultSpawnConfig())
	b := Bounds{Width: 640, Height: 360}
	ps.Reset(b)

	physics := NewPhysicsSystem(w, DefaultIntegrator())
	pointer := Pointer{X: 320, Y: 180, Active: true}

	want := ps.Snapshot()
	for i := range want {
		physics.Step(&want[i].Pos, &want[i].Vel, pointer, b)
	}

	physics.Update(pointer, b)
	got := ps.Snapshot()

	if len(got) != len(want) {
		t.Fatalf("got %d particles, want %d", len(got), len(want))
	}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("particle %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}
