package systems

import (
	"image/color"
	"math"
	"testing"

	"github.com/gonewx/riverbank/pkg/components"
	"github.com/gonewx/riverbank/pkg/ecs"
)

func newTestParticle(em *ecs.EntityManager, vx, vy, surfaceY float64) ecs.EntityID {
	id := em.CreateEntity()
	em.AddComponent(id, &components.PositionComponent{X: 100, Y: 200})
	em.AddComponent(id, &components.VelocityComponent{VX: vx, VY: vy})
	em.AddComponent(id, &components.ParticleComponent{
		Gravity:   400,
		Drag:      1,
		Size:      4,
		StartSize: 4,
		Alpha:     1,
		Color:     color.RGBA{R: 200, G: 230, B: 255, A: 255},
		SurfaceY:  surfaceY,
	})
	em.AddComponent(id, &components.LifetimeComponent{MaxLifetime: 1})
	return id
}

func TestParticleMotion(t *testing.T) {
	em := ecs.NewEntityManager()
	ps := NewParticleSystem(em)
	id := newTestParticle(em, 100, -200, 0)

	ps.Update(0.1)

	vel, _ := ecs.GetComponent[*components.VelocityComponent](em, id)
	pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)

	// VY = -200 + 400*0.1, VX = 100 * (1 - 0.1)
	if math.Abs(vel.VY-(-160)) > 1e-9 {
		t.Errorf("VY = %v, want -160", vel.VY)
	}
	if math.Abs(vel.VX-90) > 1e-9 {
		t.Errorf("VX = %v, want 90", vel.VX)
	}
	if math.Abs(pos.X-109) > 1e-9 || math.Abs(pos.Y-184) > 1e-9 {
		t.Errorf("position = (%v, %v), want (109, 184)", pos.X, pos.Y)
	}
}

func TestParticleFadesWithLifetime(t *testing.T) {
	em := ecs.NewEntityManager()
	ps := NewParticleSystem(em)
	lifetimes := NewLifetimeSystem(em)
	id := newTestParticle(em, 0, -1000, 0)

	lifetimes.Update(0.25)
	ps.Update(0.25)

	p, _ := ecs.GetComponent[*components.ParticleComponent](em, id)
	if math.Abs(p.Alpha-0.75) > 1e-9 {
		t.Errorf("Alpha = %v, want 0.75", p.Alpha)
	}
	if math.Abs(p.Size-3) > 1e-9 {
		t.Errorf("Size = %v, want 3", p.Size)
	}
}

func TestParticleCulledBelowSurface(t *testing.T) {
	tests := []struct {
		name        string
		vy          float64
		surfaceY    float64
		wantRemoved bool
	}{
		{"rising above surface", -300, 200, false},
		{"falling through surface", 50, 200, true},
		{"no surface configured", 50, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			em := ecs.NewEntityManager()
			ps := NewParticleSystem(em)
			id := newTestParticle(em, 0, tt.vy, tt.surfaceY)

			ps.Update(0.05)
			em.RemoveMarkedEntities()

			_, exists := ecs.GetComponent[*components.ParticleComponent](em, id)
			if exists == tt.wantRemoved {
				t.Errorf("removed = %v, want %v", !exists, tt.wantRemoved)
			}
		})
	}
}

func TestParticleIgnoresZeroDelta(t *testing.T) {
	em := ecs.NewEntityManager()
	ps := NewParticleSystem(em)
	id := newTestParticle(em, 10, 10, 0)

	ps.Update(0)

	pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
	if pos.X != 100 || pos.Y != 200 {
		t.Errorf("position changed with dt=0: (%v, %v)", pos.X, pos.Y)
	}
}

func TestFadeColor(t *testing.T) {
	c := color.RGBA{R: 200, G: 100, B: 50, A: 255}

	tests := []struct {
		alpha float64
		want  color.RGBA
	}{
		{1, c},
		{2, c},
		{0, color.RGBA{}},
		{-1, color.RGBA{}},
		{0.5, color.RGBA{R: 100, G: 50, B: 25, A: 127}},
	}
	for _, tt := range tests {
		if got := FadeColor(c, tt.alpha); got != tt.want {
			t.Errorf("FadeColor(%v) = %v, want %v", tt.alpha, got, tt.want)
		}
	}
}
