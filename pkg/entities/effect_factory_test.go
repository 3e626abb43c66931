package entities

import (
	"errors"
	"math"
	"testing"

	"github.com/gonewx/riverbank/pkg/components"
	"github.com/gonewx/riverbank/pkg/ecs"
	"github.com/gonewx/riverbank/pkg/game"
	"github.com/gonewx/riverbank/pkg/utils"
)

// 编译期检查接口实现
var _ game.EffectSpawner = (*EffectFactory)(nil)

func TestSpawnSplash(t *testing.T) {
	em := ecs.NewEntityManager()
	factory := NewEffectFactory(em, utils.NewSeededRNG(1))

	factory.SpawnSplash(300, 400, 12)

	ids := ecs.GetEntitiesWith3[
		*components.ParticleComponent,
		*components.PositionComponent,
		*components.LifetimeComponent,
	](em)
	if len(ids) != 12 {
		t.Fatalf("expected 12 splash particles, got %d", len(ids))
	}

	for _, id := range ids {
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		vel, ok := ecs.GetComponent[*components.VelocityComponent](em, id)
		if !ok {
			t.Fatalf("particle %d has no velocity", id)
		}
		particle, _ := ecs.GetComponent[*components.ParticleComponent](em, id)
		lifetime, _ := ecs.GetComponent[*components.LifetimeComponent](em, id)

		if pos.X != 300 || pos.Y != 400 {
			t.Errorf("particle %d starts at (%v, %v)", id, pos.X, pos.Y)
		}
		if vel.VY >= 0 {
			t.Errorf("particle %d should be thrown upward, VY=%v", id, vel.VY)
		}
		speed := math.Hypot(vel.VX, vel.VY)
		if speed < splashMinSpeed-1e-9 || speed > splashMaxSpeed {
			t.Errorf("particle %d speed %v out of range", id, speed)
		}
		if particle.SurfaceY != 400 || particle.Alpha != 1 || particle.Size != particle.StartSize {
			t.Errorf("particle %d initial state %+v", id, particle)
		}
		if lifetime.MaxLifetime < splashMinLifetime || lifetime.MaxLifetime >= splashMaxLifetime {
			t.Errorf("particle %d lifetime %v out of range", id, lifetime.MaxLifetime)
		}
	}
}

func TestSpawnSplashZeroCount(t *testing.T) {
	em := ecs.NewEntityManager()
	factory := NewEffectFactory(em, utils.NewSeededRNG(1))

	factory.SpawnSplash(0, 0, 0)
	factory.SpawnSplash(0, 0, -3)

	if em.EntityCount() != 0 {
		t.Errorf("expected no entities, got %d", em.EntityCount())
	}
}

func TestSpawnEscapedFish(t *testing.T) {
	tests := []struct {
		name      string
		direction int
	}{
		{"thrown right", 1},
		{"thrown left", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			em := ecs.NewEntityManager()
			factory := NewEffectFactory(em, utils.NewSeededRNG(2))

			err := factory.SpawnEscapedFish(game.EscapedFishStart{
				FishName:  "pike",
				X:         320,
				Y:         410,
				Direction: tt.direction,
				WaterY:    420,
			})
			if err != nil {
				t.Fatalf("SpawnEscapedFish() error: %v", err)
			}

			ids := ecs.GetEntitiesWith2[*components.EscapedFishComponent, *components.VelocityComponent](em)
			if len(ids) != 1 {
				t.Fatalf("expected 1 escaped fish entity, got %d", len(ids))
			}
			fish, _ := ecs.GetComponent[*components.EscapedFishComponent](em, ids[0])
			vel, _ := ecs.GetComponent[*components.VelocityComponent](em, ids[0])

			if fish.FishName != "pike" || fish.WaterY != 420 || fish.SplashTriggered {
				t.Errorf("unexpected component %+v", fish)
			}
			if vel.VX*float64(tt.direction) <= 0 {
				t.Errorf("VX=%v does not match direction %d", vel.VX, tt.direction)
			}
			if vel.VY >= 0 {
				t.Errorf("fish should be thrown upward, VY=%v", vel.VY)
			}
			if fish.RotationSpeed*float64(tt.direction) <= 0 {
				t.Errorf("rotation %v does not match direction %d", fish.RotationSpeed, tt.direction)
			}
			if _, ok := ecs.GetComponent[*components.LifetimeComponent](em, ids[0]); !ok {
				t.Error("escaped fish should have a lifetime")
			}
		})
	}
}

func TestSpawnEscapedFishRejectsInvalidStart(t *testing.T) {
	valid := game.EscapedFishStart{FishName: "carp", X: 10, Y: 20, Direction: 1, WaterY: 30}

	tests := []struct {
		name   string
		mutate func(*game.EscapedFishStart)
	}{
		{"empty name", func(s *game.EscapedFishStart) { s.FishName = "" }},
		{"NaN x", func(s *game.EscapedFishStart) { s.X = math.NaN() }},
		{"infinite y", func(s *game.EscapedFishStart) { s.Y = math.Inf(1) }},
		{"infinite water", func(s *game.EscapedFishStart) { s.WaterY = math.Inf(-1) }},
		{"zero direction", func(s *game.EscapedFishStart) { s.Direction = 0 }},
		{"large direction", func(s *game.EscapedFishStart) { s.Direction = 3 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			em := ecs.NewEntityManager()
			factory := NewEffectFactory(em, utils.NewSeededRNG(3))

			start := valid
			tt.mutate(&start)
			err := factory.SpawnEscapedFish(start)

			if !errors.Is(err, ErrInvalidEscapeStart) {
				t.Errorf("expected ErrInvalidEscapeStart, got %v", err)
			}
			if em.EntityCount() != 0 {
				t.Errorf("no entity should be created, got %d", em.EntityCount())
			}
		})
	}
}
