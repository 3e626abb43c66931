package systems

import (
	"github.com/gonewx/riverbank/pkg/components"
	"github.com/gonewx/riverbank/pkg/ecs"
	"github.com/gonewx/riverbank/pkg/utils"
)

// escapeSplashCount 逃跑的鱼落水时的水花粒子数
const escapeSplashCount = 10

// SplashSpawner 生成水花（由 entities.EffectFactory 实现）
type SplashSpawner interface {
	SpawnSplash(x, y float64, count int)
}

// EscapedFishSystem 更新逃跑的鱼动画
//
// 抛物线运动 + 匀速旋转；向下穿过水面时触发一次水花；
// 生命周期进度超过 FadeStart 后线性淡出。
type EscapedFishSystem struct {
	entityManager *ecs.EntityManager
	splashes      SplashSpawner
}

// NewEscapedFishSystem 创建逃跑的鱼系统，splashes 可为 nil
func NewEscapedFishSystem(em *ecs.EntityManager, splashes SplashSpawner) *EscapedFishSystem {
	return &EscapedFishSystem{
		entityManager: em,
		splashes:      splashes,
	}
}

// Update 更新所有逃跑的鱼
func (s *EscapedFishSystem) Update(dt float64) {
	if dt <= 0 {
		return
	}

	ids := ecs.GetEntitiesWith3[
		*components.EscapedFishComponent,
		*components.PositionComponent,
		*components.VelocityComponent,
	](s.entityManager)

	for _, id := range ids {
		fish, _ := ecs.GetComponent[*components.EscapedFishComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		vel, _ := ecs.GetComponent[*components.VelocityComponent](s.entityManager, id)

		vel.VY += fish.Gravity * dt
		pos.X += vel.VX * dt
		pos.Y += vel.VY * dt
		fish.Rotation += fish.RotationSpeed * dt

		if !fish.SplashTriggered && vel.VY > 0 && pos.Y >= fish.WaterY {
			fish.SplashTriggered = true
			if s.splashes != nil {
				s.splashes.SpawnSplash(pos.X, fish.WaterY, escapeSplashCount)
			}
		}

		if lifetime, ok := ecs.GetComponent[*components.LifetimeComponent](s.entityManager, id); ok {
			fish.Alpha = fadeAlpha(lifetime.Progress(), fish.FadeStart)
		}
	}
}

// fadeAlpha 进度在 fadeStart 之前不透明，之后线性降到 0
func fadeAlpha(progress, fadeStart float64) float64 {
	if progress <= fadeStart {
		return 1
	}
	if fadeStart >= 1 {
		return 0
	}
	return utils.Clamp(1-(progress-fadeStart)/(1-fadeStart), 0, 1)
}
