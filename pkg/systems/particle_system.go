package systems

import (
	"math"

	"github.com/gonewx/riverbank/pkg/components"
	"github.com/gonewx/riverbank/pkg/ecs"
)

// ParticleSystem 更新水花粒子
//
// 每帧：
//  1. 重力加速、水平阻力衰减、积分位置
//  2. 按生命周期进度线性淡出并缩小
//  3. 下落穿过水面的粒子立即标记删除
//
// 生命周期计时由 LifetimeSystem 负责，本系统只读取进度。
type ParticleSystem struct {
	entityManager *ecs.EntityManager
}

// NewParticleSystem 创建粒子系统
func NewParticleSystem(em *ecs.EntityManager) *ParticleSystem {
	return &ParticleSystem{
		entityManager: em,
	}
}

// Update 更新所有粒子
func (ps *ParticleSystem) Update(dt float64) {
	if dt <= 0 {
		return
	}

	ids := ecs.GetEntitiesWith3[
		*components.ParticleComponent,
		*components.PositionComponent,
		*components.VelocityComponent,
	](ps.entityManager)

	for _, id := range ids {
		p, _ := ecs.GetComponent[*components.ParticleComponent](ps.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](ps.entityManager, id)
		vel, _ := ecs.GetComponent[*components.VelocityComponent](ps.entityManager, id)

		vel.VY += p.Gravity * dt
		vel.VX *= math.Max(0, 1-p.Drag*dt)
		pos.X += vel.VX * dt
		pos.Y += vel.VY * dt

		progress := 0.0
		if lifetime, ok := ecs.GetComponent[*components.LifetimeComponent](ps.entityManager, id); ok {
			progress = lifetime.Progress()
		}
		p.Alpha = 1 - progress
		p.Size = p.StartSize * (1 - progress)

		if p.SurfaceY != 0 && vel.VY > 0 && pos.Y > p.SurfaceY {
			ps.entityManager.DestroyEntity(id)
		}
	}
}
