package entities

import (
	"errors"
	"fmt"
	"image/color"
	"log"
	"math"

	"github.com/gonewx/riverbank/pkg/components"
	"github.com/gonewx/riverbank/pkg/ecs"
	"github.com/gonewx/riverbank/pkg/game"
	"github.com/gonewx/riverbank/pkg/utils"
)

// ErrInvalidEscapeStart 逃跑的鱼起始数据不合法
var ErrInvalidEscapeStart = errors.New("invalid escaped fish start")

// 水花粒子参数
const (
	splashGravity     = 420.0
	splashDrag        = 1.5
	splashMinSpeed    = 80.0
	splashMaxSpeed    = 180.0
	splashSpread      = math.Pi / 3 // 偏离竖直方向的最大角度
	splashMinSize     = 2.0
	splashMaxSize     = 4.0
	splashMinLifetime = 0.5
	splashMaxLifetime = 0.9
)

// 逃跑的鱼参数
const (
	escapeGravity          = 600.0
	escapeMinSpeedX        = 90.0
	escapeMaxSpeedX        = 150.0
	escapeMinSpeedY        = 260.0
	escapeMaxSpeedY        = 340.0
	escapeMinRotationSpeed = 4.0
	escapeMaxRotationSpeed = 7.0
	escapeLifetime         = 1.6
	escapeFadeStart        = 0.6
)

var splashColor = color.RGBA{R: 200, G: 230, B: 255, A: 255}

// EffectFactory 创建钓鱼视觉特效实体
//
// 实现 game.EffectSpawner 接口。特效实体只依赖自己的组件，
// 由 ParticleSystem / EscapedFishSystem / LifetimeSystem 独立更新和销毁，
// 与钓鱼会话的生命周期无关。
type EffectFactory struct {
	em  *ecs.EntityManager
	rng utils.RNG
}

// NewEffectFactory 创建特效工厂
func NewEffectFactory(em *ecs.EntityManager, rng utils.RNG) *EffectFactory {
	return &EffectFactory{
		em:  em,
		rng: rng,
	}
}

// SpawnSplash 在 (x, y) 处生成 count 个向上溅起的水花粒子
//
// y 同时作为水面高度：粒子落回水面以下时立即消失。
func (f *EffectFactory) SpawnSplash(x, y float64, count int) {
	for i := 0; i < count; i++ {
		f.spawnSplashParticle(x, y)
	}
}

func (f *EffectFactory) spawnSplashParticle(x, y float64) ecs.EntityID {
	angle := utils.RandRange(f.rng, -splashSpread, splashSpread)
	speed := utils.RandRange(f.rng, splashMinSpeed, splashMaxSpeed)
	size := utils.RandRange(f.rng, splashMinSize, splashMaxSize)

	id := f.em.CreateEntity()
	f.em.AddComponent(id, &components.PositionComponent{X: x, Y: y})
	f.em.AddComponent(id, &components.VelocityComponent{
		VX: math.Sin(angle) * speed,
		VY: -math.Cos(angle) * speed,
	})
	f.em.AddComponent(id, &components.ParticleComponent{
		Gravity:   splashGravity,
		Drag:      splashDrag,
		Size:      size,
		StartSize: size,
		Alpha:     1,
		Color:     splashColor,
		SurfaceY:  y,
	})
	f.em.AddComponent(id, &components.LifetimeComponent{
		MaxLifetime: utils.RandRange(f.rng, splashMinLifetime, splashMaxLifetime),
	})
	return id
}

// SpawnEscapedFish 生成逃跑的鱼：从浮标处向 Direction 一侧抛出，
// 做抛物线运动并旋转，落水时溅起水花后淡出。
//
// 起始数据不合法时记录日志、返回错误，不创建任何实体。
func (f *EffectFactory) SpawnEscapedFish(start game.EscapedFishStart) error {
	if err := validateEscapeStart(start); err != nil {
		log.Printf("[EffectFactory] Rejected escaped fish: %v", err)
		return err
	}

	dir := float64(start.Direction)
	id := f.em.CreateEntity()
	f.em.AddComponent(id, &components.PositionComponent{X: start.X, Y: start.Y})
	f.em.AddComponent(id, &components.VelocityComponent{
		VX: dir * utils.RandRange(f.rng, escapeMinSpeedX, escapeMaxSpeedX),
		VY: -utils.RandRange(f.rng, escapeMinSpeedY, escapeMaxSpeedY),
	})
	f.em.AddComponent(id, &components.EscapedFishComponent{
		FishName:      start.FishName,
		Gravity:       escapeGravity,
		RotationSpeed: dir * utils.RandRange(f.rng, escapeMinRotationSpeed, escapeMaxRotationSpeed),
		Alpha:         1,
		WaterY:        start.WaterY,
		FadeStart:     escapeFadeStart,
	})
	f.em.AddComponent(id, &components.LifetimeComponent{
		MaxLifetime: escapeLifetime,
	})

	log.Printf("[EffectFactory] Escaped %s thrown from (%.0f, %.0f), direction %d",
		start.FishName, start.X, start.Y, start.Direction)
	return nil
}

func validateEscapeStart(start game.EscapedFishStart) error {
	if start.FishName == "" {
		return fmt.Errorf("%w: empty fish name", ErrInvalidEscapeStart)
	}
	for _, v := range []float64{start.X, start.Y, start.WaterY} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite coordinates (%v, %v, water %v)",
				ErrInvalidEscapeStart, start.X, start.Y, start.WaterY)
		}
	}
	if start.Direction != 1 && start.Direction != -1 {
		return fmt.Errorf("%w: direction must be -1 or 1, got %d", ErrInvalidEscapeStart, start.Direction)
	}
	return nil
}
