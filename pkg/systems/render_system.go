package systems

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/gonewx/riverbank/pkg/components"
	"github.com/gonewx/riverbank/pkg/ecs"
)

var escapedFishColor = color.RGBA{R: 240, G: 150, B: 60, A: 255}

// escapedFishHalfLength 逃跑的鱼身体半长（像素）
const escapedFishHalfLength = 12

// EffectRenderSystem 绘制水花粒子和逃跑的鱼
//
// 只读取组件，不修改任何状态。
type EffectRenderSystem struct {
	entityManager *ecs.EntityManager
}

// NewEffectRenderSystem 创建特效渲染系统
func NewEffectRenderSystem(em *ecs.EntityManager) *EffectRenderSystem {
	return &EffectRenderSystem{
		entityManager: em,
	}
}

// Draw 绘制所有特效实体
func (s *EffectRenderSystem) Draw(screen *ebiten.Image) {
	s.drawParticles(screen)
	s.drawEscapedFish(screen)
}

func (s *EffectRenderSystem) drawParticles(screen *ebiten.Image) {
	ids := ecs.GetEntitiesWith2[*components.ParticleComponent, *components.PositionComponent](s.entityManager)
	for _, id := range ids {
		p, _ := ecs.GetComponent[*components.ParticleComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		if p.Size <= 0 || p.Alpha <= 0 {
			continue
		}

		size := float32(p.Size)
		vector.DrawFilledRect(screen, float32(pos.X)-size, float32(pos.Y)-size, size*2, size*2,
			FadeColor(p.Color, p.Alpha), true)
	}
}

func (s *EffectRenderSystem) drawEscapedFish(screen *ebiten.Image) {
	ids := ecs.GetEntitiesWith2[*components.EscapedFishComponent, *components.PositionComponent](s.entityManager)
	for _, id := range ids {
		fish, _ := ecs.GetComponent[*components.EscapedFishComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		if fish.Alpha <= 0 {
			continue
		}

		dx := math.Cos(fish.Rotation) * escapedFishHalfLength
		dy := math.Sin(fish.Rotation) * escapedFishHalfLength
		vector.StrokeLine(screen,
			float32(pos.X-dx), float32(pos.Y-dy), float32(pos.X+dx), float32(pos.Y+dy),
			6, FadeColor(escapedFishColor, fish.Alpha), true)

		if fish.Alpha > 0.5 {
			ebitenutil.DebugPrintAt(screen, fish.FishName, int(pos.X)-escapedFishHalfLength, int(pos.Y)-24)
		}
	}
}

// FadeColor 按透明度缩放颜色（预乘 alpha）
func FadeColor(c color.RGBA, alpha float64) color.RGBA {
	if alpha <= 0 {
		return color.RGBA{}
	}
	if alpha > 1 {
		alpha = 1
	}
	return color.RGBA{
		R: uint8(float64(c.R) * alpha),
		G: uint8(float64(c.G) * alpha),
		B: uint8(float64(c.B) * alpha),
		A: uint8(float64(c.A) * alpha),
	}
}
