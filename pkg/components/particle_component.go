package components

import "image/color"

// ParticleComponent 表示一个水花粒子
//
// 纯视觉效果：受重力影响下落，随生命周期淡出和缩小。
// 位置和速度分别存放在 PositionComponent / VelocityComponent，
// 生命周期存放在 LifetimeComponent，由 ParticleSystem 每帧更新。
//
// This is a pure data component following ECS principles - it contains no methods.
type ParticleComponent struct {
	// Gravity 重力加速度（像素/秒²，向下为正）
	Gravity float64

	// Drag 水平速度的每秒衰减比例（0 = 无阻力）
	Drag float64

	// Size 当前半径（像素）
	Size float64
	// StartSize 生成时的半径，Size 随生命周期从 StartSize 缩小到 0
	StartSize float64

	// Alpha 透明度（0-1），随生命周期线性减少
	Alpha float64

	// Color 基础颜色（水花为浅蓝/白色）
	Color color.RGBA

	// SurfaceY 水面高度；粒子下落穿过水面时立即消失（0 表示无水面）
	SurfaceY float64
}
