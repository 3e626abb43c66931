package components

// EscapedFishComponent 逃跑的鱼动画状态
//
// 收线失败时生成：鱼从浮标处被抛出，做抛物线运动并旋转，
// 落回水面时触发一次水花，然后逐渐淡出。
// 该实体与钓鱼会话无关，由 EscapedFishSystem 独立计时，
// 到达 LifetimeComponent.MaxLifetime 后自动销毁。
type EscapedFishComponent struct {
	// FishName 逃跑的鱼名（用于渲染标签）
	FishName string

	// Gravity 重力加速度（像素/秒²）
	Gravity float64

	// Rotation 当前旋转角度（弧度）
	Rotation float64
	// RotationSpeed 旋转速度（弧度/秒）
	RotationSpeed float64

	// Alpha 透明度（0-1）
	Alpha float64

	// WaterY 水面高度，鱼向下穿过该高度时触发水花
	WaterY float64

	// SplashTriggered 是否已触发落水水花（只触发一次）
	SplashTriggered bool

	// FadeStart 开始淡出的生命周期进度（0-1）
	FadeStart float64
}
