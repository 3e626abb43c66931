package config

// 布局配置常量
// 钓鱼场景使用固定的逻辑分辨率，所有坐标都是屏幕坐标（像素）

// 窗口
const (
	GameWindowWidth  = 800
	GameWindowHeight = 600
)

// 水面与钓竿
const (
	// WaterSurfaceY 水面高度
	WaterSurfaceY = 380.0

	// RodTipX, RodTipY 竿尖位置（鱼线起点）
	RodTipX = 180.0
	RodTipY = 250.0

	// BobberX 浮标水平位置
	BobberX = 460.0
)

// 收线小游戏面板
const (
	// MinigamePanelY 面板顶部
	MinigamePanelY = 70.0
	// MinigameTrackHeight 收线条/鱼标轨道高度
	MinigameTrackHeight = 28.0
	// MinigameProgressHeight 进度条高度
	MinigameProgressHeight = 10.0
	// MinigameProgressGap 轨道与进度条之间的间距
	MinigameProgressGap = 8.0
)

// MinigamePanelX 返回水平居中的面板左边界
func MinigamePanelX(frameWidth float64) float64 {
	return (GameWindowWidth - frameWidth) / 2
}

// MinigameToScreenX 把以框体中心为 0 的小游戏坐标转换为屏幕 X
func MinigameToScreenX(frameWidth, pos float64) float64 {
	return MinigamePanelX(frameWidth) + frameWidth/2 + pos
}

// BobberY 浮标的屏幕 Y：咬钩时按 bobbing 偏移下沉
func BobberY(bobbing float64) float64 {
	return WaterSurfaceY - 4 + bobbing
}
