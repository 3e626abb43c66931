package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents a game scene (e.g., a fishing spot in one biome).
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update updates the scene logic based on the elapsed time.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	Draw(screen *ebiten.Image)
}

// Saveable 可选接口：窗口关闭时保存状态（图鉴、设置）
type Saveable interface {
	// SaveOnExit 返回 false 表示保存失败（程序仍会正常退出）
	SaveOnExit() bool
}

// Leavable 可选接口：场景被切换出去时调用
//
// 钓鱼场景在这里取消进行中的钓鱼，保证离开后不会再有计时器回调触发。
type Leavable interface {
	OnLeave()
}
