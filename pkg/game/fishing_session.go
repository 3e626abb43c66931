package game

import (
	"time"

	"github.com/gonewx/riverbank/pkg/config"
)

// FishingPhase 钓鱼状态机阶段
type FishingPhase int

const (
	// PhaseIdle 未抛竿
	PhaseIdle FishingPhase = iota
	// PhaseWaitingForBite 已抛竿，等待咬钩
	PhaseWaitingForBite
	// PhaseBiting 鱼正在咬钩，玩家需要在时限内提竿
	PhaseBiting
	// PhaseHooked 鱼已上钩，收线小游戏进行中
	PhaseHooked
	// PhaseCatchComplete 收线成功，等待调用方 CleanUpAfterCatch 领取
	PhaseCatchComplete
	// PhaseFailAnimating 鱼逃跑动画播放中
	PhaseFailAnimating
)

// String 返回阶段名称（日志使用）
func (p FishingPhase) String() string {
	switch p {
	case PhaseIdle:
		return "IDLE"
	case PhaseWaitingForBite:
		return "WAITING_FOR_BITE"
	case PhaseBiting:
		return "BITING"
	case PhaseHooked:
		return "HOOKED"
	case PhaseCatchComplete:
		return "CATCH_COMPLETE"
	case PhaseFailAnimating:
		return "FAIL_ANIMATING"
	default:
		return "UNKNOWN"
	}
}

// CaughtFish 一次成功钓获的结果
type CaughtFish struct {
	Name     string
	Tier     int
	Power    float64 // 已应用鱼钩修正的力量
	Size     float64 // 在 [MinSize, MaxSize] 内随机
	Biome    string
	CaughtAt time.Time
}

// FishingSession 单个玩家的钓鱼会话
//
// 会话是长期存在的值：取消、失败、领取渔获时调用 Reset() 清零字段，
// 而不是丢弃对象。每次 Reset 都会让 Generation 加一，
// 持有旧 Generation 的延迟回调因此失效。
//
// 不变量：
//   - Phase == PhaseHooked 当且仅当 CurrentFish != nil
//   - Progress 始终在 [0, FrameWidth] 内
type FishingSession struct {
	Phase FishingPhase

	Bait *config.BaitDefinition
	Hook *config.HookDefinition

	// Biome 提竿时所在的生物群系
	Biome string

	// CurrentFish 提竿时抽中的鱼（力量已应用鱼钩修正），仅在 HOOKED 阶段非 nil
	CurrentFish *config.FishCatch

	// PendingCatch 收线成功后等待领取的渔获，仅在 CATCH_COMPLETE 阶段非 nil
	PendingCatch *CaughtFish

	// 收线条（玩家控制），坐标以框体中心为 0
	BarPosition  float64
	BarVelocity  float64
	BarDirection int
	BarWidth     float64

	// 鱼标（自主运动）
	FishPosition       float64
	FishVelocity       float64
	FishTargetVelocity float64
	FishMoveTimer      float64
	FishDirection      int

	// Progress 收线进度 [0, FrameWidth]
	Progress float64

	// FailTimer 逃跑动画剩余时间（秒）
	FailTimer float64

	// Generation 会话代数，每次 Reset 加一
	Generation uint64
}

// Reset 将会话恢复为 IDLE 并使所有旧回调失效
func (s *FishingSession) Reset() {
	generation := s.Generation + 1
	*s = FishingSession{Generation: generation}
}

// IsActive 是否处于任何非 IDLE 阶段
func (s *FishingSession) IsActive() bool {
	return s.Phase != PhaseIdle
}
