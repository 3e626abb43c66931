package game

import "github.com/gonewx/riverbank/pkg/config"

// ResetReason 会话回到 IDLE 的原因
type ResetReason int

const (
	// ResetCancelled 机械取消（切换场景、收回未咬钩的鱼线）
	ResetCancelled ResetReason = iota
	// ResetFailed 钓鱼失败（错过咬钩、没有可钓的鱼、逃跑动画结束）
	ResetFailed
	// ResetCollected 渔获已领取
	ResetCollected
)

// String 返回原因名称
func (r ResetReason) String() string {
	switch r {
	case ResetCancelled:
		return "cancelled"
	case ResetFailed:
		return "failed"
	case ResetCollected:
		return "collected"
	default:
		return "unknown"
	}
}

// FishingEvents 钓鱼状态变化的回调钩子
//
// 音效、UI、图鉴等外部模块通过这些回调订阅事件，
// FishingManager 不直接依赖任何具体实现。所有字段都可以为 nil。
type FishingEvents struct {
	OnCast           func(bait *config.BaitDefinition, hook *config.HookDefinition)
	OnBiteStarted    func()
	OnFishHooked     func(fish config.FishCatch)
	OnBaitConsumed   func(bait config.BaitDefinition)
	OnCatchCompleted func(catch CaughtFish)
	OnFishEscaped    func(fish config.FishCatch)
	OnFishingReset   func(reason ResetReason)
}

// ChainEvents 合并多组回调，按参数顺序依次调用
func ChainEvents(all ...FishingEvents) FishingEvents {
	var chained FishingEvents

	chained.OnCast = func(bait *config.BaitDefinition, hook *config.HookDefinition) {
		for _, e := range all {
			if e.OnCast != nil {
				e.OnCast(bait, hook)
			}
		}
	}
	chained.OnBiteStarted = func() {
		for _, e := range all {
			if e.OnBiteStarted != nil {
				e.OnBiteStarted()
			}
		}
	}
	chained.OnFishHooked = func(fish config.FishCatch) {
		for _, e := range all {
			if e.OnFishHooked != nil {
				e.OnFishHooked(fish)
			}
		}
	}
	chained.OnBaitConsumed = func(bait config.BaitDefinition) {
		for _, e := range all {
			if e.OnBaitConsumed != nil {
				e.OnBaitConsumed(bait)
			}
		}
	}
	chained.OnCatchCompleted = func(catch CaughtFish) {
		for _, e := range all {
			if e.OnCatchCompleted != nil {
				e.OnCatchCompleted(catch)
			}
		}
	}
	chained.OnFishEscaped = func(fish config.FishCatch) {
		for _, e := range all {
			if e.OnFishEscaped != nil {
				e.OnFishEscaped(fish)
			}
		}
	}
	chained.OnFishingReset = func(reason ResetReason) {
		for _, e := range all {
			if e.OnFishingReset != nil {
				e.OnFishingReset(reason)
			}
		}
	}

	return chained
}

// EscapedFishStart 逃跑的鱼动画起始参数
type EscapedFishStart struct {
	FishName string
	X, Y     float64
	// Direction 抛出方向：-1 向左，1 向右
	Direction int
	// WaterY 水面高度
	WaterY float64
}

// EffectSpawner 视觉特效生成接口（由 entities.EffectFactory 实现）
type EffectSpawner interface {
	// SpawnSplash 在 (x, y) 处生成 count 个水花粒子
	SpawnSplash(x, y float64, count int)
	// SpawnEscapedFish 生成逃跑的鱼动画；起始数据不合法时返回错误且不创建实体
	SpawnEscapedFish(start EscapedFishStart) error
}
