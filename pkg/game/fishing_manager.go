package game

import (
	"log"
	"math"
	"time"

	"github.com/gonewx/riverbank/pkg/config"
	"github.com/gonewx/riverbank/pkg/utils"
)

// 水花粒子数量
const (
	castSplashCount = 6
	biteSplashCount = 4
	hookSplashCount = 12
)

// FishingManager 钓鱼状态机
//
// 职责：
//   - 管理 抛竿 -> 等待 -> 咬钩 -> 提竿 -> 收线小游戏 -> 成功/逃跑 的生命周期
//   - 咬钩等待与提竿时限通过 Scheduler 的可取消回调实现
//   - 收线阶段每帧调用 Minigame.Step
//   - 通过 FishingEvents 通知外部（音效、UI、图鉴），通过 EffectSpawner 生成特效
//
// 所有错误都在本地恢复：最坏结果是一次失败的钓鱼，状态机不会卡住。
// 每个阶段要么有计时上限，要么由玩家输入推进。
type FishingManager struct {
	tables    *RewardTables
	tuning    *config.FishingTuning
	scheduler *Scheduler
	rng       utils.RNG
	minigame  *Minigame
	effects   EffectSpawner
	events    FishingEvents

	session FishingSession

	biteTimer   TimerHandle
	strikeTimer TimerHandle

	// 浮标位置（水花与逃跑动画的起点）
	bobberX, bobberY float64
	waterY           float64
}

// NewFishingManager 创建钓鱼状态机
//
// 参数：
//   - tables: 奖励表
//   - tuning: 调参配置（nil 时使用默认值）
//   - scheduler: 宿主持有的调度器，宿主负责每帧 Advance
//   - rng: 随机源
//   - effects: 特效生成器，可为 nil（不生成特效）
func NewFishingManager(tables *RewardTables, tuning *config.FishingTuning, scheduler *Scheduler, rng utils.RNG, effects EffectSpawner) *FishingManager {
	if tuning == nil {
		tuning = config.DefaultFishingTuning()
	}
	return &FishingManager{
		tables:    tables,
		tuning:    tuning,
		scheduler: scheduler,
		rng:       rng,
		minigame:  NewMinigame(tuning, rng),
		effects:   effects,
	}
}

// SetEvents 设置事件回调（覆盖之前的设置，组合多个订阅者请使用 ChainEvents）
func (fm *FishingManager) SetEvents(events FishingEvents) {
	fm.events = events
}

// SetBobberPosition 设置浮标和水面位置（世界坐标）
func (fm *FishingManager) SetBobberPosition(x, y, waterY float64) {
	fm.bobberX = x
	fm.bobberY = y
	fm.waterY = waterY
}

// Phase 当前阶段
func (fm *FishingManager) Phase() FishingPhase {
	return fm.session.Phase
}

// Session 返回会话快照（只读副本）
func (fm *FishingManager) Session() FishingSession {
	return fm.session
}

// Minigame 返回小游戏解算器（渲染层查询区间）
func (fm *FishingManager) Minigame() *Minigame {
	return fm.minigame
}

// Tuning 返回调参配置
func (fm *FishingManager) Tuning() *config.FishingTuning {
	return fm.tuning
}

// Tables 返回奖励表
func (fm *FishingManager) Tables() *RewardTables {
	return fm.tables
}

// StartFishing 抛竿
//
// 只有 IDLE 时有效；等待咬钩或咬钩中重复抛竿是空操作，计时器保持不变。
// 空字符串表示不使用鱼饵/鱼钩。名称无法解析时记录日志并取消钓鱼。
func (fm *FishingManager) StartFishing(baitName, hookName string) {
	if fm.session.Phase != PhaseIdle {
		log.Printf("[FishingManager] StartFishing ignored: already %s", fm.session.Phase)
		return
	}

	var bait *config.BaitDefinition
	if baitName != "" {
		b, err := fm.tables.Config().Bait(baitName)
		if err != nil {
			log.Printf("[FishingManager] Cannot start fishing: %v", err)
			fm.CancelFishing()
			return
		}
		bait = b
	}

	var hook *config.HookDefinition
	if hookName != "" {
		h, err := fm.tables.Config().Hook(hookName)
		if err != nil {
			log.Printf("[FishingManager] Cannot start fishing: %v", err)
			fm.CancelFishing()
			return
		}
		hook = h
	}

	fm.session.Bait = bait
	fm.session.Hook = hook
	fm.session.Phase = PhaseWaitingForBite

	wait := fm.biteWait(bait)
	generation := fm.session.Generation
	fm.biteTimer = fm.scheduler.After(wait, generation, func() {
		fm.onBiteTimer(generation)
	})

	log.Printf("[FishingManager] Cast with bait=%q hook=%q, bite in %v", baitName, hookName, wait)

	fm.splash(castSplashCount)
	if fm.events.OnCast != nil {
		fm.events.OnCast(bait, hook)
	}
}

// biteWait 咬钩等待 = 基础等待 + rand[0, 随机部分 - 鱼饵缩减)
func (fm *FishingManager) biteWait(bait *config.BaitDefinition) time.Duration {
	randomPart := fm.tuning.BiteRandomWaitMs
	if bait != nil {
		randomPart -= bait.WaitTimeReduction
	}
	if randomPart < 0 {
		randomPart = 0
	}
	ms := fm.tuning.BiteBaseWaitMs + fm.rng.Float64()*randomPart
	return time.Duration(ms * float64(time.Millisecond))
}

// onBiteTimer 咬钩等待结束（调度器回调，在 Update 之外执行）
func (fm *FishingManager) onBiteTimer(generation uint64) {
	if generation != fm.session.Generation || fm.session.Phase != PhaseWaitingForBite {
		return
	}
	fm.biteTimer = TimerHandle{}
	fm.session.Phase = PhaseBiting

	strikeWindow := time.Duration(fm.tuning.StrikeWindowMs * float64(time.Millisecond))
	fm.strikeTimer = fm.scheduler.After(strikeWindow, generation, func() {
		fm.onStrikeTimeout(generation)
	})

	log.Printf("[FishingManager] Fish is biting, strike within %v", strikeWindow)

	fm.splash(biteSplashCount)
	if fm.events.OnBiteStarted != nil {
		fm.events.OnBiteStarted()
	}
}

// onStrikeTimeout 提竿时限到期，鱼跑了
func (fm *FishingManager) onStrikeTimeout(generation uint64) {
	if generation != fm.session.Generation || fm.session.Phase != PhaseBiting {
		return
	}
	fm.strikeTimer = TimerHandle{}
	log.Printf("[FishingManager] Strike window missed")
	fm.failFishing()
}

// PlayerRightClicked 玩家提竿
//
// 只在 BITING 阶段有效：按鱼饵加成加权抽取当前生物群系的鱼，
// 应用一次鱼钩力量修正后进入收线小游戏。没有可钓的鱼时本次钓鱼失败。
func (fm *FishingManager) PlayerRightClicked(biomeName string) {
	if fm.session.Phase != PhaseBiting {
		log.Printf("[FishingManager] Strike ignored in phase %s", fm.session.Phase)
		return
	}

	fm.scheduler.Cancel(fm.strikeTimer)
	fm.strikeTimer = TimerHandle{}

	fish, ok := fm.tables.GetRandomCatch(biomeName, fm.session.Bait)
	if !ok {
		log.Printf("[FishingManager] No fish to hook in biome %q", biomeName)
		fm.failFishing()
		return
	}

	if fm.session.Hook != nil {
		fish.Power *= fm.session.Hook.FishPowerModifier
	}

	fm.session.CurrentFish = &fish
	fm.session.Biome = biomeName
	fm.session.Phase = PhaseHooked
	fm.minigame.Begin(&fm.session)

	log.Printf("[FishingManager] Hooked %s (power %.1f, tier %d) in %s", fish.Name, fish.Power, fish.Tier, biomeName)

	fm.splash(hookSplashCount)
	if fm.session.Bait != nil && fm.events.OnBaitConsumed != nil {
		fm.events.OnBaitConsumed(*fm.session.Bait)
	}
	if fm.events.OnFishHooked != nil {
		fm.events.OnFishHooked(fish)
	}
}

// SetBarMovementDirection 设置收线条方向：-1 左，0 停，1 右
func (fm *FishingManager) SetBarMovementDirection(direction int) {
	switch {
	case direction < 0:
		fm.session.BarDirection = -1
	case direction > 0:
		fm.session.BarDirection = 1
	default:
		fm.session.BarDirection = 0
	}
}

// Update 每帧更新
//
// deltaTime: 自上一帧以来经过的时间（秒）
func (fm *FishingManager) Update(deltaTime float64) {
	switch fm.session.Phase {
	case PhaseHooked:
		switch fm.minigame.Step(&fm.session, deltaTime) {
		case OutcomeCaught:
			fm.completeCatch()
		case OutcomeEscaped:
			log.Printf("[FishingManager] Progress hit zero, fish escaping")
			fm.beginFailAnimation()
		}
	case PhaseFailAnimating:
		fm.session.FailTimer -= deltaTime
		if fm.session.FailTimer <= 0 {
			fm.failFishing()
		}
	}
}

// completeCatch 进度满：停止物理，渔获等待领取
func (fm *FishingManager) completeCatch() {
	fish := *fm.session.CurrentFish
	catch := CaughtFish{
		Name:     fish.Name,
		Tier:     fish.Tier,
		Power:    fish.Power,
		Size:     math.Round(utils.RandRange(fm.rng, fish.MinSize, fish.MaxSize)*10) / 10,
		Biome:    fm.session.Biome,
		CaughtAt: time.Now(),
	}
	if fish.MaxSize <= fish.MinSize {
		catch.Size = fish.MinSize
	}

	fm.session.CurrentFish = nil
	fm.session.PendingCatch = &catch
	fm.session.BarDirection = 0
	fm.session.Phase = PhaseCatchComplete

	log.Printf("[FishingManager] Caught %s (%.1f cm)", catch.Name, catch.Size)

	if fm.events.OnCatchCompleted != nil {
		fm.events.OnCatchCompleted(catch)
	}
}

// beginFailAnimation 鱼逃跑：生成逃跑动画并开始固定时长的失败计时
func (fm *FishingManager) beginFailAnimation() {
	fish := *fm.session.CurrentFish
	fm.session.CurrentFish = nil
	fm.session.BarDirection = 0
	fm.session.Phase = PhaseFailAnimating
	fm.session.FailTimer = fm.tuning.FailAnimationSeconds

	if fm.effects != nil {
		direction := 1
		if fm.rng.Float64() < 0.5 {
			direction = -1
		}
		err := fm.effects.SpawnEscapedFish(EscapedFishStart{
			FishName:  fish.Name,
			X:         fm.bobberX,
			Y:         fm.bobberY,
			Direction: direction,
			WaterY:    fm.waterY,
		})
		if err != nil {
			log.Printf("[FishingManager] Escaped fish animation rejected: %v", err)
		}
	}

	if fm.events.OnFishEscaped != nil {
		fm.events.OnFishEscaped(fish)
	}
}

// HandlePrematurePull 玩家主动收竿
//
// 鱼已上钩时走逃跑动画路径（保留视觉反馈）；
// 还没上钩时等同于机械取消。
func (fm *FishingManager) HandlePrematurePull() {
	switch fm.session.Phase {
	case PhaseHooked:
		log.Printf("[FishingManager] Line pulled early, fish escaping")
		fm.beginFailAnimation()
	case PhaseWaitingForBite, PhaseBiting:
		fm.CancelFishing()
	}
}

// CleanUpAfterCatch 领取渔获并回到 IDLE
//
// 只有 CATCH_COMPLETE 阶段返回 ok=true。
func (fm *FishingManager) CleanUpAfterCatch() (CaughtFish, bool) {
	if fm.session.Phase != PhaseCatchComplete || fm.session.PendingCatch == nil {
		return CaughtFish{}, false
	}
	catch := *fm.session.PendingCatch

	fm.clearTimers()
	fm.session.Reset()

	if fm.events.OnFishingReset != nil {
		fm.events.OnFishingReset(ResetCollected)
	}
	return catch, true
}

// CancelFishing 硬重置为 IDLE，清除所有待执行的计时器
//
// 进行中的小游戏直接丢弃，不会产生任何奖励。已经是 IDLE 时为空操作。
func (fm *FishingManager) CancelFishing() {
	if fm.session.Phase == PhaseIdle && !fm.biteTimer.Active() && !fm.strikeTimer.Active() {
		return
	}

	fm.clearTimers()
	fm.session.Reset()

	log.Printf("[FishingManager] Fishing cancelled")

	if fm.events.OnFishingReset != nil {
		fm.events.OnFishingReset(ResetCancelled)
	}
}

// failFishing 失败后回到 IDLE
func (fm *FishingManager) failFishing() {
	fm.clearTimers()
	fm.session.Reset()

	if fm.events.OnFishingReset != nil {
		fm.events.OnFishingReset(ResetFailed)
	}
}

func (fm *FishingManager) clearTimers() {
	fm.scheduler.Cancel(fm.biteTimer)
	fm.scheduler.Cancel(fm.strikeTimer)
	fm.biteTimer = TimerHandle{}
	fm.strikeTimer = TimerHandle{}
}

func (fm *FishingManager) splash(count int) {
	if fm.effects != nil {
		fm.effects.SpawnSplash(fm.bobberX, fm.bobberY, count)
	}
}
