package game

import (
	"testing"

	"github.com/gonewx/riverbank/pkg/config"
	"github.com/gonewx/riverbank/pkg/utils"
)

const testRewardTablesYAML = `
baits:
  - { name: worm, tier: 0, chance: 65 }
  - name: cricket
    tier: 1
    chance: 25
    waitTimeReduction: 1000
    fishChanceBonus:
      perch: 2.0
  - { name: glowworm, tier: 2, chance: 10, waitTimeReduction: 6000 }
hooks:
  - { name: bent hook, tier: 0, fishPowerModifier: 1, playerBarWidthModifier: 1, playerBarSpeedModifier: 1 }
  - { name: barbed hook, tier: 2, fishPowerModifier: 1.1, playerBarWidthModifier: 1.35, playerBarSpeedModifier: 1.2 }
items:
  - { name: shell, tier: 0 }
  - { name: pearl, tier: 2 }
  - { name: map fragment, tier: 3 }
biomes:
  - name: grassland
    fish:
      - { name: carp, chance: 40, power: 20, minSize: 25, maxSize: 60, tier: 0 }
      - { name: perch, chance: 20, power: 28, minSize: 15, maxSize: 40, tier: 1 }
    trading:
      playerCanOffer: [carp, shell]
      npcWillGive: [pearl, map fragment]
  - name: forest
    fish:
      - { name: trout, chance: 40, power: 22, minSize: 20, maxSize: 50, tier: 0 }
    trading:
      playerCanOffer: [shell, perch]
      npcWillGive: [worm, cricket, pearl]
  - name: creek
    fish:
      - { name: perch, chance: 20, power: 28, minSize: 15, maxSize: 40, tier: 1 }
  - name: still pond
    fish:
      - { name: stonefish, chance: 10, power: 0, minSize: 5, maxSize: 5, tier: 0 }
  - name: empty lake
    fish: []
`

// loadTestTables 解析测试奖励表
func loadTestTables(t *testing.T) *config.RewardTablesConfig {
	t.Helper()
	cfg, err := config.ParseRewardTables([]byte(testRewardTablesYAML))
	if err != nil {
		t.Fatalf("failed to parse test reward tables: %v", err)
	}
	return cfg
}

// recordingSpawner 记录特效请求
type recordingSpawner struct {
	splashes []int
	escaped  []EscapedFishStart
	err      error
}

func (r *recordingSpawner) SpawnSplash(x, y float64, count int) {
	r.splashes = append(r.splashes, count)
}

func (r *recordingSpawner) SpawnEscapedFish(start EscapedFishStart) error {
	if r.err != nil {
		return r.err
	}
	r.escaped = append(r.escaped, start)
	return nil
}

// eventLog 记录钓鱼事件
type eventLog struct {
	casts    int
	bites    int
	hooked   []config.FishCatch
	consumed []config.BaitDefinition
	caught   []CaughtFish
	escaped  []config.FishCatch
	resets   []ResetReason
}

func (l *eventLog) events() FishingEvents {
	return FishingEvents{
		OnCast:           func(*config.BaitDefinition, *config.HookDefinition) { l.casts++ },
		OnBiteStarted:    func() { l.bites++ },
		OnFishHooked:     func(f config.FishCatch) { l.hooked = append(l.hooked, f) },
		OnBaitConsumed:   func(b config.BaitDefinition) { l.consumed = append(l.consumed, b) },
		OnCatchCompleted: func(c CaughtFish) { l.caught = append(l.caught, c) },
		OnFishEscaped:    func(f config.FishCatch) { l.escaped = append(l.escaped, f) },
		OnFishingReset:   func(r ResetReason) { l.resets = append(l.resets, r) },
	}
}

type fishingHarness struct {
	manager   *FishingManager
	scheduler *Scheduler
	spawner   *recordingSpawner
	log       *eventLog
}

// newFishingHarness 创建使用默认调参和固定种子的钓鱼状态机
func newFishingHarness(t *testing.T, seed int64) *fishingHarness {
	t.Helper()
	rng := utils.NewSeededRNG(seed)
	tables := NewRewardTables(loadTestTables(t), rng)
	scheduler := NewScheduler()
	spawner := &recordingSpawner{}
	events := &eventLog{}

	fm := NewFishingManager(tables, nil, scheduler, rng, spawner)
	fm.SetEvents(events.events())
	fm.SetBobberPosition(300, 400, 410)

	return &fishingHarness{
		manager:   fm,
		scheduler: scheduler,
		spawner:   spawner,
		log:       events,
	}
}

// toBiting 抛竿并推进到咬钩阶段（默认等待最长 10 秒）
func (h *fishingHarness) toBiting(t *testing.T, bait, hook string) {
	t.Helper()
	h.manager.StartFishing(bait, hook)
	if h.manager.Phase() != PhaseWaitingForBite {
		t.Fatalf("after StartFishing expected WAITING_FOR_BITE, got %s", h.manager.Phase())
	}
	h.scheduler.Advance(10.001)
	if h.manager.Phase() != PhaseBiting {
		t.Fatalf("after bite wait expected BITING, got %s", h.manager.Phase())
	}
}

// toHooked 推进到收线阶段
func (h *fishingHarness) toHooked(t *testing.T, bait, hook, biome string) {
	t.Helper()
	h.toBiting(t, bait, hook)
	h.manager.PlayerRightClicked(biome)
	if h.manager.Phase() != PhaseHooked {
		t.Fatalf("after strike expected HOOKED, got %s", h.manager.Phase())
	}
}
