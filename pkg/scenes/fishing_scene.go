package scenes

import (
	"fmt"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gonewx/riverbank/pkg/config"
	"github.com/gonewx/riverbank/pkg/ecs"
	"github.com/gonewx/riverbank/pkg/entities"
	"github.com/gonewx/riverbank/pkg/game"
	"github.com/gonewx/riverbank/pkg/systems"
	"github.com/gonewx/riverbank/pkg/utils"
)

const (
	// MessageDuration 提示文字显示时长（秒）
	MessageDuration = 3.0
	// DigBaitCooldown 两次挖鱼饵之间的最短间隔（秒）
	DigBaitCooldown = 1.5

	biteBobAmplitude   = 6.0
	biteBobFrequency   = 18.0
	hookedBobAmplitude = 3.0
	hookedBobFrequency = 30.0
)

// FishingServices 跨场景共享的服务
//
// 切换生物群系时背包、图鉴和设置保持不变，只重建场景自己的 ECS 和状态机。
type FishingServices struct {
	Tables    *game.RewardTables
	Tuning    *config.FishingTuning
	RNG       utils.RNG
	Settings  *game.SettingsManager
	Journal   *game.CatchJournal
	Audio     *game.AudioManager // 可为 nil（无声）
	Inventory *game.Inventory
}

// FishingScene 一个生物群系的钓鱼点
//
// 每帧顺序：输入 -> 调度器 -> 钓鱼状态机 -> 特效系统 -> 清理实体。
// 调度器回调在 FishingManager.Update 之前执行，同一帧内的阶段变化对渲染立即可见。
type FishingScene struct {
	services     *FishingServices
	sceneManager *game.SceneManager

	biome  string
	biomes []string

	// ECS Framework and Systems
	entityManager      *ecs.EntityManager
	lifetimeSystem     *systems.LifetimeSystem
	particleSystem     *systems.ParticleSystem
	escapedFishSystem  *systems.EscapedFishSystem
	effectRenderSystem *systems.EffectRenderSystem

	scheduler      *game.Scheduler
	fishingManager *game.FishingManager
	tradingManager *game.TradingManager
	effects        *soundingSpawner

	selectedBait string
	selectedHook string
	selectedSlot int

	message      string
	messageTimer float64
	digCooldown  float64
	elapsed      float64
	bobbing      float64
	escaping     bool // 逃跑动画期间，失败重置不再额外提示
}

// NewFishingScene 创建钓鱼场景
//
// 参数：
//   - services: 共享服务
//   - sm: 场景管理器，可为 nil（测试）
//   - biome: 初始生物群系，未知名称回退到第一个生物群系
func NewFishingScene(services *FishingServices, sm *game.SceneManager, biome string) *FishingScene {
	scene := &FishingScene{
		services:     services,
		sceneManager: sm,
		biomes:       services.Tables.Config().BiomeNames(),
	}

	if _, err := services.Tables.Config().Biome(biome); err != nil {
		log.Printf("[FishingScene] %v", err)
		if len(scene.biomes) > 0 {
			biome = scene.biomes[0]
		}
	}
	scene.biome = biome

	settings := services.Settings.GetSettings()
	scene.selectedBait = settings.PreferredBait
	scene.selectedHook = settings.PreferredHook

	// Initialize ECS framework
	scene.entityManager = ecs.NewEntityManager()
	scene.effects = &soundingSpawner{
		factory: entities.NewEffectFactory(scene.entityManager, services.RNG),
	}
	if services.Audio != nil {
		scene.effects.sounds = services.Audio
	}

	scene.lifetimeSystem = systems.NewLifetimeSystem(scene.entityManager)
	scene.particleSystem = systems.NewParticleSystem(scene.entityManager)
	scene.escapedFishSystem = systems.NewEscapedFishSystem(scene.entityManager, scene.effects)
	scene.effectRenderSystem = systems.NewEffectRenderSystem(scene.entityManager)

	scene.scheduler = game.NewScheduler()
	scene.fishingManager = game.NewFishingManager(services.Tables, services.Tuning, scene.scheduler, services.RNG, scene.effects)
	scene.fishingManager.SetBobberPosition(config.BobberX, config.BobberY(0), config.WaterSurfaceY)
	scene.fishingManager.SetEvents(scene.buildEvents())

	scene.tradingManager = game.NewTradingManager(services.Tables, services.RNG, biome)

	log.Printf("[FishingScene] Created scene for biome %s (bait=%q, hook=%q)", biome, scene.selectedBait, scene.selectedHook)
	return scene
}

// buildEvents 组合图鉴、音效和场景自身的事件订阅
func (s *FishingScene) buildEvents() game.FishingEvents {
	subscribers := []game.FishingEvents{s.services.Journal.Events()}
	if s.services.Audio != nil {
		subscribers = append(subscribers, game.BindFishingSounds(s.services.Audio))
	}
	subscribers = append(subscribers, game.FishingEvents{
		OnCast: func(*config.BaitDefinition, *config.HookDefinition) {
			s.showMessage("Waiting for a bite...")
		},
		OnBiteStarted: func() {
			s.showMessage("Something is biting! Right-click or F to strike")
		},
		OnFishHooked: func(fish config.FishCatch) {
			s.showMessage(fmt.Sprintf("Hooked a %s! Keep the bar on the fish with A/D", fish.Name))
		},
		OnBaitConsumed: func(bait config.BaitDefinition) {
			if !s.services.Inventory.Remove(bait.Name, 1) {
				log.Printf("[FishingScene] Bait %s consumed but not in inventory", bait.Name)
			}
		},
		OnCatchCompleted: func(catch game.CaughtFish) {
			s.showMessage(fmt.Sprintf("Caught a %s (%.1f cm)! Press Space to collect", catch.Name, catch.Size))
		},
		OnFishEscaped: func(fish config.FishCatch) {
			s.escaping = true
			s.showMessage(fmt.Sprintf("The %s got away", fish.Name))
		},
		OnFishingReset: func(reason game.ResetReason) {
			if reason == game.ResetFailed && !s.escaping {
				s.showMessage("Nothing on the line this time")
			}
			s.escaping = false
		},
	})
	return game.ChainEvents(subscribers...)
}

// Update 每帧更新
func (s *FishingScene) Update(deltaTime float64) {
	s.step(deltaTime, readInput())
}

// step 处理一帧输入并推进所有子系统
func (s *FishingScene) step(deltaTime float64, in sceneInput) {
	s.elapsed += deltaTime
	if s.messageTimer > 0 {
		s.messageTimer -= deltaTime
		if s.messageTimer <= 0 {
			s.message = ""
		}
	}
	if s.digCooldown > 0 {
		s.digCooldown -= deltaTime
	}

	s.applyInput(in)
	s.syncOffer()

	s.updateBobber()
	s.scheduler.Advance(deltaTime)
	s.fishingManager.Update(deltaTime)

	s.lifetimeSystem.Update(deltaTime)
	s.particleSystem.Update(deltaTime)
	s.escapedFishSystem.Update(deltaTime)
	s.entityManager.RemoveMarkedEntities()
}

// updateBobber 咬钩时浮标上下抖动，收线时轻微晃动
func (s *FishingScene) updateBobber() {
	switch s.fishingManager.Phase() {
	case game.PhaseBiting:
		s.bobbing = biteBobAmplitude * math.Abs(math.Sin(s.elapsed*biteBobFrequency))
	case game.PhaseHooked:
		s.bobbing = hookedBobAmplitude * math.Sin(s.elapsed*hookedBobFrequency)
	default:
		s.bobbing = 0
	}
	s.fishingManager.SetBobberPosition(config.BobberX, config.BobberY(s.bobbing), config.WaterSurfaceY)
}

func (s *FishingScene) showMessage(msg string) {
	s.message = msg
	s.messageTimer = MessageDuration
}

// Biome 当前生物群系
func (s *FishingScene) Biome() string {
	return s.biome
}

// SelectedBait 当前选择的鱼饵（空字符串表示不用鱼饵）
func (s *FishingScene) SelectedBait() string {
	return s.selectedBait
}

// SelectedHook 当前选择的鱼钩（空字符串表示不用鱼钩）
func (s *FishingScene) SelectedHook() string {
	return s.selectedHook
}

// SelectedSlot 当前选中的背包槽位下标
func (s *FishingScene) SelectedSlot() int {
	return s.selectedSlot
}

// Message 当前提示文字
func (s *FishingScene) Message() string {
	return s.message
}

// FishingManager 返回钓鱼状态机
func (s *FishingScene) FishingManager() *game.FishingManager {
	return s.fishingManager
}

// TradingManager 返回交易管理器
func (s *FishingScene) TradingManager() *game.TradingManager {
	return s.tradingManager
}

// EntityManager 返回特效实体管理器
func (s *FishingScene) EntityManager() *ecs.EntityManager {
	return s.entityManager
}

// SwitchBiome 切换到另一个生物群系
//
// 进行中的钓鱼被取消（不产生奖励），商人报价按新生物群系重新计算。
func (s *FishingScene) SwitchBiome(name string) {
	if name == s.biome {
		return
	}
	if _, err := s.services.Tables.Config().Biome(name); err != nil {
		log.Printf("[FishingScene] Cannot switch biome: %v", err)
		return
	}

	s.fishingManager.CancelFishing()
	s.entityManager.Clear()
	s.biome = name
	s.tradingManager.SetBiome(name)
	s.showMessage(fmt.Sprintf("Travelled to the %s", name))

	log.Printf("[FishingScene] Switched biome to %s", name)
}

// OnLeave 场景被切换出去：取消钓鱼，清理特效
func (s *FishingScene) OnLeave() {
	s.fishingManager.CancelFishing()
	s.entityManager.Clear()
}

// SaveOnExit 保存图鉴和钓鱼偏好
func (s *FishingScene) SaveOnExit() bool {
	s.services.Settings.SetFishingPreferences(s.selectedBait, s.selectedHook, s.biome)

	ok := true
	if err := s.services.Journal.Save(); err != nil {
		log.Printf("[FishingScene] Warning: %v", err)
		ok = false
	}
	if err := s.services.Settings.Save(); err != nil {
		log.Printf("[FishingScene] Warning: %v", err)
		ok = false
	}
	return ok
}

// Draw 绘制场景
func (s *FishingScene) Draw(screen *ebiten.Image) {
	s.drawBackground(screen)
	s.drawAngler(screen)
	s.drawLine(screen)
	s.effectRenderSystem.Draw(screen)
	s.drawMinigame(screen)
	s.drawHUD(screen)
}

// soundingSpawner 生成特效的同时播放水花音效
type soundingSpawner struct {
	factory *entities.EffectFactory
	sounds  game.SoundPlayer
}

func (sp *soundingSpawner) SpawnSplash(x, y float64, count int) {
	sp.factory.SpawnSplash(x, y, count)
	if sp.sounds != nil {
		sp.sounds.PlaySound(game.SoundSplash)
	}
}

func (sp *soundingSpawner) SpawnEscapedFish(start game.EscapedFishStart) error {
	return sp.factory.SpawnEscapedFish(start)
}
