// Package app 提供游戏应用的核心包装器
//
// 该包将游戏初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"

	"github.com/gonewx/riverbank/pkg/config"
	"github.com/gonewx/riverbank/pkg/embedded"
	"github.com/gonewx/riverbank/pkg/game"
	"github.com/gonewx/riverbank/pkg/scenes"
	"github.com/gonewx/riverbank/pkg/utils"
)

// AppName gdata 存储使用的应用名
const AppName = "riverbank"

// 嵌入的钓鱼配置路径
const (
	RewardTablesPath = "data/fishing/reward_tables.yaml"
	TuningPath       = "data/fishing/tuning.yaml"
)

// 新存档的初始背包
var starterKit = []game.InventoryItem{
	{Name: "worm", Quantity: 5},
	{Name: "bent hook", Quantity: 1},
}

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Biome 初始生物群系，为空则使用上次的生物群系
	Biome string
	// Seed 随机种子，0 表示使用运行时熵
	Seed int64
	// Bait, Hook 覆盖上次保存的鱼饵/鱼钩偏好（空字符串表示不覆盖）
	Bait string
	Hook string
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager             *game.SceneManager
	settingsManager          *game.SettingsManager
	verbose                  bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化游戏应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	tables, tuning, err := loadFishingConfig()
	if err != nil {
		return nil, err
	}

	rng := utils.NewRNG()
	if cfg.Seed != 0 {
		rng = utils.NewSeededRNG(cfg.Seed)
		log.Printf("[App] Using seed %d", cfg.Seed)
	}

	// 持久化存储不可用时降级为仅内存
	gdataManager := openStorage()

	settingsManager, err := game.NewSettingsManager(gdataManager)
	if err != nil {
		return nil, fmt.Errorf("failed to create settings manager: %w", err)
	}
	settings := settingsManager.GetSettings()
	if cfg.Bait != "" || cfg.Hook != "" {
		bait, hook := settings.PreferredBait, settings.PreferredHook
		if cfg.Bait != "" {
			bait = cfg.Bait
		}
		if cfg.Hook != "" {
			hook = cfg.Hook
		}
		settingsManager.SetFishingPreferences(bait, hook, settings.LastBiome)
	}

	// 初始化音频上下文
	audioContext := audio.NewContext(game.AudioSampleRate)
	audioManager := game.NewAudioManager(audioContext, settingsManager)
	audioManager.RegisterFishingClips()
	log.Printf("[App] AudioManager initialized")

	inventory := game.NewInventory()
	for _, item := range starterKit {
		inventory.Add(item.Name, item.Quantity)
	}

	services := &scenes.FishingServices{
		Tables:    game.NewRewardTables(tables, rng),
		Tuning:    tuning,
		RNG:       rng,
		Settings:  settingsManager,
		Journal:   game.NewCatchJournal(gdataManager),
		Audio:     audioManager,
		Inventory: inventory,
	}

	// 创建场景管理器
	sceneManager := game.NewSceneManager()
	sceneManager.SetSceneFactory(func(biome string) game.Scene {
		return scenes.NewFishingScene(services, sceneManager, biome)
	})

	biome := cfg.Biome
	if biome == "" {
		biome = settings.LastBiome
	}
	log.Printf("[App] Starting biome: %s", biome)
	sceneManager.LoadBiome(biome)

	if settings.Fullscreen {
		ebiten.SetFullscreen(true)
	}

	return &App{
		sceneManager:    sceneManager,
		settingsManager: settingsManager,
		verbose:         cfg.Verbose,
	}, nil
}

// loadFishingConfig 从嵌入资源加载奖励表和调参
func loadFishingConfig() (*config.RewardTablesConfig, *config.FishingTuning, error) {
	data, err := embedded.ReadFile(RewardTablesPath)
	if err != nil {
		return nil, nil, fmt.Errorf("奖励表加载失败: %w", err)
	}
	tables, err := config.ParseRewardTables(data)
	if err != nil {
		return nil, nil, fmt.Errorf("奖励表加载失败: %w", err)
	}

	tuning := config.DefaultFishingTuning()
	if embedded.Exists(TuningPath) {
		data, err := embedded.ReadFile(TuningPath)
		if err != nil {
			return nil, nil, fmt.Errorf("调参配置加载失败: %w", err)
		}
		if tuning, err = config.ParseFishingTuning(data); err != nil {
			return nil, nil, fmt.Errorf("调参配置加载失败: %w", err)
		}
	}

	log.Printf("[Config] Loaded %d biomes, %d baits, %d hooks",
		len(tables.Biomes), len(tables.Baits), len(tables.Hooks))
	return tables, tuning, nil
}

// openStorage 打开 gdata 存储，失败时返回 nil
func openStorage() *gdata.Manager {
	if err := utils.EnsureStorageDir(); err != nil {
		log.Printf("[App] Warning: %v", err)
	}
	manager, err := gdata.Open(gdata.Config{AppName: AppName})
	if err != nil {
		log.Printf("[App] Warning: persistent storage unavailable: %v", err)
		return nil
	}
	return manager
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", config.GameWindowWidth, config.GameWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			a.settingsManager.SetFullscreen(false)
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
			a.settingsManager.SetFullscreen(true)
		}
	}

	deltaTime := 1.0 / float64(ebiten.TPS())
	a.sceneManager.Update(deltaTime)
	return nil
}

// Draw 绘制游戏画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.GameWindowWidth, config.GameWindowHeight
}

// GetSceneManager 返回场景管理器
// 用于在游戏关闭时保存图鉴和设置
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
