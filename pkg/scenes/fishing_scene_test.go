package scenes

import (
	"strings"
	"testing"

	"github.com/gonewx/riverbank/pkg/config"
	"github.com/gonewx/riverbank/pkg/game"
	"github.com/gonewx/riverbank/pkg/utils"
)

const tick = 1.0 / 60.0

// newTestServices 使用仓库自带的奖励表，背包里有 3 条蚯蚓和一个弯钩
func newTestServices(t *testing.T) *FishingServices {
	t.Helper()

	cfg, err := config.LoadRewardTables("../../data/fishing/reward_tables.yaml")
	if err != nil {
		t.Fatalf("Failed to load reward tables: %v", err)
	}
	settings, err := game.NewSettingsManager(nil)
	if err != nil {
		t.Fatalf("Failed to create settings manager: %v", err)
	}

	rng := utils.NewSeededRNG(7)
	services := &FishingServices{
		Tables:    game.NewRewardTables(cfg, rng),
		Tuning:    config.DefaultFishingTuning(),
		RNG:       rng,
		Settings:  settings,
		Journal:   game.NewCatchJournal(nil),
		Inventory: game.NewInventory(),
	}
	services.Inventory.Add("worm", 3)
	services.Inventory.Add("bent hook", 1)
	return services
}

// runUntil 空输入推进场景，直到满足条件或超时
func runUntil(t *testing.T, scene *FishingScene, maxSeconds float64, done func() bool) {
	t.Helper()
	for elapsed := 0.0; elapsed < maxSeconds; elapsed += tick {
		if done() {
			return
		}
		scene.step(tick, sceneInput{})
	}
	if !done() {
		t.Fatalf("Condition not reached within %.1fs (phase %s)", maxSeconds, scene.FishingManager().Phase())
	}
}

func phaseIs(scene *FishingScene, phase game.FishingPhase) func() bool {
	return func() bool { return scene.FishingManager().Phase() == phase }
}

// hookFish 抛竿、等待咬钩并提竿
func hookFish(t *testing.T, scene *FishingScene) {
	t.Helper()
	scene.step(tick, sceneInput{Cast: true})
	if got := scene.FishingManager().Phase(); got != game.PhaseWaitingForBite {
		t.Fatalf("Expected WAITING_FOR_BITE after cast, got %s", got)
	}
	runUntil(t, scene, 11, phaseIs(scene, game.PhaseBiting))
	scene.step(tick, sceneInput{Strike: true})
	if got := scene.FishingManager().Phase(); got != game.PhaseHooked {
		t.Fatalf("Expected HOOKED after strike, got %s", got)
	}
}

func TestNewFishingScene_UnknownBiomeFallsBack(t *testing.T) {
	scene := NewFishingScene(newTestServices(t), nil, "moon")

	if scene.Biome() != "grassland" {
		t.Errorf("Expected fallback to grassland, got %q", scene.Biome())
	}
	if scene.TradingManager().Biome() != "grassland" {
		t.Errorf("Trading biome = %q, want grassland", scene.TradingManager().Biome())
	}
	if scene.SelectedBait() != "worm" || scene.SelectedHook() != "bent hook" {
		t.Errorf("Expected preferences from default settings, got bait=%q hook=%q",
			scene.SelectedBait(), scene.SelectedHook())
	}
}

func TestFishingScene_CastWithoutBaitInBag(t *testing.T) {
	services := newTestServices(t)
	services.Inventory.Remove("worm", 3)
	scene := NewFishingScene(services, nil, "grassland")

	scene.step(tick, sceneInput{Cast: true})

	if scene.FishingManager().Phase() != game.PhaseIdle {
		t.Errorf("Cast without bait should not start fishing, phase %s", scene.FishingManager().Phase())
	}
	if !strings.Contains(scene.Message(), "No worm left") {
		t.Errorf("Unexpected message %q", scene.Message())
	}
}

func TestFishingScene_BaitConsumedAtHook(t *testing.T) {
	services := newTestServices(t)
	scene := NewFishingScene(services, nil, "grassland")

	scene.step(tick, sceneInput{Cast: true})
	if services.Inventory.Count("worm") != 3 {
		t.Errorf("Casting should not consume bait, worms = %d", services.Inventory.Count("worm"))
	}
	if scene.EntityManager().EntityCount() == 0 {
		t.Error("Expected cast splash particles")
	}

	runUntil(t, scene, 11, phaseIs(scene, game.PhaseBiting))
	scene.step(tick, sceneInput{Strike: true})

	if services.Inventory.Count("worm") != 2 {
		t.Errorf("Expected one worm consumed at hook, worms = %d", services.Inventory.Count("worm"))
	}
	if services.Journal.BaitsConsumed() != 1 {
		t.Errorf("Journal BaitsConsumed = %d, want 1", services.Journal.BaitsConsumed())
	}
}

func TestFishingScene_MissedStrike(t *testing.T) {
	services := newTestServices(t)
	scene := NewFishingScene(services, nil, "grassland")

	scene.step(tick, sceneInput{Cast: true})
	runUntil(t, scene, 11, phaseIs(scene, game.PhaseBiting))
	runUntil(t, scene, 2.5, phaseIs(scene, game.PhaseIdle))

	if services.Inventory.Count("worm") != 3 {
		t.Errorf("Missed strike should keep the bait, worms = %d", services.Inventory.Count("worm"))
	}
	if scene.Message() != "Nothing on the line this time" {
		t.Errorf("Unexpected message %q", scene.Message())
	}
}

func TestFishingScene_CatchAndCollect(t *testing.T) {
	services := newTestServices(t)
	services.Tuning.FishSpeedFactor = 0 // 鱼标不动，收线条停在中心即可一直重叠
	scene := NewFishingScene(services, nil, "grassland")

	hookFish(t, scene)
	runUntil(t, scene, 7, phaseIs(scene, game.PhaseCatchComplete))

	catch := scene.FishingManager().Session().PendingCatch
	if catch == nil {
		t.Fatal("Expected a pending catch")
	}
	name := catch.Name

	scene.step(tick, sceneInput{Cast: true})

	if scene.FishingManager().Phase() != game.PhaseIdle {
		t.Errorf("Expected IDLE after collecting, got %s", scene.FishingManager().Phase())
	}
	if services.Inventory.Count(name) != 1 {
		t.Errorf("Expected 1 %s in bag, got %d", name, services.Inventory.Count(name))
	}
	if services.Journal.TotalCatches() != 1 {
		t.Errorf("Journal TotalCatches = %d, want 1", services.Journal.TotalCatches())
	}
	if _, ok := services.Journal.Entry(name); !ok {
		t.Errorf("Journal has no entry for %s", name)
	}
}

func TestFishingScene_PrematurePullEscapes(t *testing.T) {
	services := newTestServices(t)
	scene := NewFishingScene(services, nil, "grassland")

	hookFish(t, scene)
	scene.step(tick, sceneInput{Pull: true})

	if scene.FishingManager().Phase() != game.PhaseFailAnimating {
		t.Fatalf("Expected FAIL_ANIMATING after pull, got %s", scene.FishingManager().Phase())
	}
	if !strings.Contains(scene.Message(), "got away") {
		t.Errorf("Unexpected message %q", scene.Message())
	}

	runUntil(t, scene, 2.5, phaseIs(scene, game.PhaseIdle))

	if services.Journal.TotalEscapes() != 1 {
		t.Errorf("Journal TotalEscapes = %d, want 1", services.Journal.TotalEscapes())
	}
	if !strings.Contains(scene.Message(), "got away") {
		t.Errorf("Escape message should not be replaced by the reset, got %q", scene.Message())
	}
}

func TestFishingScene_Trading(t *testing.T) {
	services := newTestServices(t)
	scene := NewFishingScene(services, nil, "grassland")

	// 槽位 0 是蚯蚓，草原商人接受蚯蚓
	scene.step(tick, sceneInput{Offer: true})
	tm := scene.TradingManager()
	if tm.PlayerOffer() != services.Inventory.Slot("worm") {
		t.Fatal("Expected the worm slot to be offered")
	}
	npc := tm.NPCOffer()
	if npc == nil {
		t.Fatal("Expected a trader offer for worm")
	}
	reward := npc.Name

	scene.step(tick, sceneInput{Accept: true})

	if services.Inventory.Count("worm") != 2 {
		t.Errorf("Expected one worm traded away, worms = %d", services.Inventory.Count("worm"))
	}
	if services.Inventory.Count(reward) < 1 {
		t.Errorf("Expected %s in bag after trade", reward)
	}
	if tm.PlayerOffer() != nil || tm.NPCOffer() != nil {
		t.Error("Trade slots should be cleared after accepting")
	}
}

func TestFishingScene_OfferRejectedItem(t *testing.T) {
	services := newTestServices(t)
	scene := NewFishingScene(services, nil, "grassland")

	scene.step(tick, sceneInput{SelectDown: true, Offer: true})

	if scene.SelectedSlot() != 1 {
		t.Fatalf("Expected slot 1 selected, got %d", scene.SelectedSlot())
	}
	if scene.TradingManager().NPCOffer() != nil {
		t.Error("Grassland trader should not want a bent hook")
	}
	if !strings.Contains(scene.Message(), "not interested") {
		t.Errorf("Unexpected message %q", scene.Message())
	}

	scene.step(tick, sceneInput{Accept: true})
	if services.Inventory.Count("bent hook") != 1 {
		t.Error("Rejected offer must not remove the item")
	}
}

func TestFishingScene_OfferToggleAndSync(t *testing.T) {
	services := newTestServices(t)
	scene := NewFishingScene(services, nil, "grassland")
	tm := scene.TradingManager()

	scene.step(tick, sceneInput{Offer: true})
	scene.step(tick, sceneInput{Offer: true})
	if tm.PlayerOffer() != nil {
		t.Error("Second offer press should withdraw the offer")
	}

	scene.step(tick, sceneInput{Offer: true})
	services.Inventory.Remove("worm", 3)
	scene.step(tick, sceneInput{})
	if tm.PlayerOffer() != nil || tm.NPCOffer() != nil {
		t.Error("Offer should be withdrawn once the slot is gone")
	}
}

func TestFishingScene_CycleEquipment(t *testing.T) {
	services := newTestServices(t)
	services.Inventory.Add("cricket", 1)
	services.Inventory.Add("iron hook", 1)
	scene := NewFishingScene(services, nil, "grassland")

	baits := []string{"cricket", "", "worm"}
	for _, want := range baits {
		scene.step(tick, sceneInput{CycleBait: true})
		if scene.SelectedBait() != want {
			t.Errorf("CycleBait: got %q, want %q", scene.SelectedBait(), want)
		}
	}

	hooks := []string{"iron hook", "", "bent hook"}
	for _, want := range hooks {
		scene.step(tick, sceneInput{CycleHook: true})
		if scene.SelectedHook() != want {
			t.Errorf("CycleHook: got %q, want %q", scene.SelectedHook(), want)
		}
	}
}

func TestFishingScene_DigBaitCooldown(t *testing.T) {
	services := newTestServices(t)
	services.Inventory.Remove("worm", 3)
	scene := NewFishingScene(services, nil, "grassland")

	countBaits := func() int {
		total := 0
		for _, b := range services.Tables.Config().Baits {
			total += services.Inventory.Count(b.Name)
		}
		return total
	}

	scene.step(tick, sceneInput{DigBait: true})
	scene.step(tick, sceneInput{DigBait: true})
	if got := countBaits(); got != 1 {
		t.Errorf("Expected 1 bait after two quick digs, got %d", got)
	}

	runUntil(t, scene, DigBaitCooldown+0.1, func() bool { return scene.digCooldown <= 0 })
	scene.step(tick, sceneInput{DigBait: true})
	if got := countBaits(); got != 2 {
		t.Errorf("Expected 2 baits after cooldown, got %d", got)
	}
}

func TestFishingScene_SwitchBiomeCancelsFishing(t *testing.T) {
	services := newTestServices(t)
	scene := NewFishingScene(services, nil, "grassland")

	scene.step(tick, sceneInput{Cast: true})
	scene.step(tick, sceneInput{NextBiome: true})

	if scene.Biome() != "forest" {
		t.Errorf("Expected forest after grassland, got %q", scene.Biome())
	}
	if scene.TradingManager().Biome() != "forest" {
		t.Errorf("Trading biome = %q, want forest", scene.TradingManager().Biome())
	}
	if scene.FishingManager().Phase() != game.PhaseIdle {
		t.Errorf("Switching biome should cancel fishing, phase %s", scene.FishingManager().Phase())
	}

	scene.SwitchBiome("moon")
	if scene.Biome() != "forest" {
		t.Error("Unknown biome should be ignored")
	}
}

func TestFishingScene_ToggleSound(t *testing.T) {
	services := newTestServices(t)
	scene := NewFishingScene(services, nil, "grassland")

	scene.step(tick, sceneInput{ToggleSound: true})
	if services.Settings.GetSettings().SoundEnabled {
		t.Error("Expected sound disabled after toggle")
	}
	scene.step(tick, sceneInput{ToggleSound: true})
	if !services.Settings.GetSettings().SoundEnabled {
		t.Error("Expected sound enabled after second toggle")
	}
}

func TestFishingScene_LeaveAndSave(t *testing.T) {
	services := newTestServices(t)
	sm := game.NewSceneManager()
	sm.SetSceneFactory(func(biome string) game.Scene {
		return NewFishingScene(services, sm, biome)
	})

	sm.LoadBiome("grassland")
	first, ok := sm.GetCurrentScene().(*FishingScene)
	if !ok {
		t.Fatal("Expected a FishingScene")
	}
	first.step(tick, sceneInput{Cast: true})

	sm.LoadBiome("beach")
	if first.FishingManager().Phase() != game.PhaseIdle {
		t.Errorf("Leaving the scene should cancel fishing, phase %s", first.FishingManager().Phase())
	}
	if first.EntityManager().EntityCount() != 0 {
		t.Errorf("Leaving the scene should clear effects, %d left", first.EntityManager().EntityCount())
	}

	if !sm.SaveCurrent() {
		t.Error("SaveCurrent should succeed without persistent storage")
	}
	if got := services.Settings.GetSettings().LastBiome; got != "beach" {
		t.Errorf("LastBiome = %q, want beach", got)
	}
}

type recordingPlayer struct {
	played []string
}

func (p *recordingPlayer) PlaySound(id string) bool {
	p.played = append(p.played, id)
	return true
}

func TestSoundingSpawner(t *testing.T) {
	services := newTestServices(t)
	scene := NewFishingScene(services, nil, "grassland")
	player := &recordingPlayer{}
	scene.effects.sounds = player

	scene.step(tick, sceneInput{Cast: true})

	if len(player.played) != 1 || player.played[0] != game.SoundSplash {
		t.Errorf("Expected one splash sound on cast, got %v", player.played)
	}
}

func TestFishingScene_TapFollowsPhase(t *testing.T) {
	services := newTestServices(t)
	scene := NewFishingScene(services, nil, "grassland")

	scene.step(tick, sceneInput{Tap: true})
	if scene.FishingManager().Phase() != game.PhaseWaitingForBite {
		t.Fatalf("Tap while idle should cast, phase %s", scene.FishingManager().Phase())
	}

	// 等待咬钩时点击不做任何事
	scene.step(tick, sceneInput{Tap: true})
	if scene.FishingManager().Phase() != game.PhaseWaitingForBite {
		t.Fatalf("Tap while waiting should be ignored, phase %s", scene.FishingManager().Phase())
	}

	runUntil(t, scene, 11, phaseIs(scene, game.PhaseBiting))
	scene.step(tick, sceneInput{Tap: true})
	if scene.FishingManager().Phase() != game.PhaseHooked {
		t.Errorf("Tap while biting should strike, phase %s", scene.FishingManager().Phase())
	}
}
