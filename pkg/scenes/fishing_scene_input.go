package scenes

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/gonewx/riverbank/pkg/config"
	"github.com/gonewx/riverbank/pkg/game"
	"github.com/gonewx/riverbank/pkg/utils"
)

// sceneInput 一帧的玩家输入
//
// 与键盘读取分离，测试可以直接构造输入驱动场景。
type sceneInput struct {
	Cast         bool // Space：抛竿 / 领取渔获
	Tap          bool // 点击或触摸：按当前阶段抛竿、提竿或领取
	Strike       bool // 右键或 F：提竿
	Pull         bool // Esc：收竿
	BarDirection int  // A/D 或左右方向键

	DigBait   bool // B
	CycleBait bool // Q
	CycleHook bool // E

	SelectUp   bool
	SelectDown bool
	Offer      bool // T：把选中槽位放到报价槽（再按一次撤回）
	Accept     bool // Enter：成交

	NextBiome   bool // Tab
	ToggleSound bool // M
}

// readInput 从 ebiten 读取当前帧输入
func readInput() sceneInput {
	var in sceneInput

	in.Cast = inpututil.IsKeyJustPressed(ebiten.KeySpace)
	in.Strike = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) ||
		inpututil.IsKeyJustPressed(ebiten.KeyF)
	in.Pull = inpututil.IsKeyJustPressed(ebiten.KeyEscape)

	left := ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft)
	right := ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight)
	switch {
	case left && !right:
		in.BarDirection = -1
	case right && !left:
		in.BarDirection = 1
	default:
		// 触摸设备：按住屏幕左半边/右半边移动收线条
		pressed, x, _ := utils.GetPointerState()
		in.BarDirection = utils.PointerDirection(pressed, x, config.GameWindowWidth/2)
	}
	in.Tap, _, _ = utils.IsJustTouchedOrClicked()

	in.DigBait = inpututil.IsKeyJustPressed(ebiten.KeyB)
	in.CycleBait = inpututil.IsKeyJustPressed(ebiten.KeyQ)
	in.CycleHook = inpututil.IsKeyJustPressed(ebiten.KeyE)

	in.SelectUp = inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) || inpututil.IsKeyJustPressed(ebiten.KeyW)
	in.SelectDown = inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) || inpututil.IsKeyJustPressed(ebiten.KeyS)
	in.Offer = inpututil.IsKeyJustPressed(ebiten.KeyT)
	in.Accept = inpututil.IsKeyJustPressed(ebiten.KeyEnter)

	in.NextBiome = inpututil.IsKeyJustPressed(ebiten.KeyTab)
	in.ToggleSound = inpututil.IsKeyJustPressed(ebiten.KeyM)
	return in
}

// applyInput 把输入翻译成对状态机、背包和交易的操作
func (s *FishingScene) applyInput(in sceneInput) {
	if in.Cast {
		s.handleCast()
	}
	if in.Tap {
		s.handleTap()
	}
	if in.Strike {
		s.fishingManager.PlayerRightClicked(s.biome)
	}
	if in.Pull {
		s.fishingManager.HandlePrematurePull()
	}
	if s.fishingManager.Phase() == game.PhaseHooked {
		s.fishingManager.SetBarMovementDirection(in.BarDirection)
	}

	if in.DigBait {
		s.digBait()
	}
	if in.CycleBait {
		s.selectedBait = s.cycle(s.selectedBait, s.ownedBaits())
	}
	if in.CycleHook {
		s.selectedHook = s.cycle(s.selectedHook, s.ownedHooks())
	}

	if in.SelectUp {
		s.moveSelection(-1)
	}
	if in.SelectDown {
		s.moveSelection(1)
	}
	if in.Offer {
		s.toggleOffer()
	}
	if in.Accept {
		s.acceptTrade()
	}

	if in.NextBiome {
		s.SwitchBiome(s.nextBiome())
	}
	if in.ToggleSound {
		settings := s.services.Settings
		settings.SetSoundEnabled(!settings.GetSettings().SoundEnabled)
	}
}

// handleCast IDLE 时抛竿，CATCH_COMPLETE 时领取渔获
func (s *FishingScene) handleCast() {
	switch s.fishingManager.Phase() {
	case game.PhaseIdle:
		s.cast()
	case game.PhaseCatchComplete:
		s.collectCatch()
	}
}

// handleTap 单一触控操作：咬钩时提竿，其余阶段同 Space
func (s *FishingScene) handleTap() {
	if s.fishingManager.Phase() == game.PhaseBiting {
		s.fishingManager.PlayerRightClicked(s.biome)
		return
	}
	s.handleCast()
}

func (s *FishingScene) cast() {
	inv := s.services.Inventory
	if s.selectedBait != "" && inv.Count(s.selectedBait) == 0 {
		s.showMessage(fmt.Sprintf("No %s left. Press B to dig for bait or Q to change bait", s.selectedBait))
		return
	}
	if s.selectedHook != "" && inv.Count(s.selectedHook) == 0 {
		log.Printf("[FishingScene] Hook %s no longer owned, fishing without hook", s.selectedHook)
		s.selectedHook = ""
	}

	s.fishingManager.StartFishing(s.selectedBait, s.selectedHook)
	s.services.Settings.SetFishingPreferences(s.selectedBait, s.selectedHook, s.biome)
}

func (s *FishingScene) collectCatch() {
	catch, ok := s.fishingManager.CleanUpAfterCatch()
	if !ok {
		return
	}
	s.services.Inventory.Add(catch.Name, 1)
	s.showMessage(fmt.Sprintf("Put the %s in your bag", catch.Name))
}

func (s *FishingScene) digBait() {
	if s.digCooldown > 0 {
		return
	}
	s.digCooldown = DigBaitCooldown

	bait, ok := s.services.Tables.GetRandomBait()
	if !ok {
		s.showMessage("Found nothing")
		return
	}
	s.services.Inventory.Add(bait.Name, 1)
	if s.selectedBait == "" {
		s.selectedBait = bait.Name
	}
	s.showMessage(fmt.Sprintf("Dug up a %s", bait.Name))
}

// ownedBaits 背包中的鱼饵（背包顺序）
func (s *FishingScene) ownedBaits() []string {
	cfg := s.services.Tables.Config()
	var names []string
	for _, slot := range s.services.Inventory.Slots() {
		if _, err := cfg.Bait(slot.Name); err == nil {
			names = append(names, slot.Name)
		}
	}
	return names
}

// ownedHooks 背包中的鱼钩（背包顺序）
func (s *FishingScene) ownedHooks() []string {
	cfg := s.services.Tables.Config()
	var names []string
	for _, slot := range s.services.Inventory.Slots() {
		if _, err := cfg.Hook(slot.Name); err == nil {
			names = append(names, slot.Name)
		}
	}
	return names
}

// cycle 在 "不使用" 与已拥有的选项之间循环
func (s *FishingScene) cycle(current string, owned []string) string {
	options := append([]string{""}, owned...)
	for i, name := range options {
		if name == current {
			return options[(i+1)%len(options)]
		}
	}
	return options[0]
}

func (s *FishingScene) moveSelection(delta int) {
	n := len(s.services.Inventory.Slots())
	if n == 0 {
		s.selectedSlot = 0
		return
	}
	s.selectedSlot = (s.selectedSlot + delta + n) % n
}

// selectedItem 当前选中的背包槽位，背包为空时返回 nil
func (s *FishingScene) selectedItem() *game.InventoryItem {
	slots := s.services.Inventory.Slots()
	if len(slots) == 0 {
		return nil
	}
	if s.selectedSlot >= len(slots) {
		s.selectedSlot = len(slots) - 1
	}
	return slots[s.selectedSlot]
}

func (s *FishingScene) toggleOffer() {
	item := s.selectedItem()
	if item == nil {
		s.showMessage("Your bag is empty")
		return
	}
	if s.tradingManager.PlayerOffer() == item {
		s.tradingManager.SetOffer(nil)
		return
	}

	s.tradingManager.SetOffer(item)
	if npc := s.tradingManager.NPCOffer(); npc != nil {
		s.showMessage(fmt.Sprintf("The trader offers a %s for your %s. Press Enter to trade", npc.Name, item.Name))
	} else {
		s.showMessage(fmt.Sprintf("The trader is not interested in %s here", item.Name))
	}
}

func (s *FishingScene) acceptTrade() {
	given, received, ok := s.tradingManager.AcceptTrade()
	if !ok {
		s.showMessage("Nothing to trade")
		return
	}
	givenName := given.Name
	if !s.services.Inventory.ApplyTrade(given, received) {
		s.showMessage(fmt.Sprintf("You no longer have a %s", givenName))
		return
	}
	s.showMessage(fmt.Sprintf("Traded a %s for a %s", givenName, received.Name))
}

// syncOffer 报价物品用完（槽位被移除）时撤回报价
func (s *FishingScene) syncOffer() {
	offer := s.tradingManager.PlayerOffer()
	if offer == nil {
		return
	}
	if s.services.Inventory.Slot(offer.Name) != offer {
		s.tradingManager.SetOffer(nil)
	}
}

func (s *FishingScene) nextBiome() string {
	for i, name := range s.biomes {
		if name == s.biome {
			return s.biomes[(i+1)%len(s.biomes)]
		}
	}
	return s.biome
}
