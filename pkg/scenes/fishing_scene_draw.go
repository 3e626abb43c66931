package scenes

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/gonewx/riverbank/pkg/config"
	"github.com/gonewx/riverbank/pkg/game"
	"github.com/gonewx/riverbank/pkg/utils"
)

// 场景配色
var (
	skyColors = map[string]color.RGBA{
		"grassland": {R: 150, G: 205, B: 240, A: 255},
		"forest":    {R: 120, G: 170, B: 140, A: 255},
		"snowfield": {R: 215, G: 225, B: 235, A: 255},
		"beach":     {R: 130, G: 200, B: 250, A: 255},
	}
	defaultSkyColor = color.RGBA{R: 150, G: 190, B: 220, A: 255}

	waterColor   = color.RGBA{R: 40, G: 100, B: 170, A: 255}
	shoreColor   = color.RGBA{R: 120, G: 95, B: 60, A: 255}
	anglerColor  = color.RGBA{R: 60, G: 60, B: 80, A: 255}
	rodColor     = color.RGBA{R: 90, G: 60, B: 30, A: 255}
	lineColor    = color.RGBA{R: 235, G: 235, B: 235, A: 255}
	bobberColor  = color.RGBA{R: 220, G: 40, B: 40, A: 255}
	panelColor   = color.RGBA{R: 20, G: 30, B: 40, A: 220}
	barColor     = color.RGBA{R: 80, G: 200, B: 90, A: 200}
	barIdleColor = color.RGBA{R: 60, G: 130, B: 70, A: 200}
	fishColor    = color.RGBA{R: 240, G: 150, B: 60, A: 255}
	progressBG   = color.RGBA{R: 60, G: 60, B: 60, A: 255}
	progressFG   = color.RGBA{R: 250, G: 210, B: 70, A: 255}
)

// 岸边与钓鱼人
const (
	shoreX      = 0
	shoreY      = 300
	shoreWidth  = 220
	anglerX     = 120
	anglerY     = 220
	anglerW     = 16
	anglerH     = 80
	rodGripX    = 136
	rodGripY    = 280
	bobberSize  = 5
	hudX        = 10
	hudLine     = 16
	bagX        = 600
	bagY        = 120
	messageY    = config.GameWindowHeight - 40
	helpY       = config.GameWindowHeight - 20
	helpMessage = "Space cast/collect  F strike  A/D reel  Esc pull  B dig  Q/E bait/hook  T offer  Enter trade  Tab travel  M sound"
	touchHelp   = "Tap to cast, strike and collect. Hold the left or right half of the screen to reel"
)

func (s *FishingScene) drawBackground(screen *ebiten.Image) {
	sky, ok := skyColors[s.biome]
	if !ok {
		sky = defaultSkyColor
	}
	screen.Fill(sky)

	vector.DrawFilledRect(screen, 0, config.WaterSurfaceY,
		config.GameWindowWidth, config.GameWindowHeight-config.WaterSurfaceY, waterColor, false)
	vector.DrawFilledRect(screen, shoreX, shoreY,
		shoreWidth, config.GameWindowHeight-shoreY, shoreColor, false)
}

func (s *FishingScene) drawAngler(screen *ebiten.Image) {
	vector.DrawFilledRect(screen, anglerX, anglerY, anglerW, anglerH, anglerColor, false)
	vector.StrokeLine(screen, rodGripX, rodGripY, config.RodTipX, config.RodTipY, 3, rodColor, true)
}

// drawLine 抛竿后绘制鱼线和浮标
func (s *FishingScene) drawLine(screen *ebiten.Image) {
	switch s.fishingManager.Phase() {
	case game.PhaseIdle, game.PhaseFailAnimating:
		return
	}

	bobberY := float32(config.BobberY(s.bobbing))
	vector.StrokeLine(screen, config.RodTipX, config.RodTipY, config.BobberX, bobberY, 1, lineColor, true)
	vector.DrawFilledCircle(screen, config.BobberX, bobberY, bobberSize, bobberColor, true)
}

// drawMinigame 收线小游戏面板：轨道、收线条、鱼标、进度条
func (s *FishingScene) drawMinigame(screen *ebiten.Image) {
	if s.fishingManager.Phase() != game.PhaseHooked {
		return
	}
	session := s.fishingManager.Session()
	minigame := s.fishingManager.Minigame()
	frame := s.fishingManager.Tuning().FrameWidth

	panelX := float32(config.MinigamePanelX(frame))
	vector.DrawFilledRect(screen, panelX, config.MinigamePanelY,
		float32(frame), config.MinigameTrackHeight, panelColor, false)

	bar := barIdleColor
	if minigame.Overlapping(&session) {
		bar = barColor
	}
	left, right := minigame.BarInterval(&session)
	vector.DrawFilledRect(screen, float32(config.MinigameToScreenX(frame, left)), config.MinigamePanelY,
		float32(right-left), config.MinigameTrackHeight, bar, false)

	left, right = minigame.FishInterval(&session)
	vector.DrawFilledRect(screen, float32(config.MinigameToScreenX(frame, left)), config.MinigamePanelY+4,
		float32(right-left), config.MinigameTrackHeight-8, fishColor, false)

	progressY := float32(config.MinigamePanelY + config.MinigameTrackHeight + config.MinigameProgressGap)
	vector.DrawFilledRect(screen, panelX, progressY, float32(frame), config.MinigameProgressHeight, progressBG, false)
	vector.DrawFilledRect(screen, panelX, progressY, float32(session.Progress), config.MinigameProgressHeight, progressFG, false)

	if session.CurrentFish != nil {
		ebitenutil.DebugPrintAt(screen, session.CurrentFish.Name, int(panelX), config.MinigamePanelY-hudLine)
	}
}

func (s *FishingScene) drawHUD(screen *ebiten.Image) {
	inv := s.services.Inventory
	settings := s.services.Settings.GetSettings()
	journal := s.services.Journal

	sound := "on"
	if !settings.SoundEnabled {
		sound = "off"
	}

	lines := []string{
		fmt.Sprintf("Biome: %s", s.biome),
		fmt.Sprintf("Bait: %s x%d   Hook: %s", displayName(s.selectedBait), inv.Count(s.selectedBait), displayName(s.selectedHook)),
		fmt.Sprintf("Phase: %s", s.fishingManager.Phase()),
		fmt.Sprintf("Caught: %d  Escaped: %d  Species: %d", journal.TotalCatches(), journal.TotalEscapes(), len(journal.Entries())),
		fmt.Sprintf("Sound: %s", sound),
	}
	for i, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, hudX, hudX+i*hudLine)
	}

	s.drawBag(screen)

	if s.message != "" {
		ebitenutil.DebugPrintAt(screen, s.message, hudX, messageY)
	}
	help := helpMessage
	if utils.IsMobile() {
		help = touchHelp
	}
	ebitenutil.DebugPrintAt(screen, help, hudX, helpY)
}

// drawBag 背包列表与交易面板
func (s *FishingScene) drawBag(screen *ebiten.Image) {
	ebitenutil.DebugPrintAt(screen, "Bag:", bagX, bagY)

	offer := s.tradingManager.PlayerOffer()
	selected := s.selectedItem()
	y := bagY + hudLine
	for _, slot := range s.services.Inventory.Slots() {
		marker := "  "
		if slot == selected {
			marker = "> "
		}
		suffix := ""
		if slot == offer {
			suffix = " (offered)"
		}
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s%s x%d%s", marker, slot.Name, slot.Quantity, suffix), bagX, y)
		y += hudLine
	}

	y += hudLine
	if offer == nil {
		ebitenutil.DebugPrintAt(screen, "Trader: offer an item with T", bagX, y)
		return
	}
	if npc := s.tradingManager.NPCOffer(); npc != nil {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Trader gives: %s", npc.Name), bagX, y)
	} else {
		ebitenutil.DebugPrintAt(screen, "Trader: no deal", bagX, y)
	}
}

func displayName(name string) string {
	if name == "" {
		return "none"
	}
	return name
}
