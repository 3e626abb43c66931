package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gonewx/riverbank/pkg/app"
	"github.com/gonewx/riverbank/pkg/config"
	"github.com/gonewx/riverbank/pkg/embedded"
)

var (
	verboseFlag = flag.Bool("verbose", false, "Enable verbose logging (default off)")
	biomeFlag   = flag.String("biome", "", "Start in the given biome (default: last visited)")
	seedFlag    = flag.Int64("seed", 0, "Random seed for reproducible sessions (0 = random)")
	baitFlag    = flag.String("bait", "", "Override the preferred bait")
	hookFlag    = flag.String("hook", "", "Override the preferred hook")
)

func main() {
	flag.Parse()

	// dataFS 在 embed.go 中声明
	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose: *verboseFlag,
		Biome:   *biomeFlag,
		Seed:    *seedFlag,
		Bait:    *baitFlag,
		Hook:    *hookFlag,
	})
	if err != nil {
		log.Fatalf("游戏初始化失败: %v", err)
	}

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle("Riverbank")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	runErr := ebiten.RunGame(gameApp)

	// 窗口关闭后保存图鉴和设置
	if !gameApp.GetSceneManager().SaveCurrent() {
		log.Printf("[Main] Warning: failed to save on exit")
	}
	if runErr != nil {
		log.Fatal(runErr)
	}
}
