package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gonewx/ghosttrail/pkg/app"
	"github.com/gonewx/ghosttrail/pkg/config"
	"github.com/gonewx/ghosttrail/pkg/embedded"
)

func main() {
	verbose := flag.Bool("verbose", false, "Enable verbose logging")
	presetsPath := flag.String("presets", "", "Path to a trail presets YAML file (default: embedded data/ghost_trails.yaml)")
	preset := flag.String("preset", "", "Trail preset to start with (default: last selected or file default)")
	flag.Parse()

	// 初始化嵌入资源，dataFS 在 embed.go 中声明
	embedded.Init(dataFS)

	ghostApp, err := app.NewApp(app.Config{
		Verbose:     *verbose,
		PresetsPath: *presetsPath,
		Preset:      *preset,
		StorageName: app.DefaultStorageName,
	})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}

	ebiten.SetWindowSize(config.ScreenWidth, config.ScreenHeight)
	ebiten.SetWindowTitle("Ghost Trail")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(ghostApp); err != nil {
		log.Fatal(err)
	}
}
