package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/decker502/flipbook/pkg/app"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	configPath := flag.String("config", "data/flipbook.yaml", "YAML animation config file.")
	verbose := flag.Bool("verbose", false, "Enable verbose logging.")
	startScene := flag.Int("scene", -1, "Start scene id (overrides the config file).")
	noAudio := flag.Bool("no-audio", false, "Run without an audio context.")
	flag.Parse()

	player, err := app.NewApp(app.Config{
		Verbose:    *verbose,
		ConfigPath: *configPath,
		StartScene: *startScene,
		NoAudio:    *noAudio,
	})
	if err != nil {
		// NewApp 在非 verbose 模式下会关闭日志输出
		fmt.Fprintf(os.Stderr, "failed to start: %v\n", err)
		os.Exit(1)
	}
	defer player.Close()

	window := player.Window()
	ebiten.SetWindowSize(window.Width, window.Height)
	ebiten.SetWindowTitle(window.Title)
	ebiten.SetTPS(player.TPS())

	if err := ebiten.RunGame(player); err != nil {
		log.Fatal(err)
	}
}
