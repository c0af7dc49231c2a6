package main

import (
	"flag"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/trees/logger"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug logging and overlay")
	seed := flag.Int64("seed", 0, "forest seed (0 picks one from the clock)")
	watch := flag.Bool("watch", false, "reload camera tuning from prefabs/ when it changes")
	flag.Parse()

	logger.Init(*debug)

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	game, err := NewGame(*seed, *debug, *watch)
	if err != nil {
		logger.Log.Fatalf("failed to build scene: %v", err)
	}
	defer game.Close()

	width, height, title := game.WindowConfig()
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle(title)

	if err := ebiten.RunGame(game); err != nil {
		logger.Log.Fatal(err)
	}
}
