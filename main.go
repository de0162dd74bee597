/*
Atelier is a small 3D scene authoring tool: it watches an asset directory,
loads models and textures in the background and places them in editable
scenes.
*/
package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/atelier3d/atelier/engine"
	"github.com/atelier3d/atelier/engine/config"
	"github.com/atelier3d/atelier/engine/renderer"
)

func main() {
	cfg, err := config.Load("atelier.toml")
	if err != nil {
		panic(err)
	}

	app, err := engine.New(cfg, renderer.NewNullBackend())
	if err != nil {
		panic(err)
	}

	if err := app.Initialize(); err != nil {
		panic(err)
	}

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)

	// start shutdown goroutine
	go func() {
		<-sigCh
		_ = app.Shutdown()
	}()

	if err := app.Run(); err != nil {
		panic(err)
	}
}
