package main

import (
	"context"
	"os"
	"syscall"

	"github.com/aukilabs/go-tooling/pkg/cli"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/segmentio/encoding/json"
	"github.com/voxelray/go-voxel-raytracer/pkg/material"
	"github.com/voxelray/go-voxel-raytracer/pkg/renderer"
	"github.com/voxelray/go-voxel-raytracer/pkg/scene"
	"github.com/voxelray/go-voxel-raytracer/web/server"
)

type config struct {
	Addr      string `cli:"" env:"VOXELRAY_ADDR"       help:"Listening address for render requests."`
	AdminAddr string `cli:"" env:"VOXELRAY_ADMIN_ADDR" help:"Admin listening address (metrics)."`
	LayersDir string `cli:"" env:"VOXELRAY_LAYERS_DIR" help:"Directory containing the scene layer files."`
	ImagesDir string `cli:"" env:"VOXELRAY_IMAGES_DIR" help:"Directory containing the material textures."`
	Workers   int    `cli:"" env:"VOXELRAY_WORKERS"    help:"Number of render workers (0 = one per CPU)."`
	LogLevel  string `cli:"" env:"VOXELRAY_LOG_LEVEL"  help:"Log level (debug|info|warning|error)."`
}

func main() {
	conf := config{
		Addr:      ":8080",
		AdminAddr: ":18080",
		LayersDir: "layers",
		ImagesDir: "images",
		LogLevel:  logs.InfoLevel.String(),
	}

	ctx, cancel := cli.ContextWithSignals(context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer cancel()

	cli.Register().
		Help("Starts the voxel raytracer web server.").
		Options(&conf)
	cli.Load()

	logs.SetLevel(logs.ParseLevel(conf.LogLevel))
	logs.Encoder = json.Marshal

	cache := material.NewTextureCache(conf.ImagesDir)
	grid := scene.LoadLayeredGrid(conf.LayersDir, cache)
	baseScene := scene.NewSnapshot(grid, true)

	dispatcher := renderer.NewDispatcher(conf.Workers)

	srv := server.New(conf.Addr, conf.AdminAddr, dispatcher, baseScene)
	if err := srv.Start(ctx); err != nil {
		logs.Fatal(err)
	}
}
