package main

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/aukilabs/go-tooling/pkg/cli"
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/segmentio/encoding/json"
	"github.com/voxelray/go-voxel-raytracer/pkg/material"
	"github.com/voxelray/go-voxel-raytracer/pkg/renderer"
	"github.com/voxelray/go-voxel-raytracer/pkg/scene"
)

type config struct {
	Width     int    `cli:"" env:"VOXELRAY_WIDTH"      help:"Output image width."`
	Height    int    `cli:"" env:"VOXELRAY_HEIGHT"     help:"Output image height."`
	LayersDir string `cli:"" env:"VOXELRAY_LAYERS_DIR" help:"Directory containing the scene layer files."`
	ImagesDir string `cli:"" env:"VOXELRAY_IMAGES_DIR" help:"Directory containing the material textures."`
	OutputDir string `cli:"" env:"VOXELRAY_OUTPUT_DIR" help:"Directory the rendered PNG is written to."`
	Sky       bool   `cli:"" env:"VOXELRAY_SKY"        help:"Enable the procedural sky."`
	Workers   int    `cli:"" env:"VOXELRAY_WORKERS"    help:"Number of render workers (0 = one per CPU)."`
	LogLevel  string `cli:"" env:"VOXELRAY_LOG_LEVEL"  help:"Log level (debug|info|warning|error)."`
}

func main() {
	conf := config{
		Width:     1200,
		Height:    800,
		LayersDir: "layers",
		ImagesDir: "images",
		OutputDir: "output",
		Sky:       true,
		LogLevel:  logs.InfoLevel.String(),
	}

	cli.Register().
		Help("Renders one frame of the voxel diorama to a PNG file.").
		Options(&conf)
	cli.Load()

	logs.SetLevel(logs.ParseLevel(conf.LogLevel))
	logs.Encoder = json.Marshal

	cache := material.NewTextureCache(conf.ImagesDir)
	grid := scene.LoadLayeredGrid(conf.LayersDir, cache)
	snapshot := scene.NewSnapshot(grid, conf.Sky)
	camera := renderer.FrameCamera(snapshot.Center(), snapshot.BoundingRadius())

	dispatcher := renderer.NewDispatcher(conf.Workers)
	buffer, stats := dispatcher.Render(camera, conf.Width, conf.Height, snapshot)

	img := image.NewRGBA(image.Rect(0, 0, conf.Width, conf.Height))
	for i, c := range buffer {
		img.SetRGBA(i%conf.Width, i/conf.Width, c)
	}

	if err := os.MkdirAll(conf.OutputDir, 0o755); err != nil {
		logs.Fatal(errors.New("creating output directory failed").Wrap(err))
	}

	filename := filepath.Join(conf.OutputDir,
		fmt.Sprintf("render_%s.png", time.Now().Format("20060102_150405")))

	f, err := os.Create(filename)
	if err != nil {
		logs.Fatal(errors.New("creating output file failed").Wrap(err))
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		logs.Fatal(errors.New("encoding PNG failed").Wrap(err))
	}

	logs.WithTag("file", filename).
		WithTag("elapsed", stats.Elapsed.String()).
		WithTag("workers", stats.Workers).
		Info("render saved")
}
