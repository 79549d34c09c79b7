package main

import (
	"fmt"
	"math"

	"github.com/aukilabs/go-tooling/pkg/cli"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/segmentio/encoding/json"
	"github.com/voxelray/go-voxel-raytracer/pkg/core"
	"github.com/voxelray/go-voxel-raytracer/pkg/geometry"
	"github.com/voxelray/go-voxel-raytracer/pkg/material"
	"github.com/voxelray/go-voxel-raytracer/pkg/renderer"
	"github.com/voxelray/go-voxel-raytracer/pkg/scene"
)

type config struct {
	Width       int    `cli:"" env:"VOXELRAY_WIDTH"        help:"Window width."`
	Height      int    `cli:"" env:"VOXELRAY_HEIGHT"       help:"Window height."`
	RenderScale int    `cli:"" env:"VOXELRAY_RENDER_SCALE" help:"Render at 1/N window resolution."`
	LayersDir   string `cli:"" env:"VOXELRAY_LAYERS_DIR"   help:"Directory containing the scene layer files."`
	ImagesDir   string `cli:"" env:"VOXELRAY_IMAGES_DIR"   help:"Directory containing the material textures."`
	Workers     int    `cli:"" env:"VOXELRAY_WORKERS"      help:"Number of render workers (0 = one per CPU)."`
	LogLevel    string `cli:"" env:"VOXELRAY_LOG_LEVEL"    help:"Log level (debug|info|warning|error)."`
}

// game renders one frame per tick and blits it to the window
type game struct {
	grid       *geometry.VoxelGrid
	camera     *renderer.Camera
	dispatcher *renderer.Dispatcher
	width      int
	height     int
	sky        bool

	frame   *ebiten.Image
	pix     []byte
	frameMs float64

	prevMouseX int
	prevMouseY int
}

const (
	baseSpeed        = 8.0
	shiftSpeedFactor = 3.0
	mouseSensitivity = 0.003
	pitchLimit       = 1.5
)

func (g *game) Update() error {
	g.handleMovement()
	g.handleOrbit()

	if inpututil.IsKeyJustPressed(ebiten.KeyK) {
		g.sky = !g.sky
		logs.WithTag("sky", g.sky).Info("sky toggled")
	}
	return nil
}

// handleMovement applies WASD planar movement and Q/E height changes
func (g *game) handleMovement() {
	dt := 1.0 / float64(ebiten.TPS())
	speed := baseSpeed * dt
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		speed *= shiftSpeedFactor
	}

	eye := g.camera.Eye
	target := g.camera.Target
	forward := g.camera.Forward()
	right := g.camera.Right()

	move := core.Vec3{}
	if ebiten.IsKeyPressed(ebiten.KeyW) {
		move = move.Add(forward.Multiply(speed))
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) {
		move = move.Subtract(forward.Multiply(speed))
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) {
		move = move.Add(right.Multiply(speed))
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) {
		move = move.Subtract(right.Multiply(speed))
	}
	if ebiten.IsKeyPressed(ebiten.KeyE) {
		move = move.Add(core.NewVec3(0, speed, 0))
	}
	if ebiten.IsKeyPressed(ebiten.KeyQ) {
		move = move.Subtract(core.NewVec3(0, speed, 0))
	}

	if move.LengthSquared() > 0 {
		g.camera.SetPosition(eye.Add(move), target.Add(move))
	}
}

// handleOrbit rotates the eye around the target while the left button is held
func (g *game) handleOrbit() {
	x, y := ebiten.CursorPosition()
	dx, dy := x-g.prevMouseX, y-g.prevMouseY
	g.prevMouseX, g.prevMouseY = x, y

	if !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) || (dx == 0 && dy == 0) {
		return
	}

	eye := g.camera.Eye
	target := g.camera.Target

	relative := eye.Subtract(target)
	radius := relative.Length()
	if radius == 0 {
		return
	}

	theta := math.Atan2(relative.Z, relative.X) + float64(dx)*mouseSensitivity
	phi := math.Asin(relative.Y/radius) + float64(dy)*mouseSensitivity
	phi = max(-pitchLimit, min(pitchLimit, phi))

	eye = target.Add(core.NewVec3(
		radius*math.Cos(phi)*math.Cos(theta),
		radius*math.Sin(phi),
		radius*math.Cos(phi)*math.Sin(theta),
	))

	g.camera.SetPosition(eye, target)
}

func (g *game) Draw(screen *ebiten.Image) {
	snapshot := scene.NewSnapshot(g.grid, g.sky)
	buffer, stats := g.dispatcher.Render(g.camera, g.width, g.height, snapshot)
	g.frameMs = float64(stats.Elapsed.Microseconds()) / 1000.0

	if g.frame == nil {
		g.frame = ebiten.NewImage(g.width, g.height)
		g.pix = make([]byte, 4*g.width*g.height)
	}
	for i, c := range buffer {
		g.pix[4*i+0] = c.R
		g.pix[4*i+1] = c.G
		g.pix[4*i+2] = c.B
		g.pix[4*i+3] = c.A
	}
	g.frame.WritePixels(g.pix)
	screen.DrawImage(g.frame, nil)

	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"frame %.1fms | %d workers\nWASD: move  QE: height  drag: orbit  K: sky",
		g.frameMs, g.dispatcher.NumWorkers()))
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}

func main() {
	conf := config{
		Width:       1200,
		Height:      800,
		RenderScale: 2,
		LayersDir:   "layers",
		ImagesDir:   "images",
		LogLevel:    logs.InfoLevel.String(),
	}

	cli.Register().
		Help("Starts the interactive voxel diorama viewer.").
		Options(&conf)
	cli.Load()

	logs.SetLevel(logs.ParseLevel(conf.LogLevel))
	logs.Encoder = json.Marshal

	if conf.RenderScale < 1 {
		conf.RenderScale = 1
	}

	cache := material.NewTextureCache(conf.ImagesDir)
	grid := scene.LoadLayeredGrid(conf.LayersDir, cache)

	g := &game{
		grid:       grid,
		camera:     renderer.FrameCamera(grid.Center(), grid.BoundingRadius()),
		dispatcher: renderer.NewDispatcher(conf.Workers),
		width:      conf.Width / conf.RenderScale,
		height:     conf.Height / conf.RenderScale,
		sky:        true,
	}

	ebiten.SetWindowTitle("Voxel Diorama Raytracer")
	ebiten.SetWindowSize(conf.Width, conf.Height)
	ebiten.SetTPS(60)

	if err := ebiten.RunGame(g); err != nil {
		logs.Fatal(err)
	}
}
