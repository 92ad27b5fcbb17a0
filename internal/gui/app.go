// Package gui renders a particle engine in a raylib window, one oriented cube
// per particle.
package gui

import (
	"fmt"
	"io"
	"log"
	"math"

	"github.com/charmbracelet/harmonica"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/swarmform/internal/metrics"
	"github.com/san-kum/swarmform/internal/particle"
)

var (
	ColBg      = rl.NewColor(10, 10, 14, 255)
	ColText    = rl.NewColor(180, 180, 180, 255)
	ColTextDim = rl.NewColor(90, 90, 90, 255)
	ColWarn    = rl.NewColor(255, 80, 80, 255)
)

const (
	cubeSize          = 0.15
	formedDistance    = 22.0
	scatteredDistance = 60.0
	orbitSpeed        = 0.005
)

type Options struct {
	Title         string
	FPS           int
	Width, Height int32
	Logger        *log.Logger
}

type App struct {
	engine  *particle.Engine
	frame   []particle.Transform
	settled *metrics.Settled
	cube    rl.Model
	camera  rl.Camera3D

	yaw, pitch float64
	distance   float64
	distVel    float64
	distScale  float64
	spring     harmonica.Spring

	title   string
	running bool
	err     error
	logger  *log.Logger
}

// Run opens a window and drives engine until it is closed.
func Run(engine *particle.Engine, opts Options) error {
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.Width == 0 || opts.Height == 0 {
		opts.Width, opts.Height = 1280, 720
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard, "", 0)
	}
	if opts.Title == "" {
		opts.Title = "swarmform"
	}

	rl.SetConfigFlags(rl.FlagMsaa4xHint | rl.FlagWindowResizable)
	rl.InitWindow(opts.Width, opts.Height, opts.Title)
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(opts.FPS))
	rl.SetExitKey(0)

	app := newApp(engine, opts)
	defer rl.UnloadModel(app.cube)

	for !rl.WindowShouldClose() {
		if !app.Update() {
			break
		}
		app.Draw()
	}
	return app.err
}

func newApp(engine *particle.Engine, opts Options) *App {
	a := &App{
		engine:    engine,
		settled:   metrics.NewSettled(metrics.DefaultSettleRadius),
		cube:      rl.LoadModelFromMesh(rl.GenMeshCube(cubeSize, cubeSize, cubeSize)),
		pitch:     0.3,
		distance:  formedDistance,
		distScale: 1,
		spring:    harmonica.NewSpring(harmonica.FPS(opts.FPS), 4.0, 1.0),
		title:     opts.Title,
		running:   true,
		logger:    opts.Logger,
	}
	a.camera = rl.NewCamera3D(
		rl.NewVector3(0, 0, float32(a.distance)),
		rl.NewVector3(0, 0, 0),
		rl.NewVector3(0, 1, 0),
		45.0,
		rl.CameraPerspective,
	)
	a.placeCamera()
	return a
}

// Update handles input and advances the engine. It reports false when the
// window should close.
func (a *App) Update() bool {
	if rl.IsKeyPressed(rl.KeyQ) || rl.IsKeyPressed(rl.KeyEscape) {
		return false
	}

	if rl.IsKeyPressed(rl.KeySpace) || rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		a.toggle()
	}
	if rl.IsKeyPressed(rl.KeyP) {
		a.running = !a.running
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.yaw, a.pitch, a.distScale = 0, 0.3, 1
	}

	if rl.IsMouseButtonDown(rl.MouseRightButton) {
		delta := rl.GetMouseDelta()
		a.orbit(-float64(delta.X)*orbitSpeed, float64(delta.Y)*orbitSpeed)
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		a.orbit(-0.02, 0)
	}
	if rl.IsKeyDown(rl.KeyRight) {
		a.orbit(0.02, 0)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		a.orbit(0, 0.02)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		a.orbit(0, -0.02)
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		a.distScale = math.Max(0.2, math.Min(4, a.distScale*math.Pow(0.9, float64(wheel))))
	}

	if a.running && a.err == nil {
		if err := a.engine.Step(); err != nil {
			a.fail(err)
		}
	}

	a.distance, a.distVel = a.spring.Update(a.distance, a.distVel, a.targetDistance())
	a.placeCamera()
	return true
}

func (a *App) toggle() {
	state, err := a.engine.Toggle()
	if err != nil {
		a.fail(err)
		return
	}
	a.logger.Printf("tick %d: %s", a.engine.Tick(), state)
}

func (a *App) fail(err error) {
	if a.err == nil {
		a.logger.Printf("engine stopped: %v", err)
	}
	a.err = err
	a.running = false
}

func (a *App) orbit(dYaw, dPitch float64) {
	a.yaw += dYaw
	a.pitch = math.Max(-1.45, math.Min(1.45, a.pitch+dPitch))
}

func (a *App) targetDistance() float64 {
	if a.engine.State() == particle.Scattered {
		return scatteredDistance * a.distScale
	}
	return formedDistance * a.distScale
}

func (a *App) placeCamera() {
	a.camera.Position = rl.NewVector3(
		float32(a.distance*math.Cos(a.pitch)*math.Sin(a.yaw)),
		float32(a.distance*math.Sin(a.pitch)),
		float32(a.distance*math.Cos(a.pitch)*math.Cos(a.yaw)),
	)
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	rl.BeginMode3D(a.camera)
	var err error
	if a.frame, err = a.engine.Render(a, a.frame); err != nil {
		a.fail(err)
	}
	rl.EndMode3D()

	a.drawHUD()
	rl.EndDrawing()
}

// Render draws every transform as a cube. It must run inside BeginMode3D.
func (a *App) Render(frame particle.Frame) error {
	for _, t := range frame.Transforms {
		axis, angle := axisAngle(t.Orientation.W, t.Orientation.V)
		s := float32(t.Scale)
		rl.DrawModelEx(a.cube,
			vec3(t.Position),
			axis,
			angle,
			rl.NewVector3(s, s, s),
			tint(t),
		)
	}
	return nil
}

func (a *App) drawHUD() {
	a.engine.Inspect(a.settled.Observe)

	rl.DrawText(a.title, 30, 30, 24, ColText)
	status, col := "RUNNING", ColText
	switch {
	case a.err != nil:
		status, col = "FAULTED", ColWarn
	case !a.running:
		status, col = "PAUSED", ColTextDim
	}
	rl.DrawText(status, int32(rl.GetScreenWidth())-130, 30, 16, col)

	rl.DrawText(fmt.Sprintf("%s  tick %d  settled %.0f%%", a.engine.State(), a.engine.Tick(), a.settled.Value()*100), 30, 62, 16, ColText)
	if a.err != nil {
		rl.DrawText(a.err.Error(), 30, 88, 14, ColWarn)
	}

	h := int32(rl.GetScreenHeight())
	rl.DrawText(fmt.Sprintf("%d FPS", rl.GetFPS()), 30, h-40, 14, ColTextDim)
	rl.DrawText("[SPACE/CLICK] TOGGLE  [P] PAUSE  [RMB/ARROWS] ORBIT  [WHEEL] ZOOM  [R] RESET  [Q] QUIT", 140, h-40, 14, ColTextDim)
}
