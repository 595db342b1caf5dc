package main

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"

	"github.com/chazu/rigid/internal/logging"
	"github.com/chazu/rigid/pkg/anim"
	"github.com/chazu/rigid/pkg/canvas/term"
	"github.com/chazu/rigid/pkg/config"
	"github.com/chazu/rigid/pkg/project"
)

const (
	orbitStep  = math.Pi / 36
	speedStep  = 10
	viewerHelp = "space play/pause  n step  r reset  +/- speed  o operator  t path  arrows orbit  q quit"
)

// orbiter is a demo whose camera can be turned from the keyboard.
type orbiter interface {
	Camera() project.Camera
	SetCamera(project.Camera)
}

// viewer runs one session in the terminal. Every field is touched only
// on the frame loop goroutine.
type viewer struct {
	app    *App
	id     string
	screen tcell.Screen
	canvas *term.Canvas
	speed  int
	cancel context.CancelFunc
}

func doView(cfg config.Config, name string, op operatorChoice) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return errors.Wrap(err, "open terminal")
	}
	if err := screen.Init(); err != nil {
		return errors.Wrap(err, "init terminal")
	}
	defer screen.Fini()

	loop := anim.NewFrameLoop(cfg.FPS)
	app, err := NewApp(cfg, loop)
	if err != nil {
		return err
	}
	id, err := app.Open(name)
	if err != nil {
		return err
	}
	if op.set() {
		if err := app.SetOperator(id, op.operator()); err != nil {
			return err
		}
		if err := app.SetTruePath(id, op.truePath); err != nil {
			return err
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	v := &viewer{
		app:    app,
		id:     id,
		screen: screen,
		canvas: term.New(screen, cfg.Width, cfg.Height),
		speed:  cfg.Speed,
		cancel: cancel,
	}

	go v.input(ctx, loop)
	loop.Schedule(v.render(loop))

	err = loop.Run(ctx)
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	logging.Info("viewer closed %s", name)
	return err
}

// render returns a frame callback that redraws the session and
// reschedules itself.
func (v *viewer) render(s anim.Scheduler) func(time.Time) {
	var frame func(time.Time)
	frame = func(time.Time) {
		if err := v.app.Draw(v.id, v.canvas); err != nil {
			logging.Error("draw: %v", err)
			v.cancel()
			return
		}
		st, err := v.app.Status(v.id)
		if err == nil {
			_, rows := v.screen.Size()
			plain := tcell.StyleDefault
			term.DrawText(v.screen, 0, 0, plain.Bold(true), fmt.Sprintf("%s [%s]", st.Demo, st.State.Phase))
			term.DrawText(v.screen, 0, rows-2, plain, st.Line)
			term.DrawText(v.screen, 0, rows-1, plain.Dim(true), viewerHelp)
		}
		v.screen.Show()
		s.Schedule(frame)
	}
	return frame
}

// input reads terminal events and posts the matching commands to the
// loop.
func (v *viewer) input(ctx context.Context, loop *anim.FrameLoop) {
	for {
		ev := v.screen.PollEvent()
		if ev == nil {
			return
		}
		var cmd func()
		switch ev := ev.(type) {
		case *tcell.EventKey:
			cmd = v.key(ev)
		case *tcell.EventResize:
			cmd = v.screen.Sync
		}
		if cmd == nil {
			continue
		}
		if err := loop.Post(ctx, cmd); err != nil {
			return
		}
	}
}

func (v *viewer) key(ev *tcell.EventKey) func() {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return v.cancel
	case tcell.KeyLeft:
		return func() { v.orbit(-orbitStep, 0) }
	case tcell.KeyRight:
		return func() { v.orbit(orbitStep, 0) }
	case tcell.KeyUp:
		return func() { v.orbit(0, orbitStep) }
	case tcell.KeyDown:
		return func() { v.orbit(0, -orbitStep) }
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return v.cancel
		case ' ':
			return func() { v.report(v.app.Toggle(v.id)) }
		case 'r':
			return func() { v.report(v.app.Reset(v.id)) }
		case 'n':
			return func() {
				_, err := v.app.Step(v.id)
				v.report(err)
			}
		case 'o':
			return v.nextOperator
		case 't':
			return v.toggleTruePath
		case '+', '=':
			return func() { v.setSpeed(v.speed + speedStep) }
		case '-':
			return func() { v.setSpeed(v.speed - speedStep) }
		}
	}
	return nil
}

func (v *viewer) setSpeed(speed int) {
	if speed < 1 {
		speed = 1
	}
	if speed > 100 {
		speed = 100
	}
	if err := v.app.Speed(v.id, speed); err != nil {
		v.report(err)
		return
	}
	v.speed = speed
}

// nextOperator moves cube-operators on to its next transform.
func (v *viewer) nextOperator() {
	d, err := v.app.Demo(v.id)
	if err != nil {
		v.report(err)
		return
	}
	co, ok := d.Operators()
	if !ok {
		return
	}
	v.report(v.app.SetOperator(v.id, co.Operator.Next().String()))
}

func (v *viewer) toggleTruePath() {
	d, err := v.app.Demo(v.id)
	if err != nil {
		v.report(err)
		return
	}
	if co, ok := d.Operators(); ok {
		v.report(v.app.SetTruePath(v.id, !co.TruePath))
	}
}

// orbit turns the camera of a stepped demo. Pitch stops short of the
// poles.
func (v *viewer) orbit(yaw, pitch float64) {
	d, err := v.app.Demo(v.id)
	if err != nil {
		v.report(err)
		return
	}
	o, ok := d.Stepper.(orbiter)
	if !ok {
		return
	}
	cam := o.Camera()
	cam.Yaw += yaw
	cam.Pitch = math.Max(-math.Pi/2+0.05, math.Min(math.Pi/2-0.05, cam.Pitch+pitch))
	o.SetCamera(cam)
}

func (v *viewer) report(err error) {
	if err != nil {
		logging.Debug("viewer: %v", err)
	}
}
