package main

import (
	"fmt"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/chazu/rigid/internal/logging"
	"github.com/chazu/rigid/pkg/anim"
	"github.com/chazu/rigid/pkg/canvas"
	"github.com/chazu/rigid/pkg/canvas/pdf"
	"github.com/chazu/rigid/pkg/canvas/raster"
	"github.com/chazu/rigid/pkg/config"
	"github.com/chazu/rigid/pkg/demo"
	"github.com/chazu/rigid/pkg/project"
	"github.com/chazu/rigid/pkg/report"
	"github.com/chazu/rigid/pkg/scene3d/gltfexport"
)

// list -----------------------------------------------------------------------

func doList() error {
	fmt.Println("Demos")
	fmt.Println("-----")
	for _, info := range demo.List() {
		kind := "animated"
		if info.Stepped {
			kind = "stepped"
		}
		fmt.Printf("%-15s %-8s %s\n", info.Name, kind, info.Description)
	}
	return nil
}

// play drives d off a manual clock at the configured frame rate and
// calls each after every frame, starting with the initial state. A
// stepped demo yields one frame per step. It stops after max frames or
// when the demo completes.
func play(cfg config.Config, d *demo.Demo, max int, each func(i int, c demo.Controller) error) error {
	clock := anim.NewManual(time.Unix(0, 0))
	ctl := d.Controller(clock, cfg.Speed)
	if err := each(0, ctl); err != nil {
		return err
	}

	if sd, ok := ctl.(*anim.StepDriver); ok {
		for i := 1; i < max && sd.Step(); i++ {
			if err := each(i, ctl); err != nil {
				return err
			}
		}
		return nil
	}

	frame := time.Second / time.Duration(cfg.FPS)
	ctl.Start()
	for i := 1; i < max && ctl.State() == anim.Running; i++ {
		clock.Advance(frame)
		if err := each(i, ctl); err != nil {
			return err
		}
	}
	return nil
}

// operatorChoice is the cube-operators selection given on the command
// line. The zero value leaves the demo's default.
type operatorChoice struct {
	name     string
	truePath bool
}

func (c operatorChoice) set() bool { return c.name != "" || c.truePath }

func (c operatorChoice) operator() string {
	if c.name == "" {
		return demo.OpRotate.String()
	}
	return c.name
}

// apply selects the operator on d. Demos without operators are an error
// only when strict.
func (c operatorChoice) apply(d *demo.Demo, strict bool) error {
	if !c.set() {
		return nil
	}
	if _, ok := d.Operators(); !ok && !strict {
		return nil
	}
	return d.SelectOperator(c.operator(), c.truePath)
}

// frames ---------------------------------------------------------------------

func doFrames(cfg config.Config, names []string, count int, dir string, op operatorChoice) error {
	if len(names) == 0 {
		for _, info := range demo.List() {
			names = append(names, info.Name)
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, "create output directory")
	}

	var group errgroup.Group
	for _, name := range names {
		name := name
		group.Go(func() error {
			n, err := renderPNGs(cfg, name, count, dir, op)
			if err != nil {
				fmt.Printf("%s %s: %v\n", crossmark, name, err)
				return err
			}
			fmt.Printf("%s %s: %d frames\n", checkmark, name, n)
			return nil
		})
	}
	return group.Wait()
}

func renderPNGs(cfg config.Config, name string, count int, dir string, op operatorChoice) (int, error) {
	d, err := demo.New(name, cfg)
	if err != nil {
		return 0, err
	}
	if err := op.apply(d, false); err != nil {
		return 0, err
	}
	rc := raster.New(cfg.Width, cfg.Height)
	written := 0
	err = play(cfg, d, count, func(i int, ctl demo.Controller) error {
		ctl.Draw(rc)
		path := filepath.Join(dir, fmt.Sprintf("%s-%04d.png", name, i))
		if err := writeFile(path, rc.EncodePNG); err != nil {
			return err
		}
		written++
		return nil
	})
	if err != nil {
		return written, err
	}
	thumb := filepath.Join(dir, name+"-thumb.png")
	return written, writeFile(thumb, func(w io.Writer) error {
		return png.Encode(w, rc.Thumbnail(thumbWidth))
	})
}

const thumbWidth = 160

// captionAt is where the status line goes on a rendered page.
func captionAt(cfg config.Config) project.Point2 {
	return project.Point2{X: 10, Y: float64(cfg.Height) - 10}
}

func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = errors.Wrapf(cerr, "close %s", path)
		}
	}()
	return errors.Wrapf(write(f), "write %s", path)
}

// flipbook -------------------------------------------------------------------

func doFlipbook(cfg config.Config, name string, pages, every int, out string, op operatorChoice) error {
	if every < 1 {
		every = 1
	}
	if out == "" {
		out = filepath.Join(cfg.OutDir, name+".pdf")
	}
	d, err := demo.New(name, cfg)
	if err != nil {
		return err
	}
	if err := op.apply(d, true); err != nil {
		return err
	}

	fmt.Printf("%s %s%s\n", name, ellipsis, out)
	book := pdf.New(cfg.Width, cfg.Height, d.Description)
	printer := report.NewPrinter(cfg.Language)
	err = play(cfg, d, pages*every, func(i int, ctl demo.Controller) error {
		if i%every != 0 {
			return nil
		}
		ctl.Draw(book)
		book.SetFill(canvas.Black)
		book.Text(captionAt(cfg), printer.Line(d.Status()))
		return nil
	})
	if err != nil {
		return err
	}
	if err := writeFile(out, book.Write); err != nil {
		return err
	}
	fmt.Printf("%s %d pages\n", checkmark, book.Pages())
	return nil
}

// gltf -----------------------------------------------------------------------

func doGltf(cfg config.Config, keyframes int, out string) error {
	if keyframes < 1 {
		return fmt.Errorf("need at least one keyframe, got %d", keyframes)
	}
	d, err := demo.New("rolling-ring", cfg)
	if err != nil {
		return err
	}
	ring := d.Scene.(*demo.RollingRing)

	exp := gltfexport.New()
	for _, node := range []string{demo.NodeRing, demo.NodeSquare, demo.NodeRoller, demo.NodeMarker} {
		if err := exp.AddMesh(node, ring.Meshes()[node]); err != nil {
			return errors.Wrapf(err, "mesh %s", node)
		}
	}
	period := d.Timeline.Duration.Seconds()
	for i := 0; i < keyframes; i++ {
		p := float64(i) / float64(keyframes)
		ring.Place(2 * math.Pi * p)
		exp.AddKeyframe(fmt.Sprintf("frame%03d", i), ring.Keyframe(p*period))
	}
	if err := writeFile(out, exp.Encode); err != nil {
		return err
	}
	logging.Info("wrote %d keyframes to %s", keyframes, out)
	fmt.Printf("%s %s: %d scenes\n", checkmark, out, exp.Scenes())
	return nil
}

// eval -----------------------------------------------------------------------

func doEval(cfg config.Config, path string) error {
	var src []byte
	var err error
	if path == "-" {
		src, err = io.ReadAll(os.Stdin)
	} else {
		src, err = os.ReadFile(path)
	}
	if err != nil {
		return errors.Wrap(err, "read script")
	}

	app, err := NewApp(cfg, nil)
	if err != nil {
		return err
	}
	result := app.Evaluate(string(src))
	for _, w := range result.Warnings {
		fmt.Printf("warning (line %d): %s\n", w.Line, w.Message)
	}
	if len(result.Errors) > 0 {
		for _, e := range result.Errors {
			fmt.Printf("%s line %d: %s\n", crossmark, e.Line, e.Message)
		}
		return fmt.Errorf("%d errors in %s", len(result.Errors), path)
	}
	for i, s := range result.Steps {
		fmt.Printf("%d. %s\n%s\n", i, s.Name, s.Grid)
	}
	return nil
}
