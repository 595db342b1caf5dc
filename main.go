package main

import (
	"fmt"
	"os"

	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/chazu/rigid/internal/logging"
	"github.com/chazu/rigid/pkg/config"
)

const (
	checkmark = "✓"
	crossmark = "✗"
	ellipsis  = "…"
)

func main() {
	app := kingpin.New("rigid", "Rigid-body transform demos")
	app.HelpFlag.Short('h')

	var (
		cfgPath  = app.Flag("config", "YAML configuration file").Short('c').String()
		kernel   = app.Flag("kernel", "Operator backend (native, mgl, sdfx)").Short('k').String()
		lang     = app.Flag("lang", "Status text language").Short('l').String()
		logLevel = app.Flag("log-level", "Log level").String()
	)

	app.Command("list", "List the demos").Default()

	frames := app.Command("frames", "Render demos to PNG sequences")
	var (
		framesDemos = frames.Arg("demo", "Demos to render (all when omitted)").Strings()
		framesCount = frames.Flag("count", "Maximum frames per demo").Short('n').Default("240").Int()
		framesOut   = frames.Flag("output", "Output directory").Short('o').String()
		framesOp    = frames.Flag("operator", "cube-operators transform (rotation, reflection, screw)").String()
		framesTrue  = frames.Flag("true-path", "cube-operators follows the operator's own motion").Bool()
	)

	flipbook := app.Command("flipbook", "Render a demo to a PDF with one page per frame")
	var (
		bookDemo  = flipbook.Arg("demo", "Demo to render").Required().String()
		bookCount = flipbook.Flag("count", "Maximum pages").Short('n').Default("60").Int()
		bookEvery = flipbook.Flag("every", "Keep every nth frame").Default("4").Int()
		bookOut   = flipbook.Flag("output", "Output file").Short('o').String()
		bookOp    = flipbook.Flag("operator", "cube-operators transform (rotation, reflection, screw)").String()
		bookTrue  = flipbook.Flag("true-path", "cube-operators follows the operator's own motion").Bool()
	)

	gltfCmd := app.Command("gltf", "Export rolling-ring keyframes as binary glTF")
	var (
		gltfKeys = gltfCmd.Flag("keyframes", "Number of keyframes").Default("32").Int()
		gltfOut  = gltfCmd.Flag("output", "Output file").Short('o').Default("rolling-ring.glb").String()
	)

	view := app.Command("view", "Run a demo in the terminal")
	var (
		viewDemo = view.Arg("demo", "Demo to run").Required().String()
		viewOp   = view.Flag("operator", "cube-operators transform (rotation, reflection, screw)").String()
		viewTrue = view.Flag("true-path", "cube-operators follows the operator's own motion").Bool()
	)

	eval := app.Command("eval", "Evaluate a transform script and print its step matrices")
	evalFile := eval.Arg("file", "Script file, - for stdin").Required().String()

	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	cfg, err := config.Load(*cfgPath)
	if err == nil {
		err = override(&cfg, *kernel, *lang, *logLevel)
	}
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	cfg.Apply()

	switch command {
	case "list":
		err = doList()
	case "frames":
		err = doFrames(cfg, *framesDemos, *framesCount, outDir(cfg, *framesOut), operatorChoice{*framesOp, *framesTrue})
	case "flipbook":
		err = doFlipbook(cfg, *bookDemo, *bookCount, *bookEvery, *bookOut, operatorChoice{*bookOp, *bookTrue})
	case "gltf":
		err = doGltf(cfg, *gltfKeys, *gltfOut)
	case "view":
		err = doView(cfg, *viewDemo, operatorChoice{*viewOp, *viewTrue})
	case "eval":
		err = doEval(cfg, *evalFile)
	default:
		err = fmt.Errorf("unknown command: %q", command)
	}

	if err != nil {
		logging.Error("%s: %v", command, err)
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	os.Exit(0)
}

// override applies command-line flags on top of the loaded config.
func override(cfg *config.Config, kernel, lang, level string) error {
	if kernel != "" {
		cfg.Kernel = kernel
	}
	if lang != "" {
		cfg.Language = lang
	}
	if level != "" {
		cfg.LogLevel = level
	}
	return cfg.Validate()
}

func outDir(cfg config.Config, flag string) string {
	if flag != "" {
		return flag
	}
	return cfg.OutDir
}
