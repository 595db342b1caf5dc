// Package config loads the YAML settings shared by the CLI commands.
// Every field has a default, so an absent file is not an error.
package config

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/chazu/rigid/internal/logging"
	"github.com/chazu/rigid/pkg/kernel"
	"github.com/chazu/rigid/pkg/kernel/mgl"
	"github.com/chazu/rigid/pkg/kernel/native"
	"github.com/chazu/rigid/pkg/kernel/sdfx"
	"github.com/chazu/rigid/pkg/project"
	"github.com/chazu/rigid/pkg/trail"
)

// Kernel backend names.
const (
	KernelNative = "native"
	KernelMgl    = "mgl"
	KernelSdfx   = "sdfx"
)

// Config holds everything a demo or exporter needs besides the demo
// name itself.
type Config struct {
	LogLevel string `yaml:"log_level"`
	Language string `yaml:"language"`
	Kernel   string `yaml:"kernel"`

	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	FPS    int `yaml:"fps"`
	Speed  int `yaml:"speed"`

	Camera   project.Camera `yaml:"camera"`
	TrailCap int            `yaml:"trail_cap"`
	OutDir   string         `yaml:"out_dir"`
}

// Default returns the built-in settings: an 800×600 surface at 60 fps,
// and the draggable camera of the stepped demos turned 30° about y and
// tipped 20° down.
func Default() Config {
	return Config{
		LogLevel: "info",
		Language: "en",
		Kernel:   KernelNative,
		Width:    800,
		Height:   600,
		FPS:      60,
		Speed:    50,
		Camera:   project.Camera{Distance: 500, Scale: 80, Yaw: math.Pi / 6, Pitch: -math.Pi / 9},
		TrailCap: trail.DefaultCap,
		OutDir:   ".",
	}
}

// Parse reads YAML from r over the defaults.
func Parse(r io.Reader) (Config, error) {
	c := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && err != io.EOF {
		return c, fmt.Errorf("parsing config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

// Load reads the file at path. An empty path returns the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Default(), fmt.Errorf("reading config: %w", err)
	}
	c, err := Parse(bytes.NewReader(data))
	if err != nil {
		return c, fmt.Errorf("%s: %w", path, err)
	}
	logging.Dump("config "+path, c)
	return c, nil
}

// View returns the configured camera. A camera without an explicit
// centre is centred on the surface.
func (c Config) View() project.Camera {
	cam := c.Camera
	if cam.CenterX == 0 && cam.CenterY == 0 {
		cam.CenterX = float64(c.Width) / 2
		cam.CenterY = float64(c.Height) / 2
	}
	return cam
}

// Validate reports the first setting that cannot be used.
func (c Config) Validate() error {
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if _, err := NewKernel(c.Kernel); err != nil {
		return err
	}
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("surface size %dx%d must be positive", c.Width, c.Height)
	case c.FPS <= 0:
		return fmt.Errorf("fps %d must be positive", c.FPS)
	case c.Camera.Distance <= 0 || math.IsNaN(c.Camera.Distance):
		return fmt.Errorf("camera distance %v must be positive", c.Camera.Distance)
	case c.TrailCap < 0:
		return fmt.Errorf("trail cap %d must not be negative", c.TrailCap)
	}
	return nil
}

// Apply sets the process log level from the config.
func (c Config) Apply() {
	if l, err := logging.ParseLevel(c.LogLevel); err == nil {
		logging.SetLevel(l)
	}
}

// Marshal renders the config as YAML.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// NewKernel returns the operator backend with the given name. An empty
// name selects the native kernel.
func NewKernel(name string) (kernel.Kernel, error) {
	switch name {
	case KernelNative, "":
		return native.New(), nil
	case KernelMgl:
		return mgl.New(), nil
	case KernelSdfx:
		return sdfx.New(), nil
	}
	return nil, fmt.Errorf("unknown kernel %q (want %s, %s or %s)", name, KernelNative, KernelMgl, KernelSdfx)
}
