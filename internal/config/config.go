package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"masterplan/internal/canvas"
)

type env struct {
	MinZoom       float64 `mapstructure:"MIN_ZOOM"`
	MaxZoom       float64 `mapstructure:"MAX_ZOOM"`
	InitialZoom   float64 `mapstructure:"INITIAL_ZOOM"`
	Bounds        string  `mapstructure:"BOUNDS"`
	Margin        float64 `mapstructure:"MARGIN"`
	DragThreshold float64 `mapstructure:"DRAG_THRESHOLD"`
	WheelStep     float64 `mapstructure:"WHEEL_STEP"`
	WheelAccel    float64 `mapstructure:"WHEEL_ACCEL"`
	FineWheel     bool    `mapstructure:"FINE_WHEEL"`
	Plan          string  `mapstructure:"PLAN"`
	Rows          string  `mapstructure:"ROWS"`
	Debug         bool    `mapstructure:"DEBUG"`
	DebugLog      string  `mapstructure:"DEBUG_LOG"`
}

// Config is the resolved viewer configuration. Flags override environment
// variables (MASTERPLAN_*), which override the optional config file.
type Config struct {
	env *env
}

type flagSpec struct {
	key, name, usage string
	def              any
}

func flagSpecs() []flagSpec {
	d := canvas.DefaultOptions()
	return []flagSpec{
		{"MIN_ZOOM", "min-zoom", "smallest scale", d.MinZoom},
		{"MAX_ZOOM", "max-zoom", "largest scale", d.MaxZoom},
		{"INITIAL_ZOOM", "initial-zoom", "scale on start and reset", d.InitialZoom},
		{"BOUNDS", "bounds", "pan limits: auto, none or left,right,top,bottom", d.Bounds.String()},
		{"MARGIN", "margin", "fraction of the view the plan must keep covered", d.Margin},
		{"DRAG_THRESHOLD", "drag-threshold", "pixels a drag travels before it pans", d.DragThreshold},
		{"WHEEL_STEP", "wheel-step", "scale change per wheel tick", d.WheelStep},
		{"WHEEL_ACCEL", "wheel-accel", "wheel step multiplier with ctrl or alt held", d.WheelAccel},
		{"FINE_WHEEL", "fine-wheel", "shrink the wheel step when zoomed in", d.FineWheel},
		{"PLAN", "plan", "plan file (.json, .geojson or .svg)", ""},
		{"ROWS", "rows", "villa rows JSON file", ""},
		{"DEBUG", "debug", "write a debug log", false},
		{"DEBUG_LOG", "debug-log", "debug log path", "masterplan-debug.log"},
	}
}

// NewFlagSet declares every setting as a flag plus --config.
func NewFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.String("config", "", "config file (.env, .yaml, .toml or .json)")
	for _, s := range flagSpecs() {
		switch d := s.def.(type) {
		case float64:
			fs.Float64(s.name, d, s.usage)
		case bool:
			fs.Bool(s.name, d, s.usage)
		case string:
			fs.String(s.name, d, s.usage)
		}
	}
	return fs
}

// Load parses args into the flag set and resolves the configuration. A
// single positional argument names the plan file.
func Load(fs *pflag.FlagSet, args []string) (*Config, error) {
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	v := viper.New()
	v.SetEnvPrefix("MASTERPLAN")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	for _, s := range flagSpecs() {
		v.SetDefault(s.key, s.def)
		if err := v.BindPFlag(s.key, fs.Lookup(s.name)); err != nil {
			return nil, err
		}
	}
	if path, _ := fs.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if strings.EqualFold(filepath.Ext(path), ".env") {
			v.SetConfigType("env")
		}
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error loading config: %w", err)
		}
	}
	var e env
	if err := v.Unmarshal(&e); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	switch fs.NArg() {
	case 0:
	case 1:
		if !fs.Changed("plan") {
			e.Plan = fs.Arg(0)
		}
	default:
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args()[1:])
	}
	return &Config{env: &e}, nil
}

// CanvasOptions builds and validates the transform options.
func (c *Config) CanvasOptions() (canvas.Options, error) {
	b, err := canvas.ParseBounds(c.env.Bounds)
	if err != nil {
		return canvas.Options{}, err
	}
	o := canvas.Options{
		MinZoom:       c.env.MinZoom,
		MaxZoom:       c.env.MaxZoom,
		InitialZoom:   c.env.InitialZoom,
		Bounds:        b,
		Margin:        c.env.Margin,
		DragThreshold: c.env.DragThreshold,
		WheelStep:     c.env.WheelStep,
		WheelAccel:    c.env.WheelAccel,
		FineWheel:     c.env.FineWheel,
	}
	if err := o.Validate(); err != nil {
		return canvas.Options{}, err
	}
	return o, nil
}

func (c *Config) Plan() string     { return c.env.Plan }
func (c *Config) Rows() string     { return c.env.Rows }
func (c *Config) Debug() bool      { return c.env.Debug }
func (c *Config) DebugLog() string { return c.env.DebugLog }
