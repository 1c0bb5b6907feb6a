package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/achilleasa/wavefront/asset/wavefront"
	"github.com/achilleasa/wavefront/log"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli"
	"gopkg.in/yaml.v3"
)

// Config is the layout of the files accepted by the --config flag.
type Config struct {
	LogLevel string                `toml:"log_level" yaml:"log_level"`
	Options  wavefront.LoadOptions `toml:"options" yaml:"options"`
}

// LoadFlags are shared by all commands that load geometry.
var LoadFlags = []cli.Flag{
	cli.StringFlag{
		Name:  "config, c",
		Usage: "read load options from a toml or yaml file",
	},
	cli.StringFlag{
		Name:  "preset",
		Usage: "start from a preset: gpu or offline",
	},
	cli.BoolFlag{
		Name:  "triangulate",
		Usage: "fan-triangulate polygons",
	},
	cli.BoolFlag{
		Name:  "single-index",
		Usage: "share vertex records between corners with identical attribute indices",
	},
	cli.BoolFlag{
		Name:  "reorder",
		Usage: "group primitives by material",
	},
	cli.BoolFlag{
		Name:  "ignore-lines",
		Usage: "skip line primitives",
	},
	cli.BoolFlag{
		Name:  "ignore-points",
		Usage: "skip point primitives",
	},
	cli.StringFlag{
		Name:  "granularity",
		Usage: "split meshes per material, group or object",
	},
}

// Read a config file. The format is selected by the file extension. Options
// missing from the file keep the values in defaults.
func readConfig(path string, defaults wavefront.LoadOptions) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := &Config{Options: defaults}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		return nil, fmt.Errorf("config: unsupported file format %q; expected .toml, .yaml or .yml", filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("config: could not parse %s: %s", path, err)
	}
	return cfg, nil
}

// Assemble load options from the preset, the config file and the command
// flags, in increasing order of precedence.
func loadOptions(ctx *cli.Context) (wavefront.LoadOptions, error) {
	var opts wavefront.LoadOptions

	switch preset := ctx.String("preset"); preset {
	case "":
	case "gpu":
		opts = wavefront.GPULoadOptions
	case "offline":
		opts = wavefront.OfflineLoadOptions
	default:
		return opts, fmt.Errorf("unknown preset %q; expected gpu or offline", preset)
	}

	if cfgFile := ctx.String("config"); cfgFile != "" {
		cfg, err := readConfig(cfgFile, opts)
		if err != nil {
			return opts, err
		}
		opts = cfg.Options

		if cfg.LogLevel != "" {
			level, err := log.ParseLevel(cfg.LogLevel)
			if err != nil {
				return opts, err
			}
			log.SetLevel(level)
		}
	}

	boolFlags := map[string]*bool{
		"triangulate":   &opts.Triangulate,
		"single-index":  &opts.SingleIndex,
		"reorder":       &opts.ReorderByMaterial,
		"ignore-lines":  &opts.IgnoreLines,
		"ignore-points": &opts.IgnorePoints,
	}
	for name, target := range boolFlags {
		if ctx.IsSet(name) {
			*target = ctx.Bool(name)
		}
	}

	if ctx.IsSet("granularity") {
		granularity, err := wavefront.ParseGranularity(ctx.String("granularity"))
		if err != nil {
			return opts, err
		}
		opts.Granularity = granularity
	}

	return opts, opts.Validate()
}
