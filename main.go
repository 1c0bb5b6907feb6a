package main

import (
	"fmt"
	"os"
	"time"

	"github.com/achilleasa/wavefront/cmd"
	"github.com/urfave/cli"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "wavefront"
	app.Usage = "load and inspect wavefront obj/mtl files"
	app.Version = "0.0.1"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "inspect",
			Usage: "load geometry files and display mesh information",
			Description: `
Parse one or more wavefront obj files together with the material libraries
they reference and display a table with the assembled meshes.

Load options can be supplied using flags, a preset or a toml/yaml config
file. Flags take precedence over the config file which in turn takes
precedence over the preset.`,
			ArgsUsage: "scene_file1.obj scene_file2.obj ...",
			Flags:     cmd.LoadFlags,
			Action:    cmd.Inspect,
		},
		{
			Name:      "materials",
			Usage:     "display the contents of material libraries",
			ArgsUsage: "lib1.mtl lib2.mtl ...",
			Action:    cmd.ShowMaterials,
		},
		{
			Name:  "watch",
			Usage: "reload a geometry file whenever it changes",
			Description: `
Load a wavefront obj file and display mesh information. The file is
reloaded whenever it or one of its material libraries is modified.`,
			ArgsUsage: "scene_file.obj",
			Flags: append([]cli.Flag{
				cli.DurationFlag{
					Name:  "debounce",
					Value: 250 * time.Millisecond,
					Usage: "wait for changes to settle before reloading",
				},
			}, cmd.LoadFlags...),
			Action: cmd.Watch,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
}
