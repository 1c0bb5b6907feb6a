package cmd

import (
	"errors"
	"fmt"

	"github.com/achilleasa/wavefront/asset"
	"github.com/achilleasa/wavefront/asset/wavefront"
	"github.com/urfave/cli"
)

// Parse material libraries and display their contents.
func ShowMaterials(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() == 0 {
		return errors.New("missing material library file(s)")
	}

	for _, path := range ctx.Args() {
		table, err := readMaterials(path)
		if err != nil {
			return err
		}
		fmt.Fprintf(ctx.App.Writer, "%s\n%s", path, table.Stats())
	}
	return nil
}

func readMaterials(path string) (*wavefront.MaterialTable, error) {
	res, err := asset.NewResource(path, nil)
	if err != nil {
		return nil, err
	}
	defer res.Close()

	return wavefront.LoadMaterials(res.Path(), res)
}
