package main

import (
	_ "image/gif"
	_ "image/png"
	"io/ioutil"
	"log"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	_ "golang.org/x/image/bmp"

	"github.com/blakesmith/gbtile"
	"github.com/blakesmith/gbtile/emit"
	"github.com/blakesmith/gbtile/tile"
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(verbose bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(ioutil.Discard)
	if verbose {
		logger.SetOutput(os.Stderr)
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}

func newQuantizer(name string) tile.Quantizer {
	switch name {
	case "enumerate":
		return tile.EnumerationQuantizer{}
	case "mediancut":
		return tile.MedianCutQuantizer{}
	default:
		return tile.LuminanceQuantizer{}
	}
}

func newGBTile(c *cli.Context) (*gbtile.GBTile, *gbtile.TileCache, error) {
	var cache *gbtile.TileCache
	if file := c.String("cache"); file != "" {
		var err error
		if cache, err = gbtile.NewTileCache(file); err != nil {
			return nil, nil, err
		}
	}

	logger := newLogger(c.Bool("verbose"))

	return gbtile.New(cache, newQuantizer(c.String("quantizer")), logger), cache, nil
}

func main() {
	app := cli.NewApp()

	app.Name = "gbtile"
	app.Usage = "Generate Game Boy tile data from images"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:  "cache",
			Usage: "path to tile cache database",
		},
		&cli.StringFlag{
			Name:    "quantizer",
			Aliases: []string{"q"},
			Value:   "luminance",
			Usage:   "quantization strategy (luminance, enumerate, mediancut)",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "convert",
			Usage:       "Convert a single image to tile data",
			Description: "",
			ArgsUsage:   "INPUT OUTPUT",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "type",
					Aliases: []string{"t"},
					Value:   "gbdk",
					Usage:   "output type (gbdk, rgbds)",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				g, cache, err := newGBTile(c)
				if err != nil {
					return cli.Exit(err, 1)
				}
				if cache != nil {
					defer cache.Close()
				}

				if err := g.Convert(c.Args().Get(0), c.Args().Get(1), emit.ParseFormat(c.String("type"))); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "scan",
			Usage:       "Convert every image under a directory",
			Description: "",
			ArgsUsage:   "DIRECTORY",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "type",
					Aliases: []string{"t"},
					Value:   "gbdk",
					Usage:   "output type (gbdk, rgbds)",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				g, cache, err := newGBTile(c)
				if err != nil {
					return cli.Exit(err, 1)
				}
				if cache != nil {
					defer cache.Close()
				}

				if err := g.Scan(c.Args().First(), emit.ParseFormat(c.String("type"))); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
