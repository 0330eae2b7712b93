//go:build !(js && wasm)

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/tribixbite/craftmatic-sub003/utils"
)

func main() {
	app := &cli.App{
		Name:  "craftmatic",
		Usage: "build, inspect, render and bundle voxel structure schematics",
		Commands: []*cli.Command{
			{
				Name:      "generate",
				Usage:     "build a structure and save it as .schem",
				ArgsUsage: "<kind> <output.schem>",
				Flags: []cli.Flag{
					&cli.Int64Flag{Name: "seed", Aliases: []string{"s"}, Usage: "generation seed, overrides the config"},
					&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "YAML build config"},
				},
				Action: func(ctx *cli.Context) error {
					if ctx.NArg() != 2 {
						return fmt.Errorf("want <kind> <output.schem>, got %d args", ctx.NArg())
					}
					var seed *int64
					if ctx.IsSet("seed") {
						v := ctx.Int64("seed")
						seed = &v
					}
					return utils.RunGenerate(ctx.Args().Get(0), ctx.String("config"), ctx.Args().Get(1), seed)
				},
			},
			{
				Name:      "info",
				Usage:     "print a JSON summary of a .schem or bundle",
				ArgsUsage: "<input>",
				Action: func(ctx *cli.Context) error {
					if ctx.NArg() != 1 {
						return fmt.Errorf("want <input>, got %d args", ctx.NArg())
					}
					return utils.RunInfo(ctx.Args().Get(0))
				},
			},
			{
				Name:      "render",
				Usage:     "export a .schem or bundle to .glb, or a .schem to a top-down .png",
				ArgsUsage: "<input> <output.glb|output.png>",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "scale", Usage: "pixels per block for .png output", Value: 4},
				},
				Action: func(ctx *cli.Context) error {
					if ctx.NArg() != 2 {
						return fmt.Errorf("want <input> <output>, got %d args", ctx.NArg())
					}
					in, out := ctx.Args().Get(0), ctx.Args().Get(1)
					if filepath.Ext(out) == ".png" {
						return utils.RunRenderPNG(in, out, ctx.Int("scale"))
					}
					return utils.RunRenderGLB(in, out)
				},
			},
			{
				Name:      "edit",
				Usage:     "apply a JSON edit map to a .schem",
				ArgsUsage: "<input.schem> <edits.json> <output.schem>",
				Action: func(ctx *cli.Context) error {
					if ctx.NArg() != 3 {
						return fmt.Errorf("want <input.schem> <edits.json> <output.schem>, got %d args", ctx.NArg())
					}
					return utils.RunEdit(ctx.Args().Get(0), ctx.Args().Get(1), ctx.Args().Get(2))
				},
			},
			{
				Name:      "pack",
				Usage:     "bundle .schem files into one container",
				ArgsUsage: "<output.bundle> <input.schem>...",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "compression", Aliases: []string{"z"}, Usage: "bundle compression: none, zlib or zstd", Value: "zstd"},
				},
				Action: func(ctx *cli.Context) error {
					if ctx.NArg() < 2 {
						return fmt.Errorf("want <output.bundle> <input.schem>..., got %d args", ctx.NArg())
					}
					return utils.RunPack(ctx.Args().Tail(), ctx.Args().Get(0), ctx.String("compression"))
				},
			},
			{
				Name:      "unpack",
				Usage:     "split a bundle into .schem files",
				ArgsUsage: "<input.bundle> <output_dir>",
				Action: func(ctx *cli.Context) error {
					if ctx.NArg() != 2 {
						return fmt.Errorf("want <input.bundle> <output_dir>, got %d args", ctx.NArg())
					}
					return utils.RunUnpack(ctx.Args().Get(0), ctx.Args().Get(1))
				},
			},
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
