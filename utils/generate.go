package utils

import (
	"fmt"
	"os"

	"github.com/tribixbite/craftmatic-sub003/gen"
	"github.com/tribixbite/craftmatic-sub003/schem"
)

// RunGenerate builds a structure and writes it as a .schem file. A nil seed
// keeps whatever seed the config carries.
func RunGenerate(kind, configPath, outPath string, seed *int64) error {
	cfg, err := gen.LoadConfig(configPath)
	if err != nil {
		return err
	}
	if seed != nil {
		cfg.Seed = *seed
	}
	g, err := gen.Build(kind, cfg)
	if err != nil {
		return err
	}
	if err := schem.SaveGrid(g, outPath); err != nil {
		return err
	}
	if fi, err := os.Stat(outPath); err == nil {
		fmt.Printf(".schem saved (%d bytes)\n", fi.Size())
	} else {
		fmt.Println(".schem saved.")
	}
	return nil
}
