package utils

import (
	"fmt"
	"os"

	"github.com/tribixbite/craftmatic-sub003/api"
	"github.com/tribixbite/craftmatic-sub003/render"
	"github.com/tribixbite/craftmatic-sub003/schem"
)

// RunRenderGLB converts a .schem or bundle file to a .glb scene.
func RunRenderGLB(inPath, outPath string) error {
	data, err := os.ReadFile(inPath)
	if err != nil {
		return err
	}
	glb, err := api.SchemToGLB(data)
	if err != nil {
		return err
	}
	if err := os.WriteFile(outPath, glb, 0o644); err != nil {
		return err
	}
	if fi, err := os.Stat(outPath); err == nil {
		fmt.Printf(".glb saved (%d bytes)\n", fi.Size())
	} else {
		fmt.Println(".glb saved.")
	}
	return nil
}

// RunRenderPNG writes a top-down preview of a .schem file.
func RunRenderPNG(inPath, outPath string, scale int) error {
	g, err := schem.LoadGrid(inPath)
	if err != nil {
		return err
	}
	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	if err := render.WritePNG(f, g, scale); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	if fi, err := os.Stat(outPath); err == nil {
		fmt.Printf(".png saved (%d bytes)\n", fi.Size())
	} else {
		fmt.Println(".png saved.")
	}
	return nil
}
