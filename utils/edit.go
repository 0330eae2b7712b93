package utils

import (
	"fmt"
	"os"

	"github.com/tribixbite/craftmatic-sub003/api"
)

// RunEdit applies a JSON edit file to a .schem and writes the result.
func RunEdit(inPath, editsPath, outPath string) error {
	data, err := os.ReadFile(inPath)
	if err != nil {
		return err
	}
	edits, err := os.ReadFile(editsPath)
	if err != nil {
		return err
	}
	out, err := api.ApplyEdits(data, edits)
	if err != nil {
		return err
	}
	if err := os.WriteFile(outPath, out, 0o644); err != nil {
		return err
	}
	if fi, err := os.Stat(outPath); err == nil {
		fmt.Printf(".schem updated (%d bytes)\n", fi.Size())
	} else {
		fmt.Println(".schem updated.")
	}
	return nil
}
