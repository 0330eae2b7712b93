package utils

import (
	"fmt"
	"os"

	"github.com/tribixbite/craftmatic-sub003/api"
)

// RunInfo prints the JSON summary of a .schem or bundle file.
func RunInfo(inPath string) error {
	data, err := os.ReadFile(inPath)
	if err != nil {
		return err
	}
	out, err := api.Summary(data)
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
