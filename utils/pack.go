package utils

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/tribixbite/craftmatic-sub003/schem"
)

// ParseCompression maps a CLI compression name to the bundle scheme. The
// empty name selects zstd.
func ParseCompression(name string) (schem.BundleCompression, error) {
	switch name {
	case "", "zstd":
		return schem.BundleZstd, nil
	case "zlib":
		return schem.BundleZlib, nil
	case "none":
		return schem.BundleNone, nil
	}
	return 0, fmt.Errorf("unknown compression %q, want none, zlib or zstd", name)
}

// RunPack reads .schem files and writes them as one bundle to outputFile.
// Inputs are parsed concurrently; every file must decode cleanly.
func RunPack(inputFiles []string, outputFile, compression string) error {
	comp, err := ParseCompression(compression)
	if err != nil {
		return err
	}
	if len(inputFiles) == 0 {
		return fmt.Errorf("no .schem files provided")
	}
	type item struct {
		name string
		raw  []byte
		err  error
	}
	items := make([]item, len(inputFiles))

	var wg sync.WaitGroup
	for i := range inputFiles {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			path := inputFiles[i]
			data, err := os.ReadFile(path)
			if err != nil {
				items[i].err = err
				return
			}
			s, err := schem.Decode(bytes.NewReader(data))
			if err != nil {
				items[i].err = fmt.Errorf("%s: %w", path, err)
				return
			}
			raw, err := s.Marshal()
			if err != nil {
				items[i].err = fmt.Errorf("%s: %w", path, err)
				return
			}
			items[i] = item{name: filepath.Base(path), raw: raw}
		}(i)
	}
	wg.Wait()

	bundle := &schem.Bundle{Entries: make([]schem.BundleEntry, len(items))}
	for i, it := range items {
		if it.err != nil {
			return it.err
		}
		bundle.Entries[i] = schem.BundleEntry{Name: it.name, Raw: it.raw}
	}

	start := time.Now()
	data, err := bundle.Marshal(comp)
	if err != nil {
		return err
	}
	fmt.Printf("Bundle compression (%s) took %d ms\n", comp, time.Since(start).Milliseconds())
	return os.WriteFile(outputFile, data, 0o644)
}

// RunUnpack writes each bundle entry into outputDir as its own .schem file.
func RunUnpack(bundleFile, outputDir string) error {
	data, err := os.ReadFile(bundleFile)
	if err != nil {
		return err
	}
	bundle, _, err := schem.UnmarshalBundle(data)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return err
	}
	var wg sync.WaitGroup
	errCh := make(chan error, len(bundle.Entries))
	for _, e := range bundle.Entries {
		wg.Add(1)
		go func(e schem.BundleEntry) {
			defer wg.Done()
			s, err := schem.Unmarshal(e.Raw)
			if err != nil {
				errCh <- fmt.Errorf("entry %q: %w", e.Name, err)
				return
			}
			// Entry names come from untrusted files; only the base name
			// reaches the filesystem.
			name := filepath.Base(e.Name)
			if name == "." || name == ".." || name == string(filepath.Separator) {
				errCh <- fmt.Errorf("entry %q has no usable name", e.Name)
				return
			}
			f, err := os.Create(filepath.Join(outputDir, name))
			if err != nil {
				errCh <- err
				return
			}
			if err := s.Encode(f); err != nil {
				f.Close()
				errCh <- err
				return
			}
			if err := f.Close(); err != nil {
				errCh <- err
			}
		}(e)
	}
	wg.Wait()
	close(errCh)
	for err := range errCh {
		if err != nil {
			return err
		}
	}
	return nil
}
