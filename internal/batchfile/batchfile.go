// Package batchfile reads and writes AVefi batch files: JSON arrays of
// records as produced by the converters.
package batchfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/av-efi/eficonv/internal/checksum"
	"github.com/av-efi/eficonv/pkg/efi"
)

// File is a loaded batch together with the checksum of the bytes it was
// decoded from.
type File struct {
	Path     string
	Batch    efi.Batch
	Checksum string
}

// Load reads and decodes the batch file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}

	var batch efi.Batch
	if err := json.Unmarshal(data, &batch); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	return &File{
		Path:     path,
		Batch:    batch,
		Checksum: checksum.New().CalculateRaw(data),
	}, nil
}

// Save writes batch back to the file it was loaded from.
func (f *File) Save(batch efi.Batch) (bool, error) {
	return Dump(f.Path, batch, f.Checksum)
}

// Encode renders batch the way Dump writes it: a JSON array indented by
// two spaces with a trailing newline.
func Encode(batch efi.Batch) ([]byte, error) {
	if batch == nil {
		batch = efi.Batch{}
	}
	data, err := json.MarshalIndent(batch, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// Dump writes batch to path and reports whether the file was changed.
// When expected is not empty the current content of path must still hash
// to it, otherwise Dump fails with efi.ErrBatchModified. The file is
// replaced atomically and left alone when it already holds the same
// records.
func Dump(path string, batch efi.Batch, expected string) (bool, error) {
	calc := checksum.New()

	current, err := os.ReadFile(path)
	switch {
	case err == nil:
	case os.IsNotExist(err) && expected == "":
	default:
		if os.IsNotExist(err) {
			return false, fmt.Errorf("%w: %s was removed", efi.ErrBatchModified, path)
		}
		return false, fmt.Errorf("failed to read batch file: %w", err)
	}

	if expected != "" && calc.CalculateRaw(current) != expected {
		return false, fmt.Errorf("%w: %s changed since it was loaded", efi.ErrBatchModified, path)
	}

	data, err := Encode(batch)
	if err != nil {
		return false, fmt.Errorf("failed to encode batch: %w", err)
	}
	if current != nil && calc.CalculateNormalized(current) == calc.CalculateNormalized(data) {
		return false, nil
	}

	if err := writeAtomic(path, data); err != nil {
		return false, err
	}
	return true, nil
}

func writeAtomic(path string, data []byte) error {
	mode := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to write batch file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write batch file: %w", err)
	}
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write batch file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write batch file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to write batch file: %w", err)
	}
	return nil
}
