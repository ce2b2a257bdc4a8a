// Package snapshot dumps and restores a VM's linear memory through a
// memory-mapped file, so a debugging session can save a memory image and
// reinstate it later without replaying execution from the start.
package snapshot

import (
	"fmt"
	"os"

	"github.com/edsrzf/mmap-go"

	"github.com/wasmdbg/wasmdbg/memory"
)

// Dump writes mem's current contents to path.
func Dump(mem *memory.Memory, path string) error {
	data := mem.Data()

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("snapshot: opening %s: %w", path, err)
	}
	defer f.Close()

	if len(data) == 0 {
		return nil
	}
	if err := f.Truncate(int64(len(data))); err != nil {
		return fmt.Errorf("snapshot: sizing %s: %w", path, err)
	}

	m, err := mmap.Map(f, mmap.RDWR, 0)
	if err != nil {
		return fmt.Errorf("snapshot: mapping %s: %w", path, err)
	}
	defer m.Unmap()

	copy(m, data)
	return m.Flush()
}

// Load reads a memory image written by Dump back into a plain byte slice.
func Load(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("snapshot: opening %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("snapshot: stat %s: %w", path, err)
	}
	if info.Size() == 0 {
		return nil, nil
	}

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("snapshot: mapping %s: %w", path, err)
	}
	defer m.Unmap()

	out := make([]byte, len(m))
	copy(out, m)
	return out, nil
}

// Restore loads the image at path and installs it into mem.
func Restore(mem *memory.Memory, path string) error {
	data, err := Load(path)
	if err != nil {
		return err
	}
	mem.Restore(data)
	return nil
}
