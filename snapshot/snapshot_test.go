package snapshot

import (
	"path/filepath"
	"testing"

	"github.com/wasmdbg/wasmdbg/memory"
)

func TestDumpLoadRoundTrip(t *testing.T) {
	mem := memory.New(memory.Limits{Initial: 1})
	if err := mem.StoreU32(0x100, 0xdeadbeef); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "mem.snap")
	if err := Dump(mem, path); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded) != len(mem.Data()) {
		t.Fatalf("expected %d bytes, got %d", len(mem.Data()), len(loaded))
	}

	restored := memory.New(memory.Limits{Initial: 0})
	restored.Restore(loaded)
	v, err := restored.LoadU32(0x100)
	if err != nil {
		t.Fatal(err)
	}
	if v != 0xdeadbeef {
		t.Fatalf("expected 0xdeadbeef, got %#x", v)
	}
}

func TestRestoreInstallsIntoMemory(t *testing.T) {
	src := memory.New(memory.Limits{Initial: 1})
	if err := src.StoreU32(0, 7); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "mem.snap")
	if err := Dump(src, path); err != nil {
		t.Fatal(err)
	}

	dst := memory.New(memory.Limits{Initial: 1})
	if err := Restore(dst, path); err != nil {
		t.Fatal(err)
	}
	v, err := dst.LoadU32(0)
	if err != nil {
		t.Fatal(err)
	}
	if v != 7 {
		t.Fatalf("expected 7, got %d", v)
	}
}
