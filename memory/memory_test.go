package memory

import "testing"

func TestGrowRespectsMaximum(t *testing.T) {
	m := New(Limits{Initial: 1, Maximum: 2, HasMaximum: true})
	if prev := m.Grow(1); prev != 1 {
		t.Fatalf("first grow: expected previous page count 1, got %d", prev)
	}
	if m.PageCount() != 2 {
		t.Fatalf("expected page count 2 after grow, got %d", m.PageCount())
	}
	before := append([]byte(nil), m.Data()...)
	if prev := m.Grow(1); prev != -1 {
		t.Fatalf("second grow: expected -1, got %d", prev)
	}
	if len(m.Data()) != len(before) {
		t.Fatal("failed grow should not change memory size")
	}
}

func TestGrowWithoutMaximumCapsAtAbsolute(t *testing.T) {
	m := New(Limits{Initial: MaxPages})
	if prev := m.Grow(1); prev != -1 {
		t.Fatalf("expected grow past absolute cap to fail, got %d", prev)
	}
}

func TestLoadStoreRoundTrip(t *testing.T) {
	m := New(Limits{Initial: 1})
	if err := m.StoreU32(0x10, 0x41424344); err != nil {
		t.Fatal(err)
	}
	b, err := m.bounds(0x10, 4)
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{0x44, 0x43, 0x42, 0x41}
	for i := range want {
		if b[i] != want[i] {
			t.Fatalf("byte %d: got %#x want %#x", i, b[i], want[i])
		}
	}
	got, err := m.LoadU32(0x10)
	if err != nil || got != 0x41424344 {
		t.Fatalf("round trip: got %#x, err %v", got, err)
	}
}

func TestOutOfRangeAccess(t *testing.T) {
	m := New(Limits{Initial: 1})
	if _, err := m.LoadU32(PageSize - 2); err == nil {
		t.Fatal("expected out of range error")
	}
}

func TestInitDataGrowsBuffer(t *testing.T) {
	m := New(Limits{Initial: 0})
	m.InitData(10, []byte{1, 2, 3})
	if len(m.Data()) != PageSize {
		t.Fatalf("expected buffer rounded up to one page, got %d", len(m.Data()))
	}
	if m.Data()[10] != 1 || m.Data()[12] != 3 {
		t.Fatal("data not copied at offset")
	}
}
