package chartbox

import "testing"

func TestSectorDefaultFillIsUnknown(t *testing.T) {
	s := NewSector(4)
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			if got := s.Get(col, row); got != UNKNOWN {
				t.Errorf("Get(%d,%d) = %v, want UNKNOWN", col, row, got)
			}
		}
	}
}

func TestSectorSetGet(t *testing.T) {
	s := NewSector(8)
	s.Set(3, 5, BLOCK)
	s.Set(0, 0, CLEAR)

	if got := s.Get(3, 5); got != BLOCK {
		t.Errorf("Get(3,5) = %v, want BLOCK", got)
	}
	if got := s.Get(0, 0); got != CLEAR {
		t.Errorf("Get(0,0) = %v, want CLEAR", got)
	}
	if got := s.Get(1, 1); got != UNKNOWN {
		t.Errorf("Get(1,1) = %v, want UNKNOWN (untouched)", got)
	}
}

func TestSectorFill(t *testing.T) {
	s := NewSector(4)
	s.Fill(CLEAR)
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			if got := s.Get(col, row); got != CLEAR {
				t.Errorf("Get(%d,%d) = %v, want CLEAR after Fill", col, row, got)
			}
		}
	}
}

func TestSectorBytesRoundTrip(t *testing.T) {
	s := NewSector(4)
	s.Set(2, 2, BLOCK)

	raw := append([]byte(nil), s.Bytes()...)

	s2 := NewSector(4)
	if err := s2.LoadBytes(raw); err != nil {
		t.Fatalf("LoadBytes: %v", err)
	}
	if got := s2.Get(2, 2); got != BLOCK {
		t.Errorf("Get(2,2) after LoadBytes = %v, want BLOCK", got)
	}
}

func TestSectorLoadBytesRejectsWrongSize(t *testing.T) {
	s := NewSector(4)
	if err := s.LoadBytes(make([]byte, 4)); err == nil {
		t.Error("expected error loading wrong-sized buffer")
	}
}

func TestSectorInBounds(t *testing.T) {
	s := NewSector(4)
	if !s.InBounds(0, 0) || !s.InBounds(3, 3) {
		t.Error("expected corners to be in bounds")
	}
	if s.InBounds(4, 0) || s.InBounds(-1, 0) {
		t.Error("expected out-of-range indices to be rejected")
	}
}
