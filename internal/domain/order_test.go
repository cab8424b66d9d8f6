package domain

import "testing"

func TestOrder_Remaining(t *testing.T) {
	tests := []struct {
		name     string
		quantity int64
		filled   int64
		want     int64
		filledOK bool
	}{
		{"unfilled", 10, 0, 10, false},
		{"partially filled", 10, 4, 6, false},
		{"fully filled", 10, 10, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := &Order{Quantity: tt.quantity, Filled: tt.filled}
			if got := o.Remaining(); got != tt.want {
				t.Errorf("Remaining() = %d, want %d", got, tt.want)
			}
			if got := o.IsFilled(); got != tt.filledOK {
				t.Errorf("IsFilled() = %v, want %v", got, tt.filledOK)
			}
		})
	}
}

func TestSide_Opposite(t *testing.T) {
	if SideBid.Opposite() != SideAsk {
		t.Errorf("SideBid.Opposite() = %q, want %q", SideBid.Opposite(), SideAsk)
	}
	if SideAsk.Opposite() != SideBid {
		t.Errorf("SideAsk.Opposite() = %q, want %q", SideAsk.Opposite(), SideBid)
	}
}

func TestSide_Valid(t *testing.T) {
	for _, s := range []Side{SideBid, SideAsk} {
		if !s.Valid() {
			t.Errorf("%q.Valid() = false, want true", s)
		}
	}
	for _, s := range []Side{"", "buy", "BID"} {
		if s.Valid() {
			t.Errorf("%q.Valid() = true, want false", s)
		}
	}
}

func TestFill_Notional(t *testing.T) {
	f := Fill{Price: 50010, Quantity: 3}
	if got := f.Notional(); got != 150030 {
		t.Errorf("Notional() = %d, want 150030", got)
	}
}
