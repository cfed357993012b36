package gdtcore

import "testing"

func TestDefaultBoundsAreConsistent(t *testing.T) {
	b := DefaultBounds()
	if b.MinimalSpacingPrecision != 3 {
		t.Errorf("MinimalSpacingPrecision = %d, want 3", b.MinimalSpacingPrecision)
	}
	if b.MinimalSpacing != 1e-3 {
		t.Errorf("MinimalSpacing = %v, want 1e-3", b.MinimalSpacing)
	}
	if b.MaxAbscissa <= 0 {
		t.Errorf("MaxAbscissa = %v, want > 0", b.MaxAbscissa)
	}
	if b.MaxApexHeight <= 0 {
		t.Errorf("MaxApexHeight = %v, want > 0", b.MaxApexHeight)
	}

	// The contract of §4.4: (maxAbscissa*maxSpacing)^2 must not exceed
	// MaxApexHeight, or the intersection formula's numerator could lose
	// integer precision.
	offset := b.MaxAbscissa * b.MaxSpacing
	if offset*offset > b.MaxApexHeight {
		t.Errorf("(MaxAbscissa*MaxSpacing)^2 = %v exceeds MaxApexHeight %v", offset*offset, b.MaxApexHeight)
	}
}

func TestClampRestrictsToRange(t *testing.T) {
	b := DefaultBounds()
	if got := b.Clamp(b.MaxAbscissa + 100); got != b.MaxAbscissa {
		t.Errorf("Clamp(above) = %v, want %v", got, b.MaxAbscissa)
	}
	if got := b.Clamp(-b.MaxAbscissa - 100); got != -b.MaxAbscissa {
		t.Errorf("Clamp(below) = %v, want %v", got, -b.MaxAbscissa)
	}
	if got := b.Clamp(3); got != 3 {
		t.Errorf("Clamp(in range) = %v, want 3", got)
	}
}

func TestIntegerMinimalSpacingPrecision(t *testing.T) {
	b := NewBounds(0, 1)
	if b.MinimalSpacing != 1 {
		t.Errorf("MinimalSpacing for precision 0 = %v, want 1", b.MinimalSpacing)
	}
}

func TestLargerMaxSpacingShrinksMaxAbscissa(t *testing.T) {
	narrow := NewBounds(3, 1)
	wide := NewBounds(3, 10)
	if wide.MaxAbscissa >= narrow.MaxAbscissa {
		t.Errorf("MaxAbscissa with larger spacing (%v) should shrink relative to unit spacing (%v)", wide.MaxAbscissa, narrow.MaxAbscissa)
	}
}
