package diag

// Ranger wraps the Range method.
type Ranger interface {
	// Range returns the range associated with the value.
	Range() Ranging
}

// Ranging represents a range [From, To) within an indexable sequence. Structs
// can embed Ranging to satisfy the [Ranger] interface.
//
// Ranges produced by the calculator engine index characters (runes), not
// bytes, so that they line up with what the user sees.
type Ranging struct {
	From int
	To   int
}

// Range returns the Ranging itself.
func (r Ranging) Range() Ranging { return r }

// PointRanging returns a zero-width Ranging at the given point.
func PointRanging(p int) Ranging {
	return Ranging{p, p}
}

// MixedRanging returns a Ranging from the start position of a to the end
// position of b.
func MixedRanging(a, b Ranger) Ranging {
	return Ranging{a.Range().From, b.Range().To}
}

// Clamp returns a copy of r with both ends moved into [0, n], and To no
// smaller than From.
func (r Ranging) Clamp(n int) Ranging {
	from, to := clamp(r.From, 0, n), clamp(r.To, 0, n)
	if to < from {
		to = from
	}
	return Ranging{from, to}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
