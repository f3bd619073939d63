package diag

import (
	"testing"

	"src.smolcalc.dev/pkg/tt"
)

type aRanger Ranging

func (r aRanger) Range() Ranging { return Ranging(r) }

func TestEmbeddingRangingImplementsRanger(t *testing.T) {
	r := Ranging{1, 10}
	s := struct{ Ranging }{r}
	var _ Ranger = s
	if s.Range() != r {
		t.Errorf("s.Range() = %v, want %v", s.Range(), r)
	}
}

func TestPointRanging(t *testing.T) {
	tt.Test(t, tt.Fn("PointRanging", PointRanging), tt.Table{
		tt.Args(1).Rets(Ranging{1, 1}),
	})
}

func TestMixedRanging(t *testing.T) {
	tt.Test(t, tt.Fn("MixedRanging", MixedRanging), tt.Table{
		tt.Args(aRanger{1, 2}, aRanger{0, 4}).Rets(Ranging{1, 4}),
		tt.Args(aRanger{0, 4}, aRanger{1, 2}).Rets(Ranging{0, 2}),
	})
}

func TestRanging_Clamp(t *testing.T) {
	tt.Test(t, tt.Fn("Clamp", Ranging.Clamp), tt.Table{
		tt.Args(Ranging{1, 3}, 5).Rets(Ranging{1, 3}),
		tt.Args(Ranging{-2, 3}, 5).Rets(Ranging{0, 3}),
		tt.Args(Ranging{1, 9}, 5).Rets(Ranging{1, 5}),
		tt.Args(Ranging{7, 9}, 5).Rets(Ranging{5, 5}),
		tt.Args(Ranging{4, 2}, 5).Rets(Ranging{4, 4}),
		tt.Args(Ranging{0, 1}, 0).Rets(Ranging{0, 0}),
	})
}
