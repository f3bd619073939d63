package mode

import (
	"testing"

	"src.smolcalc.dev/pkg/diag"
)

// Returns a handle that reports its name as the output.
func named(name string) Handle {
	return func(string) (Outcome, error) { return Success{Output: name}, nil }
}

func nameOf(t *testing.T, h Handle) string {
	t.Helper()
	out, err := h("")
	if err != nil {
		t.Fatalf("handle returns error %v", err)
	}
	return out.(Success).Output
}

func TestRegistry_Resolve(t *testing.T) {
	r := NewRegistry(map[Mode]Handle{
		Rational: named("rational"),
		Float32:  named("f32"),
		Float64:  named("f64"),
	})
	tests := []struct {
		token string
		want  string
	}{
		{"", "rational"},
		{"f32", "f32"},
		{"f64", "f64"},
		{"unknown", "rational"},
		// Known mode without a handle in this registry.
		{"cmplx", "rational"},
	}
	for _, test := range tests {
		if got := nameOf(t, r.Resolve(test.token)); got != test.want {
			t.Errorf("Resolve(%q) resolves to %q, want %q", test.token, got, test.want)
		}
	}
	if got := nameOf(t, r.Get(Mode(-1))); got != "rational" {
		t.Errorf("Get(Mode(-1)) resolves to %q, want rational", got)
	}
}

func TestNewRegistry_CopiesHandles(t *testing.T) {
	handles := map[Mode]Handle{Rational: named("rational")}
	r := NewRegistry(handles)
	handles[Rational] = named("changed")
	if got := nameOf(t, r.Resolve("")); got != "rational" {
		t.Errorf("registry changed after construction, resolves to %q", got)
	}
}

func TestNewRegistry_PanicsWithoutDefault(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("NewRegistry did not panic")
		}
	}()
	NewRegistry(map[Mode]Handle{Float32: named("f32")})
}

func TestBuiltin(t *testing.T) {
	r := Builtin()
	tests := []struct {
		token string
		text  string
		want  Outcome
	}{
		{"", "1/3+1/6", Success{"1/2", `\frac{1}{3}+\frac{1}{6}`}},
		{"nonsense", "1/3+1/6", Success{"1/2", `\frac{1}{3}+\frac{1}{6}`}},
		{"f32", "1/3", Success{"0.333333", `\frac{1}{3}`}},
		{"f64", "1/3", Success{"0.3333333333333", `\frac{1}{3}`}},
		{"cmplx_f64", "i", Success{"1i", "i"}},
		{"cmplx", "(", Failure{diag.Ranging{From: 0, To: 1}, "unclosed bracket"}},
	}
	for _, test := range tests {
		got, err := r.Resolve(test.token)(test.text)
		if err != nil {
			t.Errorf("Resolve(%q)(%q) returns error %v", test.token, test.text, err)
		}
		if got != test.want {
			t.Errorf("Resolve(%q)(%q) -> %#v, want %#v", test.token, test.text, got, test.want)
		}
	}
}
