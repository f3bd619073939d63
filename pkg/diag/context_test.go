package diag

import (
	"testing"
)

var contextShowTests = []struct {
	Name    string
	Context *Context
	Indent  string

	WantShow string
}{
	{
		Name: "single character culprit",
		//                            0123
		Context: NewContext("[test]", "1+2)", Ranging{3, 4}),
		Indent:  "_",

		WantShow: lines(
			"_[test], column 4",
			"_1+2)",
			"_   <^>",
		),
	},
	{
		Name:    "multi character culprit",
		Context: NewContext("[test]", "1+foo(2)", Ranging{2, 5}),

		WantShow: lines(
			"[test], columns 3-5",
			"1+foo(2)",
			"  <^^^>",
		),
	},
	{
		Name:    "empty culprit",
		Context: NewContext("[test]", "1+", Ranging{2, 2}),

		WantShow: lines(
			"[test], column 3",
			"1+",
			"  <^>",
		),
	},
	{
		Name:    "no name",
		Context: NewContext("", "(", Ranging{0, 1}),

		WantShow: lines(
			"(",
			"<^>",
		),
	},
	{
		Name:    "out of range culprit",
		Context: NewContext("[test]", "12", Ranging{5, 9}),

		WantShow: lines(
			"[test], column 3",
			"12",
			"  <^>",
		),
	},
}

func TestContext(t *testing.T) {
	setCulpritMarkers(t, "<", ">")
	for _, test := range contextShowTests {
		t.Run(test.Name, func(t *testing.T) {
			gotShow := test.Context.Show(test.Indent)
			if gotShow != test.WantShow {
				t.Errorf("Show() -> %q, want %q", gotShow, test.WantShow)
			}
		})
	}
}
