package layout

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestLengthConversions(t *testing.T) {
	cases := []struct {
		in     Length
		target Unit
		dpi    float64
		want   float64
	}{
		{Px(150), UnitIN, 150, 1},
		{Px(1000), UnitMM, 254, 100},
		{Length{Value: 1, Unit: UnitIN}, UnitPX, 300, 300},
		{Length{Value: 72, Unit: UnitPT}, UnitMM, 0, 25.4},
		{Length{Value: 2.54, Unit: UnitCM}, UnitPT, 0, 72},
		{Length{Value: 10, Unit: UnitMM}, UnitMM, 0, 10},
	}
	for _, c := range cases {
		if got := c.in.To(c.target, c.dpi); !almostEqual(got, c.want) {
			t.Fatalf("%v%s -> %s @%v: got=%v want=%v", c.in.Value, c.in.Unit, c.target, c.dpi, got, c.want)
		}
	}
	if got := Px(10).ToMM(0); got != 0 {
		t.Fatalf("dpi 为 0 时像素无法换算: %v", got)
	}
}

func TestParseLength(t *testing.T) {
	cases := map[string]Length{
		"210mm":  {Value: 210, Unit: UnitMM},
		" 8.5IN": {Value: 8.5, Unit: UnitIN},
		"12pt":   {Value: 12, Unit: UnitPT},
		"1000":   {Value: 1000, Unit: UnitPX},
		"707px":  {Value: 707, Unit: UnitPX},
		"1.5 cm": {Value: 1.5, Unit: UnitCM},
	}
	for in, want := range cases {
		got, err := ParseLength(in)
		if err != nil || got != want {
			t.Fatalf("ParseLength(%q) = %+v, %v", in, got, err)
		}
	}
	for _, bad := range []string{"", "mm", "abc"} {
		if _, err := ParseLength(bad); err == nil {
			t.Fatalf("ParseLength(%q) 应报错", bad)
		}
	}
}
