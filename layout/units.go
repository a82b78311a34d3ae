package layout

import (
	"fmt"
	"strconv"
	"strings"
)

// Unit is the unit of a Length.
type Unit int

const (
	UnitPX Unit = iota // device pixels at a given DPI
	UnitMM
	UnitCM
	UnitIN
	UnitPT
)

// Conversion constants between pt, mm and inches.
const (
	MmPerInch = 25.4
	PtPerInch = 72.0
	PtToMm    = MmPerInch / PtPerInch
	MmToPt    = 1.0 / PtToMm
)

func (u Unit) String() string {
	switch u {
	case UnitMM:
		return "mm"
	case UnitCM:
		return "cm"
	case UnitIN:
		return "in"
	case UnitPT:
		return "pt"
	default:
		return "px"
	}
}

// Length preserves a numeric value with its unit.
type Length struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}

// Px 返回以像素为单位的长度。
func Px(v int) Length { return Length{Value: float64(v), Unit: UnitPX} }

// inches 将长度换算为英寸；像素按 dpi 换算。
func (l Length) inches(dpi float64) float64 {
	switch l.Unit {
	case UnitMM:
		return l.Value / MmPerInch
	case UnitCM:
		return l.Value * 10 / MmPerInch
	case UnitIN:
		return l.Value
	case UnitPT:
		return l.Value / PtPerInch
	default:
		if dpi <= 0 {
			return 0
		}
		return l.Value / dpi
	}
}

// To converts this length to target at the given resolution (dots per inch).
// dpi 只影响与像素相关的换算。
func (l Length) To(target Unit, dpi float64) float64 {
	if l.Unit == target {
		return l.Value
	}
	in := l.inches(dpi)
	switch target {
	case UnitMM:
		return in * MmPerInch
	case UnitCM:
		return in * MmPerInch / 10
	case UnitIN:
		return in
	case UnitPT:
		return in * PtPerInch
	default:
		return in * dpi
	}
}

func (l Length) ToMM(dpi float64) float64 { return l.To(UnitMM, dpi) }

// ParseLength 解析 "210mm"、"8.5in"、"12pt"、"1000px" 之类的长度；不带单位时视为像素。
func ParseLength(value string) (Length, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return Length{}, fmt.Errorf("长度为空")
	}
	unit := UnitPX
	for _, suf := range []struct {
		s string
		u Unit
	}{{"mm", UnitMM}, {"cm", UnitCM}, {"in", UnitIN}, {"pt", UnitPT}, {"px", UnitPX}} {
		if strings.HasSuffix(v, suf.s) {
			unit = suf.u
			v = strings.TrimSpace(strings.TrimSuffix(v, suf.s))
			break
		}
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return Length{}, fmt.Errorf("无法解析长度 %q: %w", value, err)
	}
	return Length{Value: f, Unit: unit}, nil
}
