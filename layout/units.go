package layout

import (
	"strconv"
	"strings"
)

// This file defines unit-safe lengths. The layout core works in CSS pixels
// (96 per inch) because that is the coordinate space of the measured page;
// the canvas backend works in millimeters.

// Unit represents the original unit of a length value as written in config.
type Unit int

const (
	UnitNone Unit = iota // unit-less numbers like factors
	UnitMM               // millimeters
	UnitCM               // centimeters
	UnitIN               // inches
	UnitPT               // points
	UnitPX               // CSS pixels
)

// Conversion constants.
const (
	PtToMm    = 0.352777
	MmToPt    = 1.0 / PtToMm
	PxPerInch = 96.0
	MmPerInch = 25.4
	PxToMm    = MmPerInch / PxPerInch
	MmToPx    = PxPerInch / MmPerInch
)

var mmPerUnit = map[Unit]float64{
	UnitMM: 1,
	UnitCM: 10,
	UnitIN: MmPerInch,
	UnitPT: PtToMm,
	UnitPX: PxToMm,
}

var unitSuffixes = []struct {
	s string
	u Unit
}{{"mm", UnitMM}, {"cm", UnitCM}, {"in", UnitIN}, {"pt", UnitPT}, {"px", UnitPX}}

// UnitToString returns a short string for a Unit value.
func UnitToString(u Unit) string {
	for _, suf := range unitSuffixes {
		if suf.u == u {
			return suf.s
		}
	}
	return ""
}

// Length preserves a numeric value with its unit.
type Length struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}

func (l Length) IsZero() bool { return l.Value == 0 }

// To converts this length to the target unit. Unit-less values pass through.
func (l Length) To(target Unit) float64 {
	from, ok := mmPerUnit[l.Unit]
	if !ok {
		return l.Value
	}
	to, ok := mmPerUnit[target]
	if !ok {
		to = 1 // UnitNone targets millimeters
	}
	return l.Value * from / to
}

func (l Length) ToMM() float64 { return l.To(UnitMM) }
func (l Length) ToPT() float64 { return l.To(UnitPT) }
func (l Length) ToPX() float64 { return l.To(UnitPX) }

// String formats the length the way ParseRawLengthStr reads it.
func (l Length) String() string {
	return strconv.FormatFloat(l.Value, 'f', -1, 64) + UnitToString(l.Unit)
}

// MarshalText lets lengths appear as "8.5in" in TOML and JSON.
func (l Length) MarshalText() ([]byte, error) { return []byte(l.String()), nil }

// UnmarshalText parses "8.5in", "12pt", "1008px" and friends.
func (l *Length) UnmarshalText(b []byte) error {
	v := ParseRawLengthStr(string(b))
	if v.Unit == UnitNone && strings.TrimSpace(string(b)) != "" {
		if _, err := strconv.ParseFloat(strings.TrimSpace(string(b)), 64); err != nil {
			return &strconv.NumError{Func: "ParseLength", Num: string(b), Err: strconv.ErrSyntax}
		}
	}
	*l = v
	return nil
}

// ParseRawLengthStr parses a length string preserving its unit.
func ParseRawLengthStr(value string) Length {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return Length{Value: 0, Unit: UnitNone}
	}
	unit := UnitNone
	num := v
	for _, suf := range unitSuffixes {
		if strings.HasSuffix(v, suf.s) {
			unit = suf.u
			num = strings.TrimSpace(strings.TrimSuffix(v, suf.s))
			break
		}
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return Length{Value: 0, Unit: UnitNone}
	}
	return Length{Value: f, Unit: unit}
}

// Geometry describes the physical page the engine paginates onto.
type Geometry struct {
	Width        Length `json:"width" toml:"width"`
	Height       Length `json:"height" toml:"height"`
	MarginTop    Length `json:"marginTop" toml:"margin_top"`
	MarginBottom Length `json:"marginBottom" toml:"margin_bottom"`
	MarginLeft   Length `json:"marginLeft" toml:"margin_left"`
	MarginRight  Length `json:"marginRight" toml:"margin_right"`
}

// Letter 是默认的 8.5in × 11in 页面，上下共 0.5in 边距预算。
func Letter() Geometry {
	return Geometry{
		Width:        Length{Value: 8.5, Unit: UnitIN},
		Height:       Length{Value: 11, Unit: UnitIN},
		MarginTop:    Length{Value: 0.25, Unit: UnitIN},
		MarginBottom: Length{Value: 0.25, Unit: UnitIN},
		MarginLeft:   Length{Value: 0.5, Unit: UnitIN},
		MarginRight:  Length{Value: 0.5, Unit: UnitIN},
	}
}

// UsableHeight 返回每页可用于装箱的高度（px）。
func (g Geometry) UsableHeight() float64 {
	return g.Height.ToPX() - g.MarginTop.ToPX() - g.MarginBottom.ToPX()
}

// ContentWidth 返回内容区域宽度（px）。
func (g Geometry) ContentWidth() float64 {
	return g.Width.ToPX() - g.MarginLeft.ToPX() - g.MarginRight.ToPX()
}
