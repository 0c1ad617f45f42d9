package vertical

import "strings"

// Region is the anatomical height class a strike or shot lands in.
// Regions are ordered Bottom < Middle < Top; Undefined sorts first and never
// matches a body part unless a caller explicitly allows it.
type Region int

const (
	RegionUndefined Region = iota
	RegionBottom
	RegionMiddle
	RegionTop
)

var regionNames = [...]string{
	RegionUndefined: "Undefined",
	RegionBottom:    "Bottom",
	RegionMiddle:    "Middle",
	RegionTop:       "Top",
}

func (r Region) String() string {
	if r < 0 || int(r) >= len(regionNames) {
		return "Region(?)"
	}
	return regionNames[r]
}

// Defined reports whether r is one of Bottom, Middle or Top.
func (r Region) Defined() bool {
	return r >= RegionBottom && r <= RegionTop
}

// ParseRegion accepts the names produced by String, case-insensitively.
// Empty input parses as Undefined.
func ParseRegion(s string) (Region, bool) {
	if s == "" {
		return RegionUndefined, true
	}
	for i, name := range regionNames {
		if strings.EqualFold(name, s) {
			return Region(i), true
		}
	}
	return RegionUndefined, false
}

func (r Region) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *Region) UnmarshalText(text []byte) error {
	parsed, ok := ParseRegion(string(text))
	if !ok {
		return &ParseError{Kind: "region", Value: string(text)}
	}
	*r = parsed
	return nil
}

// ParseError reports an unknown enum name in definition data.
type ParseError struct {
	Kind  string
	Value string
}

func (e *ParseError) Error() string {
	return "unknown " + e.Kind + " " + `"` + e.Value + `"`
}
