package tools

import (
	"strings"

	"vcombat/pkg/vertical"
)

// Fallback decides whether a tool may still strike when its natural band does
// not overlap the target. Automatic is resolved by the toolset validator.
type Fallback int

const (
	FallbackAutomatic Fallback = iota
	FallbackNone
	FallbackNearestAbove
	FallbackNearestBelow
	FallbackNearest
	FallbackFullBody
)

var fallbackNames = [...]string{
	FallbackAutomatic:    "Automatic",
	FallbackNone:         "None",
	FallbackNearestAbove: "NearestAbove",
	FallbackNearestBelow: "NearestBelow",
	FallbackNearest:      "Nearest",
	FallbackFullBody:     "FullBody",
}

func (f Fallback) String() string {
	if f < 0 || int(f) >= len(fallbackNames) {
		return "Fallback(?)"
	}
	return fallbackNames[f]
}

// AllowsUpper reports whether the tool may reach up to a target above its band.
func (f Fallback) AllowsUpper() bool {
	return f == FallbackNearestAbove || f == FallbackNearest || f == FallbackFullBody
}

// AllowsLower reports whether the tool may reach down to a target below its band.
func (f Fallback) AllowsLower() bool {
	return f == FallbackNearestBelow || f == FallbackNearest || f == FallbackFullBody
}

// ParseFallback parses a policy name. Empty input is Automatic.
func ParseFallback(s string) (Fallback, error) {
	if s == "" {
		return FallbackAutomatic, nil
	}
	for i, name := range fallbackNames {
		if strings.EqualFold(name, s) {
			return Fallback(i), nil
		}
	}
	return FallbackAutomatic, &vertical.ParseError{Kind: "fallback", Value: s}
}

// Gender restricts a tool to creatures of one sex.
type Gender int

const (
	GenderNone Gender = iota
	GenderMale
	GenderFemale
)

func (g Gender) String() string {
	switch g {
	case GenderNone:
		return "None"
	case GenderMale:
		return "Male"
	case GenderFemale:
		return "Female"
	}
	return "Gender(?)"
}

// ParseGender parses a gender name. Empty input is None.
func ParseGender(s string) (Gender, error) {
	switch strings.ToLower(s) {
	case "", "none":
		return GenderNone, nil
	case "male":
		return GenderMale, nil
	case "female":
		return GenderFemale, nil
	}
	return GenderNone, &vertical.ParseError{Kind: "gender", Value: s}
}
