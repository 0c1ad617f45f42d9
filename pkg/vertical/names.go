package vertical

import "strings"

var categoryNames = [...]string{
	CategoryNone:     "none",
	CategoryPlant:    "plant",
	CategoryBuilding: "building",
	CategoryCreature: "creature",
	CategoryItem:     "item",
}

func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return "category(?)"
	}
	return categoryNames[c]
}

func ParseCategory(s string) (Category, error) {
	for i, name := range categoryNames {
		if strings.EqualFold(name, s) {
			return Category(i), nil
		}
	}
	return CategoryNone, &ParseError{Kind: "category", Value: s}
}

var fillageNames = [...]string{
	FillNone:    "none",
	FillPartial: "partial",
	FillFull:    "full",
}

func (f Fillage) String() string {
	if f < 0 || int(f) >= len(fillageNames) {
		return "fillage(?)"
	}
	return fillageNames[f]
}

// ParseFillage treats an empty string as FillNone.
func ParseFillage(s string) (Fillage, error) {
	if s == "" {
		return FillNone, nil
	}
	for i, name := range fillageNames {
		if strings.EqualFold(name, s) {
			return Fillage(i), nil
		}
	}
	return FillNone, &ParseError{Kind: "fillage", Value: s}
}
