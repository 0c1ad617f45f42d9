package validate

import (
	"fmt"
	"strings"

	"vcombat/pkg/anatomy"
	"vcombat/pkg/tools"
	"vcombat/pkg/vertical"
)

// State is which fallbacks a creature's tool set still lacks.
type State int

const (
	NoFallbackNeeded State = iota
	NeedsLower
	NeedsUpper
	NeedsBoth
)

func (s State) String() string {
	switch s {
	case NoFallbackNeeded:
		return "NoFallbackNeeded"
	case NeedsLower:
		return "NeedsLower"
	case NeedsUpper:
		return "NeedsUpper"
	case NeedsBoth:
		return "NeedsBoth"
	}
	return "State(?)"
}

func stateOf(hasUpper, hasLower bool) State {
	switch {
	case hasUpper && hasLower:
		return NoFallbackNeeded
	case hasUpper:
		return NeedsLower
	case hasLower:
		return NeedsUpper
	default:
		return NeedsBoth
	}
}

type Level int

const (
	LevelWarning Level = iota
	LevelError
)

func (l Level) String() string {
	if l == LevelError {
		return "error"
	}
	return "warning"
}

type Diagnostic struct {
	Level   Level
	Message string
}

// Change records a tool whose fallback or usability flag the validator set.
type Change struct {
	Tool         *tools.Tool
	From, To     tools.Fallback
	EnsureUsable bool // EnsureAlwaysUsable was derived for this tool
}

// Report is the outcome of validating one creature's tools.
type Report struct {
	Def         string
	Before      State
	After       State
	HasUpper    bool
	HasLower    bool
	Changes     []Change
	Diagnostics []Diagnostic
}

// Strings renders the diagnostics the way the definition loader reports them.
func (r Report) Strings() []string {
	out := make([]string, 0, len(r.Diagnostics))
	for _, d := range r.Diagnostics {
		out = append(out, fmt.Sprintf("%s: %s", r.Def, d.Message))
	}
	return out
}

func (r Report) HasErrors() bool {
	for _, d := range r.Diagnostics {
		if d.Level == LevelError {
			return true
		}
	}
	return false
}

func (r *Report) add(level Level, format string, args ...any) {
	r.Diagnostics = append(r.Diagnostics, Diagnostic{Level: level, Message: fmt.Sprintf(format, args...)})
}

const (
	msgCannotDeriveUsable = "lacks ensureAlwaysUsable on any tool, and this could not be set automatically"
	msgNoUsableTools      = "none of the tools are marked ensureAlwaysUsable; the creature will be unable to melee after enough damage"
	msgFallbackNotSet     = "fallback could not be set; give one tool fallback Nearest or FullBody, or one tool NearestAbove and another NearestBelow"
)

// Toolset checks that a creature keeps an upper and a lower fallback strike
// whatever it loses, assigning fallback policies to Automatic tools marked
// ensureAlwaysUsable when none is declared. It mutates the tools and never
// fails; problems are reported as diagnostics. A nil body (weapons) is not
// validated.
func Toolset(def string, body *anatomy.Body, ts []*tools.Tool) Report {
	r := Report{Def: def}
	if body == nil || len(ts) == 0 {
		r.HasUpper, r.HasLower = true, true
		return r
	}

	v := &validator{body: body, tools: ts, report: &r}
	for _, t := range ts {
		v.hasUpper = v.hasUpper || t.UpperFallback()
		v.hasLower = v.hasLower || t.LowerFallback()
	}
	r.Before = stateOf(v.hasUpper, v.hasLower)

	if r.Before != NoFallbackNeeded {
		v.run()
	}

	r.HasUpper, r.HasLower = v.hasUpper, v.hasLower
	r.After = stateOf(v.hasUpper, v.hasLower)
	return r
}

type validator struct {
	body     *anatomy.Body
	tools    []*tools.Tool
	report   *Report
	hasUpper bool
	hasLower bool
}

func (v *validator) candidates() []*tools.Tool {
	var out []*tools.Tool
	for _, t := range v.tools {
		if t.Fallback == tools.FallbackAutomatic && t.EnsureAlwaysUsable {
			out = append(out, t)
		}
	}
	return out
}

func (v *validator) run() {
	for _, t := range v.tools {
		switch t.RestrictedGender {
		case tools.GenderNone, tools.GenderMale, tools.GenderFemale:
		default:
			v.report.add(LevelError, "tool %q has unsupported gender restriction %d", t.String(), int(t.RestrictedGender))
			return
		}
	}

	if len(v.candidates()) == 0 && !v.deriveUsable() {
		v.report.add(LevelWarning, msgCannotDeriveUsable)
	}

	candidates := v.candidates()
	if len(candidates) == 0 {
		v.report.add(LevelError, msgNoUsableTools)
		return
	}

	if !v.assign(candidates) {
		v.report.add(LevelError, msgFallbackNotSet)
	}
}

// deriveUsable marks tools whose linked part carries every covered part of
// some vital tag, so the creature cannot lose that tool without dying.
func (v *validator) deriveUsable() bool {
	added := false
	for _, t := range v.tools {
		part, ok := v.body.FirstInGroup(t.LinkedGroup)
		if !ok || v.body.Parts[part].IsVital() {
			continue
		}
		if _, ok := v.body.HoldsAllOfVitalTag(part); ok {
			if !t.EnsureAlwaysUsable {
				v.report.Changes = append(v.report.Changes, Change{Tool: t, From: t.Fallback, To: t.Fallback, EnsureUsable: true})
			}
			t.EnsureAlwaysUsable = true
			added = true
		}
	}
	return added
}

func byGender(ts []*tools.Tool, genders ...tools.Gender) []*tools.Tool {
	var out []*tools.Tool
	for _, t := range ts {
		for _, g := range genders {
			if t.RestrictedGender == g {
				out = append(out, t)
				break
			}
		}
	}
	return out
}

func (v *validator) assign(candidates []*tools.Tool) bool {
	male := byGender(candidates, tools.GenderMale)
	female := byGender(candidates, tools.GenderFemale)
	if len(male) == 0 || len(female) == 0 {
		changed := v.fallbackHandling(byGender(candidates, tools.GenderNone), v.hasLower, v.hasUpper)
		v.merge(changed, false)
		return len(changed) > 0
	}

	// Both sexes carry their own tools: males also use the unrestricted ones.
	// Only unrestricted changes carry over to females.
	baseUpper, baseLower := v.hasUpper, v.hasLower
	maleChanged := v.fallbackHandling(byGender(candidates, tools.GenderMale, tools.GenderNone), v.hasLower, v.hasUpper)
	v.merge(maleChanged, true)

	var femaleChanged []*tools.Tool
	if !v.hasLower || !v.hasUpper {
		femaleChanged = v.fallbackHandling(female, v.hasLower, v.hasUpper)
		v.merge(femaleChanged, false)
	}

	// A sex is resolved when the tools it can swing cover both directions.
	// fallbackHandling resolves every non-empty group, so this only reports
	// if that rule changes.
	maleOK := covers(baseUpper, baseLower, maleChanged)
	femaleOK := v.hasLower && v.hasUpper
	if maleOK != femaleOK {
		unresolved := female
		sex := tools.GenderFemale
		if !maleOK {
			unresolved = male
			sex = tools.GenderMale
		}
		v.report.add(LevelError, "fallback could only be set for one sex; unresolved %s tools: %s", sex, labels(unresolved))
	}
	return maleOK || femaleOK
}

// covers reports whether the starting fallbacks plus those of changed reach
// both directions.
func covers(hasUpper, hasLower bool, changed []*tools.Tool) bool {
	for _, t := range changed {
		hasUpper = hasUpper || t.UpperFallback()
		hasLower = hasLower || t.LowerFallback()
	}
	return hasUpper && hasLower
}

func (v *validator) merge(changed []*tools.Tool, unrestrictedOnly bool) {
	for _, t := range changed {
		if unrestrictedOnly && t.RestrictedGender != tools.GenderNone {
			continue
		}
		v.hasLower = v.hasLower || t.LowerFallback()
		v.hasUpper = v.hasUpper || t.UpperFallback()
	}
}

func (v *validator) set(t *tools.Tool, f tools.Fallback) {
	v.report.Changes = append(v.report.Changes, Change{Tool: t, From: t.Fallback, To: f})
	t.Fallback = f
}

// fallbackHandling assigns fallbacks within one gender group and returns the
// tools it changed, none when the group is empty.
func (v *validator) fallbackHandling(group []*tools.Tool, hasLower, hasUpper bool) []*tools.Tool {
	if len(group) == 0 {
		return nil
	}

	var limited []*tools.Tool
	var single tools.Fallback
	switch {
	case !hasLower && !hasUpper:
		limited = inRegions(group, vertical.RegionTop, vertical.RegionBottom)
		single = tools.FallbackNearest
	case !hasLower:
		limited = inRegions(group, vertical.RegionBottom)
		single = tools.FallbackNearestBelow
	default:
		limited = inRegions(group, vertical.RegionTop)
		single = tools.FallbackNearestAbove
	}
	needOne := hasLower || hasUpper

	switch {
	case len(group) == 1 || len(limited) == 0:
		// Everything attacks from the middle
		v.set(group[0], single)
		return group[:1]

	case needOne:
		v.set(limited[0], single)
		return limited[:1]

	case len(inRegions(limited, vertical.RegionTop)) == 0 || len(inRegions(limited, vertical.RegionBottom)) == 0:
		first := limited[0]
		var second *tools.Tool
		for _, t := range group {
			if t != first {
				second = t
				break
			}
		}
		if first.AttackRegion() == vertical.RegionTop {
			v.set(first, tools.FallbackNearestAbove)
			v.set(second, tools.FallbackNearestBelow)
		} else {
			v.set(first, tools.FallbackNearestBelow)
			v.set(second, tools.FallbackNearestAbove)
		}
		return []*tools.Tool{first, second}

	default:
		top := inRegions(limited, vertical.RegionTop)[0]
		bottom := inRegions(limited, vertical.RegionBottom)[0]
		v.set(top, tools.FallbackNearestAbove)
		v.set(bottom, tools.FallbackNearestBelow)
		return []*tools.Tool{top, bottom}
	}
}

func inRegions(ts []*tools.Tool, regions ...vertical.Region) []*tools.Tool {
	var out []*tools.Tool
	for _, t := range ts {
		r := t.AttackRegion()
		for _, want := range regions {
			if r == want {
				out = append(out, t)
				break
			}
		}
	}
	return out
}

func labels(ts []*tools.Tool) string {
	names := make([]string, len(ts))
	for i, t := range ts {
		names[i] = t.String()
	}
	return strings.Join(names, ", ")
}
