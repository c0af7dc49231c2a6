package ecs

import (
	"testing"

	"github.com/milk9111/trees/ecs/component"
)

type size struct{ H float64 }
type place struct{ Y float64 }
type marker struct{}

var (
	sizeKind   = component.NewComponent[size]().Kind()
	placeKind  = component.NewComponent[place]().Kind()
	markerKind = component.NewComponent[marker]().Kind()
)

type ruleFixture struct {
	w          *World
	tree, bush Entity
	calls      map[Entity]int
	rule       RuleID
}

func newRuleFixture(t *testing.T) *ruleFixture {
	t.Helper()
	f := &ruleFixture{w: NewWorld(), calls: map[Entity]int{}}
	w := f.w

	leaf, err := CreatePrototype(w, With(markerKind, marker{}))
	if err != nil {
		t.Fatalf("leaf prototype: %v", err)
	}
	for _, root := range []*Entity{&f.tree, &f.bush} {
		*root, _ = CreatePrototype(w)
		part, _ := CreatePrototype(w, With(sizeKind, size{H: 1}), With(placeKind, place{Y: 1}))
		if err := w.SetTemplate(part, leaf); err != nil {
			t.Fatalf("set template: %v", err)
		}
		if err := w.AttachPart(*root, part); err != nil {
			t.Fatalf("attach: %v", err)
		}
	}

	f.rule = OnSet2(w, "grow", All(HasShared(markerKind), ParentIsA(f.tree)), sizeKind, placeKind,
		func(e Entity, s *size, p *place) {
			f.calls[e]++
			s.H = 5
			p.Y = s.H / 2
		})
	return f
}

func TestRuleFiresOnceAtCreation(t *testing.T) {
	f := newRuleFixture(t)
	w := f.w

	inst, err := Instantiate(w, f.tree)
	if err != nil {
		t.Fatalf("instantiate: %v", err)
	}
	part := w.Parts(inst)[0]
	if f.calls[part] != 1 {
		t.Fatalf("expected one call for the part, got %d", f.calls[part])
	}
	if f.calls[inst] != 0 {
		t.Fatalf("root does not match the filter")
	}
	if !w.Fired(f.rule, part) {
		t.Fatalf("rule should be recorded as fired")
	}

	s, ok := Get(w, part, sizeKind)
	if !ok || s.H != 5 {
		t.Fatalf("reaction write must be visible on the part's own value, got %+v ok=%v", s, ok)
	}
	if p, _ := Get(w, part, placeKind); p.Y != 2.5 {
		t.Fatalf("expected y 2.5, got %v", p.Y)
	}

	// Prototype values stay untouched.
	protoPart := w.Parts(f.tree)[0]
	if s, _ := Get(w, protoPart, sizeKind); s.H != 1 {
		t.Fatalf("prototype size changed to %v", s.H)
	}
}

func TestRuleDoesNotRefire(t *testing.T) {
	f := newRuleFixture(t)
	w := f.w
	inst, _ := Instantiate(w, f.tree)
	part := w.Parts(inst)[0]

	steps := []struct {
		name string
		do   func() error
	}{
		{"set_watched_size", func() error { return Add(w, part, sizeKind, &size{H: 9}) }},
		{"set_watched_place", func() error { return Add(w, part, placeKind, &place{Y: 9}) }},
		{"set_unrelated", func() error { return Add(w, part, markerKind, &marker{}) }},
	}
	for _, s := range steps {
		t.Run(s.name, func(t *testing.T) {
			if err := s.do(); err != nil {
				t.Fatalf("write: %v", err)
			}
			if f.calls[part] != 1 {
				t.Fatalf("expected still one call, got %d", f.calls[part])
			}
		})
	}
}

func TestRuleFilterSelectsRoot(t *testing.T) {
	f := newRuleFixture(t)
	w := f.w
	inst, _ := Instantiate(w, f.bush)
	part := w.Parts(inst)[0]
	if f.calls[part] != 0 {
		t.Fatalf("bush parts must not match a tree-only rule")
	}
	if s, _ := Resolve(w, part, sizeKind); s.H != 1 {
		t.Fatalf("unmatched part keeps the inherited size")
	}
	if Has(w, part, sizeKind) {
		t.Fatalf("unmatched part must not get an own copy")
	}
}

func TestRuleFiresOnLateSet(t *testing.T) {
	w := NewWorld()
	calls := 0
	OnSet2(w, "late", HasShared(markerKind), sizeKind, placeKind, func(Entity, *size, *place) { calls++ })

	e := CreateEntity(w)
	steps := []struct {
		name  string
		add   func() error
		calls int
	}{
		{"marker_only", func() error { return Add(w, e, markerKind, &marker{}) }, 0},
		{"size_only", func() error { return Add(w, e, sizeKind, &size{}) }, 0},
		{"place_completes", func() error { return Add(w, e, placeKind, &place{}) }, 1},
		{"size_again", func() error { return Add(w, e, sizeKind, &size{H: 2}) }, 1},
	}
	for _, s := range steps {
		t.Run(s.name, func(t *testing.T) {
			if err := s.add(); err != nil {
				t.Fatalf("add: %v", err)
			}
			if calls != s.calls {
				t.Fatalf("expected %d calls, got %d", s.calls, calls)
			}
		})
	}
}

func TestRuleSkipsPrototypes(t *testing.T) {
	w := NewWorld()
	calls := 0
	OnSet2(w, "any", nil, sizeKind, placeKind, func(Entity, *size, *place) { calls++ })
	if _, err := CreatePrototype(w, With(sizeKind, size{}), With(placeKind, place{})); err != nil {
		t.Fatalf("create prototype: %v", err)
	}
	if calls != 0 {
		t.Fatalf("rules must not run for prototypes")
	}
}
