package keys

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/gdamore/tcell/v2"
)

// Binding is a parsed key chord.
type Binding struct {
	Key   tcell.Key
	Rune  rune
	Mod   tcell.ModMask
	chord string
}

var namedKeys = map[string]tcell.Key{
	"enter":     tcell.KeyEnter,
	"esc":       tcell.KeyEscape,
	"escape":    tcell.KeyEscape,
	"tab":       tcell.KeyTab,
	"backtab":   tcell.KeyBacktab,
	"backspace": tcell.KeyBackspace2,
	"delete":    tcell.KeyDelete,
	"up":        tcell.KeyUp,
	"down":      tcell.KeyDown,
	"left":      tcell.KeyLeft,
	"right":     tcell.KeyRight,
	"home":      tcell.KeyHome,
	"end":       tcell.KeyEnd,
	"pgup":      tcell.KeyPgUp,
	"pgdn":      tcell.KeyPgDn,
}

// Parse reads chords such as "q", "ctrl+c", "alt+x", "esc" or "pgdn".
func Parse(chord string) (Binding, error) {
	s := strings.ToLower(strings.TrimSpace(chord))
	if s == "" {
		return Binding{}, fmt.Errorf("empty key binding")
	}

	var mod tcell.ModMask
	for {
		switch {
		case strings.HasPrefix(s, "ctrl+") && len(s) > len("ctrl+"):
			mod |= tcell.ModCtrl
			s = s[len("ctrl+"):]
			continue
		case strings.HasPrefix(s, "alt+") && len(s) > len("alt+"):
			mod |= tcell.ModAlt
			s = s[len("alt+"):]
			continue
		}
		break
	}

	if k, ok := namedKeys[s]; ok {
		return Binding{Key: k, Mod: mod, chord: chord}, nil
	}
	if s == "space" {
		s = " "
	}

	runes := []rune(s)
	if len(runes) != 1 {
		return Binding{}, fmt.Errorf("unknown key %q", chord)
	}
	r := runes[0]
	if mod&tcell.ModCtrl != 0 {
		if r < 'a' || r > 'z' {
			return Binding{}, fmt.Errorf("unsupported ctrl chord %q", chord)
		}
		return Binding{Key: tcell.KeyCtrlA + tcell.Key(r-'a'), Rune: r, Mod: mod, chord: chord}, nil
	}
	return Binding{Key: tcell.KeyRune, Rune: r, Mod: mod, chord: chord}, nil
}

// Matches returns true if the event matches this binding.
func (b Binding) Matches(ev *tcell.EventKey) bool {
	if ev == nil {
		return false
	}
	if b.Mod&tcell.ModCtrl != 0 {
		if ev.Key() == b.Key {
			return true
		}
		return ev.Key() == tcell.KeyRune && ev.Modifiers()&tcell.ModCtrl != 0 &&
			unicode.ToLower(ev.Rune()) == b.Rune
	}
	if b.Key != tcell.KeyRune {
		return ev.Key() == b.Key
	}
	if ev.Key() != tcell.KeyRune || ev.Rune() != b.Rune {
		return false
	}
	return b.Mod&tcell.ModAlt == ev.Modifiers()&tcell.ModAlt
}

// String returns the chord as written in the config.
func (b Binding) String() string {
	return b.chord
}

// Registry holds keybindings organized by scope ("global", "home", ...).
type Registry struct {
	scopes map[string]map[string]Binding
}

// NewRegistry creates an empty keybinding registry.
func NewRegistry() *Registry {
	return &Registry{scopes: make(map[string]map[string]Binding)}
}

// FromConfig parses every binding of the config table.
func FromConfig(table map[string]map[string]string) (*Registry, error) {
	r := NewRegistry()
	for scope, bindings := range table {
		for name, chord := range bindings {
			if err := r.Add(scope, name, chord); err != nil {
				return nil, fmt.Errorf("keybindings.%s.%s: %w", scope, name, err)
			}
		}
	}
	return r, nil
}

// Add registers a binding under scope.
func (r *Registry) Add(scope, name, chord string) error {
	b, err := Parse(chord)
	if err != nil {
		return err
	}
	if r.scopes[scope] == nil {
		r.scopes[scope] = make(map[string]Binding)
	}
	r.scopes[scope][name] = b
	return nil
}

// Lookup returns the name of the binding in scope matching ev.
// Names are checked in sorted order so overlapping chords resolve the same way
// on every run.
func (r *Registry) Lookup(scope string, ev *tcell.EventKey) (string, bool) {
	bindings := r.scopes[scope]
	for _, name := range sortedNames(bindings) {
		if bindings[name].Matches(ev) {
			return name, true
		}
	}
	return "", false
}

// Is reports whether ev triggers the named binding of scope.
func (r *Registry) Is(scope, name string, ev *tcell.EventKey) bool {
	b, ok := r.scopes[scope][name]
	return ok && b.Matches(ev)
}

// Hints returns the bindings of a scope as sorted "key: name" pairs.
func (r *Registry) Hints(scope string) [][2]string {
	bindings := r.scopes[scope]
	out := make([][2]string, 0, len(bindings))
	for _, name := range sortedNames(bindings) {
		out = append(out, [2]string{bindings[name].String(), strings.ReplaceAll(name, "_", " ")})
	}
	return out
}

func sortedNames(m map[string]Binding) []string {
	names := make([]string, 0, len(m))
	for n := range m {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
