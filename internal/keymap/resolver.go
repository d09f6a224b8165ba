package keymap

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/samber/lo"
)

// Resolver maps key strings to actions.
type Resolver struct {
	bindings map[string]Action   // key -> action
	byAction map[Action][]string // action -> keys (for help/documentation)
	order    []Binding
}

// NewResolver creates a resolver from bindings.
func NewResolver(bindings []Binding) *Resolver {
	r := &Resolver{
		bindings: make(map[string]Action),
		byAction: make(map[Action][]string),
		order:    bindings,
	}
	for _, b := range bindings {
		for _, k := range b.Keys {
			r.bindings[k] = b.Action
		}
		r.byAction[b.Action] = append(r.byAction[b.Action], b.Keys...)
	}
	for action, keys := range r.byAction {
		r.byAction[action] = lo.Uniq(keys)
	}
	return r
}

// Resolve returns the action for a key, or empty string if not bound.
func (r *Resolver) Resolve(k string) Action {
	return r.bindings[k]
}

// KeysFor returns the keys bound to an action (for help/documentation).
func (r *Resolver) KeysFor(action Action) []string {
	return r.byAction[action]
}

// Binding returns the bubbles key binding for an action.
func (r *Resolver) Binding(action Action) key.Binding {
	b, ok := lo.Find(r.order, func(b Binding) bool { return b.Action == action })
	if !ok {
		return key.NewBinding(key.WithDisabled())
	}
	return key.NewBinding(
		key.WithKeys(r.byAction[action]...),
		key.WithHelp(helpKey(b.Keys[0]), b.Description),
	)
}

// ShortHelp implements help.KeyMap.
func (r *Resolver) ShortHelp() []key.Binding {
	return []key.Binding{
		r.Binding(ActionPlayPause),
		r.Binding(ActionStop),
		r.Binding(ActionToggleLoop),
		r.Binding(ActionHelp),
		r.Binding(ActionQuit),
	}
}

// FullHelp implements help.KeyMap, one column per context.
func (r *Resolver) FullHelp() [][]key.Binding {
	var columns [][]key.Binding
	for _, context := range []string{"playback", "global"} {
		col := lo.FilterMap(r.order, func(b Binding, _ int) (key.Binding, bool) {
			return r.Binding(b.Action), b.Context == context
		})
		columns = append(columns, col)
	}
	return columns
}

func helpKey(k string) string {
	if k == " " {
		return "space"
	}
	return k
}
