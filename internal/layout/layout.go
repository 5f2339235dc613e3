// Package layout describes widget trees in TOML and reconciles a description
// onto a live tree.
package layout

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/atomicstack/focustree/internal/widget"
)

var (
	// ErrUnknownKind is returned for a node kind the builder cannot construct.
	ErrUnknownKind = errors.New("layout: unknown node kind")
	// ErrUnknownAction is returned when a button names an unregistered action.
	ErrUnknownAction = errors.New("layout: unknown action")
	// ErrInvalid is returned for structurally invalid descriptions.
	ErrInvalid = errors.New("layout: invalid description")
)

// Node kinds.
const (
	KindGroup    = "group"
	KindLabel    = "label"
	KindButton   = "button"
	KindCheckbox = "checkbox"
	KindText     = "text"
)

//go:embed default.toml
var defaultLayout []byte

// Spec is a whole layout file.
type Spec struct {
	Title string `toml:"title"`
	// Fallback is the slash separated name path of the node that receives
	// keys while nothing is focused.
	Fallback string     `toml:"fallback"`
	Nodes    []NodeSpec `toml:"node"`
}

// NodeSpec describes one node and its children.
type NodeSpec struct {
	Kind        string     `toml:"kind"`
	Name        string     `toml:"name"`
	Label       string     `toml:"label"`
	Placeholder string     `toml:"placeholder"`
	Action      string     `toml:"action"`
	Checked     bool       `toml:"checked"`
	Disabled    bool       `toml:"disabled"`
	Hidden      bool       `toml:"hidden"`
	Sticky      bool       `toml:"sticky"`
	Nodes       []NodeSpec `toml:"node"`
}

// Actions maps button action names to their callbacks.
type Actions map[string]widget.ActionFunc

// Parse decodes a TOML layout. Unknown keys are rejected so typos surface
// instead of being silently ignored.
func Parse(data []byte) (Spec, error) {
	var spec Spec
	md, err := toml.Decode(string(data), &spec)
	if err != nil {
		return Spec{}, fmt.Errorf("parse layout: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Spec{}, fmt.Errorf("parse layout: unknown keys %s: %w", strings.Join(keys, ", "), ErrInvalid)
	}
	return spec, nil
}

// Load reads and parses a layout file.
func Load(path string) (Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Spec{}, fmt.Errorf("read layout: %w", err)
	}
	return Parse(data)
}

// Default returns the built-in layout.
func Default() Spec {
	spec, err := Parse(defaultLayout)
	if err != nil {
		panic(fmt.Sprintf("embedded layout: %v", err))
	}
	return spec
}

// Validate checks kinds, names and action references without touching a tree.
func (s Spec) Validate(actions Actions) error {
	return validateNodes("", s.Nodes, actions)
}

func validateNodes(prefix string, nodes []NodeSpec, actions Actions) error {
	seen := make(map[string]struct{}, len(nodes))
	for i, n := range nodes {
		path := prefix + n.Name
		if n.Name == "" {
			return fmt.Errorf("%snode[%d]: name is required: %w", prefix, i, ErrInvalid)
		}
		if strings.Contains(n.Name, "/") {
			return fmt.Errorf("%s: name must not contain '/': %w", path, ErrInvalid)
		}
		if _, dup := seen[n.Name]; dup {
			return fmt.Errorf("%s: duplicate name: %w", path, ErrInvalid)
		}
		seen[n.Name] = struct{}{}
		if roleForKind(n.Kind) == "" {
			return fmt.Errorf("%s: kind %q: %w", path, n.Kind, ErrUnknownKind)
		}
		if n.Kind == KindButton && n.Action != "" {
			if _, ok := actions[n.Action]; !ok {
				return fmt.Errorf("%s: action %q: %w", path, n.Action, ErrUnknownAction)
			}
		}
		if len(n.Nodes) > 0 && n.Kind != KindGroup {
			return fmt.Errorf("%s: only groups may have children: %w", path, ErrInvalid)
		}
		if err := validateNodes(path+"/", n.Nodes, actions); err != nil {
			return err
		}
	}
	return nil
}

// NewWidget constructs the widget a node describes.
func NewWidget(n NodeSpec, actions Actions) (widget.Widget, error) {
	switch n.Kind {
	case KindGroup:
		return widget.NewGroup(n.Label), nil
	case KindLabel:
		return widget.NewLabel(n.Label), nil
	case KindButton:
		var action widget.ActionFunc
		if n.Action != "" {
			fn, ok := actions[n.Action]
			if !ok {
				return nil, fmt.Errorf("%s: action %q: %w", n.Name, n.Action, ErrUnknownAction)
			}
			action = fn
		}
		return widget.NewButton(n.Label, action), nil
	case KindCheckbox:
		return widget.NewCheckbox(n.Label, n.Checked), nil
	case KindText:
		in := widget.NewTextInput(n.Label, n.Placeholder)
		in.Sticky = n.Sticky
		return in, nil
	default:
		return nil, fmt.Errorf("%s: kind %q: %w", n.Name, n.Kind, ErrUnknownKind)
	}
}

func roleForKind(kind string) string {
	switch kind {
	case KindGroup:
		return "group"
	case KindLabel:
		return "label"
	case KindButton:
		return "button"
	case KindCheckbox:
		return "checkbox"
	case KindText:
		return "textbox"
	default:
		return ""
	}
}

// Build creates a fresh tree for spec.
func Build(spec Spec, actions Actions) (*widget.Tree, error) {
	t := widget.NewTree(widget.NewGroup(spec.Title))
	if _, err := Reconcile(t, spec, actions); err != nil {
		return nil, err
	}
	return t, nil
}

// Resolve finds the node at a slash separated name path below the root.
func Resolve(t *widget.Tree, path string) (widget.ID, bool) {
	path = strings.Trim(path, "/")
	if path == "" {
		return widget.ID{}, false
	}
	id := t.Root()
	for _, name := range strings.Split(path, "/") {
		next, ok := t.ChildByName(id, name)
		if !ok {
			return widget.ID{}, false
		}
		id = next
	}
	return id, true
}

// PathOf returns the name path of id, the inverse of Resolve.
func PathOf(t *widget.Tree, id widget.ID) string {
	ids := t.Path(id)
	if len(ids) < 2 {
		return ""
	}
	names := make([]string, 0, len(ids)-1)
	for _, p := range ids[1:] {
		n, _ := t.Node(p)
		names = append(names, n.Name())
	}
	return strings.Join(names, "/")
}
