package content

import (
	"fmt"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Type describes one supported shorts content category. The category only
// affects presentation defaults and output naming; the slide text itself
// comes from an external provider.
type Type struct {
	Name  string
	Title string
}

// Display returns a human-readable label, including the topic for the
// custom category.
func (t Type) Display(topic string) string {
	if t.Name == "custom" && topic != "" {
		return fmt.Sprintf("%s (%s)", t.Title, topic)
	}
	return t.Title
}

var types = map[string]Type{
	"quote":      {Name: "quote", Title: "Quote of the Day"},
	"english":    {Name: "english", Title: "English Study"},
	"knowledge":  {Name: "knowledge", Title: "Daily Knowledge"},
	"motivation": {Name: "motivation", Title: "Motivation"},
	"custom":     {Name: "custom", Title: "Custom"},
}

// Get returns a content type by name.
func Get(name string) (Type, error) {
	t, ok := types[name]
	if !ok {
		return Type{}, fmt.Errorf("unsupported content type: %s", name)
	}
	return t, nil
}

// Supported returns the registered content type names, sorted.
func Supported() []string {
	names := maps.Keys(types)
	slices.Sort(names)
	return names
}
