package model

// IconKind discriminates the icon variant carried by a planner item.
type IconKind int

const (
	IconNone IconKind = iota
	IconBuiltin
	IconCustom
)

// Icon is the icon reference of a planner item: either one of the built-in
// icons (by key) or a user-defined icon with its own display label. The two
// cases are mutually exclusive by construction.
type Icon struct {
	Kind  IconKind `json:"kind"`
	Key   string   `json:"key,omitempty"`
	Label string   `json:"label,omitempty"`
}

// BuiltinIcon returns a built-in icon reference, or the zero Icon for an
// empty key.
func BuiltinIcon(key string) Icon {
	if key == "" {
		return Icon{}
	}
	return Icon{Kind: IconBuiltin, Key: key}
}

// CustomIcon returns a custom icon reference. An empty key yields the zero
// Icon; an empty label falls back to the key.
func CustomIcon(key, label string) Icon {
	if key == "" {
		return Icon{}
	}
	if label == "" {
		label = key
	}
	return Icon{Kind: IconCustom, Key: key, Label: label}
}

// ResolveIcon normalizes the two optional wire fields into a single variant.
// A custom icon with a non-empty key wins over the built-in key.
func ResolveIcon(builtinKey string, customKey, customLabel string) Icon {
	if customKey != "" {
		return CustomIcon(customKey, customLabel)
	}
	return BuiltinIcon(builtinKey)
}

// DisplayLabel returns the human-readable label of the icon: the custom
// label, the built-in catalogue label, or "".
func (i Icon) DisplayLabel() string {
	switch i.Kind {
	case IconCustom:
		return i.Label
	case IconBuiltin:
		for _, def := range BuiltinIcons {
			if def.Key == i.Key {
				return def.Label
			}
		}
		return i.Key
	default:
		return ""
	}
}

// IconDefinition describes one entry of the built-in icon catalogue.
type IconDefinition struct {
	Key   string
	Label string
}

// BuiltinIcons is the fixed catalogue of built-in planner icons.
var BuiltinIcons = []IconDefinition{
	{Key: "comms", Label: "Communications"},
	{Key: "social", Label: "Social Post"},
	{Key: "strategy", Label: "Strategy"},
	{Key: "weekly", Label: "Weekly Catch-up"},
	{Key: "review", Label: "Review"},
	{Key: "copy", Label: "Copywriting"},
	{Key: "meeting", Label: "Meeting"},
	{Key: "notes", Label: "Notes"},
	{Key: "approval", Label: "Approval"},
}
