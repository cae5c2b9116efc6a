package model

// FilterMode selects how project visibility is decided.
type FilterMode string

const (
	// FilterAll shows every selectable (non-Archived) project.
	FilterAll FilterMode = "all"
	// FilterInclude shows only the explicitly listed project ids. An empty
	// list means show nothing.
	FilterInclude FilterMode = "include"
)

// RangePreset names the origin of the active date range.
type RangePreset string

const (
	PresetThisWeek     RangePreset = "this-week"
	PresetNextTwoWeeks RangePreset = "next-two-weeks"
	PresetThisMonth    RangePreset = "this-month"
	PresetNextMonth    RangePreset = "next-month"
	PresetCustom       RangePreset = "custom"
)

// DateRange is an inclusive date window. Both bounds are canonical
// YYYY-MM-DD strings; the range only filters when both are set.
type DateRange struct {
	Start  string      `json:"start"`
	End    string      `json:"end"`
	Preset RangePreset `json:"preset"`
}

// Filters is the active item visibility specification.
type Filters struct {
	Mode       FilterMode `json:"mode"`
	ProjectIDs []string   `json:"projectIds"`
	Search     string     `json:"search"`
	Range      DateRange  `json:"range"`
}

// Equal reports whether two filter specifications are identical.
func (f Filters) Equal(other Filters) bool {
	if f.Mode != other.Mode || f.Search != other.Search || f.Range != other.Range {
		return false
	}
	if len(f.ProjectIDs) != len(other.ProjectIDs) {
		return false
	}
	for i := range f.ProjectIDs {
		if f.ProjectIDs[i] != other.ProjectIDs[i] {
			return false
		}
	}
	return true
}
