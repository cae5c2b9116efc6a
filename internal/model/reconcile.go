package model

// Reconcile normalizes a filter specification against the current project
// set so it never references removed projects and collapses to the
// canonical "all" representation when equivalent:
//
//  1. the explicit id list is deduplicated, first occurrence wins;
//  2. ids that no longer resolve to a project are dropped;
//  3. include-mode collapses to all-mode when the listed non-Archived ids
//     cover every selectable project and Archived was not explicitly
//     included;
//  4. all-mode always carries an empty id list.
//
// Reconcile is idempotent.
func Reconcile(f Filters, projects []Project) Filters {
	known := make(map[string]bool, len(projects))
	for _, p := range projects {
		known[p.ID] = true
	}

	seen := make(map[string]bool, len(f.ProjectIDs))
	clean := make([]string, 0, len(f.ProjectIDs))
	for _, id := range f.ProjectIDs {
		if seen[id] || !known[id] {
			continue
		}
		seen[id] = true
		clean = append(clean, id)
	}

	if f.Mode == FilterInclude {
		selectable := SelectableIDs(projects)
		nonArchived := 0
		archivedIncluded := false
		for _, id := range clean {
			if id == ArchivedProjectID {
				archivedIncluded = true
			} else {
				nonArchived++
			}
		}
		if !archivedIncluded && nonArchived == len(selectable) && len(selectable) > 0 {
			f.Mode = FilterAll
			f.ProjectIDs = []string{}
			return f
		}
		f.ProjectIDs = clean
		return f
	}

	f.Mode = FilterAll
	f.ProjectIDs = []string{}
	return f
}
