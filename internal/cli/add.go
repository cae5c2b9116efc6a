package cli

import (
	"fmt"
	"strings"

	"github.com/existflow/gridplan/internal/colour"
	"github.com/existflow/gridplan/internal/dates"
	"github.com/existflow/gridplan/internal/model"
	"github.com/existflow/gridplan/internal/store"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a planner item",
	Long: `Add an item to a project on a given day.

Examples:
  gridplan add "Draft launch post"
  gridplan add "Weekly catch-up" --project Marketing --date 2026-09-07
  gridplan add "Review copy" -P Marketing -d 2026-09-03 --icon review`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

var (
	addProject     string
	addDate        string
	addNotes       string
	addAssignee    string
	addIcon        string
	addCustomIcon  string
	addCustomLabel string
	addSync        bool
)

func init() {
	addCmd.Flags().StringVarP(&addProject, "project", "P", "", "Project name or id (created if missing)")
	addCmd.Flags().StringVarP(&addDate, "date", "d", "", "Day (YYYY-MM-DD, defaults to today)")
	addCmd.Flags().StringVarP(&addNotes, "notes", "n", "", "Free-form notes")
	addCmd.Flags().StringVarP(&addAssignee, "assignee", "a", "", "Assignee name")
	addCmd.Flags().StringVar(&addIcon, "icon", "", "Built-in icon key (see 'gridplan list --icons')")
	addCmd.Flags().StringVar(&addCustomIcon, "custom-icon", "", "Custom icon key (overrides --icon)")
	addCmd.Flags().StringVar(&addCustomLabel, "custom-label", "", "Label for the custom icon")
	addCmd.Flags().BoolVarP(&addSync, "sync", "s", false, "Push to server after adding")
}

func runAdd(cmd *cobra.Command, args []string) error {
	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.close()

	title := strings.Join(args, " ")

	date := addDate
	if date == "" {
		date = dates.Today()
	}

	projectID, projectName, err := resolveProject(sess, addProject)
	if err != nil {
		return err
	}

	id, err := sess.store.UpsertItem(store.ItemInput{
		ProjectID:       projectID,
		Title:           title,
		Notes:           addNotes,
		Date:            date,
		Assignee:        addAssignee,
		Icon:            addIcon,
		IconCustomKey:   addCustomIcon,
		IconCustomLabel: addCustomLabel,
	})
	if err != nil {
		return fmt.Errorf("failed to add item: %w", err)
	}

	maybePush(sess, addSync)

	fmt.Printf("✓ Added to [%s] on %s: %q (id: %s)\n", projectName, date, model.NormalizeTitle(title), shortID(id))
	return nil
}

// resolveProject maps a --project flag value to a project id, creating the
// project when the name is unknown. Empty input picks the first non-archived
// project.
func resolveProject(sess *session, ref string) (string, string, error) {
	st := sess.store.Snapshot()

	if ref == "" {
		for _, p := range st.Projects {
			if !p.IsArchived() {
				return p.ID, p.Name, nil
			}
		}
		return "", "", fmt.Errorf("no projects available")
	}

	for _, p := range st.Projects {
		if p.ID == ref || strings.EqualFold(p.Name, ref) {
			return p.ID, p.Name, nil
		}
	}

	id := sess.store.AddProject(ref, colour.Derive(ref))
	fmt.Printf("✓ Created project: %s\n", ref)
	return id, ref, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
