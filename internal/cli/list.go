package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/existflow/gridplan/internal/dates"
	"github.com/existflow/gridplan/internal/model"
	"github.com/existflow/gridplan/internal/selector"
	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List planner items",
	Long: `List planner items, filtered the same way the calendar views are.

Examples:
  gridplan list
  gridplan list --project Marketing
  gridplan list --preset this-week
  gridplan list --search launch`,
	RunE: runList,
}

var (
	listProject string
	listSearch  string
	listFrom    string
	listTo      string
	listPreset  string
	listIcons   bool
	listSync    bool
)

func init() {
	listCmd.Flags().StringVarP(&listProject, "project", "P", "", "Only items in this project (name or id)")
	listCmd.Flags().StringVar(&listSearch, "search", "", "Substring search across title, notes, project, assignee and icon")
	listCmd.Flags().StringVar(&listFrom, "from", "", "Range start (YYYY-MM-DD)")
	listCmd.Flags().StringVar(&listTo, "to", "", "Range end (YYYY-MM-DD)")
	listCmd.Flags().StringVar(&listPreset, "preset", "", "Range preset (this-week, next-two-weeks, this-month, next-month)")
	listCmd.Flags().BoolVar(&listIcons, "icons", false, "Print the built-in icon catalogue and exit")
	listCmd.Flags().BoolVarP(&listSync, "sync", "s", false, "Pull from server before listing")
}

func runList(cmd *cobra.Command, args []string) error {
	if listIcons {
		printIconCatalogue()
		return nil
	}

	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.close()

	maybePull(sess, listSync)

	st := sess.store.Snapshot()
	filters := st.Filters

	if listProject != "" {
		id := ""
		for _, p := range st.Projects {
			if p.ID == listProject || strings.EqualFold(p.Name, listProject) {
				id = p.ID
				break
			}
		}
		if id == "" {
			return fmt.Errorf("project not found: %s", listProject)
		}
		filters.Mode = model.FilterInclude
		filters.ProjectIDs = []string{id}
	}
	if listSearch != "" {
		filters.Search = listSearch
	}
	if listPreset != "" {
		r, ok := dates.PresetRange(model.RangePreset(listPreset), time.Now())
		if !ok {
			return fmt.Errorf("unknown preset: %s", listPreset)
		}
		filters.Range = r
	}
	if listFrom != "" || listTo != "" {
		filters.Range = model.DateRange{Start: listFrom, End: listTo, Preset: model.PresetCustom}
	}

	items := selector.FilteredItems(st.Items, filters, st.Projects)
	if len(items) == 0 {
		fmt.Println("No items found. Add one with: gridplan add \"Your item\"")
		return nil
	}

	names := make(map[string]string, len(st.Projects))
	swatches := make(map[string]*color.Color, len(st.Projects))
	for _, p := range st.Projects {
		names[p.ID] = p.Name
		swatches[p.ID] = hexColor(p.Colour)
	}

	table := uitable.New()
	table.MaxColWidth = 40
	table.AddRow("DATE", "PROJECT", "TITLE", "ICON", "ASSIGNEE", "ID")

	for _, it := range items {
		project := names[it.ProjectID]
		if c := swatches[it.ProjectID]; c != nil {
			project = c.Sprint(project)
		}
		table.AddRow(it.Date, project, it.Title, it.Icon.DisplayLabel(), it.Assignee, shortID(it.ID))
	}

	fmt.Println(table)
	fmt.Printf("\n%d items\n", len(items))
	return nil
}

func printIconCatalogue() {
	table := uitable.New()
	table.AddRow("KEY", "LABEL")
	for _, def := range model.BuiltinIcons {
		table.AddRow(def.Key, def.Label)
	}
	fmt.Println(table)
}

// hexColor converts a #rrggbb colour into a printable terminal colour.
func hexColor(hex string) *color.Color {
	if len(hex) != 7 || hex[0] != '#' {
		return nil
	}
	var r, g, b int
	if _, err := fmt.Sscanf(hex[1:], "%02x%02x%02x", &r, &g, &b); err != nil {
		return nil
	}
	return color.RGB(r, g, b)
}
