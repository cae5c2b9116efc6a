package cli

import (
	"fmt"
	"strings"

	"github.com/existflow/gridplan/internal/colour"
	"github.com/existflow/gridplan/internal/model"
	"github.com/existflow/gridplan/internal/selector"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage projects",
	Long:  `Create, list, rename, and delete the projects items are organized into.`,
}

var projectNewCmd = &cobra.Command{
	Use:   "new [name]",
	Short: "Create a new project",
	Long: `Create a new project. Adding a project whose name already exists
(case-insensitively) is a no-op and reports the existing project.

Examples:
  gridplan project new "Marketing"
  gridplan project new "Personal" --colour "#F06595"`,
	Args: cobra.ExactArgs(1),
	RunE: runProjectNew,
}

var projectListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all projects",
	RunE:    runProjectList,
}

var projectRenameCmd = &cobra.Command{
	Use:   "rename [project] [new-name]",
	Short: "Rename a project",
	Args:  cobra.ExactArgs(2),
	RunE:  runProjectRename,
}

var projectDeleteCmd = &cobra.Command{
	Use:     "delete [project]",
	Aliases: []string{"rm"},
	Short:   "Delete a project",
	Long: `Delete a project. Its items are moved to the reserved Archived
project rather than removed. The Archived project itself cannot be deleted.`,
	Args: cobra.ExactArgs(1),
	RunE: runProjectDelete,
}

var (
	projectColour      string
	projectDeleteForce bool
)

func init() {
	projectNewCmd.Flags().StringVarP(&projectColour, "colour", "c", "", "Project colour (hex, derived from the name when empty)")
	projectDeleteCmd.Flags().BoolVarP(&projectDeleteForce, "force", "f", false, "Do not ask for confirmation")

	projectCmd.AddCommand(projectNewCmd)
	projectCmd.AddCommand(projectListCmd)
	projectCmd.AddCommand(projectRenameCmd)
	projectCmd.AddCommand(projectDeleteCmd)
}

func runProjectNew(cmd *cobra.Command, args []string) error {
	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.close()

	name := strings.TrimSpace(args[0])
	if name == "" {
		return fmt.Errorf("project name required")
	}

	c := projectColour
	if c == "" {
		c = colour.Derive(name)
	}

	before := len(sess.store.Snapshot().Projects)
	id := sess.store.AddProject(name, c)

	if len(sess.store.Snapshot().Projects) == before {
		fmt.Printf("Project already exists: %s (id: %s)\n", name, shortID(id))
		return nil
	}

	fmt.Printf("✓ Created project: %s (id: %s)\n", name, shortID(id))
	return nil
}

func runProjectList(cmd *cobra.Command, args []string) error {
	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.close()

	st := sess.store.Snapshot()
	usage := selector.ProjectUsage(st.Items)

	table := uitable.New()
	table.AddRow("ID", "NAME", "COLOUR", "ITEMS")

	total := 0
	for _, p := range st.Projects {
		name := p.Name
		if c := hexColor(p.Colour); c != nil {
			name = c.Sprint(name)
		}
		table.AddRow(shortID(p.ID), name, p.Colour, usage[p.ID])
		total += usage[p.ID]
	}

	fmt.Println(table)
	fmt.Printf("\n%d projects, %d items\n", len(st.Projects), total)
	return nil
}

func runProjectRename(cmd *cobra.Command, args []string) error {
	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.close()

	p, err := lookupProject(sess, args[0])
	if err != nil {
		return err
	}
	if p.IsArchived() {
		return fmt.Errorf("the Archived project cannot be renamed")
	}

	sess.store.UpdateProject(p.ID, args[1], p.Colour)
	fmt.Printf("✓ Renamed %q to %q\n", p.Name, args[1])
	return nil
}

func runProjectDelete(cmd *cobra.Command, args []string) error {
	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.close()

	p, err := lookupProject(sess, args[0])
	if err != nil {
		return err
	}
	if p.IsArchived() {
		return fmt.Errorf("the Archived project cannot be deleted")
	}

	st := sess.store.Snapshot()
	count := selector.ProjectUsage(st.Items)[p.ID]

	if !projectDeleteForce {
		fmt.Printf("Delete project %q? %d item(s) will move to Archived. (y/N): ", p.Name, count)
		var response string
		_, _ = fmt.Scanln(&response)
		if strings.ToLower(response) != "y" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	sess.store.DeleteProject(p.ID)
	fmt.Printf("🗑️  Deleted project: %s (%d item(s) archived)\n", p.Name, count)
	return nil
}

// lookupProject resolves a project by id, id prefix, or case-insensitive name.
func lookupProject(sess *session, ref string) (model.Project, error) {
	st := sess.store.Snapshot()

	for _, p := range st.Projects {
		if p.ID == ref || strings.EqualFold(p.Name, ref) {
			return p, nil
		}
	}
	for _, p := range st.Projects {
		if strings.HasPrefix(p.ID, ref) {
			return p, nil
		}
	}
	return model.Project{}, fmt.Errorf("project not found: %s", ref)
}
