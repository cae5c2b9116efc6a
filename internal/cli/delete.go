package cli

import (
	"fmt"
	"strings"

	"github.com/existflow/gridplan/internal/config"
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete [item-id]",
	Aliases: []string{"rm"},
	Short:   "Delete a planner item",
	Long: `Delete an item by id. Short id prefixes are accepted when unambiguous.
Inside the TUI the last deletion can be undone with 'u'.`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

var (
	deleteForce bool
	deleteSync  bool
)

func init() {
	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "Do not ask for confirmation")
	deleteCmd.Flags().BoolVarP(&deleteSync, "sync", "s", false, "Push to server after deleting")
}

func runDelete(cmd *cobra.Command, args []string) error {
	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.close()

	id, title, err := findItem(sess, args[0])
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		cfg = config.DefaultConfig()
	}

	if cfg.ConfirmDelete && !deleteForce {
		fmt.Printf("Delete %q? (y/N): ", title)
		var response string
		_, _ = fmt.Scanln(&response)
		if strings.ToLower(response) != "y" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	sess.store.DeleteItem(id)
	maybePush(sess, deleteSync)

	fmt.Printf("🗑️  Deleted: %q\n", title)
	return nil
}

// findItem resolves a full or prefix item id against the current state.
func findItem(sess *session, ref string) (string, string, error) {
	st := sess.store.Snapshot()

	var id, title string
	matches := 0
	for _, it := range st.Items {
		if it.ID == ref {
			return it.ID, it.Title, nil
		}
		if strings.HasPrefix(it.ID, ref) {
			id, title = it.ID, it.Title
			matches++
		}
	}

	switch matches {
	case 0:
		return "", "", fmt.Errorf("item not found: %s", ref)
	case 1:
		return id, title, nil
	default:
		return "", "", fmt.Errorf("ambiguous item id: %s matches %d items", ref, matches)
	}
}
