package cli

import (
	"fmt"
	"strings"

	"github.com/existflow/gridplan/internal/store"
	"github.com/existflow/gridplan/internal/sync"
	"github.com/spf13/cobra"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear all items and projects",
	Long: `Reset the planner to its initial state: a single default project,
the reserved Archived project, and no items.

By default only the local database is reset. With --remote the emptied
planner is also pushed to the sync server, replacing the remote copy.`,
	RunE: runClear,
}

func init() {
	clearCmd.Flags().Bool("remote", false, "Also replace remote data on the sync server")
	clearCmd.Flags().Bool("force", false, "Do not ask for confirmation")
}

func runClear(cmd *cobra.Command, args []string) error {
	remote, _ := cmd.Flags().GetBool("remote")
	force, _ := cmd.Flags().GetBool("force")

	if !force {
		fmt.Printf("Are you sure you want to clear the planner? (y/N): ")
		var response string
		_, _ = fmt.Scanln(&response)
		if strings.ToLower(response) != "y" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.close()

	fmt.Println("🧹 Clearing local planner...")
	fresh := store.New(store.State{}).Snapshot()
	sess.store.Restore(fresh)
	fmt.Println("Local planner cleared.")

	if remote {
		client, err := sync.NewClient()
		if err != nil {
			return err
		}
		if !client.IsLoggedIn() {
			fmt.Println("Skipping remote clear: not logged in.")
			return nil
		}

		fmt.Println("🌐 Replacing remote planner...")
		if _, err := client.Push(sess.store.Snapshot()); err != nil {
			return fmt.Errorf("failed to clear remote data: %w", err)
		}
		fmt.Println("Remote planner cleared.")
	}

	return nil
}
