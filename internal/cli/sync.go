package cli

import (
	"fmt"

	"github.com/existflow/gridplan/internal/sync"
	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync planner with server",
	Long: `Sync your planner across devices. The whole planner document is
replaced on each direction; last write wins.

Commands:
  gridplan sync              # Push local planner to server
  gridplan sync --pull       # Replace local planner from server
  gridplan sync status       # Show sync status`,
	RunE: runSync,
}

var syncStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show sync status",
	RunE:  runSyncStatus,
}

var syncKeyCmd = &cobra.Command{
	Use:   "key",
	Short: "Set up end-to-end encryption",
	RunE:  runSyncKey,
}

var syncConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Configure sync settings",
	RunE:  runSyncConfig,
}

func init() {
	syncCmd.AddCommand(syncStatusCmd)
	syncCmd.AddCommand(syncKeyCmd)
	syncCmd.AddCommand(syncConfigCmd)

	syncCmd.Flags().Bool("pull", false, "Replace local planner from remote")

	syncConfigCmd.Flags().String("server", "", "Set server URL")
}

func runSync(cmd *cobra.Command, args []string) error {
	client, err := sync.NewClient()
	if err != nil {
		return err
	}
	if !client.IsLoggedIn() {
		return fmt.Errorf("not logged in, run 'gridplan auth login' first")
	}

	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.close()

	pull, _ := cmd.Flags().GetBool("pull")
	if pull {
		fmt.Println("⚠️  Replacing local planner from remote...")
		projects, items, version, err := client.Pull()
		if err != nil {
			return fmt.Errorf("sync failed: %w", err)
		}
		if version == 0 {
			fmt.Println("✓ Nothing on server yet")
			return nil
		}
		sess.store.ReplaceProjects(projects)
		sess.store.ReplaceItems(items)
		fmt.Printf("✓ Sync complete! Local planner replaced (server version %d)\n", version)
		return nil
	}

	fmt.Println("🔄 Pushing planner to server...")
	version, err := client.Push(sess.store.Snapshot())
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	fmt.Printf("✓ Sync complete! Server at version %d\n", version)
	return nil
}

func runSyncStatus(cmd *cobra.Command, args []string) error {
	client, err := sync.NewClient()
	if err != nil {
		return err
	}

	serverURL, userID, lastVersion := client.GetStatus()

	fmt.Printf("Server:       %s\n", serverURL)
	if client.IsLoggedIn() {
		fmt.Printf("User ID:      %s\n", userID)
		fmt.Printf("Last Version: %d\n", lastVersion)
		if client.HasEncryptionKey() {
			fmt.Println("Encryption:   ✓ enabled")
		} else {
			fmt.Println("Encryption:   not set up")
		}
		fmt.Println("Status:       ✓ Logged in")
	} else {
		fmt.Println("Status:       Not logged in")
	}

	return nil
}

func runSyncKey(cmd *cobra.Command, args []string) error {
	client, err := sync.NewClient()
	if err != nil {
		return err
	}

	if client.HasEncryptionKey() {
		fmt.Println("Encryption is already set up.")
		return nil
	}

	password := promptSecret("Enter encryption password")
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}

	fingerprint, err := client.SetupEncryption(password)
	if err != nil {
		return err
	}

	fmt.Println("\n✓ Encryption key generated!")
	fmt.Println("\n⚠️  IMPORTANT: Use the same password on other devices to decrypt.")
	fmt.Printf("\nKey fingerprint: %s\n", fingerprint)
	return nil
}

func runSyncConfig(cmd *cobra.Command, args []string) error {
	client, err := sync.NewClient()
	if err != nil {
		return err
	}

	server, _ := cmd.Flags().GetString("server")
	if server != "" {
		if err := client.SetServer(server); err != nil {
			return err
		}
		fmt.Printf("✓ Server set to: %s\n", server)
	} else {
		// Just show config
		url, _, _ := client.GetStatus()
		fmt.Printf("Server: %s\n", url)
	}

	return nil
}
