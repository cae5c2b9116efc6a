package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/existflow/gridplan/internal/sync"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the sync account",
	Long: `Manage the account your planner syncs through.

Commands:
  gridplan auth register     # Create an account
  gridplan auth login        # Log in with username and password
  gridplan auth login --email you@example.com   # Passwordless magic link
  gridplan auth logout       # Clear the local session`,
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the sync server",
	RunE:  runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and clear the local session",
	RunE:  runLogout,
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a sync account",
	RunE:  runRegister,
}

func init() {
	authCmd.AddCommand(loginCmd)
	authCmd.AddCommand(logoutCmd)
	authCmd.AddCommand(registerCmd)

	loginCmd.Flags().String("email", "", "Request a magic link for this email")
	loginCmd.Flags().String("token", "", "Verify a magic link token directly")
}

func promptLine(label string) string {
	fmt.Print(label + ": ")
	line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	return strings.TrimSpace(line)
}

func promptSecret(label string) string {
	fmt.Print(label + ": ")
	secret, _ := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	return string(secret)
}

func runLogin(cmd *cobra.Command, args []string) error {
	client, err := sync.NewClient()
	if err != nil {
		return err
	}

	email, _ := cmd.Flags().GetString("email")
	token, _ := cmd.Flags().GetString("token")

	switch {
	case token != "":
		if err := client.VerifyMagicLink(token); err != nil {
			return err
		}
	case email != "":
		if err := magicLinkLogin(client, email); err != nil {
			return err
		}
	default:
		username := promptLine("Username")
		password := promptSecret("Password")

		fmt.Println("🔄 Logging in...")
		if err := client.Login(username, password); err != nil {
			return err
		}
	}

	fmt.Println("✅ Logged in. Run 'gridplan sync' to push your planner.")
	if !client.HasEncryptionKey() {
		fmt.Println("   Tip: 'gridplan sync key' enables end-to-end encryption.")
	}
	return nil
}

// magicLinkLogin requests a magic link and completes the login with the
// token the user pastes back.
func magicLinkLogin(client *sync.Client, email string) error {
	fmt.Printf("🔄 Requesting magic link for %s...\n", email)
	devToken, err := client.RequestMagicLink(email)
	if err != nil {
		return err
	}

	fmt.Println("📬 Magic link requested. Check your email (or the server log in dev).")
	if devToken != "" {
		fmt.Printf("🔑 Development token: %s\n", devToken)
	}

	inputToken := promptLine("Magic link token")
	if inputToken == "" {
		return fmt.Errorf("no token entered")
	}

	return client.VerifyMagicLink(inputToken)
}

func runLogout(cmd *cobra.Command, args []string) error {
	client, err := sync.NewClient()
	if err != nil {
		return err
	}

	if !client.IsLoggedIn() {
		fmt.Println("Not logged in.")
		return nil
	}

	if err := client.Logout(); err != nil {
		return err
	}

	fmt.Println("✅ Logged out. Your local planner is untouched.")
	return nil
}

func runRegister(cmd *cobra.Command, args []string) error {
	client, err := sync.NewClient()
	if err != nil {
		return err
	}

	username := promptLine("Username")
	email := promptLine("Email")
	password := promptSecret("Password")
	confirm := promptSecret("Confirm password")

	if password != confirm {
		return fmt.Errorf("passwords do not match")
	}
	// Same rule the server enforces; fail before the round trip.
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}

	fmt.Println("🔄 Creating account...")
	if err := client.Register(username, email, password); err != nil {
		return err
	}

	fmt.Println("✅ Account created and logged in.")
	fmt.Println("   Run 'gridplan sync' to push your planner, or 'gridplan sync key' to enable encryption first.")
	return nil
}
