package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/existflow/gridplan/internal/assistant"
	"github.com/existflow/gridplan/internal/config"
	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask the planning assistant",
	Long: `Ask a question about your planner. A summary of the current planner
state is sent along with the question to the configured assistant endpoint.

Set the endpoint with the assistant_url config key or GRIDPLAN_ASSISTANT_URL,
and the API key with ` + assistant.APIKeyEnv + `.

Examples:
  gridplan ask "What is on my plate this week?"
  gridplan ask --context "Which project is the busiest?"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

var askShowContext bool

func init() {
	askCmd.Flags().BoolVar(&askShowContext, "context", false, "Also print the planner summary sent to the assistant")
}

func runAsk(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		cfg = config.DefaultConfig()
	}

	client := assistant.NewClient(cfg.AssistantURL, cfg.AssistantModel)
	if !client.Enabled() {
		return fmt.Errorf("no assistant endpoint configured, set assistant_url in config or GRIDPLAN_ASSISTANT_URL")
	}

	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.close()

	snapshot := assistant.BuildSnapshot(sess.store.Snapshot())

	if askShowContext {
		fmt.Println(snapshot.Describe())
		fmt.Println(strings.Repeat("─", 60))
	}

	question := strings.Join(args, " ")
	fmt.Println("🤔 Thinking...")

	answer, err := client.Ask(snapshot, question)
	if err != nil {
		return fmt.Errorf("assistant request failed: %w", err)
	}

	rendered, err := glamour.Render(answer, "dark")
	if err != nil {
		fmt.Println(answer)
		return nil
	}
	fmt.Print(rendered)
	return nil
}
