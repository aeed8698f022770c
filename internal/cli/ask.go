package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/dstarikov/shipshape/internal/chat"
)

var (
	askJSON    bool
	askTimeout time.Duration
)

// askCmd answers a single question from the command line.
var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask a single question without running the server",
	Long: `Run one conversational turn and print the answer.

Examples:
  shipshape ask "which ship is bigger, Ever Given or Ever Ace?"
  shipshape ask --json "what is the fastest container ship?"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)

	askCmd.Flags().BoolVar(&askJSON, "json", false, "print the full response as JSON")
	askCmd.Flags().DurationVar(&askTimeout, "timeout", 2*time.Minute, "overall turn timeout")
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := strings.Join(args, " ")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, err := newLogger()
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), askTimeout)
	defer cancel()

	pipeline := chat.NewPipeline(cfg, logger)
	resp, err := pipeline.Handle(ctx, uuid.NewString(), question)
	if err != nil {
		return fmt.Errorf("answer failed: %w", err)
	}

	if resp.Denied {
		return fmt.Errorf("input rejected: %s", resp.Reason)
	}

	if askJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}

	fmt.Println(resp.Answer)

	if verbose && resp.Analysis != nil {
		fmt.Fprintln(os.Stderr)
		fmt.Fprintf(os.Stderr, "Attribute:  %s\n", resp.Analysis.Attribute)
		fmt.Fprintf(os.Stderr, "Confidence: %s\n", resp.Analysis.Confidence)
		for i, e := range resp.Analysis.Ranking {
			fmt.Fprintf(os.Stderr, "  %d. %s: %g %s\n", i+1, e.Name, e.Value, e.Unit)
		}
		for _, issue := range resp.Analysis.ValidationIssues {
			fmt.Fprintf(os.Stderr, "  ! %s\n", issue)
		}
	}

	return nil
}
