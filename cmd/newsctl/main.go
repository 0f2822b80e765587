package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"

	"newsapi/pkg/newsclient"
)

// getEnv returns the value of an environment variable or a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	client := newsclient.New(getEnv("NEWSCTL_API_BASE", "http://localhost:8080"))
	os.Exit(run(context.Background(), client, os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one command line and returns the process exit code.
func run(ctx context.Context, client *newsclient.Client, args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(client)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd(client *newsclient.Client) *cobra.Command {
	root := &cobra.Command{
		Use:   "newsctl",
		Short: "News CMS terminal client",
		Long: `newsctl lists, creates and edits news items through the news API.

Environment Variables:
  NEWSCTL_API_BASE  API base URL (default: http://localhost:8080)

Example usage:
  newsctl list -q election          # Search news
  newsctl create --title ... --image photo.png
  newsctl update 4 --category Sports
  newsctl seed                      # Create the sample items`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.ErrOrStderr(), cmd.UsageString())
			return errors.New("a command is required")
		},
	}

	c := &cli{client: client}
	root.AddCommand(
		c.listCmd(),
		c.getCmd(),
		c.createCmd(),
		c.updateCmd(),
		c.setImageCmd(),
		c.clearImageCmd(),
		c.imageCmd(),
		c.deleteCmd(),
		c.seedCmd(),
	)
	return root
}
