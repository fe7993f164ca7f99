// ABOUTME: Root CLI command with global flags shared by all subcommands
// ABOUTME: Subcommands cover the HTTP gateway, MCP server, stores, and one-shot asks
package commands

import (
	"github.com/spf13/cobra"
)

var (
	verbose bool
	quiet   bool
	cfgFile string
)

// NewRootCmd creates the root command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "voicerelay",
		Short: "Agent gateway with supervisor routing and audio ingestion",
		Long: `voicerelay is an LLM agent gateway.

It normalizes text and audio input, classifies each request onto a direct
or retrieval-augmented sub-agent, and streams responses over a fixed event
protocol. Vector stores back the retrieval path.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-essential output")
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to YAML config file")

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewMCPCmd())
	cmd.AddCommand(NewAskCmd())
	cmd.AddCommand(NewStoreCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}
