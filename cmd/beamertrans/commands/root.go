// ABOUTME: Root command wiring global flags and all subcommands
// ABOUTME: Defines the Execute entry point used by main
package commands

import (
	"github.com/spf13/cobra"
)

// Global flags shared by all commands
var (
	verbose bool
	quiet   bool
)

const banner = `
██████╗ ███████╗ █████╗ ███╗   ███╗███████╗██████╗
██╔══██╗██╔════╝██╔══██╗████╗ ████║██╔════╝██╔══██╗
██████╔╝█████╗  ███████║██╔████╔██║█████╗  ██████╔╝
██╔══██╗██╔══╝  ██╔══██║██║╚██╔╝██║██╔══╝  ██╔══██╗
██████╔╝███████╗██║  ██║██║ ╚═╝ ██║███████╗██║  ██║
╚═════╝ ╚══════╝╚═╝  ╚═╝╚═╝     ╚═╝╚══════╝╚═╝  ╚═╝
                                    t r a n s`

// NewRootCmd creates the root command with all subcommands attached
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "beamertrans",
		Short: "Translate LaTeX Beamer decks from English to Chinese",
		Long: banner + `

Translate LaTeX Beamer slide decks from English to Chinese through any
OpenAI-compatible chat API. Frames and section titles are translated in
size-bounded batches; LaTeX commands, math, and code blocks are kept
verbatim and the document structure survives byte for byte.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	cmd.AddCommand(NewTranslateCmd())
	cmd.AddCommand(NewMCPCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
