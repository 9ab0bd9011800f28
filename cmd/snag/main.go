// snag: send the current selection to your task inbox.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"go.klb.dev/snag/internal/logging"
)

// Version is set at build time via -ldflags "-X main.Version=x.y.z".
var Version = "dev"

func main() {
	root := &cobra.Command{
		Use:   "snag",
		Short: "Send the current selection to your task inbox",
		Long: `snag captures whatever text is selected in the foreground application —
no explicit copy needed — and creates a task from it, leaving your
clipboard exactly as it was.

Run "snag agent" to register the global hotkey (default ctrl+shift+s).
Use "snag grab" for a one-shot capture, "snag send" to create a task from
explicit text, and "snag token set" to store your API token.

Config file search order (first found wins):
  /etc/snag/snag.toml
  $HOME/.config/snag/snag.toml
  path supplied via --config

All flags can be set via SNAG_<FLAG> env vars or config-file keys.`,
		SilenceUsage: true,
	}

	root.AddCommand(
		newAgentCmd(),
		newGrabCmd(),
		newSendCmd(),
		newTokenCmd(),
		newStatusCmd(),
		newVersionCmd(),
	)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("snag %s\n", Version)
		},
	}
}

// resolveLogging sets up the global slog logger after flags are parsed.
func resolveLogging(interactive bool, formatStr, levelStr string) {
	format := logging.ParseFormat(formatStr)
	level := logging.ParseLevel(levelStr)
	if levelStr == "" {
		if interactive {
			level = logging.ParseLevel("debug")
		} else {
			level = logging.ParseLevel("info")
		}
	}
	logging.Setup(format, level)
}
