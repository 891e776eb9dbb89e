package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// logger is shared by every command. It is replaced by initLogger before
// any command runs.
var logger = slog.Default()

var debug bool

var rootCmd = &cobra.Command{
	Use:   "hovertone",
	Short: "Play chords by moving the pointer over an image",
	Long: `hovertone maps pointer movement over an image to music. The vertical
position picks a chord, the horizontal position sets reverb and chorus.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initLogger(debug)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "log every note and controller change")
}

func initLogger(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level:     level,
		AddSource: debug,
	})
	logger = slog.New(h)
	slog.SetDefault(logger)
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
