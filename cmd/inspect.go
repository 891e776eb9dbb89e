package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jsphweid/hovertone/chord"
	"github.com/jsphweid/hovertone/midi"
	"github.com/jsphweid/hovertone/model"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <recording.mid>",
	Short: "Shows which chords a recording contains",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s, err := midi.ReadMidiFile(args[0])
		cobra.CheckErr(err)
		inspect(os.Stdout, chord.DefaultBank(), chord.SoundingSets(s))
	},
}

func inspect(w io.Writer, bank *chord.Bank, sets []model.Snapshot) {
	for _, set := range sets {
		names := make([]string, len(set.Notes))
		for i, n := range set.Notes {
			names[i] = chord.PitchName(n)
		}
		match := "-"
		if i, ok := bank.Lookup(set.Notes); ok {
			c, _ := bank.Resolve(i)
			match = fmt.Sprintf("#%d %s", i, c.Name)
		}
		fmt.Fprintf(w, "%9.3fs  %-24s %s\n", float64(set.Offset)/1e6, strings.Join(names, " "), match)
	}
}
