package cmd

import (
	"fmt"
	"strings"

	"github.com/jsphweid/hovertone/chord"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(chordsCmd)
}

var chordsCmd = &cobra.Command{
	Use:   "chords",
	Short: "Lists the chord bank, top of the surface first",
	Run: func(cmd *cobra.Command, args []string) {
		bank := chord.DefaultBank()
		for i := 0; i < bank.Len(); i++ {
			c, err := bank.Resolve(i)
			cobra.CheckErr(err)
			notes, err := chord.Notes(c)
			cobra.CheckErr(err)
			fmt.Printf("%d  %-18s %-20s %v\n", i, c.Name, strings.Join(c.Pitches, " "), notes)
		}
		fmt.Printf("durations: %s\n", strings.Join(chord.DefaultDurations(), " "))
	},
}
