package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
)

func init() {
	rootCmd.AddCommand(portsCmd)
}

var portsCmd = &cobra.Command{
	Use:   "ports",
	Short: "Lists MIDI output ports",
	Run: func(cmd *cobra.Command, args []string) {
		drv, err := rtmididrv.New()
		cobra.CheckErr(err)
		defer drv.Close()

		outs, err := drv.Outs()
		cobra.CheckErr(err)
		if len(outs) == 0 {
			fmt.Println("no MIDI output ports found")
			return
		}
		for i, out := range outs {
			fmt.Printf("%d: %s\n", i, out.String())
		}
	},
}
