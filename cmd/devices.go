// cmd/devices.go
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"konamid/internal/gamepad"
	"konamid/internal/keyboard"
	"konamid/internal/playback"
)

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List playback and input devices",
	RunE:  listDevices,
}

func init() {
	rootCmd.AddCommand(devicesCmd)
}

func listDevices(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	infos, err := playback.ListDevices()
	if err != nil {
		fmt.Fprintf(out, "Playback devices unavailable: %v\n", err)
	} else {
		fmt.Fprintf(out, "Playback devices (%d):\n", len(infos))
		for i, d := range infos {
			fmt.Fprintf(out, "  [%d] %s\n", i, d.Name())
		}
	}

	keyboards := keyboard.Discover()
	fmt.Fprintf(out, "Keyboards (%d):\n", len(keyboards))
	for _, path := range keyboards {
		fmt.Fprintf(out, "  %s\n", path)
	}

	controllers := gamepad.Discover()
	fmt.Fprintf(out, "Controllers (%d):\n", len(controllers))
	for _, index := range controllers {
		fmt.Fprintf(out, "  js%d\n", index)
	}

	return nil
}
