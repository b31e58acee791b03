package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"fanctl/internal/hwmon"
)

var tempCmd = &cobra.Command{
	Use:   "temp",
	Short: "Print the current CPU temperature",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tempC, err := hwmon.ReadTemperatureC(cfg.Hwmon.Root, cfg.Hwmon.TempSensor)
		if err != nil {
			return err
		}
		fmt.Printf("Current CPU Temperature: %.1f °C\n", tempC)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tempCmd)
}
