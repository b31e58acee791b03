package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"fanctl/internal/hwmon"
)

var setCmd = &cobra.Command{
	Use:   "set <index> <value>",
	Short: "Set a PWM channel to a duty value (0-255)",
	Long: `Set switches the channel to manual mode and writes the duty value.
The enable write happens first; the chip ignores duty writes while the
channel is under automatic control.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := parsePWMIndex(args[0])
		if err != nil {
			return err
		}
		value, err := strconv.ParseUint(args[1], 10, 8)
		if err != nil {
			return fmt.Errorf("value must be an integer 0-255, got %q", args[1])
		}

		ctl, err := hwmon.OpenController(cfg.Hwmon.Root, cfg.Hwmon.PWMChips)
		if err != nil {
			return err
		}
		percent, err := ctl.SetPWM(index, int(value))
		if err != nil {
			return err
		}
		fmt.Printf("Set pwm%d to %d (~%.1f%%)\n", index, value, percent)
		return nil
	},
}

func parsePWMIndex(s string) (int, error) {
	index, err := strconv.ParseUint(s, 10, 8)
	if err != nil || index < 1 {
		return 0, fmt.Errorf("index must be a positive integer, got %q", s)
	}
	return int(index), nil
}

func init() {
	rootCmd.AddCommand(setCmd)
}
