package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"fanctl/internal/hwmon"
)

var modeCmd = &cobra.Command{
	Use:   "mode <index> <manual|auto>",
	Short: "Set a PWM channel's control mode",
	Long: `mode hands a channel to manual (external) or auto (firmware/kernel)
control. auto restores the BIOS default behavior.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := parsePWMIndex(args[0])
		if err != nil {
			return err
		}
		// Validate before locating the chip: an invalid mode must fail
		// without touching anything.
		mode, err := hwmon.ParseMode(args[1])
		if err != nil {
			return err
		}

		ctl, err := hwmon.OpenController(cfg.Hwmon.Root, cfg.Hwmon.PWMChips)
		if err != nil {
			return err
		}
		if err := ctl.SetMode(index, mode); err != nil {
			return err
		}
		fmt.Printf("Set pwm%d mode to %s\n", index, mode)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(modeCmd)
}
