package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"fanctl/internal/hwmon"
)

var pwmCmd = &cobra.Command{
	Use:   "pwm",
	Short: "List PWM output channels and their modes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctl, err := hwmon.OpenController(cfg.Hwmon.Root, cfg.Hwmon.PWMChips)
		if err != nil {
			return err
		}
		states, err := ctl.PWMs()
		if err != nil {
			return err
		}
		for _, s := range states {
			fmt.Printf("PWM%d: value=%d, ~%.1f%%, mode=%s\n", s.Index, s.Value, s.Percent, s.Mode)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pwmCmd)
}
