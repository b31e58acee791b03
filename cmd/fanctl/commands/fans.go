package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"fanctl/internal/hwmon"
)

var fansCmd = &cobra.Command{
	Use:   "fans",
	Short: "List fan tach readings (RPM)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctl, err := hwmon.OpenController(cfg.Hwmon.Root, cfg.Hwmon.PWMChips)
		if err != nil {
			return err
		}
		fans, err := ctl.Fans()
		if err != nil {
			return err
		}
		for _, f := range fans {
			fmt.Printf("Fan%d: %d RPM\n", f.Index, f.RPM)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fansCmd)
}
