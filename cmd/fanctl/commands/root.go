// Package commands provides the fanctl command-line interface.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"fanctl/internal/config"
	"fanctl/internal/hwmon"
)

var (
	cfgPath string
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:   "fanctl",
	Short: "Temperature and fan control for nct6775-family Super-I/O chips",
	Long: `fanctl reads temperature sensors and drives PWM fan outputs through
the Linux hwmon sysfs interface. It targets boards whose fan controller
is exposed by the nct6775 kernel module (modprobe nct6775).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgPath)
		if err != nil {
			return err
		}
		// Advisory only: commands still run and fail with a precise
		// error if the attributes are really absent.
		if !hwmon.ModuleLoaded(hwmon.DefaultKernelModule) {
			fmt.Fprintf(os.Stderr, "warning: kernel module %q is not loaded\n", hwmon.DefaultKernelModule)
			fmt.Fprintf(os.Stderr, "run: sudo modprobe %s\n", hwmon.DefaultKernelModule)
		}
		return nil
	},
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to YAML config (optional)")
}
