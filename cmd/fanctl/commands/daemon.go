package commands

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"fanctl/internal/fancontrol"
	"fanctl/internal/web"
)

var daemonPWMIndex int

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Run the continuous fan control loop",
	Long: `daemon samples the CPU temperature, maps it through the configured
curve and applies the duty to one PWM channel, once per interval. The
loop has no crash resilience: the first failed read or write stops the
daemon with a non-zero exit; restart it externally (e.g. systemd).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		lock, err := fancontrol.AcquireLock(cfg.Daemon.LockFile)
		if err != nil {
			return err
		}
		defer lock.Release()

		pwmIndex := cfg.Daemon.PWMIndex
		if daemonPWMIndex > 0 {
			pwmIndex = daemonPWMIndex
		}

		svc := fancontrol.New(fancontrol.Config{
			Root:       cfg.Hwmon.Root,
			TempSensor: cfg.Hwmon.TempSensor,
			PWMChips:   cfg.Hwmon.PWMChips,
			PWMIndex:   pwmIndex,
			Interval:   time.Duration(cfg.Daemon.Interval),
			Curve:      cfg.Curve.Curve(),
			Backend:    cfg.Daemon.Backend,
			GPIOPin:    cfg.Daemon.GPIOPin,
		})

		if cfg.Daemon.StatusAddr != "" {
			go func() {
				if err := web.Serve(ctx, cfg.Daemon.StatusAddr, web.Handler(svc)); err != nil {
					log.Printf("status server stopped: %v", err)
					cancel()
				}
			}()
			log.Printf("status api on http://%s/api/status", cfg.Daemon.StatusAddr)
		}

		log.Printf("starting fan control loop: backend=%s pwm%d interval=%s",
			cfg.Daemon.Backend, pwmIndex, time.Duration(cfg.Daemon.Interval))

		if err := svc.Run(ctx); err != nil {
			return err
		}
		log.Printf("fan control loop stopped")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(daemonCmd)
	daemonCmd.Flags().IntVarP(&daemonPWMIndex, "pwm-index", "p", 0, "PWM channel to drive (overrides config)")
}
