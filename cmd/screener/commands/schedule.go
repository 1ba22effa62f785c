package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ztrader/etfscreener/internal/scheduler"
	"github.com/ztrader/etfscreener/internal/scheduler/jobs"
	"github.com/ztrader/etfscreener/internal/selector"
)

// scheduleCmd represents the schedule command
var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run the screening scheduler daemon",
	Long: `Starts the scheduler and registers the daily screening job.

The job runs on $SCREEN_SCHEDULE (cron with seconds, default "0 0 18 * * *")
and screens the most recent snapshot date each time.

Example:
  go run ./cmd/screener schedule
  go run ./cmd/screener schedule --now`,
	RunE: runSchedule,
}

var scheduleNow bool

func init() {
	rootCmd.AddCommand(scheduleCmd)

	// Flags
	scheduleCmd.Flags().BoolVar(&scheduleNow, "now", false, "also run the screening job immediately")
}

func runSchedule(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Close()

	sched := scheduler.New(log)

	job := jobs.NewScreenJob(screeningParams(cfg), selector.Default(), cfg.ScreenSchedule, log)
	if err := sched.AddJob(job); err != nil {
		return fmt.Errorf("register job: %w", err)
	}

	sched.Start()

	fmt.Println("Scheduler started")
	fmt.Println("Registered jobs:")
	for _, jobName := range sched.GetAllJobs() {
		fmt.Printf("  - %s\n", jobName)
	}
	fmt.Println("Press Ctrl+C to stop")

	if scheduleNow {
		if err := sched.RunJob(job.Name()); err != nil {
			return fmt.Errorf("run job: %w", err)
		}
	}

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	fmt.Println("Shutting down scheduler...")
	sched.Stop()

	return nil
}
