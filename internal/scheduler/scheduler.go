package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"subaudit/internal/usecase"
)

// Scheduler fires the daily renewal run at the configured wall-clock time
// in the configured timezone. It invokes the exact same ProcessDue the
// manual trigger endpoint calls.
type Scheduler struct {
	cron    *cron.Cron
	renewal *usecase.Renewal
	loc     *time.Location
	log     *slog.Logger
}

// New builds a scheduler firing daily at runAt ("HH:MM") in loc
func New(renewal *usecase.Renewal, runAt string, loc *time.Location, log *slog.Logger) (*Scheduler, error) {
	spec, err := CronSpec(runAt)
	if err != nil {
		return nil, err
	}

	s := &Scheduler{
		cron:    cron.New(cron.WithLocation(loc)),
		renewal: renewal,
		loc:     loc,
		log:     log,
	}
	if _, err := s.cron.AddFunc(spec, s.run); err != nil {
		return nil, fmt.Errorf("schedule daily run: %w", err)
	}
	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts the timer; an in-flight run finishes on its own
func (s *Scheduler) Stop() {
	s.cron.Stop()
}

func (s *Scheduler) run() {
	today := time.Now().In(s.loc)
	res, err := s.renewal.ProcessDue(context.Background(), today)
	if err != nil {
		s.log.Error("daily renewal run failed", slog.String("error", err.Error()))
		return
	}
	s.log.Info("daily renewal run complete",
		slog.Int("processed", res.TotalProcessed),
		slog.Int("renewed", res.RenewedCount))
}

// CronSpec converts an "HH:MM" wall-clock time into a daily cron spec
func CronSpec(runAt string) (string, error) {
	parts := strings.SplitN(runAt, ":", 2)
	if len(parts) != 2 {
		return "", fmt.Errorf("invalid run_at %q, want HH:MM", runAt)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return "", fmt.Errorf("invalid run_at hour %q", parts[0])
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return "", fmt.Errorf("invalid run_at minute %q", parts[1])
	}
	return fmt.Sprintf("%d %d * * *", minute, hour), nil
}
