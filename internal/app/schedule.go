package app

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"
)

// RunFlow orchestrates the collection loop: trigger → run → done → wait →
// trigger. With RunAt unset it runs once and returns; otherwise it re-runs
// daily at the configured UTC time until a signal arrives. A signal received
// mid-run lets the current run finish before exiting.
func RunFlow(cfg *Config, runOnce func()) {
	trigger := make(chan struct{}, 1)
	done := make(chan struct{}, 1)
	go func() {
		for range trigger {
			runOnce()
			done <- struct{}{}
		}
	}()
	trigger <- struct{}{}

	if cfg.RunAt == "" {
		<-done
		return
	}
	hour, min, err := parseRunAt(cfg.RunAt)
	if err != nil {
		slog.Error("invalid RUN_AT, running once", "value", cfg.RunAt, "error", err)
		<-done
		return
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-done:
			nextRun := nextRunTime(time.Now().UTC(), hour, min)
			slog.Info("run done, timer waiting", "until", nextRun.Format("2006-01-02 15:04"))
			timer := time.NewTimer(time.Until(nextRun))
			select {
			case <-timer.C:
				trigger <- struct{}{}
			case sig := <-signals:
				slog.Info("received signal, stopping", "sig", sig)
				timer.Stop()
				return
			}
		case sig := <-signals:
			slog.Info("received signal, waiting for current run", "sig", sig)
			<-done
			return
		}
	}
}

func parseRunAt(s string) (hour, min int, err error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("want HH:MM, got %q", s)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("bad hour in %q", s)
	}
	min, err = strconv.Atoi(parts[1])
	if err != nil || min < 0 || min > 59 {
		return 0, 0, fmt.Errorf("bad minute in %q", s)
	}
	return hour, min, nil
}

func nextRunTime(now time.Time, hour, min int) time.Time {
	target := time.Date(now.Year(), now.Month(), now.Day(), hour, min, 0, 0, time.UTC)
	if now.Before(target) {
		return target
	}
	return target.AddDate(0, 0, 1)
}
