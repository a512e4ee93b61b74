package scheduler

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ReportRunner is the job executed by the scheduler once a day
type ReportRunner interface {
	Run(ctx context.Context) error
}

// Config holds daily report scheduler configuration
type Config struct {
	// CronSchedule is a cron expression "minute hour * * *"; only the minute
	// and hour fields are honored
	CronSchedule string
	// JobTimeout bounds a single report run
	JobTimeout time.Duration
	// CheckInterval is how often the loop checks the clock
	CheckInterval time.Duration
}

// DailyReportScheduler fires the daily inventory report at a fixed local time,
// at most once per calendar day.
type DailyReportScheduler struct {
	hour          int
	minute        int
	jobTimeout    time.Duration
	checkInterval time.Duration
	runner        ReportRunner
	logger        *zap.Logger

	cancel      context.CancelFunc
	wg          sync.WaitGroup
	mu          sync.Mutex
	isRunning   bool
	lastRunDate string
}

// NewDailyReportScheduler creates a new scheduler for the given runner
func NewDailyReportScheduler(cfg Config, runner ReportRunner, logger *zap.Logger) (*DailyReportScheduler, error) {
	hour, minute, err := ParseCronSchedule(cfg.CronSchedule)
	if err != nil {
		return nil, err
	}

	jobTimeout := cfg.JobTimeout
	if jobTimeout == 0 {
		jobTimeout = 10 * time.Minute
	}
	checkInterval := cfg.CheckInterval
	if checkInterval == 0 {
		checkInterval = time.Minute
	}

	return &DailyReportScheduler{
		hour:          hour,
		minute:        minute,
		jobTimeout:    jobTimeout,
		checkInterval: checkInterval,
		runner:        runner,
		logger:        logger,
	}, nil
}

// Start launches the scheduling loop. Calling Start on a running scheduler is
// a no-op.
func (s *DailyReportScheduler) Start(ctx context.Context) {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return
	}
	s.isRunning = true
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.loop(ctx)

	s.logger.Info("daily report scheduler started",
		zap.Int("hour", s.hour),
		zap.Int("minute", s.minute))
}

// Stop stops the scheduling loop and waits for an in-flight run to finish
func (s *DailyReportScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("daily report scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// TriggerManualRun runs the report immediately, outside the schedule
func (s *DailyReportScheduler) TriggerManualRun(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.jobTimeout)
	defer cancel()
	return s.runner.Run(ctx)
}

func (s *DailyReportScheduler) loop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if !s.shouldRun(now) {
				continue
			}
			s.markRun(now)
			s.execute(ctx)
		}
	}
}

func (s *DailyReportScheduler) shouldRun(now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if now.Hour() != s.hour || now.Minute() != s.minute {
		return false
	}
	return s.lastRunDate != now.Format("2006-01-02")
}

func (s *DailyReportScheduler) markRun(now time.Time) {
	s.mu.Lock()
	s.lastRunDate = now.Format("2006-01-02")
	s.mu.Unlock()
}

func (s *DailyReportScheduler) execute(ctx context.Context) {
	runCtx, cancel := context.WithTimeout(ctx, s.jobTimeout)
	defer cancel()

	start := time.Now()
	if err := s.runner.Run(runCtx); err != nil {
		s.logger.Error("daily report run failed", zap.Error(err))
		return
	}
	s.logger.Info("daily report run completed", zap.Duration("elapsed", time.Since(start)))
}

// ParseCronSchedule parses a cron expression "minute hour * * *" to extract
// hour and minute. An empty expression yields the 09:00 default.
func ParseCronSchedule(cronExpr string) (hour, minute int, err error) {
	hour = 9
	minute = 0

	parts := strings.Fields(cronExpr)
	if len(parts) < 2 {
		return hour, minute, nil
	}

	if parts[0] != "*" {
		if val, parseErr := strconv.Atoi(parts[0]); parseErr == nil {
			minute = val
		}
	}
	if parts[1] != "*" {
		if val, parseErr := strconv.Atoi(parts[1]); parseErr == nil {
			hour = val
		}
	}

	if minute < 0 || minute > 59 {
		return 9, 0, fmt.Errorf("minute must be 0-59, got %d", minute)
	}
	if hour < 0 || hour > 23 {
		return 9, 0, fmt.Errorf("hour must be 0-23, got %d", hour)
	}

	return hour, minute, nil
}
