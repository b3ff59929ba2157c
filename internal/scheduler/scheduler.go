package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Prober checks that the upstream weather source is reachable.
type Prober interface {
	Probe(ctx context.Context) error
}

// Status is the outcome of the most recent probe.
type Status struct {
	Healthy   bool      `json:"healthy"`
	LastRun   time.Time `json:"last_run"`
	LastError string    `json:"last_error,omitempty"`
	Runs      int       `json:"runs"`
}

// Scheduler runs the upstream probe on a cron schedule.
type Scheduler struct {
	cron     *cron.Cron
	prober   Prober
	logger   *zap.Logger
	schedule string
	timeout  time.Duration
	mu       sync.Mutex
	initial  sync.WaitGroup
	running  bool
	status   Status
}

func NewScheduler(prober Prober, schedule string, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		prober:   prober,
		logger:   logger,
		schedule: schedule,
		timeout:  15 * time.Second,
	}
}

func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return nil
	}

	id, err := s.cron.AddFunc(s.schedule, s.RunProbe)
	if err != nil {
		return err
	}
	job := s.cron.Entry(id).WrappedJob
	s.cron.Start()
	s.running = true

	s.logger.Info("Scheduler started", zap.String("schedule", s.schedule))

	// Run immediately on start
	s.initial.Add(1)
	go func() {
		defer s.initial.Done()
		job.Run()
	}()

	return nil
}

// RunProbe executes one probe and records its outcome.
func (s *Scheduler) RunProbe() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	startTime := time.Now()
	err := s.prober.Probe(ctx)

	s.mu.Lock()
	s.status.Runs++
	s.status.LastRun = startTime
	s.status.Healthy = err == nil
	s.status.LastError = ""
	if err != nil {
		s.status.LastError = err.Error()
	}
	s.mu.Unlock()

	if err != nil {
		s.logger.Warn("Upstream probe failed",
			zap.Error(err),
			zap.Duration("duration", time.Since(startTime)))
		return
	}
	s.logger.Debug("Upstream probe succeeded", zap.Duration("duration", time.Since(startTime)))
}

func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.mu.Unlock()

	s.logger.Info("Stopping scheduler")
	// Wait for probes in flight; they take mu, so mu must be free here.
	<-s.cron.Stop().Done()
	s.initial.Wait()
}

func (s *Scheduler) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}
