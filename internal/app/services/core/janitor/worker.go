package janitor

import (
	"carerouter-service/internal/app/config"
	"carerouter-service/internal/app/contracts"
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// leaderLockKey makes sure only one instance sweeps at a time.
const (
	leaderLockKey   = "janitor:leader"
	leaderLockTTL   = 2 * time.Minute
	defaultCronSpec = "@every 5m"
)

// Worker periodically drops idle assessment flows and lets stores and rate
// limiters evict what has expired.
type Worker struct {
	log        *zap.Logger
	cfg        *config.InternalConfig
	locker     contracts.Locker
	assessment contracts.AssessmentUsecase
	sweepers   []contracts.Sweeper
	cron       *cron.Cron
	runCtx     context.Context
	cancel     context.CancelFunc
}

func NewWorker(log *zap.Logger, cfg *config.InternalConfig, locker contracts.Locker, assessment contracts.AssessmentUsecase, sweepers ...contracts.Sweeper) *Worker {
	return &Worker{log: log, cfg: cfg, locker: locker, assessment: assessment, sweepers: sweepers}
}

func (w *Worker) Start(ctx context.Context) {
	w.runCtx, w.cancel = context.WithCancel(ctx)
	c := cron.New()
	spec := w.cfg.App.JanitorCronSpec
	if spec == "" {
		spec = defaultCronSpec
	}
	if _, err := c.AddFunc(spec, func() { w.RunOnce(w.runCtx) }); err != nil {
		w.log.Warn("janitor.worker: invalid cron spec, falling back to default",
			zap.String("spec", spec),
			zap.Error(err),
		)
		c = cron.New()
		_, _ = c.AddFunc(defaultCronSpec, func() { w.RunOnce(w.runCtx) })
	}
	c.Start()
	w.cron = c
}

// Stop waits for a running sweep to finish.
func (w *Worker) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	if w.cron != nil {
		<-w.cron.Stop().Done()
	}
}

func (w *Worker) RunOnce(ctx context.Context) {
	if w.locker != nil {
		acquired, token, err := w.locker.TryLock(ctx, leaderLockKey, leaderLockTTL)
		if err != nil {
			w.log.Warn("janitor.worker: leader lock attempt failed", zap.Error(err))
			return
		}
		if !acquired {
			w.log.Debug("janitor.worker: leader lock held by another instance")
			return
		}
		defer func() {
			if err := w.locker.Unlock(context.WithoutCancel(ctx), leaderLockKey, token); err != nil {
				w.log.Warn("janitor.worker: failed to release leader lock", zap.Error(err))
			}
		}()
	}

	if w.assessment != nil {
		maxIdle := time.Duration(w.cfg.App.IdleFlowTTLInMinutes) * time.Minute
		if maxIdle > 0 {
			w.assessment.SweepIdle(ctx, maxIdle)
		}
	}

	for _, sweeper := range w.sweepers {
		removed, err := sweeper.Sweep(ctx)
		if err != nil {
			w.log.Warn("janitor.worker: sweep failed", zap.Error(err))
			continue
		}
		if removed > 0 {
			w.log.Info("janitor.worker: sweep removed expired entries", zap.Int("count", removed))
		}
	}
}
