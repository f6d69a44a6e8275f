package bookings

import (
	"context"
	"rehab-service/internal/app/config"
	"rehab-service/internal/app/contracts"
	"rehab-service/internal/pkg/constvars"
	"rehab-service/internal/pkg/utils"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const defaultLeaderTTL = 2 * time.Minute

// ReconcileWorker runs BookingUsecase.ReconcilePending on a cron schedule.
// A Redis leader lock keeps it to one instance per tick.
type ReconcileWorker struct {
	log            *zap.Logger
	cfg            *config.InternalConfig
	locker         contracts.LockerService
	bookingUsecase contracts.BookingUsecase
	cron           *cron.Cron
	runCtx         context.Context
	cancel         context.CancelFunc
}

func NewReconcileWorker(log *zap.Logger, cfg *config.InternalConfig, lockerSvc contracts.LockerService, bookingUsecase contracts.BookingUsecase) *ReconcileWorker {
	return &ReconcileWorker{log: log, cfg: cfg, locker: lockerSvc, bookingUsecase: bookingUsecase}
}

func (w *ReconcileWorker) Start(ctx context.Context) {
	w.runCtx, w.cancel = context.WithCancel(ctx)
	c := cron.New()
	schedule := w.cfg.Reconciler.Schedule
	_, err := c.AddFunc(schedule, func() { w.RunOnce(w.runCtx) })
	if err != nil {
		w.log.Warn("bookings.reconciler: invalid cron schedule, falling back to @every 5m",
			zap.String("schedule", schedule),
			zap.Error(err),
		)
		c = cron.New()
		_, _ = c.AddFunc("@every 5m", func() { w.RunOnce(w.runCtx) })
	}
	c.Start()
	w.cron = c
	w.log.Info("bookings.reconciler: started", zap.String("schedule", schedule))
}

// Stop cancels in-flight runs and waits for the running job to return.
func (w *ReconcileWorker) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	if w.cron != nil {
		<-w.cron.Stop().Done()
	}
}

func (w *ReconcileWorker) RunOnce(ctx context.Context) {
	ttl := w.cfg.Reconciler.LockTTL
	if ttl <= 0 {
		ttl = defaultLeaderTTL
	}
	acquired, token, err := w.locker.TryLock(ctx, constvars.RedisKeyReconcileLeader, ttl)
	if err != nil {
		w.log.Warn("bookings.reconciler: leader lock attempt failed", zap.Error(err))
		return
	}
	if !acquired {
		w.log.Info("bookings.reconciler: leader lock held by another instance")
		return
	}
	defer func() {
		unlockCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := w.locker.Unlock(unlockCtx, constvars.RedisKeyReconcileLeader, token); err != nil {
			w.log.Warn("bookings.reconciler: failed to release leader lock", zap.Error(err))
		}
	}()

	refreshCtx, cancelRefresh := context.WithCancel(ctx)
	defer cancelRefresh()
	go func() {
		tick := time.NewTicker(ttl / 2)
		defer tick.Stop()
		for {
			select {
			case <-refreshCtx.Done():
				return
			case <-tick.C:
				if err := w.locker.Refresh(refreshCtx, constvars.RedisKeyReconcileLeader, token, ttl); err != nil {
					w.log.Warn("bookings.reconciler: failed to refresh leader lock TTL", zap.Error(err))
				}
			}
		}
	}()

	runID := utils.GenerateRequestID()
	runCtx := context.WithValue(ctx, constvars.CONTEXT_REQUEST_ID_KEY, runID)

	var summary *contracts.ReconcileSummary
	err = utils.LogOperation(w.log, "bookings.reconcile", runID, func() error {
		var runErr error
		summary, runErr = w.bookingUsecase.ReconcilePending(runCtx)
		return runErr
	})
	if err != nil {
		return
	}
	w.log.Info("bookings.reconciler: run complete",
		zap.String(constvars.LoggingRequestIDKey, runID),
		zap.Int("checked", summary.Checked),
		zap.Int("failed", summary.Failed),
	)
}
