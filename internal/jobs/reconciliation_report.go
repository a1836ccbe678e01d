// File: internal/jobs/reconciliation_report.go
package jobs

import (
	"context"
	"fmt"
	"time"

	"studybuddy_backend/internal/config"
	"studybuddy_backend/internal/profile"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// reportSampleSize is how many open gaps a run lists by uid.
const reportSampleSize = 20

// ReconciliationReportJob periodically reports accounts that exist at the
// identity provider without a profile document. It only reports; nothing is repaired.
type ReconciliationReportJob struct {
	gaps          profile.GapRepository
	logger        *zap.Logger
	cfg           *config.Config
	cronScheduler *cron.Cron
}

// NewReconciliationReportJob creates a new ReconciliationReportJob.
func NewReconciliationReportJob(gaps profile.GapRepository, logger *zap.Logger, cfg *config.Config) *ReconciliationReportJob {
	scheduler := cron.New(
		cron.WithLogger(NewCronLogger(logger.Named("cron"))),
		cron.WithChain(cron.SkipIfStillRunning(NewCronLogger(logger.Named("cron")))),
	)
	return &ReconciliationReportJob{
		gaps:          gaps,
		logger:        logger.Named("ReconciliationReportJob"),
		cfg:           cfg,
		cronScheduler: scheduler,
	}
}

// SetupAndStart schedules and starts the cron job.
func (j *ReconciliationReportJob) SetupAndStart() error {
	jobSpec := j.cfg.ReconciliationReportSchedule
	if jobSpec == "" {
		j.logger.Warn("Reconciliation report schedule not defined (RECONCILIATION_REPORT_SCHEDULE). Job will not run.")
		return nil
	}

	jobID, err := j.cronScheduler.AddFunc(jobSpec, func() {
		if _, err := j.Run(context.Background()); err != nil {
			j.logger.Error("Scheduled reconciliation report failed", zap.Error(err))
		}
	})
	if err != nil {
		j.logger.Error("Failed to schedule reconciliation report job", zap.String("spec", jobSpec), zap.Error(err))
		return err
	}

	j.logger.Info("Reconciliation report job scheduled", zap.String("spec", jobSpec), zap.Any("jobID", jobID))
	j.cronScheduler.Start()
	return nil
}

// Run performs one report and returns the number of open gaps. An error means
// the count could not be taken.
func (j *ReconciliationReportJob) Run(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	open, err := j.gaps.CountOpen(ctx)
	if err != nil {
		return 0, fmt.Errorf("counting open profile gaps: %w", err)
	}
	if open == 0 {
		j.logger.Info("Reconciliation report: no accounts without profile")
		return 0, nil
	}

	gaps, err := j.gaps.ListOpen(ctx, reportSampleSize)
	if err != nil {
		j.logger.Error("Listing open profile gaps failed", zap.Error(err))
		return open, nil
	}
	uids := make([]string, 0, len(gaps))
	for _, g := range gaps {
		uids = append(uids, g.UID)
	}
	fields := []zap.Field{zap.Int64("open_gaps", open), zap.Strings("sample_uids", uids)}
	if len(gaps) > 0 {
		fields = append(fields, zap.Time("oldest", gaps[0].CreatedAt))
	}
	j.logger.Warn("Reconciliation report: accounts without profile document", fields...)
	return open, nil
}

// Stop gracefully stops the cron scheduler.
func (j *ReconciliationReportJob) Stop() {
	if j.cronScheduler == nil {
		return
	}
	j.logger.Info("Stopping reconciliation report scheduler...")
	stopCtx := j.cronScheduler.Stop()
	select {
	case <-stopCtx.Done():
		j.logger.Info("Reconciliation report scheduler stopped gracefully.")
	case <-time.After(10 * time.Second):
		j.logger.Warn("Reconciliation report scheduler stop timed out.")
	}
}
