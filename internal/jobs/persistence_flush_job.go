package jobs

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"fleetkernel/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// FlushObserver is told how long every flush took and whether it failed.
type FlushObserver interface {
	ObserveFlush(duration time.Duration, err error)
}

type noopFlushObserver struct{}

func (noopFlushObserver) ObserveFlush(time.Duration, error) {}

// PersistenceFlushJob writes the object pool to the snapshot store in the background.
//
// Flushes are requested by TriggerFlush after every committed mutation and by the
// cron schedule. Requests are coalesced in a channel of size one and served by a
// single worker goroutine, so a burst of transfers costs at most one pending flush.
// The worker exports the pool under its read lock and saves the export without
// holding any pool lock.
type PersistenceFlushJob struct {
	exporter ports.PoolExporter
	store    ports.SnapshotStore
	observer FlushObserver
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger

	requests chan struct{}
	stop     chan struct{}
	wg       sync.WaitGroup
}

var _ ports.PersistenceFlusher = (*PersistenceFlushJob)(nil)

// NewPersistenceFlushJob creates the job. schedule uses the six field cron syntax
// with seconds; an empty schedule disables the periodic flush.
func NewPersistenceFlushJob(
	exporter ports.PoolExporter,
	store ports.SnapshotStore,
	observer FlushObserver,
	schedule string,
	logger *slog.Logger,
) *PersistenceFlushJob {
	if observer == nil {
		observer = noopFlushObserver{}
	}
	return &PersistenceFlushJob{
		exporter: exporter,
		store:    store,
		observer: observer,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "persistence_flush_job"),
		requests: make(chan struct{}, 1),
		stop:     make(chan struct{}),
	}
}

// TriggerFlush requests a flush and returns immediately.
func (j *PersistenceFlushJob) TriggerFlush() {
	select {
	case j.requests <- struct{}{}:
	default:
	}
}

// Start launches the worker and the periodic schedule.
func (j *PersistenceFlushJob) Start() error {
	if j.schedule != "" {
		if _, err := j.cron.AddFunc(j.schedule, j.TriggerFlush); err != nil {
			return err
		}
	}

	j.wg.Add(1)
	go j.run()

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Persistence flush job started", "schedule", j.schedule)
	return nil
}

// Stop halts the schedule, waits for the worker and writes a final snapshot.
func (j *PersistenceFlushJob) Stop() {
	<-j.cron.Stop().Done()
	close(j.stop)
	j.wg.Wait()

	j.Flush(context.Background())
	j.logger.InfoContext(context.Background(), "Persistence flush job stopped")
}

// Flush exports the pool and saves it synchronously. Failures are logged.
func (j *PersistenceFlushJob) Flush(ctx context.Context) {
	started := time.Now()
	err := j.flush(ctx)
	j.observer.ObserveFlush(time.Since(started), err)

	if err != nil {
		j.logger.ErrorContext(ctx, "Persistence flush failed", "error", err)
	}
}

func (j *PersistenceFlushJob) flush(ctx context.Context) error {
	snapshot, err := j.exporter.Export(ctx)
	if err != nil {
		return err
	}
	return j.store.Save(ctx, snapshot)
}

func (j *PersistenceFlushJob) run() {
	defer j.wg.Done()
	for {
		select {
		case <-j.stop:
			return
		case <-j.requests:
			j.Flush(context.Background())
		}
	}
}
