package cmd

import (
	"context"
	"fmt"
	"log/slog"

	httpapi "fleetkernel/internal/adapters/in/http"
	"fleetkernel/internal/adapters/in/topology"
	"fleetkernel/internal/adapters/out/kafka"
	"fleetkernel/internal/adapters/out/metrics"
	"fleetkernel/internal/adapters/out/objectpool"
	"fleetkernel/internal/adapters/out/postgres"
	"fleetkernel/internal/core/application/usecases/commands"
	"fleetkernel/internal/core/application/usecases/queries"
	"fleetkernel/internal/jobs"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	configs  Config
	logger   *slog.Logger
	pool     *objectpool.Pool
	store    *postgres.GormSnapshotStore
	metrics  *metrics.Metrics
	flushJob *jobs.PersistenceFlushJob
	relay    *kafka.ObjectEventRelay
}

// NewCompositionRoot builds the pool and its subscribers. The Kafka relay is only
// created when brokers are configured.
func NewCompositionRoot(configs Config, gormDB *gorm.DB, logger *slog.Logger) *CompositionRoot {
	c := &CompositionRoot{
		configs: configs,
		logger:  logger,
		pool:    objectpool.NewPool(logger),
		store:   postgres.NewGormSnapshotStore(gormDB, logger),
		metrics: metrics.NewMetrics(),
	}
	c.flushJob = jobs.NewPersistenceFlushJob(c.pool, c.store, c.metrics, configs.FlushSchedule, logger)

	c.pool.Subscribe(c.metrics)
	if brokers := configs.KafkaBrokers(); len(brokers) > 0 {
		c.relay = kafka.NewObjectEventRelay(brokers, configs.KafkaObjectEventsTopic, c.metrics, logger)
		c.pool.Subscribe(c.relay)
	}
	return c
}

// Seed fills the pool from the database, or from the topology file when the
// database holds nothing yet.
func (c *CompositionRoot) Seed(ctx context.Context) error {
	snapshot, err := c.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}

	if snapshot.IsEmpty() && c.configs.TopologyFile != "" {
		snapshot, err = topology.LoadFile(c.configs.TopologyFile)
		if err != nil {
			return fmt.Errorf("load topology: %w", err)
		}
		c.logger.InfoContext(ctx, "seeding pool from topology", "file", c.configs.TopologyFile)
		if err := c.pool.Import(ctx, snapshot); err != nil {
			return err
		}
		c.flushJob.TriggerFlush()
		return nil
	}

	return c.pool.Import(ctx, snapshot)
}

func (c *CompositionRoot) CreatePopBinFromLocationCommandHandler() commands.PopBinFromLocationCommandHandler {
	var f commands.TransferUoWFactory = FuncTransferUoWFactory(func() commands.TransferUoW {
		return c.pool.Create()
	})
	return commands.NewPopBinFromLocationCommandHandler(f, c.flushJob, c.metrics, c.logger)
}

func (c *CompositionRoot) CreatePushBinToLocationCommandHandler() commands.PushBinToLocationCommandHandler {
	var f commands.TransferUoWFactory = FuncTransferUoWFactory(func() commands.TransferUoW {
		return c.pool.Create()
	})
	return commands.NewPushBinToLocationCommandHandler(f, c.flushJob, c.metrics, c.logger)
}

func (c *CompositionRoot) CreateUpdateVehicleTransportOrderCommandHandler() commands.UpdateVehicleTransportOrderCommandHandler {
	return commands.NewUpdateVehicleTransportOrderCommandHandler(c.vehicleUoWFactory(), c.flushJob, c.logger)
}

func (c *CompositionRoot) CreateUpdateVehicleEnergyLevelCommandHandler() commands.UpdateVehicleEnergyLevelCommandHandler {
	return commands.NewUpdateVehicleEnergyLevelCommandHandler(c.vehicleUoWFactory(), c.flushJob, c.logger)
}

func (c *CompositionRoot) CreateUpdateVehicleIntegrationLevelCommandHandler() commands.UpdateVehicleIntegrationLevelCommandHandler {
	return commands.NewUpdateVehicleIntegrationLevelCommandHandler(c.vehicleUoWFactory(), c.flushJob, c.logger)
}

func (c *CompositionRoot) CreateGetDestinationsQueryHandler() queries.GetDestinationsQueryHandler {
	return queries.NewGetDestinationsQueryHandler(c.pool)
}

func (c *CompositionRoot) CreateGetAllVehiclesQueryHandler() queries.GetAllVehiclesQueryHandler {
	return queries.NewGetAllVehiclesQueryHandler(c.pool)
}

func (c *CompositionRoot) CreateAuditInventoryQueryHandler() queries.AuditInventoryQueryHandler {
	return queries.NewAuditInventoryQueryHandler(c.pool)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	auditJob := jobs.NewInventoryAuditJob(c.CreateAuditInventoryQueryHandler(), c.configs.AuditSchedule, c.logger)
	return jobs.NewJobManager(c.flushJob, auditJob)
}

func (c *CompositionRoot) CreateRouter() (*echo.Echo, error) {
	server := httpapi.NewServer(
		c.CreatePopBinFromLocationCommandHandler(),
		c.CreatePushBinToLocationCommandHandler(),
		c.CreateUpdateVehicleTransportOrderCommandHandler(),
		c.CreateUpdateVehicleEnergyLevelCommandHandler(),
		c.CreateUpdateVehicleIntegrationLevelCommandHandler(),
		c.CreateGetDestinationsQueryHandler(),
		c.CreateGetAllVehiclesQueryHandler(),
		c.CreateAuditInventoryQueryHandler(),
		c.logger,
	)
	return httpapi.NewRouter(server, c.metrics.Handler())
}

// StartRelay starts publishing pool events to Kafka, if configured.
func (c *CompositionRoot) StartRelay() {
	if c.relay != nil {
		c.relay.Start()
	}
}

// Close drains the event relay.
func (c *CompositionRoot) Close() error {
	if c.relay == nil {
		return nil
	}
	return c.relay.Close()
}

func (c *CompositionRoot) vehicleUoWFactory() commands.VehicleUoWFactory {
	return FuncVehicleUoWFactory(func() commands.VehicleUoW {
		return c.pool.Create()
	})
}

type FuncTransferUoWFactory func() commands.TransferUoW

func (f FuncTransferUoWFactory) Create() commands.TransferUoW {
	return f()
}

type FuncVehicleUoWFactory func() commands.VehicleUoW

func (f FuncVehicleUoWFactory) Create() commands.VehicleUoW {
	return f()
}
