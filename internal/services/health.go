package services

import (
	"context"
	"errors"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"

	"github.com/sasha-the-architect/nuxtjs-boilerplate-sub002/internal/config"
	"github.com/sasha-the-architect/nuxtjs-boilerplate-sub002/internal/database"
)

const healthCheckTimeout = 5 * time.Second

var errCatalogNotLoaded = errors.New("resource catalog not loaded")

type HealthService struct {
	config  *config.Config
	logger  *logrus.Logger
	db      *database.Database
	catalog *CatalogService
	metrics *Metrics
}

type HealthStatus struct {
	Status      string                 `json:"status"`
	Timestamp   time.Time              `json:"timestamp"`
	Services    map[string]string      `json:"services"`
	Critical    []string               `json:"critical_failures,omitempty"`
	NonCritical []string               `json:"non_critical_failures,omitempty"`
	Latency     time.Duration          `json:"latency,omitempty"`
	Details     map[string]interface{} `json:"details,omitempty"`
}

func NewHealthService(cfg *config.Config, logger *logrus.Logger, db *database.Database, catalog *CatalogService, metrics *Metrics) *HealthService {
	return &HealthService{
		config:  cfg,
		logger:  logger,
		db:      db,
		catalog: catalog,
		metrics: metrics,
	}
}

// CheckHealth reports healthy, degraded (an optional dependency is down) or
// unhealthy (the catalog is not loaded). Unconfigured dependencies are skipped.
func (s *HealthService) CheckHealth() *HealthStatus {
	start := time.Now()
	status := &HealthStatus{
		Timestamp: start,
		Services:  make(map[string]string),
		Details:   make(map[string]interface{}),
	}

	// Critical dependencies
	criticalServices := map[string]func() error{
		"catalog": s.checkCatalog,
	}

	// Non-critical dependencies
	nonCriticalServices := map[string]func() error{}
	if s.db != nil && s.db.PG != nil {
		nonCriticalServices["postgresql"] = s.checkPostgreSQL
	}
	if s.db != nil && s.db.Redis != nil {
		nonCriticalServices["redis"] = s.checkRedis
	}
	if s.db != nil && s.db.Neo4j != nil {
		nonCriticalServices["neo4j"] = s.checkNeo4j
	}
	if s.config != nil && len(s.config.Kafka.Brokers) > 0 {
		nonCriticalServices["kafka"] = s.checkKafka
	}

	// Check critical services
	allCriticalHealthy := true
	for name, checkFunc := range criticalServices {
		if err := checkFunc(); err != nil {
			status.Services[name] = "unhealthy"
			status.Critical = append(status.Critical, name)
			allCriticalHealthy = false
			s.logger.WithError(err).Errorf("Critical service %s is unhealthy", name)
			s.metrics.setHealth(name, false)
		} else {
			status.Services[name] = "healthy"
			s.metrics.setHealth(name, true)
		}
	}

	// Check non-critical services
	for name, checkFunc := range nonCriticalServices {
		if err := checkFunc(); err != nil {
			status.Services[name] = "unhealthy"
			status.NonCritical = append(status.NonCritical, name)
			s.logger.WithError(err).Warnf("Non-critical service %s is unhealthy", name)
			s.metrics.setHealth(name, false)
		} else {
			status.Services[name] = "healthy"
			s.metrics.setHealth(name, true)
		}
	}

	if snap, err := s.catalog.Snapshot(); err == nil {
		status.Details["resources"] = snap.Len()
	}

	// Overall status
	if allCriticalHealthy {
		if len(status.NonCritical) == 0 {
			status.Status = "healthy"
		} else {
			status.Status = "degraded"
		}
	} else {
		status.Status = "unhealthy"
	}
	status.Latency = time.Since(start)

	return status
}

func (s *HealthService) checkCatalog() error {
	if !s.catalog.Loaded() {
		return errCatalogNotLoaded
	}
	return nil
}

func (s *HealthService) checkPostgreSQL() error {
	ctx, cancel := context.WithTimeout(context.Background(), healthCheckTimeout)
	defer cancel()

	return s.db.PG.Ping(ctx)
}

func (s *HealthService) checkNeo4j() error {
	ctx, cancel := context.WithTimeout(context.Background(), healthCheckTimeout)
	defer cancel()

	return s.db.Neo4j.VerifyConnectivity(ctx)
}

func (s *HealthService) checkRedis() error {
	ctx, cancel := context.WithTimeout(context.Background(), healthCheckTimeout)
	defer cancel()

	return s.db.Redis.Ping(ctx).Err()
}

func (s *HealthService) checkKafka() error {
	ctx, cancel := context.WithTimeout(context.Background(), healthCheckTimeout)
	defer cancel()

	conn, err := kafka.DialContext(ctx, "tcp", s.config.Kafka.Brokers[0])
	if err != nil {
		return err
	}
	return conn.Close()
}
