package container

import (
	"context"
	"fmt"
	"sync"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"gitlab.com/maplesense1/wrk.registration_server/src/production/WRK.ApiService/health"
	"gitlab.com/maplesense1/wrk.registration_server/src/production/WRK.ApiService/middleware"
	config "gitlab.com/maplesense1/wrk.registration_server/src/production/WRK.Config"
	logger "gitlab.com/maplesense1/wrk.registration_server/src/production/WRK.Logger"
	notifier "gitlab.com/maplesense1/wrk.registration_server/src/production/WRK.Notifier"
)

// Container manages dependencies and their lifecycle
type Container struct {
	dbConfig config.DatabaseConfig
	logger   *logger.Logger

	client *mongo.Client

	// Health components
	healthChecker   *health.HealthChecker
	databaseManager *health.DatabaseManager

	// Mutex for thread-safe access
	mu sync.Mutex

	// Cleanup functions, run in reverse order on Shutdown
	cleanupFuncs []func(ctx context.Context) error
}

// ApiContainer manages dependencies for the API service
type ApiContainer struct {
	*Container
	config *config.Config

	redisClient *redis.Client
	mqttClient  mqtt.Client
}

// SeedContainer manages dependencies for the admin seed command
type SeedContainer struct {
	*Container
	config *config.SeedConfig
}

func newContainer(dbConfig config.DatabaseConfig, log *logger.Logger) *Container {
	return &Container{dbConfig: dbConfig, logger: log}
}

// NewApiContainer creates a new container for the API service
func NewApiContainer() (*ApiContainer, error) {
	// Load API-specific configuration
	cfg, err := config.LoadApiConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load API configuration: %w", err)
	}

	// Initialize logger
	log := logger.NewLogger(&cfg.Logging)

	return &ApiContainer{
		Container: newContainer(cfg.Database, log),
		config:    cfg,
	}, nil
}

// NewSeedContainer creates a new container for the seed command
func NewSeedContainer() (*SeedContainer, error) {
	cfg, err := config.LoadSeedConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load seed configuration: %w", err)
	}

	log := logger.NewLogger(&cfg.Logging)

	return &SeedContainer{
		Container: newContainer(cfg.Database, log),
		config:    cfg,
	}, nil
}

// GetConfig returns the API configuration
func (c *ApiContainer) GetConfig() *config.Config {
	return c.config
}

// GetConfig returns the seed configuration
func (c *SeedContainer) GetConfig() *config.SeedConfig {
	return c.config
}

// GetLogger returns the logger
func (c *Container) GetLogger() *logger.Logger {
	return c.logger
}

// GetDatabase connects to MongoDB on first use and returns the configured database
func (c *Container) GetDatabase() (*mongo.Database, error) {
	client, err := c.getClient()
	if err != nil {
		return nil, err
	}
	return client.Database(c.dbConfig.Name), nil
}

func (c *Container) getClient() (*mongo.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client == nil {
		client, err := health.ConnectMongoWithTimeout(c.dbConfig)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		c.client = client
		c.cleanupFuncs = append(c.cleanupFuncs, func(ctx context.Context) error {
			return client.Disconnect(ctx)
		})
		c.logger.Logger.Info().Str("database", c.dbConfig.Name).Msg("Connected to MongoDB")
	}

	return c.client, nil
}

// GetHealthChecker returns the health checker
func (c *Container) GetHealthChecker() (*health.HealthChecker, error) {
	client, err := c.getClient()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for health checker: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.healthChecker == nil {
		c.healthChecker = health.NewHealthChecker(client)
	}

	return c.healthChecker, nil
}

// GetDatabaseManager returns the database manager
func (c *Container) GetDatabaseManager() (*health.DatabaseManager, error) {
	db, err := c.GetDatabase()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for database manager: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.databaseManager == nil {
		c.databaseManager = health.NewDatabaseManager(db)
	}

	return c.databaseManager, nil
}

// InitializeDatabase ensures the unique and sort indexes exist
func (c *Container) InitializeDatabase(ctx context.Context) error {
	dbManager, err := c.GetDatabaseManager()
	if err != nil {
		return fmt.Errorf("failed to get database manager: %w", err)
	}

	if err := dbManager.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("failed to ensure indexes: %w", err)
	}

	c.logger.Info("Database initialized successfully")
	return nil
}

// GetRateLimiter returns a Redis-backed limiter, or nil when REDIS_ADDR is unset
func (c *ApiContainer) GetRateLimiter(ctx context.Context) (*middleware.RateLimiter, error) {
	if !c.config.Redis.Enabled() {
		c.logger.Info("REDIS_ADDR not set, rate limiting disabled")
		return nil, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.redisClient == nil {
		client := redis.NewClient(&redis.Options{
			Addr:        c.config.Redis.Addr,
			Password:    c.config.Redis.Password,
			DB:          c.config.Redis.DB,
			DialTimeout: c.config.Redis.DialTimeout,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("failed to ping redis: %w", err)
		}
		c.redisClient = client
		c.cleanupFuncs = append(c.cleanupFuncs, func(context.Context) error {
			return client.Close()
		})
		c.logger.Logger.Info().Str("addr", c.config.Redis.Addr).Msg("Connected to Redis")
	}

	return middleware.NewRateLimiter(
		middleware.NewRedisRateLimitStore(c.redisClient),
		c.config.RateLimit.Max,
		c.config.RateLimit.Window,
		c.logger,
	), nil
}

// GetNotifier returns the MQTT notifier, or notifier.Noop when BROKER_HOST is unset
func (c *ApiContainer) GetNotifier() (notifier.Notifier, error) {
	if !c.config.MQTT.Enabled() {
		c.logger.Info("BROKER_HOST not set, registration events disabled")
		return notifier.Noop{}, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.mqttClient == nil {
		client, err := notifier.Connect(c.config.MQTT, c.logger.WithComponent("mqtt"))
		if err != nil {
			return nil, err
		}
		c.mqttClient = client
		c.cleanupFuncs = append(c.cleanupFuncs, func(context.Context) error {
			client.Disconnect(250)
			return nil
		})
	}

	return notifier.NewMQTTNotifier(c.mqttClient, c.config.MQTT.RegistrationTopic, c.config.MQTT.PublishTimeout), nil
}

// AddCleanupFunc adds a cleanup function
func (c *Container) AddCleanupFunc(fn func(ctx context.Context) error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cleanupFuncs = append(c.cleanupFuncs, fn)
}

// Shutdown gracefully shuts down the container and all its dependencies
func (c *Container) Shutdown(ctx context.Context) error {
	c.logger.Info("Shutting down container...")

	c.mu.Lock()
	funcs := c.cleanupFuncs
	c.cleanupFuncs = nil
	c.mu.Unlock()

	// Execute cleanup functions in reverse order
	for i := len(funcs) - 1; i >= 0; i-- {
		if err := funcs[i](ctx); err != nil {
			c.logger.ErrorWithError(err, "Error during cleanup")
		}
	}

	c.logger.Info("Container shutdown complete")
	return nil
}
