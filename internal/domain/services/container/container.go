package container

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"

	"mineral-catalog-service/internal/domain/services"
	"mineral-catalog-service/internal/infrastructure/config"
	"mineral-catalog-service/internal/infrastructure/events"
	"mineral-catalog-service/internal/infrastructure/storage"
	Logger "mineral-catalog-service/pkg/logger"
)

// Options overrides infrastructure the container would otherwise build from config
type Options struct {
	Redis            services.InterfaceRedisService
	Storage          storage.Storage
	Publisher        events.Publisher
	TranslationCache services.TranslationCache
}

// ServiceContainer wires every service of the application
type ServiceContainer struct {
	db     *gorm.DB
	config *config.Config

	// infrastructure
	redisService services.InterfaceRedisService
	storage      storage.Storage
	publisher    events.Publisher

	// services
	jwtService         services.InterfaceJWTService
	userService        services.InterfaceUserService
	favoriteService    services.InterfaceFavoriteService
	assetService       services.InterfaceAssetService
	markdownService    services.InterfaceMarkdownService
	mineralService     services.InterfaceMineralService
	translationService services.InterfaceTranslationService
	qrcodeService      services.InterfaceQRCodeService

	cancel context.CancelFunc
	mu     sync.RWMutex
}

// NewServiceContainer builds the container
func NewServiceContainer(db *gorm.DB, cfg *config.Config, opts Options) (*ServiceContainer, error) {
	if db == nil {
		return nil, errors.New("database connection is nil")
	}
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	ctx, cancel := context.WithCancel(context.Background())
	c := &ServiceContainer{
		db:     db,
		config: cfg,
		cancel: cancel,
	}
	if err := c.initializeInfrastructure(ctx, opts); err != nil {
		cancel()
		return nil, err
	}
	c.initializeServices(opts)
	return c, nil
}

func (c *ServiceContainer) initializeInfrastructure(ctx context.Context, opts Options) error {
	c.redisService = opts.Redis
	if c.redisService == nil && c.config.RedisEnabled {
		redisService := services.NewRedisService(c.config)
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := redisService.Ping(pingCtx); err != nil {
			Logger.Warning("redis ping failed: %v, using in-memory translation cache", err)
			_ = redisService.Close()
		} else {
			c.redisService = redisService
		}
	}

	c.storage = opts.Storage
	if c.storage == nil {
		st, err := storage.New(ctx, c.config)
		if err != nil {
			return fmt.Errorf("init storage: %w", err)
		}
		c.storage = st
	}

	c.publisher = opts.Publisher
	if c.publisher == nil {
		if c.config.MQTTEnabled {
			mqttPublisher := events.NewMQTTPublisher(c.config)
			go func() {
				if err := mqttPublisher.Connect(ctx); err != nil {
					Logger.Error("mqtt connect: %v", err)
				}
			}()
			c.publisher = mqttPublisher
		} else {
			c.publisher = events.Noop{}
		}
	}
	return nil
}

func (c *ServiceContainer) initializeServices(opts Options) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.jwtService = services.NewJWTService(c.config)
	c.userService = services.NewUserService(c.db, c.config, c.jwtService)
	c.favoriteService = services.NewFavoriteService(c.db)
	c.assetService = services.NewAssetService(c.config, c.storage)
	c.markdownService = services.NewMarkdownService()
	c.mineralService = services.NewMineralService(c.db, c.config, c.assetService, c.favoriteService, c.markdownService, c.publisher)
	c.qrcodeService = services.NewQRCodeService(c.config)

	cache := opts.TranslationCache
	if cache == nil && c.redisService != nil {
		cache = &services.RedisTranslationCache{Redis: c.redisService}
	}
	c.translationService = services.NewTranslationService(c.config, cache)
}

// GetService returns a service by name, or nil
func (c *ServiceContainer) GetService(name string) interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch name {
	case "config":
		return c.config
	case "db":
		return c.db
	case "jwt":
		return c.jwtService
	case "redis":
		return c.redisService
	case "user":
		return c.userService
	case "favorite":
		return c.favoriteService
	case "asset":
		return c.assetService
	case "markdown":
		return c.markdownService
	case "mineral":
		return c.mineralService
	case "translation":
		return c.translationService
	case "qrcode":
		return c.qrcodeService
	case "storage":
		return c.storage
	default:
		return nil
	}
}

// GetDB returns the database handle
func (c *ServiceContainer) GetDB() *gorm.DB {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.db
}

// GetConfig returns the configuration
func (c *ServiceContainer) GetConfig() *config.Config {
	return c.config
}

// RedisAvailable reports whether Redis backs the caches
func (c *ServiceContainer) RedisAvailable() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.redisService != nil
}

// Close releases background connections
func (c *ServiceContainer) Close() {
	c.cancel()
	c.publisher.Close()
	if c.redisService != nil {
		if err := c.redisService.Close(); err != nil {
			Logger.Warning("close redis: %v", err)
		}
	}
}
