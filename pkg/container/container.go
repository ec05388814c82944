package container

import (
	"context"
	"fmt"
	"time"

	"novalib-backend/internal/config"
	authrepo "novalib-backend/internal/domains/auth/repository"
	authsvc "novalib-backend/internal/domains/auth/service"
	catalogrepo "novalib-backend/internal/domains/catalog/repository"
	catalogsvc "novalib-backend/internal/domains/catalog/service"
	notifrepo "novalib-backend/internal/domains/notification/repository"
	notifsvc "novalib-backend/internal/domains/notification/service"
	deskrepo "novalib-backend/internal/domains/returndesk/repository"
	desksvc "novalib-backend/internal/domains/returndesk/service"
	userrepo "novalib-backend/internal/domains/user/repository"
	usersvc "novalib-backend/internal/domains/user/service"
	"novalib-backend/internal/infrastructure/cache"
	"novalib-backend/internal/infrastructure/database"
	"novalib-backend/internal/infrastructure/email"
	"novalib-backend/internal/infrastructure/storage"
	"novalib-backend/pkg/jwt"
	"novalib-backend/pkg/logger"
)

// Container wires infrastructure, repositories and services together.
// Built once at startup; handlers pull their dependencies from here.
type Container struct {
	Config *config.Config

	DB      *database.PostgresDB
	Cache   *cache.RedisCache
	Storage *storage.MinIOStorage
	Email   email.EmailService
	JWT     *jwt.Manager

	UserService         *usersvc.UserService
	AuthService         *authsvc.AuthService
	CatalogService      *catalogsvc.CatalogService
	NotificationService *notifsvc.NotificationService
	ReturnDeskService   *desksvc.ReturnDeskService
}

// New builds the container. Postgres and Redis must be reachable;
// everything downstream is pure wiring.
func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	c := &Container{Config: cfg}

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("database config: %w", err)
	}
	c.DB = database.NewPostgresDB(dbConfig)
	if err := c.DB.Connect(ctx); err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	c.Cache = cache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := c.Cache.Connect(ctx); err != nil {
		c.DB.Pool.Close()
		return nil, fmt.Errorf("redis: %w", err)
	}

	c.Storage, err = storage.NewMinIOStorage(cfg.MinIO)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("minio: %w", err)
	}

	c.Email = email.NewSMTPEmailService(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.From)
	c.JWT = jwt.NewManager(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiryHours)*time.Hour)

	users := userrepo.NewPostgresUserRepository(c.DB.Pool)
	logins := authrepo.NewPostgresLoginRepository(c.DB.Pool)
	catalog := catalogrepo.NewPostgresCatalogRepository(c.DB.Pool)
	notifications := notifrepo.NewPostgresNotificationRepository(c.DB.Pool)
	desk := deskrepo.NewPostgresReturnDeskRepository(c.DB.Pool)

	c.UserService = usersvc.NewUserService(users, users)
	c.AuthService = authsvc.NewAuthService(users, logins, c.Email, c.Cache, c.JWT)
	c.CatalogService = catalogsvc.NewCatalogService(catalog, users)
	c.NotificationService = notifsvc.NewNotificationService(
		notifications, c.Storage, storage.NewImageProcessor(), c.Cache)
	c.ReturnDeskService = desksvc.NewReturnDeskService(desk)

	logger.Info("container initialized", map[string]interface{}{
		"environment": cfg.App.Environment,
	})
	return c, nil
}

// Close releases infrastructure connections in reverse order.
func (c *Container) Close() {
	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil {
			logger.Error("redis close failed", err)
		}
	}
	if c.DB != nil && c.DB.Pool != nil {
		c.DB.Pool.Close()
	}
}
