package app

import (
	"context"
	"fmt"
	"time"

	"Lucky/internal/config"
	"Lucky/internal/logging"
	"Lucky/internal/migrations"
	"Lucky/internal/repo"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"
)

type App struct {
	cfg    config.Config
	log    logging.Logger
	db     *pgxpool.Pool
	redis  *redis.Client
	router *gin.Engine
}

// stores are the persistence backends the services run on.
type stores struct {
	accounts repo.AccountRepo
	settings repo.SettingsRepo
}

func New(cfg config.Config, log logging.Logger) (*App, error) {
	a := &App{cfg: cfg, log: log}

	st, err := a.openStores()
	if err != nil {
		return nil, err
	}

	rdb, err := newRedis(cfg.Redis)
	if err != nil {
		a.closeDB()
		return nil, err
	}
	a.redis = rdb

	router, err := newRouter(cfg, log, st, rdb)
	if err != nil {
		_ = a.Close(context.Background())
		return nil, err
	}
	a.router = router
	return a, nil
}

func (a *App) Router() *gin.Engine {
	return a.router
}

func (a *App) Close(ctx context.Context) error {
	_ = ctx
	if a.redis != nil {
		_ = a.redis.Close()
	}
	a.closeDB()
	return nil
}

func (a *App) closeDB() {
	if a.db != nil {
		a.db.Close()
	}
}

func (a *App) openStores() (stores, error) {
	switch a.cfg.Store.Driver {
	case config.StoreDriverMemory:
		a.log.Warn(context.Background(), "using in-memory store, data is lost on restart")
		return stores{
			accounts: repo.NewMemoryAccountRepo(),
			settings: repo.NewMemorySettingsRepo(),
		}, nil
	default:
		db, err := newPostgres(a.cfg.PG.DSN)
		if err != nil {
			return stores{}, err
		}
		a.db = db
		if err := runMigrations(a.cfg.PG.DSN); err != nil {
			db.Close()
			return stores{}, err
		}
		return stores{
			accounts: repo.NewPGAccountRepo(db),
			settings: repo.NewPGSettingsRepo(db),
		}, nil
	}
}

func newPostgres(dsn string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("pg parse config: %w", err)
	}
	cfg.MaxConns = 10
	cfg.MinConns = 2
	cfg.MaxConnIdleTime = 5 * time.Minute
	cfg.MaxConnLifetime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(context.Background(), cfg)
	if err != nil {
		return nil, fmt.Errorf("pg connect: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pg ping: %w", err)
	}

	return pool, nil
}

func newRedis(cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return rdb, nil
}

func runMigrations(dsn string) error {
	goose.SetBaseFS(migrations.FS)
	defer goose.SetBaseFS(nil)

	db, err := goose.OpenDBWithDriver("pgx", dsn)
	if err != nil {
		return fmt.Errorf("goose open db: %w", err)
	}
	defer db.Close()

	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

func newRouter(cfg config.Config, log logging.Logger, st stores, rdb *redis.Client) (*gin.Engine, error) {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(log))

	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "OPTIONS", "HEAD"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Cookie"},
		ExposeHeaders: []string{"Content-Length", "Content-Type"},
		MaxAge:        12 * time.Hour,
	}))

	if err := Setup(r, cfg, log, st, rdb); err != nil {
		return nil, err
	}
	return r, nil
}
