// This package is used to initialize the application. It has dependencies on most
// other packages. Other packages can depend on it as a quick way to get access to
// all the dependencies.
package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/petuhovskiy/soundpool/internal/bgjobs"
	"github.com/petuhovskiy/soundpool/internal/conf"
	"github.com/petuhovskiy/soundpool/internal/host"
	"github.com/petuhovskiy/soundpool/internal/log"
	"github.com/petuhovskiy/soundpool/internal/models"
	"github.com/petuhovskiy/soundpool/internal/rdesc"
	"github.com/petuhovskiy/soundpool/internal/repos"
)

type App struct {
	Config     *conf.App
	DB         *gorm.DB
	Repo       *Repos
	Host       *host.Host
	Register   *bgjobs.Register
	PoolLocker *bgjobs.PoolLocker
}

func NewAppFromEnv() (*App, error) {
	cfg, err := conf.ParseEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to parse config from env: %w", err)
	}

	pools, err := rdesc.LoadPools(cfg.PoolsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load pools: %w", err)
	}

	var output host.Output = host.LogOutput{}

	var db *gorm.DB
	var repo *Repos
	if cfg.RecordingEnabled() {
		db, err = connectDB(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}

		repo, err = createRepos(db, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create repos: %w", err)
		}

		output = host.NewRecordingOutput(output, repo.SplashSaver)
	} else {
		log.Info(context.Background(), "POSTGRES_DSN is not set, splashes will not be recorded")
	}

	a := New(cfg, output)
	a.DB = db
	a.Repo = repo
	if err := a.AddPools(pools); err != nil {
		return nil, err
	}
	return a, nil
}

// New creates an app without a database, playing through the given output.
func New(cfg *conf.App, output host.Output) *App {
	poolLocker := bgjobs.NewPoolLocker()
	return &App{
		Config:     cfg,
		Host:       host.New(output, poolLocker),
		Register:   bgjobs.NewRegister(),
		PoolLocker: poolLocker,
	}
}

// AddPools registers pool descriptions with the host.
func (a *App) AddPools(pools []rdesc.Pool) error {
	for _, p := range pools {
		if err := a.Host.Add(p); err != nil {
			return fmt.Errorf("failed to add pool: %w", err)
		}
		log.Info(context.Background(), "loaded pool",
			zap.String("pool", p.Name),
			zap.Int("entries", len(p.Entries)),
		)
	}
	return nil
}

func (a *App) StartPrometheus() {
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		err := http.ListenAndServe(a.Config.PrometheusBind, mux)
		if err != nil && err != http.ErrServerClosed {
			log.Fatal(context.TODO(), "prometheus server error", zap.Error(err))
		}
	}()
}

func connectDB(cfg *conf.App) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.PostgresDSN), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	return db, nil
}

type Repos struct {
	Splash      *repos.SplashRepo
	SplashSaver *repos.SplashSaver
}

func createRepos(db *gorm.DB, cfg *conf.App) (*Repos, error) {
	err := db.AutoMigrate(
		&models.Splash{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	if cfg.DebugDB {
		db = db.Debug()
	}

	splashRepo := repos.NewSplashRepo(db)
	node := cfg.Node

	return &Repos{
		Splash:      splashRepo,
		SplashSaver: repos.NewSplashSaver(splashRepo, repos.SplashSaverArgs{Node: &node}),
	}, nil
}
