package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/petuhovskiy/soundpool/internal/app"
	"github.com/petuhovskiy/soundpool/internal/log"
	"github.com/petuhovskiy/soundpool/internal/rdesc"
	"github.com/petuhovskiy/soundpool/internal/rules"
)

func main() {
	log.DefaultGlobals()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	base, err := app.NewAppFromEnv()
	if err != nil {
		log.Fatal(ctx, "failed to init app", zap.Error(err))
	}

	if _, err := log.Globals(base.Config.LogLevel); err != nil {
		log.Warn(ctx, "invalid log level, keeping debug", zap.Error(err))
	}
	defer func() { _ = zap.L().Sync() }()

	base.StartPrometheus()

	ctx = log.With(ctx, zap.String("node", base.Config.Node))
	log.Info(ctx, "soundpool started", zap.Strings("pools", base.Host.Names()))

	if base.Config.RulesFile == "" {
		log.Info(ctx, "RULES_FILE is not set, nothing to play")
		return
	}

	rawRules, err := rdesc.LoadRules(base.Config.RulesFile)
	if err != nil {
		log.Fatal(ctx, "failed to load rules", zap.Error(err))
	}

	executor := rules.NewExecutor(base)
	for i, raw := range rawRules {
		rule, err := executor.ParseJSON(raw)
		if err != nil {
			log.Fatal(ctx, "failed to parse rule", zap.Int("index", i), zap.Error(err))
		}

		base.Register.GoNamed(ctx, fmt.Sprintf("rule-%d-%s", i, rule.Act()), func(ctx context.Context) error {
			return executor.Execute(ctx, rule)
		})
	}

	<-ctx.Done()
	log.Info(context.Background(), "shutting down")
	base.Register.WaitAll(context.Background())
}
