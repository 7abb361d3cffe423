package bgjobs

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/petuhovskiy/soundpool/internal/log"
)

// Register is a registry of all background jobs.
// Has a wait group to wait for all jobs to finish.
type Register struct {
	all     sync.WaitGroup
	running sync.Map
}

func NewRegister() *Register {
	return &Register{}
}

// Go a new background task.
func (r *Register) Go(f func()) {
	r.all.Add(1)

	go func() {
		defer r.all.Done()
		f()
	}()
}

// GoNamed runs a background task and logs its error, if any. Named tasks
// can be listed with Running while they are in progress.
func (r *Register) GoNamed(ctx context.Context, name string, f func(ctx context.Context) error) {
	ctx = log.Into(ctx, name)
	r.running.Store(name, struct{}{})

	r.Go(func() {
		defer r.running.Delete(name)

		if err := f(ctx); err != nil && ctx.Err() == nil {
			log.Error(ctx, "background job failed", zap.Error(err))
		}
	})
}

// Running returns names of named tasks that have not finished yet.
func (r *Register) Running() []string {
	var names []string
	r.running.Range(func(key, _ any) bool {
		names = append(names, key.(string))
		return true
	})
	return names
}

func (r *Register) WaitAll(ctx context.Context) {
	log.Info(ctx, "waiting for all background jobs to finish", zap.Strings("running", r.Running()))
	r.all.Wait()
}
