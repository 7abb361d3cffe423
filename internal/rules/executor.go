package rules

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/petuhovskiy/soundpool/internal/app"
	"github.com/petuhovskiy/soundpool/internal/log"
	"github.com/petuhovskiy/soundpool/internal/rdesc"
)

type Executor struct {
	base *app.App
}

func NewExecutor(base *app.App) *Executor {
	return &Executor{base: base}
}

func (e *Executor) ParseJSON(data json.RawMessage) (*Rule, error) {
	var desc rdesc.Rule
	err := json.Unmarshal(data, &desc)
	if err != nil {
		return nil, err
	}

	return e.CreateFromDesc(desc)
}

func (e *Executor) CreateFromDesc(desc rdesc.Rule) (*Rule, error) {
	impl, err := loadImpl(e.base, desc)
	if err != nil {
		return nil, err
	}

	return newRule(desc, impl)
}

// Execute runs the rule once, or forever for periodic rules until ctx is done.
func (e *Executor) Execute(ctx context.Context, r *Rule) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if r.period != nil {
		return e.executePeriodic(ctx, r, r.period)
	}
	return e.executeOnce(ctx, r)
}

func (e *Executor) executeOnce(ctx context.Context, r *Rule) error {
	ctx = log.Into(ctx, string(r.desc.Act))

	if !r.tryStart(time.Now()) {
		log.Debug(ctx, "skipping rule, min interval not passed")
		return nil
	}

	if r.desc.Timeout != nil {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.desc.Timeout.Duration)
		defer cancel()
	}

	return r.impl.Execute(ctx)
}

func (e *Executor) executePeriodic(ctx context.Context, r *Rule, period *Period) error {
	ctx = log.Into(ctx, "periodic")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		err := e.executeOnce(ctx, r)
		if err != nil {
			log.Error(ctx, "rule execution failed", zap.Error(err))
		}

		period.Sleep(ctx)
	}
}
