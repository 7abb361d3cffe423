package rules

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/petuhovskiy/soundpool/internal/app"
	"github.com/petuhovskiy/soundpool/internal/host"
	"github.com/petuhovskiy/soundpool/internal/log"
	"github.com/petuhovskiy/soundpool/internal/rdesc"
	"github.com/petuhovskiy/soundpool/internal/wrand"
)

// Play draws splashes from a randomly picked pool and plays them.
type Play struct {
	args PlayArgs
	host *host.Host
}

type PlayArgs struct {
	// Pool names with weights, one is picked per execution.
	Pool rdesc.Wrand[string]
	// Play without a source: volume only, pitch stays at 1.
	OneShot bool
	// Splashes per execution, 1 when not set.
	Count int
}

func NewPlay(a *app.App, j json.RawMessage) (*Play, error) {
	var args PlayArgs
	err := json.Unmarshal(j, &args)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal args: %w", err)
	}

	if len(args.Pool) == 0 {
		return nil, fmt.Errorf("Pool field must be set")
	}
	if _, err := args.Pool.Collection(); err != nil {
		return nil, fmt.Errorf("invalid Pool field: %w", err)
	}
	if args.Count <= 0 {
		args.Count = 1
	}

	return &Play{
		args: args,
		host: a.Host,
	}, nil
}

func (r *Play) Execute(ctx context.Context) error {
	name, err := r.args.Pool.Pick(wrand.Global)
	if err != nil {
		return err
	}
	ctx = log.With(ctx, zap.String("pool", name))

	for i := 0; i < r.args.Count; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		if r.args.OneShot {
			err = r.host.PlayOneShot(ctx, name)
		} else {
			err = r.host.Play(ctx, name)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
