package rules

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/petuhovskiy/soundpool/internal/app"
	"github.com/petuhovskiy/soundpool/internal/host"
	"github.com/petuhovskiy/soundpool/internal/rdesc"
	"github.com/petuhovskiy/soundpool/internal/selection"
	"github.com/petuhovskiy/soundpool/internal/wrand"
)

// ChangeMode switches the selection mode of a pool to a randomly picked one.
type ChangeMode struct {
	args ChangeModeArgs
	host *host.Host
}

type ChangeModeArgs struct {
	Pool    string
	NewMode rdesc.Wrand[selection.Mode]
}

func NewChangeMode(a *app.App, j json.RawMessage) (*ChangeMode, error) {
	var args ChangeModeArgs
	err := json.Unmarshal(j, &args)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal args: %w", err)
	}

	if args.Pool == "" {
		return nil, fmt.Errorf("Pool field must be set")
	}
	if args.NewMode == nil {
		return nil, fmt.Errorf("NewMode field must be set")
	}
	if _, err := args.NewMode.Collection(); err != nil {
		return nil, fmt.Errorf("invalid NewMode field: %w", err)
	}

	return &ChangeMode{
		args: args,
		host: a.Host,
	}, nil
}

func (r *ChangeMode) Execute(ctx context.Context) error {
	newMode, err := r.args.NewMode.Pick(wrand.Global)
	if err != nil {
		return err
	}
	return r.host.ChangeMode(ctx, r.args.Pool, newMode)
}
