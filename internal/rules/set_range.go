package rules

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/petuhovskiy/soundpool/internal/app"
	"github.com/petuhovskiy/soundpool/internal/host"
)

// SetRange moves volume and pitch bounds of a pool.
type SetRange struct {
	args SetRangeArgs
	host *host.Host
}

type SetRangeArgs struct {
	Pool   string
	Volume host.RangeUpdate
	Pitch  host.RangeUpdate
}

func NewSetRange(a *app.App, j json.RawMessage) (*SetRange, error) {
	var args SetRangeArgs
	err := json.Unmarshal(j, &args)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal args: %w", err)
	}

	if args.Pool == "" {
		return nil, fmt.Errorf("Pool field must be set")
	}

	return &SetRange{
		args: args,
		host: a.Host,
	}, nil
}

func (r *SetRange) Execute(ctx context.Context) error {
	return r.host.SetRanges(ctx, r.args.Pool, r.args.Volume, r.args.Pitch)
}
