package rules

import (
	"context"
	"fmt"

	"github.com/petuhovskiy/soundpool/internal/app"
	"github.com/petuhovskiy/soundpool/internal/rdesc"
)

var ErrUnknownRule = fmt.Errorf("unknown rule")

// One of the rule implementations.
type RuleImpl interface {
	Execute(ctx context.Context) error
}

func loadImpl(base *app.App, desc rdesc.Rule) (RuleImpl, error) {
	switch desc.Act {
	case rdesc.ActPlay:
		return NewPlay(base, desc.Args)
	case rdesc.ActChangeMode:
		return NewChangeMode(base, desc.Args)
	case rdesc.ActSetRange:
		return NewSetRange(base, desc.Args)
	default:
		return nil, fmt.Errorf("unknown rule act %s: %w", desc.Act, ErrUnknownRule)
	}
}
