package rules

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/petuhovskiy/soundpool/internal/rdesc"
)

// Rule is a fully initialized rule that can be executed via executor.
type Rule struct {
	desc   rdesc.Rule
	impl   RuleImpl
	period *Period

	mu      sync.Mutex
	lastRun *time.Time
}

func newRule(desc rdesc.Rule, impl RuleImpl) (*Rule, error) {
	period, err := parsePeriod(desc.Periodic)
	if err != nil {
		return nil, err
	}

	return &Rule{
		desc:   desc,
		impl:   impl,
		period: period,
	}, nil
}

func (r *Rule) Act() rdesc.Act {
	return r.desc.Act
}

// tryStart records the run time, or returns false if the previous run was
// less than MinInterval ago.
func (r *Rule) tryStart(now time.Time) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.desc.MinInterval != nil && r.lastRun != nil && now.Sub(*r.lastRun) < r.desc.MinInterval.Duration {
		return false
	}
	r.lastRun = &now
	return true
}

type Period struct {
	min uint
	max uint
}

func (p *Period) Next() time.Duration {
	val := p.min + uint(rand.IntN(int(p.max-p.min+1)))
	return time.Duration(val) * time.Second
}

func (p *Period) Sleep(ctx context.Context) {
	select {
	case <-ctx.Done():
		return
	case <-time.After(p.Next()):
	}
}

func parsePeriod(str string) (*Period, error) {
	if str == "" {
		return nil, nil
	}

	var min, max uint

	_, err := fmt.Sscanf(str, "random(%d,%d)", &min, &max)
	if err != nil {
		return nil, fmt.Errorf("failed to parse period: %w", err)
	}

	if min > max {
		return nil, fmt.Errorf("min(%d) > max(%d)", min, max)
	}

	return &Period{
		min: min,
		max: max,
	}, nil
}
