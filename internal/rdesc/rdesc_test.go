package rdesc

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petuhovskiy/soundpool/internal/pool"
	"github.com/petuhovskiy/soundpool/internal/selection"
	"github.com/petuhovskiy/soundpool/internal/wrand"
)

const examplePools = `[
	{
		"Name": "footsteps",
		"Entries": [
			{"Item": "step1.wav", "Weight": 1},
			{"Item": "step2.wav", "Weight": 2},
			{"Item": "step3.wav", "Weight": 0}
		],
		"Volume": {"Min": 0.8, "Max": 1},
		"Pitch": {"Min": 0.9, "Max": 1.1},
		"Mode": "smart_weighted",
		"Seed": 12
	},
	{
		"Name": "ui_click",
		"Entries": [{"Item": "click.wav", "Weight": 1}]
	}
]`

func TestReadPools(t *testing.T) {
	pools, err := ReadPools(strings.NewReader(examplePools))
	require.NoError(t, err)
	require.Len(t, pools, 2)

	steps := pools[0]
	assert.Equal(t, "footsteps", steps.Name)
	assert.Equal(t, []wrand.Entry[string]{
		{Item: "step1.wav", Weight: 1},
		{Item: "step2.wav", Weight: 2},
		{Item: "step3.wav", Weight: 0},
	}, steps.Entries.Entries())

	cfg := steps.Config()
	assert.Equal(t, pool.Range{Min: 0.8, Max: 1}, cfg.Volume)
	assert.Equal(t, pool.Range{Min: 0.9, Max: 1.1}, cfg.Pitch)
	assert.Equal(t, selection.SmartWeighted, cfg.Mode)
	assert.Equal(t, int64(12), cfg.Seed)

	assert.Equal(t, pool.DefaultConfig(), pools[1].Config())
}

func TestReadPools_Invalid(t *testing.T) {
	cases := map[string]string{
		"unknown mode":   `[{"Name": "a", "Mode": "loud"}]`,
		"missing name":   `[{"Entries": []}]`,
		"duplicate name": `[{"Name": "a"}, {"Name": "a"}]`,
		"unknown field":  `[{"Name": "a", "Volumes": {}}]`,
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ReadPools(strings.NewReader(data))
			assert.Error(t, err)
		})
	}
}

func TestLoadPoolsAndRules(t *testing.T) {
	dir := t.TempDir()
	poolsPath := filepath.Join(dir, "pools.json")
	rulesPath := filepath.Join(dir, "rules.json")
	require.NoError(t, os.WriteFile(poolsPath, []byte(examplePools), 0o600))
	require.NoError(t, os.WriteFile(rulesPath, []byte(`[{"Act": "play", "Periodic": "random(1,2)", "Args": {}}]`), 0o600))

	pools, err := LoadPools(poolsPath)
	require.NoError(t, err)
	assert.Len(t, pools, 2)

	rules, err := LoadRules(rulesPath)
	require.NoError(t, err)
	require.Len(t, rules, 1)

	var rule Rule
	require.NoError(t, json.Unmarshal(rules[0], &rule))
	assert.Equal(t, ActPlay, rule.Act)
	assert.Equal(t, "random(1,2)", rule.Periodic)

	_, err = LoadPools(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestDuration(t *testing.T) {
	var rule Rule
	err := json.Unmarshal([]byte(`{"Act": "play", "Timeout": "1m30s", "MinInterval": 2.5}`), &rule)
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, rule.Timeout.Duration)
	assert.Equal(t, 2500*time.Millisecond, rule.MinInterval.Duration)

	data, err := json.Marshal(rule.Timeout)
	require.NoError(t, err)
	assert.Equal(t, `"1m30s"`, string(data))

	var d Duration
	assert.Error(t, json.Unmarshal([]byte(`"soon"`), &d))
	assert.Error(t, json.Unmarshal([]byte(`true`), &d))
}

func TestWrand_Pick(t *testing.T) {
	w := Wrand[string]{
		{Weight: 0, Item: "never"},
		{Weight: 1, Item: "always"},
	}
	r := wrand.NewRand(1)
	for i := 0; i < 50; i++ {
		item, err := w.Pick(r)
		require.NoError(t, err)
		assert.Equal(t, "always", item)
	}

	_, err := Wrand[string]{}.Pick(r)
	assert.ErrorIs(t, err, wrand.ErrEmptyCollection)

	_, err = Wrand[string]{{Weight: -1, Item: "x"}}.Pick(r)
	assert.ErrorIs(t, err, wrand.ErrInvalidWeight)
}
