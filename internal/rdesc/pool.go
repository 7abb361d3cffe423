package rdesc

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/petuhovskiy/soundpool/internal/pool"
	"github.com/petuhovskiy/soundpool/internal/selection"
)

// Pool describes a named sound pool. Entries keep their order from the file.
type Pool struct {
	Name    string
	Entries Wrand[string]
	// Optional, [1, 1] when omitted.
	Volume *pool.Range
	Pitch  *pool.Range
	// Optional, "smart" when omitted.
	Mode *selection.Mode
	// 0 means non-deterministic draws.
	Seed int64
}

// Config converts the description into an engine configuration.
func (p *Pool) Config() pool.Config {
	cfg := pool.DefaultConfig()
	if p.Volume != nil {
		cfg.Volume = *p.Volume
	}
	if p.Pitch != nil {
		cfg.Pitch = *p.Pitch
	}
	if p.Mode != nil {
		cfg.Mode = *p.Mode
	}
	cfg.Seed = p.Seed
	return cfg
}

// ReadPools decodes a JSON array of pool descriptions.
func ReadPools(r io.Reader) ([]Pool, error) {
	var pools []Pool
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&pools); err != nil {
		return nil, fmt.Errorf("decode pools: %w", err)
	}

	seen := make(map[string]bool, len(pools))
	for i, p := range pools {
		if p.Name == "" {
			return nil, fmt.Errorf("pools[%d]: name is required", i)
		}
		if seen[p.Name] {
			return nil, fmt.Errorf("pools[%d]: duplicate name %q", i, p.Name)
		}
		seen[p.Name] = true
	}
	return pools, nil
}

func LoadPools(path string) ([]Pool, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pools file: %w", err)
	}
	defer f.Close()

	return ReadPools(f)
}

// LoadRules reads a JSON array of rule descriptions.
func LoadRules(path string) ([]json.RawMessage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}

	var rules []json.RawMessage
	if err := json.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("decode rules: %w", err)
	}
	return rules, nil
}
