package config

import (
	"fmt"
	"os"

	"github.com/Brad-Behrens/FlightSurety-DApp/internal/domain"
	"gopkg.in/yaml.v3"
)

// IdentityPool is the on-disk list of addresses the coordinator controls.
//
//	identities:
//	  - "0x627306090abab3a6e1400e9345bc60c78a8bef57"
//	  - "0xf17f52151ebef6c7334fad080c5704d77216b732"
type IdentityPool struct {
	Identities []string `yaml:"identities"`
}

func LoadIdentityPool(path string) ([]domain.Address, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read identity pool: %w", err)
	}

	var pool IdentityPool
	if err := yaml.Unmarshal(data, &pool); err != nil {
		return nil, fmt.Errorf("parse identity pool %s: %w", path, err)
	}

	addrs := make([]domain.Address, 0, len(pool.Identities))
	for _, id := range pool.Identities {
		addr := domain.Address(id).Normalize()
		if addr == "" {
			continue
		}
		addrs = append(addrs, addr)
	}

	if len(addrs) == 0 {
		return nil, fmt.Errorf("identity pool %s lists no identities", path)
	}
	return addrs, nil
}
