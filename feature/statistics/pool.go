package statistics

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// PoolConfig describes one pity pool.
type PoolConfig struct {
	// Name labels the pool in reports.
	Name string `yaml:"name" json:"name"`
	// GachaTypes lists the gacha types counted by the pool.
	GachaTypes []int `yaml:"gacha_types" json:"gacha_types"`
	// HardPity is the pull that guarantees a top-rarity item.
	HardPity int `yaml:"hard_pity" json:"hard_pity"`
	// SoftPity is the first pull of the raised-odds range.
	SoftPity int `yaml:"soft_pity" json:"soft_pity"`
	// PurpleGuarantee is the pull that guarantees a second-rarity item.
	PurpleGuarantee int `yaml:"purple_guarantee" json:"purple_guarantee"`
}

// Pools holds the three tracked pools.
type Pools struct {
	Permanent   PoolConfig `yaml:"permanent"`
	AvatarEvent PoolConfig `yaml:"avatar_event"`
	WeaponEvent PoolConfig `yaml:"weapon_event"`
}

// DefaultPools returns the live game's pool rules. Novice pulls count
// towards the permanent pool.
func DefaultPools() Pools {
	return Pools{
		Permanent: PoolConfig{
			Name:            "permanent",
			GachaTypes:      []int{100, 200},
			HardPity:        90,
			SoftPity:        74,
			PurpleGuarantee: 10,
		},
		AvatarEvent: PoolConfig{
			Name:            "avatar_event",
			GachaTypes:      []int{301, 400},
			HardPity:        90,
			SoftPity:        74,
			PurpleGuarantee: 10,
		},
		WeaponEvent: PoolConfig{
			Name:            "weapon_event",
			GachaTypes:      []int{302},
			HardPity:        80,
			SoftPity:        65,
			PurpleGuarantee: 10,
		},
	}
}

// LoadPools reads pool overrides from a YAML file on top of DefaultPools.
// An empty path returns the defaults.
func LoadPools(path string) (Pools, error) {
	pools := DefaultPools()
	if path == "" {
		return pools, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Pools{}, fmt.Errorf("failed to read pools file: %w", err)
	}

	if err := yaml.Unmarshal(data, &pools); err != nil {
		return Pools{}, fmt.Errorf("failed to parse pools file: %w", err)
	}

	for _, p := range []PoolConfig{pools.Permanent, pools.AvatarEvent, pools.WeaponEvent} {
		if err := p.validate(); err != nil {
			return Pools{}, err
		}
	}

	return pools, nil
}

func (p PoolConfig) validate() error {
	if len(p.GachaTypes) == 0 {
		return fmt.Errorf("pool %q: no gacha types", p.Name)
	}
	if p.HardPity <= 0 || p.SoftPity <= 0 || p.SoftPity > p.HardPity {
		return fmt.Errorf("pool %q: invalid pity %d/%d", p.Name, p.SoftPity, p.HardPity)
	}
	if p.PurpleGuarantee <= 0 {
		return fmt.Errorf("pool %q: invalid purple guarantee %d", p.Name, p.PurpleGuarantee)
	}
	return nil
}
