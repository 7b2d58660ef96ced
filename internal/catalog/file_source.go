package catalog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"staking-ledger-go/internal/models"
	"staking-ledger-go/internal/store"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v2"
)

var _ store.MarketDataSource = (*FileSource)(nil)

type PoolConfig struct {
	Id             string `yaml:"id"`
	Asset          string `yaml:"asset"`
	APY            string `yaml:"apy"`
	MinStake       string `yaml:"min_stake"`
	LockPeriodDays int    `yaml:"lock_period_days"`
	TotalStaked    string `yaml:"total_staked"`
	TotalRewards   string `yaml:"total_rewards"`
	IsActive       bool   `yaml:"is_active"`
}

type PoolsConfig struct {
	Assets []models.Asset `yaml:"assets"`
	Pools  []PoolConfig   `yaml:"pools"`
}

// FileSource serves assets and pools from a pools.yaml file.
type FileSource struct {
	assets []models.Asset
	pools  []models.Pool
}

func LoadFileSource(poolsFile string) (*FileSource, error) {
	var poolsPath string
	if filepath.IsAbs(poolsFile) {
		poolsPath = poolsFile
	} else {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		poolsPath = filepath.Join(wd, poolsFile)
	}

	data, err := os.ReadFile(poolsPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read %s: %w", poolsFile, err)
	}

	return ParseFileSource(data)
}

func ParseFileSource(data []byte) (*FileSource, error) {
	var config PoolsConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("unable to parse pools: %w", err)
	}

	for i, asset := range config.Assets {
		if asset.Symbol == "" {
			return nil, fmt.Errorf("asset at index %d missing symbol", i)
		}
		if config.Assets[i].Id == "" {
			config.Assets[i].Id = asset.Symbol
		}
	}

	pools := make([]models.Pool, 0, len(config.Pools))
	for i, pc := range config.Pools {
		if pc.Asset == "" {
			return nil, fmt.Errorf("pool at index %d missing asset", i)
		}
		apy, err := parseDecimal(pc.APY)
		if err != nil {
			return nil, fmt.Errorf("pool at index %d: invalid apy: %w", i, err)
		}
		minStake, err := parseDecimal(pc.MinStake)
		if err != nil {
			return nil, fmt.Errorf("pool at index %d: invalid min_stake: %w", i, err)
		}
		totalStaked, err := parseDecimal(pc.TotalStaked)
		if err != nil {
			return nil, fmt.Errorf("pool at index %d: invalid total_staked: %w", i, err)
		}
		totalRewards, err := parseDecimal(pc.TotalRewards)
		if err != nil {
			return nil, fmt.Errorf("pool at index %d: invalid total_rewards: %w", i, err)
		}

		pools = append(pools, models.Pool{
			Id:             pc.Id,
			Asset:          models.Asset{Symbol: pc.Asset},
			APY:            apy,
			MinStake:       minStake,
			LockPeriodDays: pc.LockPeriodDays,
			TotalStaked:    totalStaked,
			TotalRewards:   totalRewards,
			IsActive:       pc.IsActive,
		})
	}

	return &FileSource{assets: config.Assets, pools: pools}, nil
}

func (f *FileSource) ListAssets(_ context.Context) ([]models.Asset, error) {
	return append([]models.Asset(nil), f.assets...), nil
}

func (f *FileSource) ListPools(_ context.Context) ([]models.Pool, error) {
	return append([]models.Pool(nil), f.pools...), nil
}

func parseDecimal(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}
