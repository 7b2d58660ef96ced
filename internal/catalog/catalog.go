/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package catalog

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"staking-ledger-go/internal/models"
	"staking-ledger-go/internal/store"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Catalog is the registry of staking pools. Pool terms are read-only; only the
// advisory TotalStaked/TotalRewards counters change after construction.
type Catalog struct {
	mu    sync.RWMutex
	order []string
	pools map[string]*models.Pool
}

// New builds a catalog from pools in the given order.
func New(pools ...models.Pool) (*Catalog, error) {
	c := &Catalog{pools: make(map[string]*models.Pool, len(pools))}
	for i, p := range pools {
		if err := validatePool(p); err != nil {
			return nil, fmt.Errorf("pool at index %d: %w", i, err)
		}
		if _, exists := c.pools[p.Id]; exists {
			return nil, fmt.Errorf("pool at index %d: duplicate id %q", i, p.Id)
		}
		pool := p
		c.pools[p.Id] = &pool
		c.order = append(c.order, p.Id)
	}
	return c, nil
}

// Load builds a catalog from a market data source, resolving each pool's asset
// against the source's asset list by symbol.
func Load(ctx context.Context, source store.MarketDataSource) (*Catalog, error) {
	assets, err := source.ListAssets(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to list assets: %w", err)
	}
	pools, err := source.ListPools(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to list pools: %w", err)
	}

	bySymbol := make(map[string]models.Asset, len(assets))
	for _, a := range assets {
		bySymbol[strings.ToUpper(a.Symbol)] = a
	}

	for i := range pools {
		asset, ok := bySymbol[strings.ToUpper(pools[i].Asset.Symbol)]
		if !ok {
			return nil, fmt.Errorf("pool %q references unknown asset %q", pools[i].Id, pools[i].Asset.Symbol)
		}
		pools[i].Asset = asset
	}

	c, err := New(pools...)
	if err != nil {
		return nil, err
	}

	zap.L().Info("Pool catalog loaded", zap.Int("pools", len(pools)), zap.Int("assets", len(assets)))
	return c, nil
}

// List returns all pools in insertion order. The slice is a copy.
func (c *Catalog) List() []models.Pool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	pools := make([]models.Pool, 0, len(c.order))
	for _, id := range c.order {
		pools = append(pools, *c.pools[id])
	}
	return pools
}

// Get returns the pool with the given id or store.ErrNotFound.
func (c *Catalog) Get(id string) (models.Pool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	p, ok := c.pools[id]
	if !ok {
		return models.Pool{}, fmt.Errorf("%w: pool %s", store.ErrNotFound, id)
	}
	return *p, nil
}

// RecordStake bumps the advisory counters of a pool after a stake is created.
func (c *Catalog) RecordStake(id string, amount, reward decimal.Decimal) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, ok := c.pools[id]
	if !ok {
		return fmt.Errorf("%w: pool %s", store.ErrNotFound, id)
	}
	p.TotalStaked = p.TotalStaked.Add(amount)
	p.TotalRewards = p.TotalRewards.Add(reward)
	return nil
}

func validatePool(p models.Pool) error {
	if p.Id == "" {
		return fmt.Errorf("missing id")
	}
	if p.APY.IsNegative() {
		return fmt.Errorf("pool %s: apy cannot be negative", p.Id)
	}
	if p.MinStake.IsNegative() {
		return fmt.Errorf("pool %s: min stake cannot be negative", p.Id)
	}
	if p.LockPeriodDays <= 0 {
		return fmt.Errorf("pool %s: lock period must be positive, got %d", p.Id, p.LockPeriodDays)
	}
	return nil
}
