package prime

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"staking-ledger-go/internal/models"
	"staking-ledger-go/internal/store"

	"go.uber.org/zap"
)

// WalletLister lists the wallets of a Prime portfolio.
type WalletLister interface {
	ListWallets(ctx context.Context, portfolioId, walletType string, symbols []string) ([]models.PrimeWallet, error)
}

var _ store.MarketDataSource = (*MarketData)(nil)

// MarketData is a MarketDataSource whose assets are the symbols the portfolio holds
// trading wallets for. Pool terms are not published by Prime, so they come from pools.
type MarketData struct {
	wallets     WalletLister
	portfolioId string
	pools       store.MarketDataSource
}

func NewMarketData(wallets WalletLister, portfolioId string, pools store.MarketDataSource) *MarketData {
	return &MarketData{wallets: wallets, portfolioId: portfolioId, pools: pools}
}

// ListAssets returns one asset per distinct wallet symbol, sorted by symbol.
func (m *MarketData) ListAssets(ctx context.Context) ([]models.Asset, error) {
	walletList, err := m.wallets.ListWallets(ctx, m.portfolioId, "TRADING", nil)
	if err != nil {
		return nil, fmt.Errorf("unable to list trading wallets: %w", err)
	}

	seen := make(map[string]bool, len(walletList))
	var assets []models.Asset
	for _, w := range walletList {
		symbol := strings.ToUpper(w.Symbol)
		if symbol == "" || seen[symbol] {
			continue
		}
		seen[symbol] = true
		assets = append(assets, models.Asset{
			Id:     strings.ToLower(symbol),
			Symbol: symbol,
			Name:   w.Name,
		})
	}
	sort.Slice(assets, func(i, j int) bool { return assets[i].Symbol < assets[j].Symbol })

	zap.L().Info("Loaded assets from Prime wallets",
		zap.String("portfolio_id", m.portfolioId),
		zap.Int("wallets", len(walletList)),
		zap.Int("assets", len(assets)))
	return assets, nil
}

func (m *MarketData) ListPools(ctx context.Context) ([]models.Pool, error) {
	return m.pools.ListPools(ctx)
}
