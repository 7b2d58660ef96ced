package formance

import (
	"math/big"
	"testing"

	"github.com/formancehq/formance-sdk-go/v3/pkg/models/shared"
	"github.com/shopspring/decimal"
)

// ---------- Unit tests for pure helpers (no Formance stack needed) ----------

func TestFormanceAsset(t *testing.T) {
	tests := []struct {
		symbol string
		want   string
	}{
		{"USD", "USD/2"},
		{"USDC", "USDC/6"},
		{"BTC", "BTC/8"},
		{"ETH", "ETH/18"},
		{"UNKNOWN", "UNKNOWN/6"}, // default precision
	}
	for _, tt := range tests {
		if got := formanceAsset(tt.symbol); got != tt.want {
			t.Errorf("formanceAsset(%q) = %q, want %q", tt.symbol, got, tt.want)
		}
	}
}

func TestAssetSymbol(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"USDC/6", "USDC"},
		{"BTC/8", "BTC"},
		{"PLAIN", "PLAIN"},
	}
	for _, tt := range tests {
		if got := assetSymbol(tt.input); got != tt.want {
			t.Errorf("assetSymbol(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestBigIntToDecimal(t *testing.T) {
	// 5_000_000 cents of USD (precision 2) = 50000
	result := bigIntToDecimal(big.NewInt(5_000_000), "USD")
	if !result.Equal(decimal.NewFromInt(50000)) {
		t.Errorf("expected 50000, got %s", result.String())
	}

	// 100_000_000 smallest units of BTC (precision 8) = 1.0
	result = bigIntToDecimal(big.NewInt(100_000_000), "BTC")
	if !result.Equal(decimal.NewFromInt(1)) {
		t.Errorf("expected 1, got %s", result.String())
	}

	if result := bigIntToDecimal(nil, "USDC"); !result.IsZero() {
		t.Errorf("expected 0, got %s", result.String())
	}
}

func TestDecimalToSmallestUnit(t *testing.T) {
	if got := decimalToSmallestUnit(decimal.RequireFromString("1000.25"), "USD"); got != "100025" {
		t.Errorf("expected 100025, got %s", got)
	}
	if got := decimalToSmallestUnit(decimal.RequireFromString("0.5"), "ETH"); got != "500000000000000000" {
		t.Errorf("expected 5e17, got %s", got)
	}
}

func TestVolumeBalance(t *testing.T) {
	vols := map[string]shared.V2Volume{
		"USD/2": {Input: big.NewInt(5000), Output: big.NewInt(1500)},
		"BTC/8": {Balance: big.NewInt(42)},
	}
	if got := volumeBalance(vols, "USD/2"); got.Cmp(big.NewInt(3500)) != 0 {
		t.Errorf("expected 3500, got %s", got)
	}
	if got := volumeBalance(vols, "BTC/8"); got.Cmp(big.NewInt(42)) != 0 {
		t.Errorf("expected 42, got %s", got)
	}
	if got := volumeBalance(vols, "ETH/18"); got != nil {
		t.Errorf("expected nil, got %s", got)
	}
}

func TestCheckAmount(t *testing.T) {
	w := &Wallet{accountId: "acct", asset: "USD"}
	if err := w.checkAmount(decimal.RequireFromString("10.25")); err != nil {
		t.Errorf("expected 10.25 USD accepted, got %v", err)
	}
	if err := w.checkAmount(decimal.RequireFromString("10.255")); err == nil {
		t.Error("expected sub-cent USD amount rejected")
	}
	if err := w.checkAmount(decimal.Zero); err == nil {
		t.Error("expected zero amount rejected")
	}
}

func TestPostingsAmount(t *testing.T) {
	address := "accounts:acct:wallet"
	postings := []shared.V2Posting{
		{Source: address, Destination: "accounts:acct:staked", Asset: "USD/2", Amount: big.NewInt(100000)},
	}
	amt, txType := postingsAmount(postings, address, "USD")
	if !amt.Equal(decimal.NewFromInt(-1000)) || txType != "debit" {
		t.Errorf("expected -1000 debit, got %s %s", amt.String(), txType)
	}

	postings = []shared.V2Posting{
		{Source: "world", Destination: address, Asset: "USD/2", Amount: big.NewInt(5000000)},
	}
	amt, txType = postingsAmount(postings, address, "USD")
	if !amt.Equal(decimal.NewFromInt(50000)) || txType != "credit" {
		t.Errorf("expected 50000 credit, got %s %s", amt.String(), txType)
	}
}

func TestErrorClassifiers(t *testing.T) {
	if isConflictError(nil) || isNotFoundError(nil) || isInsufficientFundError(nil) {
		t.Error("nil should not match any error code")
	}
}
