package formance

import (
	"context"
	"fmt"

	"staking-ledger-go/internal/models"
	"staking-ledger-go/internal/store"

	"github.com/formancehq/formance-sdk-go/v3/pkg/models/operations"
	"github.com/formancehq/formance-sdk-go/v3/pkg/models/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ---------------------------------------------------------------------------
// Numscript templates. All metadata is set inside the script via set_tx_meta()
// so the Formance transaction is fully self-describing.
// ---------------------------------------------------------------------------

// Funds come from @world, the ledger's unbounded source.
const numscriptWalletCredit = `vars {
  asset $asset
  number $amount
  account $account_id
  string $reference
  string $asset_symbol
}

send [$asset $amount] (
  source = @world
  destination = @accounts:$account_id:wallet
)

set_tx_meta("event_type", "wallet_credit")
set_tx_meta("reference", $reference)
set_tx_meta("asset_symbol", $asset_symbol)
`

// No overdraft on the wallet: the ledger refuses the send with INSUFFICIENT_FUND.
const numscriptStakeDebit = `vars {
  asset $asset
  number $amount
  account $account_id
  string $reference
  string $asset_symbol
}

send [$asset $amount] (
  source = @accounts:$account_id:wallet
  destination = @accounts:$account_id:staked
)

set_tx_meta("event_type", "stake_debit")
set_tx_meta("reference", $reference)
set_tx_meta("asset_symbol", $asset_symbol)
`

var _ store.WalletAccount = (*Wallet)(nil)

// Wallet is a WalletAccount whose balance is the @accounts:{id}:wallet account of a
// Formance ledger. Staked principal moves to @accounts:{id}:staked.
type Wallet struct {
	svc       *Service
	accountId string
	asset     string
}

func (w *Wallet) walletAddress() string {
	return "accounts:" + w.accountId + ":wallet"
}

func (w *Wallet) GetBalance(ctx context.Context) (decimal.Decimal, error) {
	zap.L().Debug("Getting wallet balance from Formance",
		zap.String("account_id", w.accountId), zap.String("asset", w.asset))

	vols, err := w.svc.getAccountVolumes(ctx, w.walletAddress())
	if err != nil {
		return decimal.Zero, err
	}
	if bal := volumeBalance(vols, formanceAsset(w.asset)); bal != nil {
		return bigIntToDecimal(bal, w.asset), nil
	}
	return decimal.Zero, nil
}

func (w *Wallet) Debit(ctx context.Context, amount decimal.Decimal, reference string) error {
	if err := w.checkAmount(amount); err != nil {
		return err
	}
	if err := w.post(ctx, numscriptStakeDebit, amount, reference); err != nil {
		if isInsufficientFundError(err) {
			return fmt.Errorf("%w: debit %s %s", store.ErrInsufficientBalance, amount.String(), w.asset)
		}
		return err
	}

	zap.L().Info("Wallet debited in Formance",
		zap.String("account_id", w.accountId),
		zap.String("asset", w.asset),
		zap.String("amount", amount.String()),
		zap.String("reference", reference))
	return nil
}

func (w *Wallet) Credit(ctx context.Context, amount decimal.Decimal, reference string) error {
	if err := w.checkAmount(amount); err != nil {
		return err
	}
	if err := w.post(ctx, numscriptWalletCredit, amount, reference); err != nil {
		return err
	}

	zap.L().Info("Wallet credited in Formance",
		zap.String("account_id", w.accountId),
		zap.String("asset", w.asset),
		zap.String("amount", amount.String()),
		zap.String("reference", reference))
	return nil
}

// checkAmount rejects amounts the ledger cannot represent exactly at the asset precision.
func (w *Wallet) checkAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: must be positive, got %s", store.ErrInvalidAmount, amount.String())
	}
	p := int32(precisionFor(w.asset))
	if !amount.Equal(amount.Truncate(p)) {
		return fmt.Errorf("%w: %s has more than %d decimals for %s", store.ErrInvalidAmount, amount.String(), p, w.asset)
	}
	return nil
}

func (w *Wallet) post(ctx context.Context, script string, amount decimal.Decimal, reference string) error {
	postTx := shared.V2PostTransaction{
		Script: &shared.V2PostTransactionScript{
			Plain: script,
			Vars: map[string]string{
				"asset":        formanceAsset(w.asset),
				"amount":       decimalToSmallestUnit(amount, w.asset),
				"account_id":   w.accountId,
				"reference":    reference,
				"asset_symbol": w.asset,
			},
		},
	}
	if reference != "" {
		postTx.Reference = strPtr(reference)
	}

	_, err := w.svc.client.Ledger.V2.CreateTransaction(ctx, operations.V2CreateTransactionRequest{
		Ledger:            w.svc.ledger,
		V2PostTransaction: postTx,
	})
	if err != nil {
		if isConflictError(err) {
			return fmt.Errorf("%w: reference %s already exists", store.ErrDuplicateTransaction, reference)
		}
		return fmt.Errorf("error posting transaction: %w", err)
	}
	return nil
}

// GetTransactionHistory returns the wallet's movements, newest first.
func (w *Wallet) GetTransactionHistory(ctx context.Context, limit, offset int) ([]models.Transaction, error) {
	address := w.walletAddress()
	pageSize := int64(limit + offset) // fetch enough to skip offset

	resp, err := w.svc.client.Ledger.V2.ListTransactions(ctx, operations.V2ListTransactionsRequest{
		Ledger:   w.svc.ledger,
		PageSize: &pageSize,
		RequestBody: map[string]any{
			"$or": []any{
				map[string]any{"$match": map[string]any{"source": address}},
				map[string]any{"$match": map[string]any{"destination": address}},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	var result []models.Transaction
	skipped := 0
	for _, tx := range resp.V2TransactionsCursorResponse.Cursor.Data {
		if sym := tx.Metadata["asset_symbol"]; sym != "" && sym != w.asset {
			continue
		}
		if skipped < offset {
			skipped++
			continue
		}

		amt, txType := postingsAmount(tx.Postings, address, w.asset)

		ref := ""
		if tx.Reference != nil {
			ref = *tx.Reference
		}

		result = append(result, models.Transaction{
			Id:              fmt.Sprintf("%d", tx.ID),
			AccountId:       w.accountId,
			Asset:           w.asset,
			TransactionType: txType,
			Amount:          amt,
			Reference:       ref,
			Status:          "confirmed",
			CreatedAt:       tx.Timestamp,
		})

		if len(result) >= limit {
			break
		}
	}
	return result, nil
}

// postingsAmount derives the signed amount a transaction moved in or out of address.
func postingsAmount(postings []shared.V2Posting, address, asset string) (decimal.Decimal, string) {
	amt := decimal.Zero
	for _, p := range postings {
		symbol := assetSymbol(p.Asset)
		if symbol != asset {
			continue
		}
		pAmt := bigIntToDecimal(p.Amount, symbol)
		if p.Source == address {
			amt = amt.Sub(pAmt)
		}
		if p.Destination == address {
			amt = amt.Add(pAmt)
		}
	}
	if amt.IsNegative() {
		return amt, "debit"
	}
	return amt, "credit"
}
