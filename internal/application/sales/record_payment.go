package sales

import (
	"context"
	"time"

	"github.com/babilsoft/babil-erp/pkg/logger"
	"github.com/shopspring/decimal"
)

// RecordPaymentUseCase records a customer payment in one transaction.
type RecordPaymentUseCase struct {
	txRunner TxRunner
	ledger   *CustomerLedger
	log      *logger.Logger
}

// NewRecordPaymentUseCase builds the use case.
func NewRecordPaymentUseCase(txRunner TxRunner, ledger *CustomerLedger, log *logger.Logger) *RecordPaymentUseCase {
	return &RecordPaymentUseCase{txRunner: txRunner, ledger: ledger, log: log}
}

// PaymentInput is the record-payment contract. Either amount may be zero but
// not both; each currency is validated against its own outstanding debt.
type PaymentInput struct {
	CustomerID  string
	AmountIQD   decimal.Decimal
	AmountUSD   decimal.Decimal
	Method      string
	Description string
}

// Record validates and applies the payment; on rejection (overpayment) no
// ledger row or invoice is written.
func (uc *RecordPaymentUseCase) Record(ctx context.Context, userID string, in PaymentInput) (*RecordPaymentResult, error) {
	var result *RecordPaymentResult
	err := uc.txRunner.Run(ctx, func(r TxRepos) error {
		res, err := uc.ledger.RecordPayment(r, in.CustomerID, in.AmountIQD, in.AmountUSD, in.Method, in.Description, userID, time.Now())
		if err != nil {
			return err
		}
		result = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("customer_id", in.CustomerID).Str("invoice_id", result.InvoiceID).
		Msg("payment recorded")
	return result, nil
}
