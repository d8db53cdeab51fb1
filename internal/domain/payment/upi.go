package payment

import (
	"context"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

const MethodUPI = "UPI"

var upiHandlePattern = regexp.MustCompile(`^[a-zA-Z0-9.\-_]+@[a-zA-Z]+$`)

// UPIPayment collects through a UPI handle such as name@bank
type UPIPayment struct {
	*base
	handle string
}

func NewUPIPayment(c Common, handle string) (*UPIPayment, error) {
	b, err := newBase(c)
	if err != nil {
		return nil, err
	}
	if !upiHandlePattern.MatchString(handle) {
		return nil, invalid("upiId", ErrInvalidUPIHandle)
	}
	return &UPIPayment{base: b, handle: handle}, nil
}

func (p *UPIPayment) MethodName() string { return MethodUPI }

// MaskedInfo hides the local part and keeps the bank domain
func (p *UPIPayment) MaskedInfo() string {
	return "****@" + p.handle[strings.IndexByte(p.handle, '@')+1:]
}

func (p *UPIPayment) Process(ctx context.Context, key string, s Settlement) PaymentResult {
	return settleWithProvider(ctx, p, p.base, key, s, MsgUPIProviderError, MsgUPICollected)
}

func (p *UPIPayment) Refund(ctx context.Context, amount decimal.Decimal, s Settlement) RefundResult {
	return s.PerformRefund(ctx, p.transactionID, amount)
}

func (p *UPIPayment) RefundHook() RefundHook { return nil }
