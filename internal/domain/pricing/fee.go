package pricing

import (
	"strings"
	"sync"

	"github.com/payment-gateway/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Method is the part of a payment variant fee lookup needs
type Method interface {
	MethodName() string
}

// FeeStrategy computes the fee charged on top of the discounted amount
type FeeStrategy interface {
	Apply(base decimal.Decimal, method Method) decimal.Decimal
}

// RegistryFeeStrategy maps method tags to a percentage fee.
// Unregistered methods pay no fee.
type RegistryFeeStrategy struct {
	mu   sync.RWMutex
	fees map[string]decimal.Decimal
}

func NewRegistryFeeStrategy() *RegistryFeeStrategy {
	return &RegistryFeeStrategy{fees: make(map[string]decimal.Decimal)}
}

// Register sets the fee percentage for a method tag, replacing any previous value
func (s *RegistryFeeStrategy) Register(methodName string, percent decimal.Decimal) *RegistryFeeStrategy {
	s.mu.Lock()
	s.fees[strings.ToLower(methodName)] = percent
	s.mu.Unlock()
	return s
}

// Percent returns the registered percentage and whether one exists
func (s *RegistryFeeStrategy) Percent(methodName string) (decimal.Decimal, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pct, ok := s.fees[strings.ToLower(methodName)]
	return pct, ok
}

func (s *RegistryFeeStrategy) Apply(base decimal.Decimal, method Method) decimal.Decimal {
	pct, ok := s.Percent(method.MethodName())
	if !ok {
		return decimal.Zero
	}
	return shared.Percent(base, pct)
}
