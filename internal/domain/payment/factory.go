package payment

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/payment-gateway/internal/domain/shared"
)

// Constructor builds a variant from an inbound request and an assigned transaction id
type Constructor func(req *shared.PaymentRequest, transactionID string) (Variant, error)

// Factory resolves method tags to variant constructors
type Factory struct {
	mu       sync.RWMutex
	registry map[string]Constructor
	newID    func() string
}

// NewFactory creates an empty factory; a nil id generator defaults to NewTransactionID
func NewFactory(newID func() string) *Factory {
	if newID == nil {
		newID = NewTransactionID
	}
	return &Factory{
		registry: make(map[string]Constructor),
		newID:    newID,
	}
}

// NewDefaultFactory registers the card, upi and wallet methods
func NewDefaultFactory(newID func() string) *Factory {
	return NewFactory(newID).
		Register("card", newCardFromRequest).
		Register("upi", newUPIFromRequest).
		Register("wallet", newWalletFromRequest)
}

// NewTransactionID returns an id of the form TXN-1A2B3C4D
func NewTransactionID() string {
	return "TXN-" + strings.ToUpper(uuid.New().String()[:8])
}

// Register adds or replaces the constructor for a case-insensitive method tag
func (f *Factory) Register(method string, ctor Constructor) *Factory {
	f.mu.Lock()
	f.registry[strings.ToLower(method)] = ctor
	f.mu.Unlock()
	return f
}

// Methods lists the registered method tags in sorted order
func (f *Factory) Methods() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	methods := make([]string, 0, len(f.registry))
	for m := range f.registry {
		methods = append(methods, m)
	}
	sort.Strings(methods)
	return methods
}

// Create validates the request and constructs the matching variant.
// The request's transaction id is used when present.
func (f *Factory) Create(req *shared.PaymentRequest) (Variant, error) {
	if req == nil {
		return nil, errors.New("payment request is nil")
	}

	f.mu.RLock()
	ctor, ok := f.registry[strings.ToLower(req.Method)]
	f.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMethod, req.Method)
	}

	transactionID := req.TransactionID
	if transactionID == "" {
		transactionID = f.newID()
	}
	return ctor(req, transactionID)
}

// commonFromRequest defaults a missing currency to INR
func commonFromRequest(req *shared.PaymentRequest, transactionID string) Common {
	currency := shared.Currency(strings.ToUpper(string(req.Currency)))
	if currency == "" {
		currency = shared.CurrencyINR
	}
	return Common{
		TransactionID: transactionID,
		Amount:        req.Amount,
		Currency:      currency,
		UserID:        req.UserID,
	}
}

func newCardFromRequest(req *shared.PaymentRequest, transactionID string) (Variant, error) {
	expiry, err := ParseExpiry(req.Detail("expiry"))
	if err != nil {
		return nil, invalid("expiry", err)
	}
	return NewCardPayment(commonFromRequest(req, transactionID), CardDetails{
		Holder: req.Detail("cardHolder", "name"),
		Number: req.Detail("cardNumber"),
		Expiry: expiry,
		CVV:    req.Detail("cvv"),
	})
}

func newUPIFromRequest(req *shared.PaymentRequest, transactionID string) (Variant, error) {
	return NewUPIPayment(commonFromRequest(req, transactionID), req.Detail("upiId"))
}

func newWalletFromRequest(req *shared.PaymentRequest, transactionID string) (Variant, error) {
	return NewWalletPayment(commonFromRequest(req, transactionID), req.Detail("walletId"))
}
