package cartera

import (
	"errors"
	"fmt"
	"strings"

	"github.com/etnz/cartera/date"
	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

// Kind is the type of a transaction.
type Kind string

const (
	Buy      Kind = "buy"
	Sell     Kind = "sell"
	Dividend Kind = "dividend"
)

// ParseKind returns the Kind named by s, case insensitive.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case Buy, Sell, Dividend:
		return k, nil
	default:
		return "", fmt.Errorf("unknown transaction type %q, want buy, sell or dividend", s)
	}
}

func (k *Kind) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseKind(s)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Transaction is one financial event on a ticker.
//
// Numeric fields are optional: a buy or a sell uses Quantity and Price, a dividend uses Cash.
// Fees are added to the cost of a buy and deducted from the proceeds of a sell.
type Transaction struct {
	Ticker   string              `json:"ticker"`
	Date     date.Date           `json:"date"`
	Type     Kind                `json:"type"`
	Quantity decimal.NullDecimal `json:"quantity"`
	Price    decimal.NullDecimal `json:"price"`
	Cash     decimal.NullDecimal `json:"cash"`
	Fees     decimal.NullDecimal `json:"fees"`
}

// MarshalJSON writes the transaction fields in order, omitting undefined values.
func (tx Transaction) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("ticker", tx.Ticker)
	w.Append("date", tx.Date)
	w.Append("type", tx.Type)
	w.Decimal("quantity", tx.Quantity)
	w.Decimal("price", tx.Price)
	w.Decimal("cash", tx.Cash)
	w.Decimal("fees", tx.Fees)
	return w.MarshalJSON()
}

// Amount is the cash value of the transaction: the dividend cash, or the traded value
// plus fees for a buy and minus fees for a sell.
func (tx Transaction) Amount() decimal.Decimal {
	if tx.Type == Dividend {
		return orZero(tx.Cash)
	}
	traded := orZero(tx.Quantity).Mul(orZero(tx.Price))
	if tx.Type == Buy {
		return traded.Add(orZero(tx.Fees))
	}
	return traded.Sub(orZero(tx.Fees))
}

// Check reports the fields that do not make sense for this type of transaction.
//
// A transaction that fails the check is still usable: missing values count as zero.
func (tx Transaction) Check() error {
	var errs error
	if tx.Ticker == "" {
		errs = errors.Join(errs, errors.New("missing ticker"))
	}
	if tx.Date.IsZero() {
		errs = errors.Join(errs, errors.New("missing date"))
	}
	switch tx.Type {
	case Buy, Sell:
		if !tx.Quantity.Valid {
			errs = errors.Join(errs, fmt.Errorf("%s without quantity", tx.Type))
		} else if tx.Quantity.Decimal.IsNegative() {
			errs = errors.Join(errs, fmt.Errorf("%s with a negative quantity %v", tx.Type, tx.Quantity.Decimal))
		}
		if !tx.Price.Valid {
			errs = errors.Join(errs, fmt.Errorf("%s without price", tx.Type))
		}
	case Dividend:
		if !tx.Cash.Valid {
			errs = errors.Join(errs, errors.New("dividend without cash"))
		}
	default:
		errs = errors.Join(errs, fmt.Errorf("unknown type %q", tx.Type))
	}
	if tx.Fees.Valid && tx.Fees.Decimal.IsNegative() {
		errs = errors.Join(errs, fmt.Errorf("negative fees %v", tx.Fees.Decimal))
	}
	if errs != nil {
		return fmt.Errorf("%s %s %s: %w", tx.Date, tx.Type, tx.Ticker, errs)
	}
	return nil
}

func nd(v float64) decimal.NullDecimal { return decimal.NewNullDecimal(decimal.NewFromFloat(v)) }

// NewBuy creates a buy transaction.
func NewBuy(on date.Date, ticker string, quantity, price, fees float64) Transaction {
	return Transaction{Ticker: ticker, Date: on, Type: Buy, Quantity: nd(quantity), Price: nd(price), Fees: nd(fees)}
}

// NewSell creates a sell transaction.
func NewSell(on date.Date, ticker string, quantity, price, fees float64) Transaction {
	return Transaction{Ticker: ticker, Date: on, Type: Sell, Quantity: nd(quantity), Price: nd(price), Fees: nd(fees)}
}

// NewDividend creates a dividend transaction.
func NewDividend(on date.Date, ticker string, cash float64) Transaction {
	return Transaction{Ticker: ticker, Date: on, Type: Dividend, Cash: nd(cash)}
}
