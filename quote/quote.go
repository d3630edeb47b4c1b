// Package quote turns a source amount and an asset pair into a destination
// amount, an exchange rate label and a submission verdict. Everything here is
// a pure function of its arguments.
package quote

import (
	"regexp"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/storm-trade/swap-quote/types"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const (
	AmountFractionDigits     = 3
	DestinationDecimalPlaces = 5
	RateDecimalPlaces        = 2

	FeeLabel = "Waived"
)

var (
	ErrDegenerateRate = errors.New("rate unavailable")
	ErrInvalidDecimal = errors.New("invalid decimal")
)

var amountPattern = regexp.MustCompile(`^\d*\.?\d{0,3}$`)

var ratePrinter = message.NewPrinter(language.AmericanEnglish)

// Sanitize returns the next accepted amount text for a keystroke. Rejected
// input keeps the previously accepted value.
func Sanitize(raw, previous string) string {
	if raw == "" || raw == "0" {
		return ""
	}

	candidate := raw
	if strings.HasPrefix(candidate, ".") {
		candidate = "0" + candidate
	}

	if !amountPattern.MatchString(candidate) {
		return previous
	}
	return candidate
}

// ParseDecimal parses amount text and catalog values. A bare trailing or
// leading decimal point is tolerated ("0.", ".5").
func ParseDecimal(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, ".") {
		s = "0" + s
	}
	s = strings.TrimSuffix(s, ".")
	if s == "" {
		return decimal.Zero, errors.Wrap(ErrInvalidDecimal, "empty value")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, errors.Wrapf(ErrInvalidDecimal, "parse %q: %v", s, err)
	}
	return d, nil
}

func referenceValues(src, dst types.Asset) (decimal.Decimal, decimal.Decimal, error) {
	srcValue, err := ParseDecimal(src.ReferenceValue)
	if err != nil {
		return decimal.Zero, decimal.Zero, errors.Wrapf(err, "%s reference value", src.Symbol)
	}
	dstValue, err := ParseDecimal(dst.ReferenceValue)
	if err != nil {
		return decimal.Zero, decimal.Zero, errors.Wrapf(err, "%s reference value", dst.Symbol)
	}
	if dstValue.IsZero() {
		return decimal.Zero, decimal.Zero, errors.Wrapf(ErrDegenerateRate, "%s has zero reference value", dst.Symbol)
	}
	return srcValue, dstValue, nil
}

// Rate is the number of destination units one source unit buys.
func Rate(src, dst types.Asset) (decimal.Decimal, error) {
	srcValue, dstValue, err := referenceValues(src, dst)
	if err != nil {
		return decimal.Zero, err
	}
	return srcValue.Div(dstValue), nil
}

// DestinationAmount quotes amount of src in units of dst, fixed to five
// decimal places. An empty, zero or non-numeric amount quotes "0".
func DestinationAmount(amount string, src, dst types.Asset) (string, error) {
	if amount == "" {
		return "0", nil
	}
	value, err := ParseDecimal(amount)
	if err != nil || value.IsZero() {
		return "0", nil
	}

	srcValue, dstValue, err := referenceValues(src, dst)
	if err != nil {
		return "", err
	}

	// Multiply first: Div rounds at decimal.DivisionPrecision.
	return value.Mul(srcValue).Div(dstValue).StringFixed(DestinationDecimalPlaces), nil
}

// ExchangeRateLabel renders "1 SRC: 1,234.56 DST".
func ExchangeRateLabel(src, dst types.Asset) (string, error) {
	rate, err := Rate(src, dst)
	if err != nil {
		return "", err
	}

	rounded := rate.Round(RateDecimalPlaces).InexactFloat64()
	formatted := ratePrinter.Sprint(number.Decimal(rounded, number.Scale(RateDecimalPlaces)))

	return "1 " + src.DisplayName() + ": " + formatted + " " + dst.DisplayName(), nil
}

// IsSubmissionEnabled reports whether 0 < amount <= src.Balance.
func IsSubmissionEnabled(amount string, src types.Asset) bool {
	if amount == "" {
		return false
	}
	value, err := ParseDecimal(amount)
	if err != nil {
		return false
	}
	balance, err := ParseDecimal(src.Balance)
	if err != nil {
		return false
	}
	return value.IsPositive() && value.LessThanOrEqual(balance)
}

func ActionLabel(enabled bool) string {
	if enabled {
		return "Preview"
	}
	return "Incorrect Order"
}

func BalanceLabel(a types.Asset) string {
	return "Balance: " + a.Balance
}
