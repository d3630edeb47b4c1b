package quote_test

import (
	"strconv"
	"testing"

	"github.com/pkg/errors"
	"github.com/storm-trade/swap-quote/quote"
	"github.com/storm-trade/swap-quote/types"
	"github.com/test-go/testify/require"
)

var (
	wbtc = types.Asset{Name: "WBTC", Symbol: "WBTC", Balance: "0.005", ReferenceValue: "110554.89"}
	usd  = types.Asset{Name: "USD", Symbol: "USD", Balance: "321.33", ReferenceValue: "1.00"}
	eth  = types.Asset{Symbol: "ETH", Balance: "1.25", ReferenceValue: "2500.10"}
	dead = types.Asset{Symbol: "DEAD", Balance: "10", ReferenceValue: "0"}
)

func TestSanitize(t *testing.T) {
	cases := []struct {
		raw, previous, want string
	}{
		{"", "1.5", ""},
		{"0", "1.5", ""},
		{".", "", "0."},
		{".5", "", "0.5"},
		{"0.", "", "0."},
		{"12", "1", "12"},
		{"1.2", "1.", "1.2"},
		{"1.234", "1.23", "1.234"},
		{"1.2345", "1.234", "1.234"},
		{"1.2.3", "1.2", "1.2"},
		{"1a", "1", "1"},
		{"-1", "", ""},
		{"1,5", "1", "1"},
		{"00", "", "00"},
	}

	for _, c := range cases {
		require.Equal(t, c.want, quote.Sanitize(c.raw, c.previous), "raw=%q previous=%q", c.raw, c.previous)
	}
}

func TestSanitize_Idempotent(t *testing.T) {
	previous := []string{"", "0.", "1.5", "321.33", "42"}
	inputs := []string{"", "0", ".", ".25", "7.125", "7.1255", "abc", "1..2", "99999"}

	for _, p := range previous {
		for _, x := range inputs {
			once := quote.Sanitize(x, p)
			require.Equal(t, once, quote.Sanitize(once, x), "x=%q p=%q", x, p)
		}
	}
}

func TestSanitize_PrecisionBound(t *testing.T) {
	inputs := []string{".1", ".12", ".123", ".1234", "5.5555", "1.2.3", "10.000", "10.0001"}

	for _, x := range inputs {
		s := quote.Sanitize(x, "")
		dot := -1
		for i, r := range s {
			if r == '.' {
				require.Equal(t, -1, dot, "second decimal point in %q", s)
				dot = i
			}
		}
		if dot >= 0 {
			require.True(t, len(s)-dot-1 <= quote.AmountFractionDigits, "too many fraction digits in %q", s)
		}
	}
}

func TestDestinationAmount(t *testing.T) {
	got, err := quote.DestinationAmount("0.005", wbtc, usd)
	require.Nil(t, err)
	require.Equal(t, "552.77445", got)

	got, err = quote.DestinationAmount("1", usd, eth)
	require.Nil(t, err)
	require.Equal(t, "0.00040", got)

	got, err = quote.DestinationAmount("2", wbtc, wbtc)
	require.Nil(t, err)
	require.Equal(t, "2.00000", got)
}

func TestDestinationAmount_EmptyCases(t *testing.T) {
	for _, amount := range []string{"", "0", "0.", "0.000", "abc"} {
		got, err := quote.DestinationAmount(amount, wbtc, usd)
		require.Nil(t, err)
		require.Equal(t, "0", got, "amount=%q", amount)
	}

	// Identity cases never reach the rate.
	got, err := quote.DestinationAmount("", wbtc, dead)
	require.Nil(t, err)
	require.Equal(t, "0", got)
}

func TestDestinationAmount_DegenerateRate(t *testing.T) {
	_, err := quote.DestinationAmount("1", wbtc, dead)
	require.NotNil(t, err)
	require.Equal(t, quote.ErrDegenerateRate, errors.Cause(err))

	broken := types.Asset{Symbol: "BRK", ReferenceValue: "n/a"}
	_, err = quote.DestinationAmount("1", broken, usd)
	require.NotNil(t, err)
	require.Equal(t, quote.ErrInvalidDecimal, errors.Cause(err))
}

func TestDestinationAmount_Linear(t *testing.T) {
	amounts := []string{"0.001", "0.5", "1.25", "3", "250.125"}

	for _, a := range amounts {
		single, err := quote.DestinationAmount(a, eth, usd)
		require.Nil(t, err)

		value, err := strconv.ParseFloat(a, 64)
		require.Nil(t, err)
		doubled, err := quote.DestinationAmount(strconv.FormatFloat(value*2, 'f', -1, 64), eth, usd)
		require.Nil(t, err)

		require.InDelta(t, 2*mustFloat(t, single), mustFloat(t, doubled), 2e-5, "amount=%s", a)
	}
}

func TestDestinationAmount_RoundTrip(t *testing.T) {
	pairs := []struct {
		amount   string
		src, dst types.Asset
		delta    float64
	}{
		{"0.005", wbtc, usd, 1e-5},
		{"1.25", eth, usd, 1e-5},
		{"100", usd, eth, 0.03},
		{"12.5", usd, wbtc, 0.6},
	}

	for _, p := range pairs {
		forward, err := quote.DestinationAmount(p.amount, p.src, p.dst)
		require.Nil(t, err)
		back, err := quote.DestinationAmount(forward, p.dst, p.src)
		require.Nil(t, err)

		require.InDelta(t, mustFloat(t, p.amount), mustFloat(t, back), p.delta, "%s %s->%s", p.amount, p.src.Symbol, p.dst.Symbol)
	}
}

func TestExchangeRateLabel(t *testing.T) {
	label, err := quote.ExchangeRateLabel(wbtc, usd)
	require.Nil(t, err)
	require.Equal(t, "1 WBTC: 110,554.89 USD", label)

	label, err = quote.ExchangeRateLabel(usd, wbtc)
	require.Nil(t, err)
	require.Equal(t, "1 USD: 0.00 WBTC", label)

	label, err = quote.ExchangeRateLabel(eth, usd)
	require.Nil(t, err)
	require.Equal(t, "1 ETH: 2,500.10 USD", label)

	_, err = quote.ExchangeRateLabel(usd, dead)
	require.Equal(t, quote.ErrDegenerateRate, errors.Cause(err))
}

func TestIsSubmissionEnabled(t *testing.T) {
	require.True(t, quote.IsSubmissionEnabled("0.005", wbtc))
	require.True(t, quote.IsSubmissionEnabled("0.001", wbtc))
	require.True(t, quote.IsSubmissionEnabled(wbtc.Balance, wbtc))
	require.True(t, quote.IsSubmissionEnabled("321.33", usd))

	require.False(t, quote.IsSubmissionEnabled("0.006", wbtc))
	require.False(t, quote.IsSubmissionEnabled("321.331", usd))
	require.False(t, quote.IsSubmissionEnabled("", wbtc))
	require.False(t, quote.IsSubmissionEnabled("0", wbtc))
	require.False(t, quote.IsSubmissionEnabled("0.", wbtc))
	require.False(t, quote.IsSubmissionEnabled("abc", wbtc))
	require.False(t, quote.IsSubmissionEnabled("1", types.Asset{Symbol: "X", Balance: "bad"}))
}

func TestLabels(t *testing.T) {
	require.Equal(t, "Preview", quote.ActionLabel(true))
	require.Equal(t, "Incorrect Order", quote.ActionLabel(false))
	require.Equal(t, "Balance: 0.005", quote.BalanceLabel(wbtc))
	require.Equal(t, "Waived", quote.FeeLabel)
}

func TestParseDecimal(t *testing.T) {
	d, err := quote.ParseDecimal("0.")
	require.Nil(t, err)
	require.True(t, d.IsZero())

	d, err = quote.ParseDecimal(".5")
	require.Nil(t, err)
	require.Equal(t, "0.5", d.String())

	_, err = quote.ParseDecimal("")
	require.Equal(t, quote.ErrInvalidDecimal, errors.Cause(err))

	_, err = quote.ParseDecimal("1.2.3")
	require.Equal(t, quote.ErrInvalidDecimal, errors.Cause(err))
}

func mustFloat(t *testing.T, s string) float64 {
	t.Helper()
	f, err := strconv.ParseFloat(s, 64)
	require.Nil(t, err)
	return f
}
