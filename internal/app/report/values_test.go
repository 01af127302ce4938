package report

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"

	"vault_reporter/internal/domain/payload"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestFormatUSD(t *testing.T) {
	tests := []struct {
		name string
		in   payload.Value
		want string
	}{
		{"absent", payload.Value{}, "N/A"},
		{"null", payload.NewNull(), "N/A"},
		{"zero number is treated as missing", payload.NewNumber("0"), "N/A"},
		{"empty string", payload.NewString(""), "N/A"},
		{"numeric string", payload.NewString("1234.5"), "$1234.50"},
		{"number", payload.NewNumber("99.999"), "$100.00"},
		{"zero string is present", payload.NewString("0"), "$0.00"},
		{"garbage", payload.NewString("lots"), "N/A"},
		{"object", payload.NewObject(payload.F("usd", payload.NewNumber("1"))), "N/A"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatUSD(tt.in))
		})
	}
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "15.23%", FormatPercent(payload.NewNumber("0.1523")))
	assert.Equal(t, "4.10%", FormatPercent(payload.NewNumber("0.041")))
	assert.Equal(t, "N/A", FormatPercent(payload.NewNumber("0")))
	assert.Equal(t, "N/A", FormatPercent(payload.NewNull()))
	assert.Equal(t, "N/A", FormatPercent(payload.Value{}))
	assert.Equal(t, "N/A", FormatPercent(payload.NewBool(true)))
	assert.Equal(t, "-1.50%", FormatPercent(payload.NewNumber("-0.015")))
}

func TestFormatNative(t *testing.T) {
	assert.Equal(t, "1.500000 USDC", FormatNative(payload.NewString("1.5"), "USDC"))
	assert.Equal(t, "0.000001 ETH", FormatNative(payload.NewString("0.00000123"), "ETH"))
	assert.Equal(t, "N/A", FormatNative(payload.Value{}, "USDC"))
	assert.Equal(t, "N/A", FormatNative(payload.NewString("n/a"), "USDC"))
}

func TestFormattersRejectHugeExponents(t *testing.T) {
	for _, raw := range []string{"1e400", "1e-400", "1e50000000"} {
		assert.Equal(t, NotAvailable, FormatUSD(payload.NewString(raw)), "input %q", raw)
		assert.Equal(t, NotAvailable, FormatPercent(payload.NewNumber(raw)), "input %q", raw)
		assert.Equal(t, NotAvailable, FormatNative(payload.NewString(raw), "USDC"), "input %q", raw)
	}
}

func TestTruncate(t *testing.T) {
	long := strings.Repeat("a", 60)
	assert.Equal(t, strings.Repeat("a", 50)+"...", Truncate("to", long))
	assert.Equal(t, "short", Truncate("to", "short"))
	assert.Equal(t, strings.Repeat("a", 50), Truncate("to", strings.Repeat("a", 50)))

	assert.Equal(t, "0x1234567890abcdef12...", Truncate("data", "0x1234567890abcdef1234567890"))
	assert.Equal(t, "0x1234567890abcdef12", Truncate("data", "0x1234567890abcdef12"))

	assert.Equal(t, "abc...", TruncateTo("name", "abcdef", 3))
}

func TestTruncateCountsRunes(t *testing.T) {
	value := strings.Repeat("é", 25)
	got := Truncate("data", value)
	assert.Equal(t, strings.Repeat("é", 20)+"...", got)
	assert.True(t, utf8.ValidString(got))
}

func TestTruncateIsIdempotent(t *testing.T) {
	inputs := []struct{ key, value string }{
		{"data", "0x095ea7b3000000000000000000000000ffffffffffffffffffffffff"},
		{"to", strings.Repeat("z", 120)},
		{"value", "1000000"},
	}
	for _, in := range inputs {
		once := Truncate(in.key, in.value)
		twice := Truncate(in.key, once)
		assert.Equal(t, once, twice)
		if strings.HasSuffix(once, Ellipsis) {
			assert.Equal(t, 1, strings.Count(twice, Ellipsis))
		}
		assert.LessOrEqual(t, utf8.RuneCountInString(twice), DefaultMaxLength+len(Ellipsis))
	}
}

func TestShortenName(t *testing.T) {
	assert.Equal(t, "Morpho Steakhouse ...", ShortenName("Morpho Steakhouse USDC", 18))
	assert.Equal(t, "Aave v3", ShortenName("Aave v3", 18))
	assert.Equal(t, "exactly-sixteen!", ShortenName("exactly-sixteen!", 16))
}
