package market

// A handful of currencies are listed by exchanges under a different code
// than the one the market-data service uses. The override list is the single
// source of truth; both lookup directions are derived from it so forward and
// reverse mapping cannot drift apart.
var symbolOverrides = []struct {
	Currency string // exchange-native code
	Symbol   string // market-data service code
}{
	{Currency: "IOTA", Symbol: "MIOTA"},
	{Currency: "XRB", Symbol: "NANO"},
}

var (
	currencyToSymbol = make(map[string]string, len(symbolOverrides))
	symbolToCurrency = make(map[string]string, len(symbolOverrides))
)

func init() {
	for _, o := range symbolOverrides {
		currencyToSymbol[o.Currency] = o.Symbol
		symbolToCurrency[o.Symbol] = o.Currency
	}
}

// ToMarketSymbol translates an exchange-native currency code into the code
// used by the market-data service. Unmapped codes pass through unchanged.
func ToMarketSymbol(currency string) string {
	if symbol, ok := currencyToSymbol[currency]; ok {
		return symbol
	}
	return currency
}

// ToCurrency is the reverse of ToMarketSymbol.
func ToCurrency(symbol string) string {
	if currency, ok := symbolToCurrency[symbol]; ok {
		return currency
	}
	return symbol
}
