package domain

// Symbol identifier of a tradable pair, e.g. BTCUSDT.
// It is passed verbatim to data sources.
type Symbol string

// String returns the string representation.
func (s Symbol) String() string {
	return string(s)
}

// PopularSymbols default selection list.
var PopularSymbols = []Symbol{
	"BTCUSDT",
	"ETHUSDT",
	"DOGEBTC",
	"BNBUSDT",
	"ADAUSDT",
	"SOLUSDT",
	"XRPUSDT",
	"DOTUSDT",
}
