// market/instruments.go
package market

import "fmt"

// Currency is an ISO code for a currency bought against JPY.
type Currency string

const (
	GBP Currency = "GBP"
	MXN Currency = "MXN"
	TRY Currency = "TRY"
)

// AccountCurrency is the currency every amount in the model is expressed in.
const AccountCurrency = "JPY"

type CurrencyMeta struct {
	Code       Currency
	Instrument string // "GBP_JPY"

	// LotSize is the unit count a broker quotes the daily swap against.
	LotSize float64

	// Leveraged currencies accept contributions split across 1x/2x/3x tiers.
	Leveraged bool
}

var Currencies = map[Currency]CurrencyMeta{
	GBP: {
		Code:       GBP,
		Instrument: "GBP_JPY",
		LotSize:    10_000,
	},
	MXN: {
		Code:       MXN,
		Instrument: "MXN_JPY",
		LotSize:    100_000,
		Leveraged:  true,
	},
	TRY: {
		Code:       TRY,
		Instrument: "TRY_JPY",
		LotSize:    10_000,
	},
}

// Ordered lists the supported currencies in display order.
var Ordered = []Currency{GBP, MXN, TRY}

// Lookup returns the metadata for c.
func Lookup(c Currency) (CurrencyMeta, error) {
	meta, ok := Currencies[c]
	if !ok {
		return CurrencyMeta{}, fmt.Errorf("unknown currency %s", c)
	}
	return meta, nil
}

func (c Currency) String() string {
	return string(c)
}

// Instrument returns the JPY cross for c, e.g. "MXN_JPY".
func (c Currency) Instrument() string {
	if meta, ok := Currencies[c]; ok {
		return meta.Instrument
	}
	return string(c) + "_" + AccountCurrency
}
