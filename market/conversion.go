package market

// UnitsFromJPY converts a JPY notional into units of the purchased currency.
// rate is JPY per unit (GBP/JPY 210.04 -> 210.04).
func UnitsFromJPY(notionalJPY, rate float64) float64 {
	return notionalJPY / rate
}

// Lots expresses units in the swap-quoting lot size of meta.
func (meta CurrencyMeta) Lots(units float64) float64 {
	return units / meta.LotSize
}
