package marketdata

// FundInfo is descriptive metadata about one instrument, gathered from
// loosely-shaped upstream payloads. Every field is a pointer: nil means the
// source did not provide it, which is different from an empty value.
type FundInfo struct {
	Symbol   string
	Name     *string
	Currency *string
	Exchange *string
	Type     *string
	ISIN     *string
}

// Merge combines fund info from two sources: the primary source wins on every
// field it actually provides, and the secondary only fills the gaps. The
// inputs are not modified.
func Merge(primary, secondary FundInfo) FundInfo {
	out := primary
	if out.Symbol == "" {
		out.Symbol = secondary.Symbol
	}
	if out.Name == nil {
		out.Name = secondary.Name
	}
	if out.Currency == nil {
		out.Currency = secondary.Currency
	}
	if out.Exchange == nil {
		out.Exchange = secondary.Exchange
	}
	if out.Type == nil {
		out.Type = secondary.Type
	}
	if out.ISIN == nil {
		out.ISIN = secondary.ISIN
	}
	return out
}
