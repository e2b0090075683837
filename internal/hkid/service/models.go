package service

// ValidateRequest asks whether HKID carries the correct check character.
type ValidateRequest struct {
	HKID        string
	MustBeKnown bool
}

// ValidateResult describes a structurally valid HKID. Valid is false when the
// provided check character differs from the expected one.
type ValidateResult struct {
	Input              string
	Valid              bool
	Canonical          string
	Prefix             string
	PrefixKnown        bool
	PrefixDescription  string
	CheckDigit         rune
	ExpectedCheckDigit rune
}

// BatchItem is the outcome for one entry of a batch, at the same index as
// its input. Exactly one of Result and Err is set.
type BatchItem struct {
	Index  int
	Input  string
	Result *ValidateResult
	Err    error
}

// GenerateRequest asks for Count numbers. A nil Prefix picks one at random,
// from the documented table when MustBeKnown is set.
type GenerateRequest struct {
	Prefix      *string
	MustBeKnown bool
	Count       int
}

// CheckDigitResult is the computed check character for a body.
type CheckDigitResult struct {
	Body       string
	CheckDigit rune
	Formatted  string
}

// PrefixInfo describes a documented prefix.
type PrefixInfo struct {
	Code        string
	Description string
}

// SymbolInfo describes a classified card symbol.
type SymbolInfo struct {
	Text        string
	Kind        string
	Code        string
	Description string
	Known       bool
	OfficeCode  string
	LostCount   *uint8
}
