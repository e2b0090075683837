package hkid

import (
	"strconv"
	"strings"
)

// SymbolKind identifies a symbol variant.
type SymbolKind int

const (
	SymbolUnknown SymbolKind = iota
	SymbolAdultReentryEligible
	SymbolYouthReentryEligible
	SymbolRightOfAbode
	SymbolBirthDetailsChanged
	SymbolStayLimited
	SymbolNameChanged
	SymbolBornOutsideHKChinaMacau
	SymbolRightToLand
	SymbolStayUnlimited
	SymbolBornInMacau
	SymbolBornInMainlandChina
	SymbolBirthDateConfirmed
	SymbolBornInHongKong
	SymbolIssuingOffice
	SymbolLostCard
)

type symbolMeta struct {
	code        string
	name        string
	description string
}

// symbolTable holds the code tag, name and description of every kind. The
// parametrized kinds use a placeholder tag.
var symbolTable = map[SymbolKind]symbolMeta{
	SymbolAdultReentryEligible:    {"***", "adult_reentry_eligible", "The holder is aged 18 or over and eligible for a Hong Kong Re-entry Permit"},
	SymbolYouthReentryEligible:    {"*", "youth_reentry_eligible", "The holder is aged between 11 and 17 and eligible for a Hong Kong Re-entry Permit"},
	SymbolRightOfAbode:            {"A", "right_of_abode", "The holder has the right of abode in Hong Kong"},
	SymbolBirthDetailsChanged:     {"B", "birth_details_changed", "The holder's reported date/place of birth has changed since first registration"},
	SymbolStayLimited:             {"C", "stay_limited", "The holder's stay in Hong Kong is limited by the Director of Immigration at registration"},
	SymbolNameChanged:             {"N", "name_changed", "The holder's reported name has changed since first registration"},
	SymbolBornOutsideHKChinaMacau: {"O", "born_outside_hk_china_macau", "The holder was born outside Hong Kong, Mainland China, or Macau"},
	SymbolRightToLand:             {"R", "right_to_land", "The holder has the right to land in Hong Kong"},
	SymbolStayUnlimited:           {"U", "stay_unlimited", "The holder's stay in Hong Kong is not limited by the Director of Immigration"},
	SymbolBornInMacau:             {"W", "born_in_macau", "The holder's reported place of birth is Macau"},
	SymbolBornInMainlandChina:     {"X", "born_in_mainland_china", "The holder's reported place of birth is Mainland China"},
	SymbolBirthDateConfirmed:      {"Y", "birth_date_confirmed", "The holder's date of birth has been confirmed by birth certificate or passport"},
	SymbolBornInHongKong:          {"Z", "born_in_hong_kong", "The holder's reported place of birth is Hong Kong"},
	SymbolIssuingOffice:           {"<Office Code>", "issuing_office", "Issuing office code (e.g., H1, K2, S1, P1, V1, etc.)"},
	SymbolLostCard:                {"<L#>", "lost_card", "The holder has lost their ID card. 'L1' for once, 'L2' for twice, etc."},
	SymbolUnknown:                 {"<Unknown>", "unknown", "Unknown or custom symbol"},
}

// fixedSymbolOrder is the literal match order used by ParseSymbol.
var fixedSymbolOrder = []SymbolKind{
	SymbolAdultReentryEligible,
	SymbolYouthReentryEligible,
	SymbolRightOfAbode,
	SymbolBirthDetailsChanged,
	SymbolStayLimited,
	SymbolNameChanged,
	SymbolBornOutsideHKChinaMacau,
	SymbolRightToLand,
	SymbolStayUnlimited,
	SymbolBornInMacau,
	SymbolBornInMainlandChina,
	SymbolBirthDateConfirmed,
	SymbolBornInHongKong,
}

var fixedSymbolsByCode = func() map[string]SymbolKind {
	m := make(map[string]SymbolKind, len(fixedSymbolOrder))
	for _, kind := range fixedSymbolOrder {
		m[symbolTable[kind].code] = kind
	}
	return m
}()

// Symbol is an annotation printed on the card next to the number. Values are
// comparable: variant plus payload (office code, lost count or original text).
type Symbol struct {
	kind  SymbolKind
	text  string
	count uint8
}

// ParseSymbol classifies text. The first matching rule wins:
//
//  1. one of the 13 fixed literals ("***", "*", "A", ...)
//  2. "L" followed by an 8-bit unsigned integer: lost card count
//  3. two characters, the second a decimal digit: issuing office code
//  4. anything else: unknown
func ParseSymbol(text string) Symbol {
	if kind, ok := fixedSymbolsByCode[text]; ok {
		return Symbol{kind: kind}
	}
	if rest, ok := strings.CutPrefix(text, "L"); ok && rest != "" {
		if n, err := strconv.ParseUint(rest, 10, 8); err == nil {
			return LostCard(uint8(n))
		}
	}
	if len(text) == 2 && text[1] >= '0' && text[1] <= '9' {
		return IssuingOffice(text)
	}
	return UnknownSymbol(text)
}

// FixedSymbol returns the symbol for one of the fixed kinds. Parametrized and
// unknown kinds yield the unknown symbol with empty text.
func FixedSymbol(kind SymbolKind) Symbol {
	if meta, ok := symbolTable[kind]; ok {
		if _, fixed := fixedSymbolsByCode[meta.code]; fixed {
			return Symbol{kind: kind}
		}
	}
	return Symbol{}
}

// FixedSymbols returns the 13 fixed symbols in match order.
func FixedSymbols() []Symbol {
	out := make([]Symbol, 0, len(fixedSymbolOrder))
	for _, kind := range fixedSymbolOrder {
		out = append(out, Symbol{kind: kind})
	}
	return out
}

// IssuingOffice returns the issuing office symbol for a two-character code.
func IssuingOffice(code string) Symbol {
	return Symbol{kind: SymbolIssuingOffice, text: code}
}

// LostCard returns the lost card symbol for the number of times lost.
func LostCard(times uint8) Symbol {
	return Symbol{kind: SymbolLostCard, count: times}
}

// UnknownSymbol returns the unknown variant holding text.
func UnknownSymbol(text string) Symbol {
	return Symbol{kind: SymbolUnknown, text: text}
}

// Kind returns the variant.
func (s Symbol) Kind() SymbolKind {
	return s.kind
}

// IsKnown reports whether the symbol matched any rule other than the fallback.
func (s Symbol) IsKnown() bool {
	return s.kind != SymbolUnknown
}

// Code returns the short tag of the variant: the literal for fixed symbols
// and a placeholder such as "<L#>" for the parametrized ones.
func (s Symbol) Code() string {
	return symbolTable[s.kind].code
}

// Name returns a stable snake_case identifier for the variant.
func (s Symbol) Name() string {
	return symbolTable[s.kind].name
}

// Description returns the meaning of the variant.
func (s Symbol) Description() string {
	return symbolTable[s.kind].description
}

// OfficeCode returns the code of an issuing office symbol.
func (s Symbol) OfficeCode() (string, bool) {
	if s.kind != SymbolIssuingOffice {
		return "", false
	}
	return s.text, true
}

// LostCount returns how many times the card was lost for a lost card symbol.
func (s Symbol) LostCount() (uint8, bool) {
	if s.kind != SymbolLostCard {
		return 0, false
	}
	return s.count, true
}

// String renders the symbol as printed on the card.
func (s Symbol) String() string {
	switch s.kind {
	case SymbolLostCard:
		return "L" + strconv.FormatUint(uint64(s.count), 10)
	case SymbolIssuingOffice, SymbolUnknown:
		return s.text
	default:
		return symbolTable[s.kind].code
	}
}

// String returns the stable name of the kind.
func (k SymbolKind) String() string {
	if meta, ok := symbolTable[k]; ok {
		return meta.name
	}
	return symbolTable[SymbolUnknown].name
}
