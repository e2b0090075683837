package hkid

// PrefixCode is one of the documented HKID prefixes.
type PrefixCode string

// Documented prefixes, single letters first.
const (
	PrefixA  PrefixCode = "A"
	PrefixB  PrefixCode = "B"
	PrefixC  PrefixCode = "C"
	PrefixD  PrefixCode = "D"
	PrefixE  PrefixCode = "E"
	PrefixF  PrefixCode = "F"
	PrefixG  PrefixCode = "G"
	PrefixH  PrefixCode = "H"
	PrefixJ  PrefixCode = "J"
	PrefixK  PrefixCode = "K"
	PrefixL  PrefixCode = "L"
	PrefixM  PrefixCode = "M"
	PrefixN  PrefixCode = "N"
	PrefixP  PrefixCode = "P"
	PrefixR  PrefixCode = "R"
	PrefixS  PrefixCode = "S"
	PrefixT  PrefixCode = "T"
	PrefixV  PrefixCode = "V"
	PrefixW  PrefixCode = "W"
	PrefixY  PrefixCode = "Y"
	PrefixZ  PrefixCode = "Z"
	PrefixEC PrefixCode = "EC"
	PrefixWX PrefixCode = "WX"
	PrefixXA PrefixCode = "XA"
	PrefixXB PrefixCode = "XB"
	PrefixXC PrefixCode = "XC"
	PrefixXD PrefixCode = "XD"
	PrefixXE PrefixCode = "XE"
	PrefixXG PrefixCode = "XG"
	PrefixXH PrefixCode = "XH"
)

const noChineseNamePre1983 = "Persons without Chinese names issued before 27 Mar 1983"

// prefixTable is the single source of truth for known prefixes. Order is
// significant: KnownPrefixes and random selection follow it.
var prefixTable = []struct {
	code        PrefixCode
	description string
}{
	{PrefixA, "Original ID cards, issued between 1949 and 1962, most holders born before 1950"},
	{PrefixB, "Issued between 1955 and 1960 in city offices"},
	{PrefixC, "Issued between 1960 and 1983 in NT offices, mostly HK-born children (1946-1971)"},
	{PrefixD, "Issued between 1960 and 1983 at HK Island offices, mostly HK-born children"},
	{PrefixE, "Issued between 1955 and 1969 in Kowloon offices, mostly HK-born children (1946-1962)"},
	{PrefixF, "First issue of a card commencing from 24 February 2020"},
	{PrefixG, "Issued between 1967 and 1983 in Kowloon offices, children born 1956-1971"},
	{PrefixH, "Issued between 1979 and 1983 in HK Island offices, children born 1968-1971"},
	{PrefixJ, "Consular officers"},
	{PrefixK, "First issue (1983 - 1990), children born 1972-1979"},
	{PrefixL, "Issued between 1983 and 2003 during computer malfunctions, very few holders"},
	{PrefixM, "First issue (2011 - 23 Feb 2020)"},
	{PrefixN, "Birth registered in Hong Kong after 1 June 2019"},
	{PrefixP, "First issue (1990 - 2000), children mostly born July-Dec 1979"},
	{PrefixR, "First issue (2000 - 2011)"},
	{PrefixS, "Birth registered in Hong Kong (1 Apr 2005 - 31 May 2019)"},
	{PrefixT, "Issued between 1983 and 1997 during computer malfunctions, very few holders"},
	{PrefixV, `Child under 11 issued "Document of Identity for Visa Purposes" (1983 - 2003)`},
	{PrefixW, "First issue to foreign laborer/domestic helper (10 Nov 1989 - 1 Jan 2009)"},
	{PrefixY, "Birth registered in Hong Kong (1 Jan 1989 - 31 Mar 2005)"},
	{PrefixZ, "Birth registered in Hong Kong (1 Jan 1980 - 31 Dec 1988)"},
	{PrefixEC, "European Community officers and dependents (1993 - 2003)"},
	{PrefixWX, "Foreign laborers/domestic helpers issued since 2 Jan 2009"},
	{PrefixXA, noChineseNamePre1983},
	{PrefixXB, noChineseNamePre1983},
	{PrefixXC, noChineseNamePre1983},
	{PrefixXD, noChineseNamePre1983},
	{PrefixXE, noChineseNamePre1983},
	{PrefixXG, noChineseNamePre1983},
	{PrefixXH, noChineseNamePre1983},
}

var prefixDescriptions = func() map[PrefixCode]string {
	m := make(map[PrefixCode]string, len(prefixTable))
	for _, entry := range prefixTable {
		m[entry.code] = entry.description
	}
	return m
}()

// Prefix classifies the letters in front of the six digits. It is either one
// of the documented codes or an unknown prefix holding the original text.
// Prefix values are comparable; two prefixes are equal when both the variant
// and the text match.
type Prefix struct {
	text  string
	known bool
}

// ParsePrefix classifies text by exact, case-sensitive match against the
// documented codes. It never fails: anything else, including lowercase
// spellings of known codes, is an unknown prefix.
func ParsePrefix(text string) Prefix {
	_, known := prefixDescriptions[PrefixCode(text)]
	return Prefix{text: text, known: known}
}

// UnknownPrefix returns the unknown variant for text regardless of whether
// text happens to be a documented code.
func UnknownPrefix(text string) Prefix {
	return Prefix{text: text}
}

// Prefix returns the known Prefix for a code.
func (c PrefixCode) Prefix() Prefix {
	return ParsePrefix(string(c))
}

// String returns the code for known prefixes and the original text otherwise.
func (p Prefix) String() string {
	return p.text
}

// IsKnown reports whether the prefix is one of the documented codes.
func (p Prefix) IsKnown() bool {
	return p.known
}

// Code returns the documented code; false for unknown prefixes.
func (p Prefix) Code() (PrefixCode, bool) {
	if !p.known {
		return "", false
	}
	return PrefixCode(p.text), true
}

// Description returns the historical note for a known prefix.
func (p Prefix) Description() (string, bool) {
	if !p.known {
		return "", false
	}
	return prefixDescriptions[PrefixCode(p.text)], true
}

// KnownPrefixes returns every documented prefix in table order.
func KnownPrefixes() []Prefix {
	out := make([]Prefix, 0, len(prefixTable))
	for _, entry := range prefixTable {
		out = append(out, Prefix{text: string(entry.code), known: true})
	}
	return out
}
