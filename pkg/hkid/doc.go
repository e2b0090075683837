// Package hkid implements the Hong Kong Identity Card number rules: the
// character value table, the weighted mod-11 check digit, the historical
// prefix and card symbol taxonomies, and generation and validation built on
// top of them.
//
// # Number format
//
// An HKID is one or two uppercase prefix letters, six digits and a check
// character drawn from 0-9 or A. The check character is usually printed in
// parentheses:
//
//	A123456(3)
//	AB123456(9)
//
// # Domain Purity
//
// Everything in this package is a pure function of its input except
// Generator, which draws from an injected RandomSource. There is no I/O, no
// context.Context and no clock. The compiled patterns are package-level
// values built once at init and only read afterwards, so every function here
// is safe for concurrent use.
//
// # Classification
//
// Prefix and Symbol are closed taxonomies with an open fallback: a fixed set
// of documented codes, each with a description, plus an unknown variant that
// keeps the original text. Parsing never fails; callers ask IsKnown.
package hkid
