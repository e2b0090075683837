package handler

import (
	"hkid-gateway/internal/hkid/service"
	dErrors "hkid-gateway/pkg/domain-errors"
)

// ValidateResponse is the HTTP response for POST /hkid/validate.
type ValidateResponse struct {
	Input              string         `json:"input"`
	Valid              bool           `json:"valid"`
	Canonical          string         `json:"canonical"`
	Prefix             PrefixResponse `json:"prefix"`
	CheckDigit         string         `json:"check_digit"`
	ExpectedCheckDigit string         `json:"expected_check_digit"`
}

// PrefixResponse describes a prefix. Known is omitted in listings where every
// entry is known.
type PrefixResponse struct {
	Code        string `json:"code"`
	Known       *bool  `json:"known,omitempty"`
	Description string `json:"description,omitempty"`
}

// BatchItemResponse is one entry of a batch response.
type BatchItemResponse struct {
	Index            int               `json:"index"`
	Input            string            `json:"input"`
	Result           *ValidateResponse `json:"result,omitempty"`
	Error            string            `json:"error,omitempty"`
	ErrorDescription string            `json:"error_description,omitempty"`
}

// BatchValidateResponse is the HTTP response for POST /hkid/validate/batch.
type BatchValidateResponse struct {
	Results  []BatchItemResponse `json:"results"`
	Valid    int                 `json:"valid"`
	Invalid  int                 `json:"invalid"`
	Rejected int                 `json:"rejected"`
}

// GenerateResponse is the HTTP response for POST /hkid/generate.
type GenerateResponse struct {
	HKIDs []string `json:"hkids"`
}

// CheckDigitResponse is the HTTP response for GET /hkid/check-digit/{body}.
type CheckDigitResponse struct {
	Body       string `json:"body"`
	CheckDigit string `json:"check_digit"`
	HKID       string `json:"hkid"`
}

// PrefixListResponse is the HTTP response for GET /hkid/prefixes.
type PrefixListResponse struct {
	Prefixes []PrefixResponse `json:"prefixes"`
}

// SymbolResponse describes a classified symbol.
type SymbolResponse struct {
	Text        string `json:"text"`
	Kind        string `json:"kind"`
	Code        string `json:"code"`
	Description string `json:"description"`
	Known       bool   `json:"known"`
	OfficeCode  string `json:"office_code,omitempty"`
	LostCount   *uint8 `json:"lost_count,omitempty"`
}

// SymbolListResponse is the HTTP response for GET /hkid/symbols.
type SymbolListResponse struct {
	Symbols []SymbolResponse `json:"symbols"`
}

// FromValidateResult converts a service result to an HTTP response.
func FromValidateResult(r *service.ValidateResult) *ValidateResponse {
	known := r.PrefixKnown
	return &ValidateResponse{
		Input:     r.Input,
		Valid:     r.Valid,
		Canonical: r.Canonical,
		Prefix: PrefixResponse{
			Code:        r.Prefix,
			Known:       &known,
			Description: r.PrefixDescription,
		},
		CheckDigit:         string(r.CheckDigit),
		ExpectedCheckDigit: string(r.ExpectedCheckDigit),
	}
}

// FromBatch converts batch items and tallies the outcomes. Internal failures
// keep their code but not their message.
func FromBatch(items []service.BatchItem) *BatchValidateResponse {
	resp := &BatchValidateResponse{Results: make([]BatchItemResponse, 0, len(items))}
	for _, item := range items {
		out := BatchItemResponse{Index: item.Index, Input: item.Input}
		switch {
		case item.Err != nil:
			code := dErrors.CodeOf(item.Err)
			out.Error = string(code)
			if code != dErrors.CodeInternal && code != dErrors.CodeInvariantViolation {
				out.ErrorDescription = dErrors.Message(item.Err)
			}
			resp.Rejected++
		case item.Result.Valid:
			out.Result = FromValidateResult(item.Result)
			resp.Valid++
		default:
			out.Result = FromValidateResult(item.Result)
			resp.Invalid++
		}
		resp.Results = append(resp.Results, out)
	}
	return resp
}

// FromPrefixes converts a prefix listing.
func FromPrefixes(infos []service.PrefixInfo) *PrefixListResponse {
	resp := &PrefixListResponse{Prefixes: make([]PrefixResponse, 0, len(infos))}
	for _, info := range infos {
		resp.Prefixes = append(resp.Prefixes, PrefixResponse{Code: info.Code, Description: info.Description})
	}
	return resp
}

// FromSymbol converts a classified symbol.
func FromSymbol(info service.SymbolInfo) SymbolResponse {
	return SymbolResponse{
		Text:        info.Text,
		Kind:        info.Kind,
		Code:        info.Code,
		Description: info.Description,
		Known:       info.Known,
		OfficeCode:  info.OfficeCode,
		LostCount:   info.LostCount,
	}
}

// FromSymbols converts a symbol listing.
func FromSymbols(infos []service.SymbolInfo) *SymbolListResponse {
	resp := &SymbolListResponse{Symbols: make([]SymbolResponse, 0, len(infos))}
	for _, info := range infos {
		resp.Symbols = append(resp.Symbols, FromSymbol(info))
	}
	return resp
}
