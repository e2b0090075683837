package handler

import (
	"strings"

	dErrors "hkid-gateway/pkg/domain-errors"
)

// maxHKIDLength bounds a single input before it reaches the validator.
const maxHKIDLength = 32

// ValidateRequest is the HTTP request body for POST /hkid/validate.
type ValidateRequest struct {
	HKID        string `json:"hkid"`
	MustBeKnown bool   `json:"must_be_known"`
}

// Validate implements the Validatable interface for httputil.DecodeAndPrepare.
// Surrounding whitespace is trimmed; everything else is left to the validator.
func (r *ValidateRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if len(r.HKID) > maxHKIDLength {
		return dErrors.New(dErrors.CodeValidation, "hkid must be at most 32 characters")
	}
	r.HKID = strings.TrimSpace(r.HKID)
	if r.HKID == "" {
		return dErrors.New(dErrors.CodeValidation, "hkid is required")
	}
	return nil
}

// BatchValidateRequest is the HTTP request body for POST /hkid/validate/batch.
// Size bounds are enforced by the service.
type BatchValidateRequest struct {
	HKIDs       []string `json:"hkids"`
	MustBeKnown bool     `json:"must_be_known"`
}

func (r *BatchValidateRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if len(r.HKIDs) == 0 {
		return dErrors.New(dErrors.CodeValidation, "hkids is required")
	}
	for i, h := range r.HKIDs {
		r.HKIDs[i] = strings.TrimSpace(h)
	}
	return nil
}

// GenerateRequest is the HTTP request body for POST /hkid/generate.
// Omitting prefix asks for a random one.
type GenerateRequest struct {
	Prefix      *string `json:"prefix,omitempty"`
	MustBeKnown bool    `json:"must_be_known"`
	Count       int     `json:"count,omitempty"`
}

func (r *GenerateRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if r.Prefix != nil {
		p := strings.TrimSpace(*r.Prefix)
		r.Prefix = &p
	}
	if r.Count < 0 {
		return dErrors.New(dErrors.CodeValidation, "count must not be negative")
	}
	return nil
}
