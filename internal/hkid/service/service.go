// Package service is the application layer over pkg/hkid. It adds batching,
// request bounds, logging, metrics and tracing; the number rules themselves
// live in pkg/hkid.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"hkid-gateway/internal/hkid/metrics"
	dErrors "hkid-gateway/pkg/domain-errors"
	"hkid-gateway/pkg/hkid"
	"hkid-gateway/pkg/platform/privacy"
	"hkid-gateway/pkg/requestcontext"
)

const (
	tracerName = "hkid-gateway/internal/hkid/service"

	defaultMaxBatch    = 1000
	defaultConcurrency = 8
)

// Service exposes validation, generation and lookup operations.
type Service struct {
	// generator may hold a non thread-safe seeded source.
	genMu     sync.Mutex
	generator *hkid.Generator

	logger      *slog.Logger
	metrics     *metrics.Metrics
	tracer      trace.Tracer
	maxBatch    int
	concurrency int
	regulated   bool
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithGenerator replaces the default generator, e.g. with a seeded one.
func WithGenerator(g *hkid.Generator) Option {
	return func(s *Service) {
		s.generator = g
	}
}

// WithTracerProvider sets where spans go. The global provider is used otherwise.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(s *Service) {
		s.tracer = tp.Tracer(tracerName)
	}
}

// WithMaxBatch bounds batch validation size and generation count.
func WithMaxBatch(n int) Option {
	return func(s *Service) {
		s.maxBatch = n
	}
}

// WithConcurrency bounds the goroutines used by ValidateBatch.
func WithConcurrency(n int) Option {
	return func(s *Service) {
		s.concurrency = n
	}
}

// WithRegulatedMode masks HKIDs in logs.
func WithRegulatedMode(regulated bool) Option {
	return func(s *Service) {
		s.regulated = regulated
	}
}

func New(opts ...Option) (*Service, error) {
	svc := &Service{
		generator:   hkid.NewGenerator(),
		logger:      slog.Default(),
		tracer:      otel.Tracer(tracerName),
		maxBatch:    defaultMaxBatch,
		concurrency: defaultConcurrency,
	}
	for _, opt := range opts {
		opt(svc)
	}

	if svc.generator == nil {
		return nil, fmt.Errorf("generator is required")
	}
	if svc.logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if svc.maxBatch < 1 {
		return nil, fmt.Errorf("max batch must be positive, got %d", svc.maxBatch)
	}
	if svc.concurrency < 1 {
		return nil, fmt.Errorf("concurrency must be positive, got %d", svc.concurrency)
	}
	return svc, nil
}

// MaxBatch returns the configured batch bound.
func (s *Service) MaxBatch() int {
	return s.maxBatch
}

// Validate checks one HKID. A wrong check character is a result with
// Valid=false; errors are format or unknown-prefix rejections.
func (s *Service) Validate(ctx context.Context, req ValidateRequest) (*ValidateResult, error) {
	ctx, span := s.tracer.Start(ctx, "hkid.Validate",
		trace.WithAttributes(attribute.Bool("hkid.must_be_known", req.MustBeKnown)))
	defer span.End()
	start := time.Now()
	defer func() { s.metrics.ObserveOperation("validate", time.Since(start)) }()

	result, err := s.validate(req.HKID, req.MustBeKnown)
	if err != nil {
		s.metrics.IncrementValidation(metrics.OutcomeRejected)
		recordSpanError(span, err)
		s.logger.InfoContext(ctx, "hkid rejected",
			"request_id", requestcontext.RequestID(ctx),
			"hkid", s.redact(req.HKID),
			"code", dErrors.CodeOf(err),
		)
		return nil, err
	}

	outcome := metrics.OutcomeInvalid
	if result.Valid {
		outcome = metrics.OutcomeValid
	}
	s.metrics.IncrementValidation(outcome)
	span.SetAttributes(attribute.Bool("hkid.valid", result.Valid))
	s.logger.DebugContext(ctx, "hkid validated",
		"request_id", requestcontext.RequestID(ctx),
		"hkid", s.redact(result.Canonical),
		"valid", result.Valid,
	)
	return result, nil
}

func (s *Service) validate(input string, mustBeKnown bool) (*ValidateResult, error) {
	valid, err := hkid.Validate(input, mustBeKnown)
	if err != nil {
		return nil, err
	}
	id, err := hkid.Parse(input)
	if err != nil {
		return nil, err
	}
	expected, err := id.ExpectedCheckDigit()
	if err != nil {
		return nil, err
	}
	description, _ := id.Prefix().Description()
	return &ValidateResult{
		Input:              input,
		Valid:              valid,
		Canonical:          id.String(),
		Prefix:             id.Prefix().String(),
		PrefixKnown:        id.Prefix().IsKnown(),
		PrefixDescription:  description,
		CheckDigit:         id.CheckDigit(),
		ExpectedCheckDigit: expected,
	}, nil
}

// ValidateBatch validates every entry with bounded concurrency. Item failures
// are reported per item; the returned error is for the batch as a whole
// (size out of range or ctx cancelled).
func (s *Service) ValidateBatch(ctx context.Context, hkids []string, mustBeKnown bool) ([]BatchItem, error) {
	if err := s.checkBounds("batch", len(hkids)); err != nil {
		return nil, err
	}

	ctx, span := s.tracer.Start(ctx, "hkid.ValidateBatch",
		trace.WithAttributes(
			attribute.Int("hkid.batch_size", len(hkids)),
			attribute.Bool("hkid.must_be_known", mustBeKnown),
		))
	defer span.End()
	start := time.Now()
	defer func() { s.metrics.ObserveOperation("validate_batch", time.Since(start)) }()

	items := make([]BatchItem, len(hkids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, input := range hkids {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			item := BatchItem{Index: i, Input: input}
			result, err := s.validate(input, mustBeKnown)
			switch {
			case err != nil:
				item.Err = err
				s.metrics.IncrementValidation(metrics.OutcomeRejected)
			case result.Valid:
				item.Result = result
				s.metrics.IncrementValidation(metrics.OutcomeValid)
			default:
				item.Result = result
				s.metrics.IncrementValidation(metrics.OutcomeInvalid)
			}
			items[i] = item
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		recordSpanError(span, err)
		s.logger.WarnContext(ctx, "batch validation interrupted",
			"request_id", requestcontext.RequestID(ctx),
			"batch_size", len(hkids),
			"error", err,
		)
		code := dErrors.CodeUnavailable
		if errors.Is(err, context.DeadlineExceeded) {
			code = dErrors.CodeTimeout
		}
		return nil, dErrors.Wrap(err, code, "batch validation interrupted")
	}

	s.logger.InfoContext(ctx, "batch validated",
		"request_id", requestcontext.RequestID(ctx),
		"batch_size", len(hkids),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return items, nil
}

// Generate returns req.Count numbers with correct check characters.
func (s *Service) Generate(ctx context.Context, req GenerateRequest) ([]string, error) {
	count := req.Count
	if count == 0 {
		count = 1
	}
	if err := s.checkBounds("count", count); err != nil {
		return nil, err
	}

	mode := generationMode(req)
	ctx, span := s.tracer.Start(ctx, "hkid.Generate",
		trace.WithAttributes(
			attribute.String("hkid.mode", mode),
			attribute.Int("hkid.count", count),
		))
	defer span.End()
	start := time.Now()
	defer func() { s.metrics.ObserveOperation("generate", time.Since(start)) }()

	out := make([]string, 0, count)
	s.genMu.Lock()
	for range count {
		var (
			id  string
			err error
		)
		if req.Prefix != nil {
			id, err = s.generator.Generate(*req.Prefix, req.MustBeKnown)
		} else {
			id, err = s.generator.GenerateRandom(req.MustBeKnown)
		}
		if err != nil {
			s.genMu.Unlock()
			recordSpanError(span, err)
			s.logger.InfoContext(ctx, "hkid generation rejected",
				"request_id", requestcontext.RequestID(ctx),
				"mode", mode,
				"code", dErrors.CodeOf(err),
			)
			return nil, err
		}
		out = append(out, id)
	}
	s.genMu.Unlock()

	s.metrics.AddGenerated(mode, len(out))
	s.logger.InfoContext(ctx, "hkids generated",
		"request_id", requestcontext.RequestID(ctx),
		"mode", mode,
		"count", len(out),
	)
	return out, nil
}

// CheckDigit computes the check character of a body such as "A123456".
func (s *Service) CheckDigit(ctx context.Context, body string) (*CheckDigitResult, error) {
	_, span := s.tracer.Start(ctx, "hkid.CheckDigit")
	defer span.End()

	formatted, err := hkid.Format(body)
	if err != nil {
		recordSpanError(span, err)
		return nil, err
	}
	check, _ := hkid.CheckDigit(body)
	return &CheckDigitResult{Body: body, CheckDigit: check, Formatted: formatted}, nil
}

// Prefixes lists the documented prefixes in table order.
func (s *Service) Prefixes() []PrefixInfo {
	known := hkid.KnownPrefixes()
	out := make([]PrefixInfo, 0, len(known))
	for _, p := range known {
		out = append(out, toPrefixInfo(p))
	}
	return out
}

// Prefix looks up one documented prefix.
func (s *Service) Prefix(code string) (PrefixInfo, error) {
	p := hkid.ParsePrefix(code)
	if !p.IsKnown() {
		return PrefixInfo{}, dErrors.New(dErrors.CodeNotFound, fmt.Sprintf("prefix '%s' is not a known HKID prefix", code))
	}
	return toPrefixInfo(p), nil
}

// Symbols lists the fixed card symbols.
func (s *Service) Symbols() []SymbolInfo {
	fixed := hkid.FixedSymbols()
	out := make([]SymbolInfo, 0, len(fixed))
	for _, sym := range fixed {
		out = append(out, toSymbolInfo(sym))
	}
	return out
}

// Symbol classifies any text as a card symbol. Classification never fails;
// unrecognized text yields the unknown kind.
func (s *Service) Symbol(text string) SymbolInfo {
	return toSymbolInfo(hkid.ParseSymbol(text))
}

func (s *Service) checkBounds(what string, n int) error {
	if n < 1 || n > s.maxBatch {
		return dErrors.New(dErrors.CodeBadRequest, fmt.Sprintf("%s must be between 1 and %d, got %d", what, s.maxBatch, n))
	}
	return nil
}

func (s *Service) redact(id string) string {
	if s.regulated {
		return privacy.MaskHKID(id)
	}
	return id
}

func generationMode(req GenerateRequest) string {
	switch {
	case req.Prefix != nil:
		return metrics.ModeGiven
	case req.MustBeKnown:
		return metrics.ModeRandomKnown
	default:
		return metrics.ModeRandomAny
	}
}

func toPrefixInfo(p hkid.Prefix) PrefixInfo {
	description, _ := p.Description()
	return PrefixInfo{Code: p.String(), Description: description}
}

func toSymbolInfo(sym hkid.Symbol) SymbolInfo {
	info := SymbolInfo{
		Text:        sym.String(),
		Kind:        sym.Kind().String(),
		Code:        sym.Code(),
		Description: sym.Description(),
		Known:       sym.IsKnown(),
	}
	if office, ok := sym.OfficeCode(); ok {
		info.OfficeCode = office
	}
	if n, ok := sym.LostCount(); ok {
		info.LostCount = &n
	}
	return info
}

func recordSpanError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, string(dErrors.CodeOf(err)))
}
