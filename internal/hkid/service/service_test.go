package service

import (
	"context"
	"io"
	"log/slog"
	"regexp"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"go.opentelemetry.io/otel/trace/noop"

	"hkid-gateway/internal/hkid/metrics"
	dErrors "hkid-gateway/pkg/domain-errors"
	"hkid-gateway/pkg/hkid"
)

var canonicalPattern = regexp.MustCompile(`^[A-Z]{1,2}[0-9]{6}\([0-9A]\)$`)

type ServiceSuite struct {
	suite.Suite
	ctx     context.Context
	metrics *metrics.Metrics
	service *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.metrics = metrics.New(prometheus.NewRegistry())

	svc, err := New(
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithMetrics(s.metrics),
		WithTracerProvider(noop.NewTracerProvider()),
		WithGenerator(hkid.NewGenerator(hkid.WithRandomSource(hkid.NewSeededSource(7)))),
		WithMaxBatch(10),
		WithConcurrency(3),
	)
	s.Require().NoError(err)
	s.service = svc
}

// =============================================================================
// Constructor Tests (Invariant Enforcement)
// =============================================================================

func (s *ServiceSuite) TestNew() {
	s.Run("defaults are usable", func() {
		svc, err := New()
		s.Require().NoError(err)
		s.Equal(defaultMaxBatch, svc.MaxBatch())
	})

	s.Run("non-positive max batch is rejected", func() {
		_, err := New(WithMaxBatch(0))
		s.ErrorContains(err, "max batch")
	})

	s.Run("non-positive concurrency is rejected", func() {
		_, err := New(WithConcurrency(0))
		s.ErrorContains(err, "concurrency")
	})

	s.Run("nil generator is rejected", func() {
		_, err := New(WithGenerator(nil))
		s.ErrorContains(err, "generator")
	})
}

// =============================================================================
// Validate Tests
// =============================================================================

func (s *ServiceSuite) TestValidate() {
	s.Run("correct check digit", func() {
		result, err := s.service.Validate(s.ctx, ValidateRequest{HKID: "A123456(3)", MustBeKnown: true})
		s.Require().NoError(err)
		s.True(result.Valid)
		s.Equal("A123456(3)", result.Canonical)
		s.Equal("A", result.Prefix)
		s.True(result.PrefixKnown)
		s.NotEmpty(result.PrefixDescription)
		s.Equal('3', result.CheckDigit)
		s.Equal('3', result.ExpectedCheckDigit)
	})

	s.Run("parentheses are optional", func() {
		result, err := s.service.Validate(s.ctx, ValidateRequest{HKID: "AB1234569"})
		s.Require().NoError(err)
		s.True(result.Valid)
		s.Equal("AB123456(9)", result.Canonical)
		s.False(result.PrefixKnown)
		s.Empty(result.PrefixDescription)
	})

	s.Run("wrong check digit is a result, not an error", func() {
		result, err := s.service.Validate(s.ctx, ValidateRequest{HKID: "A123456(9)"})
		s.Require().NoError(err)
		s.False(result.Valid)
		s.Equal('9', result.CheckDigit)
		s.Equal('3', result.ExpectedCheckDigit)
	})

	s.Run("unknown prefix with must be known", func() {
		_, err := s.service.Validate(s.ctx, ValidateRequest{HKID: "XX123456(1)", MustBeKnown: true})
		s.Require().Error(err)
		s.ErrorIs(err, hkid.ErrUnknownPrefix)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
		s.Contains(err.Error(), "XX")
	})

	s.Run("malformed input", func() {
		_, err := s.service.Validate(s.ctx, ValidateRequest{HKID: "a123456(3)"})
		s.ErrorIs(err, hkid.ErrFormatRejected)
		s.Equal(dErrors.CodeInvalidInput, dErrors.CodeOf(err))
	})
}

func (s *ServiceSuite) TestValidate_RecordsOutcomes() {
	_, _ = s.service.Validate(s.ctx, ValidateRequest{HKID: "A123456(3)"})
	_, _ = s.service.Validate(s.ctx, ValidateRequest{HKID: "A123456(4)"})
	_, _ = s.service.Validate(s.ctx, ValidateRequest{HKID: "nope"})

	s.Equal(1.0, testutil.ToFloat64(s.metrics.ValidationOutcome.WithLabelValues(metrics.OutcomeValid)))
	s.Equal(1.0, testutil.ToFloat64(s.metrics.ValidationOutcome.WithLabelValues(metrics.OutcomeInvalid)))
	s.Equal(1.0, testutil.ToFloat64(s.metrics.ValidationOutcome.WithLabelValues(metrics.OutcomeRejected)))
}

// =============================================================================
// ValidateBatch Tests
// =============================================================================

func (s *ServiceSuite) TestValidateBatch() {
	s.Run("results keep input order", func() {
		inputs := []string{"A123456(3)", "A123456(9)", "bad", "XX123456(1)", "WX123456(9)"}
		items, err := s.service.ValidateBatch(s.ctx, inputs, true)
		s.Require().NoError(err)
		s.Require().Len(items, len(inputs))

		for i, item := range items {
			s.Equal(i, item.Index)
			s.Equal(inputs[i], item.Input)
		}
		s.True(items[0].Result.Valid)
		s.False(items[1].Result.Valid)
		s.ErrorIs(items[2].Err, hkid.ErrFormatRejected)
		s.ErrorIs(items[3].Err, hkid.ErrUnknownPrefix)
		s.True(items[4].Result.Valid)
	})

	s.Run("empty batch rejected", func() {
		_, err := s.service.ValidateBatch(s.ctx, nil, false)
		s.True(dErrors.Is(err, dErrors.CodeBadRequest))
	})

	s.Run("oversized batch rejected", func() {
		_, err := s.service.ValidateBatch(s.ctx, make([]string, 11), false)
		s.True(dErrors.Is(err, dErrors.CodeBadRequest))
		s.Contains(err.Error(), "between 1 and 10")
	})

	s.Run("cancelled context aborts the batch", func() {
		ctx, cancel := context.WithCancel(s.ctx)
		cancel()
		_, err := s.service.ValidateBatch(ctx, []string{"A123456(3)", "A123456(3)"}, false)
		s.ErrorIs(err, context.Canceled)
		s.True(dErrors.Is(err, dErrors.CodeUnavailable))
	})
}

// =============================================================================
// Generate Tests
// =============================================================================

func (s *ServiceSuite) TestGenerate() {
	s.Run("default count is one", func() {
		out, err := s.service.Generate(s.ctx, GenerateRequest{MustBeKnown: true})
		s.Require().NoError(err)
		s.Len(out, 1)
	})

	s.Run("given prefix", func() {
		prefix := "WX"
		out, err := s.service.Generate(s.ctx, GenerateRequest{Prefix: &prefix, MustBeKnown: true, Count: 5})
		s.Require().NoError(err)
		s.Len(out, 5)
		for _, id := range out {
			s.Regexp(`^WX[0-9]{6}\([0-9A]\)$`, id)
			ok, err := hkid.Validate(id, true)
			s.NoError(err)
			s.True(ok)
		}
	})

	s.Run("random prefixes round trip", func() {
		out, err := s.service.Generate(s.ctx, GenerateRequest{Count: 10})
		s.Require().NoError(err)
		for _, id := range out {
			s.Regexp(canonicalPattern, id)
			ok, err := hkid.Validate(id, false)
			s.NoError(err)
			s.True(ok, id)
		}
	})

	s.Run("unknown prefix required known", func() {
		prefix := "XX"
		_, err := s.service.Generate(s.ctx, GenerateRequest{Prefix: &prefix, MustBeKnown: true})
		s.ErrorIs(err, hkid.ErrUnknownPrefix)
	})

	s.Run("malformed prefix", func() {
		prefix := "x"
		_, err := s.service.Generate(s.ctx, GenerateRequest{Prefix: &prefix})
		s.ErrorIs(err, hkid.ErrFormatRejected)
	})

	s.Run("count out of range", func() {
		_, err := s.service.Generate(s.ctx, GenerateRequest{Count: 11})
		s.True(dErrors.Is(err, dErrors.CodeBadRequest))
		_, err = s.service.Generate(s.ctx, GenerateRequest{Count: -1})
		s.True(dErrors.Is(err, dErrors.CodeBadRequest))
	})
}

func (s *ServiceSuite) TestGenerate_SeededIsDeterministic() {
	newSeeded := func() *Service {
		svc, err := New(WithGenerator(hkid.NewGenerator(hkid.WithRandomSource(hkid.NewSeededSource(99)))))
		s.Require().NoError(err)
		return svc
	}
	first, err := newSeeded().Generate(s.ctx, GenerateRequest{Count: 5})
	s.Require().NoError(err)
	second, err := newSeeded().Generate(s.ctx, GenerateRequest{Count: 5})
	s.Require().NoError(err)
	s.Equal(first, second)
}

func (s *ServiceSuite) TestGenerate_RecordsMode() {
	_, err := s.service.Generate(s.ctx, GenerateRequest{MustBeKnown: true, Count: 3})
	s.Require().NoError(err)
	s.Equal(3.0, testutil.ToFloat64(s.metrics.Generated.WithLabelValues(metrics.ModeRandomKnown)))
}

// =============================================================================
// CheckDigit / lookup Tests
// =============================================================================

func (s *ServiceSuite) TestCheckDigit() {
	result, err := s.service.CheckDigit(s.ctx, "G123456")
	s.Require().NoError(err)
	s.Equal('A', result.CheckDigit)
	s.Equal("G123456(A)", result.Formatted)

	_, err = s.service.CheckDigit(s.ctx, "G12345")
	s.ErrorIs(err, hkid.ErrFormatRejected)
}

func (s *ServiceSuite) TestPrefixes() {
	all := s.service.Prefixes()
	s.Len(all, 30)
	s.Equal("A", all[0].Code)
	s.Equal("XH", all[len(all)-1].Code)

	info, err := s.service.Prefix("EC")
	s.Require().NoError(err)
	s.Equal("EC", info.Code)
	s.NotEmpty(info.Description)

	_, err = s.service.Prefix("XX")
	s.True(dErrors.Is(err, dErrors.CodeNotFound))
}

func (s *ServiceSuite) TestSymbols() {
	s.Len(s.service.Symbols(), 13)

	lost := s.service.Symbol("L2")
	s.Equal("lost_card", lost.Kind)
	s.Require().NotNil(lost.LostCount)
	s.Equal(uint8(2), *lost.LostCount)
	s.True(lost.Known)

	office := s.service.Symbol("H1")
	s.Equal("issuing_office", office.Kind)
	s.Equal("H1", office.OfficeCode)

	unknown := s.service.Symbol("L256")
	s.Equal("unknown", unknown.Kind)
	s.False(unknown.Known)
	s.Equal("L256", unknown.Text)

	fixed := s.service.Symbol("***")
	s.Equal("adult_reentry_eligible", fixed.Kind)
	s.Equal("***", fixed.Code)
}
