package gift

import (
	"context"
	"time"

	domain "github.com/wishwell/wishwell/internal/domain/gift"
	"github.com/wishwell/wishwell/internal/infrastructure/monitoring/logging"
	"github.com/wishwell/wishwell/pkg/errors"
)

// TextGenerator completes a prompt.  Implementations report upstream rate
// limiting with ErrCodeTextGenBusy and other transport failures with
// ErrCodeTextGenFailed.
type TextGenerator interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Metrics receives suggestion pipeline counters.
type Metrics interface {
	RequestAdmitted()
	RequestRejected()
	RateLimited()
	ParseFailed()
	SuggestionsServed(n int)
	GenerationLatency(d time.Duration)
}

type nopMetrics struct{}

func (nopMetrics) RequestAdmitted()                  {}
func (nopMetrics) RequestRejected()                  {}
func (nopMetrics) RateLimited()                      {}
func (nopMetrics) ParseFailed()                      {}
func (nopMetrics) SuggestionsServed(_ int)           {}
func (nopMetrics) GenerationLatency(_ time.Duration) {}

// NopMetrics discards all counters.
func NopMetrics() Metrics { return nopMetrics{} }

// Service runs the suggestion pipeline end to end.
type Service struct {
	limiter        *Limiter
	textgen        TextGenerator
	metrics        Metrics
	logger         logging.Logger
	defaultCountry string
	now            func() time.Time
}

// NewService wires the pipeline.  metrics may be nil; defaultCountry
// applies when a request carries no country code.
func NewService(limiter *Limiter, textgen TextGenerator, metrics Metrics, logger logging.Logger, defaultCountry string) *Service {
	if metrics == nil {
		metrics = NopMetrics()
	}
	if defaultCountry == "" {
		defaultCountry = domain.DefaultCountry
	}
	return &Service{
		limiter:        limiter,
		textgen:        textgen,
		metrics:        metrics,
		logger:         logger.Named("gift"),
		defaultCountry: defaultCountry,
		now:            time.Now,
	}
}

// Suggest validates and admits the request, then generates and extracts
// suggestions.  The rate limiter is consulted before the text-generation
// service is ever touched.
func (s *Service) Suggest(ctx context.Context, req domain.SuggestionRequest) ([]domain.Suggestion, error) {
	req.Normalize()
	if req.Country == "" {
		req.Country = s.defaultCountry
	}
	if err := req.Validate(); err != nil {
		s.metrics.RequestRejected()
		return nil, err
	}

	if err := s.limiter.Allow(ctx, req.AccountID); err != nil {
		if errors.IsCode(err, errors.ErrCodeResourceExhausted) {
			s.metrics.RateLimited()
			s.logger.Warn("suggestion request rate limited",
				logging.String("account_id", req.AccountID))
		}
		return nil, err
	}
	s.metrics.RequestAdmitted()

	prompt := BuildPrompt(req)
	start := s.now()
	text, err := s.textgen.Complete(ctx, prompt)
	s.metrics.GenerationLatency(s.now().Sub(start))
	if err != nil {
		s.logger.Error("text generation failed",
			logging.String("account_id", req.AccountID),
			logging.Err(err))
		if errors.IsCode(err, errors.ErrCodeTextGenBusy) {
			return nil, err
		}
		return nil, errors.Wrap(err, errors.ErrCodeTextGenFailed, "text generation failed")
	}

	suggestions, err := ExtractSuggestions(text, req.Country)
	if err != nil {
		s.metrics.ParseFailed()
		s.logger.Error("unparseable generation reply",
			logging.String("account_id", req.AccountID),
			logging.Int("reply_length", len(text)))
		return nil, err
	}

	s.metrics.SuggestionsServed(len(suggestions))
	s.logger.Info("suggestions served",
		logging.String("account_id", req.AccountID),
		logging.String("country", req.Country),
		logging.Int("count", len(suggestions)))
	return suggestions, nil
}
