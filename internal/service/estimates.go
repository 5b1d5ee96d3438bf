package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/unionprice/union-price-api/internal/model"
	"github.com/unionprice/union-price-api/internal/predictor"
	"github.com/unionprice/union-price-api/pkg/logger"
)

// Kind selects which estimate is requested.
type Kind string

const (
	KindRent  Kind = "rent"
	KindPrice Kind = "price"
)

const (
	ModeRemote = "remote"
	ModeLocal  = "local"

	contentTypeJSON = "application/json"
)

// Result is a fully shaped response body, written to the client exactly once.
type Result struct {
	ContentType string
	Body        []byte
}

type EstimateServicer interface {
	Estimate(ctx context.Context, kind Kind, req model.PriceRequest) (*Result, error)
	Mode() string
}

// PriceEstimator produces a numeric estimate from house attributes.
type PriceEstimator interface {
	Estimate(ctx context.Context, location, houseType string, bedrooms, bathrooms, toilets int) (decimal.Decimal, error)
}

// Predictor forwards a request to a remote prediction service.
type Predictor interface {
	Predict(ctx context.Context, req model.PriceRequest) (*predictor.Reply, error)
}

// RemoteEstimateService relays the prediction services' responses.
type RemoteEstimateService struct {
	rent Predictor
	sale Predictor
	log  *logger.Logger
}

func NewRemoteEstimateService(rent, sale Predictor, log *logger.Logger) (*RemoteEstimateService, error) {
	if rent == nil || sale == nil {
		return nil, fmt.Errorf("remote estimate service: both predictors are required")
	}
	return &RemoteEstimateService{
		rent: rent,
		sale: sale,
		log:  log,
	}, nil
}

func (s *RemoteEstimateService) Mode() string {
	return ModeRemote
}

func (s *RemoteEstimateService) Estimate(ctx context.Context, kind Kind, req model.PriceRequest) (*Result, error) {
	var p Predictor
	switch kind {
	case KindRent:
		p = s.rent
	case KindPrice:
		p = s.sale
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}

	start := time.Now()
	reply, err := p.Predict(ctx, req)
	upstreamDuration.WithLabelValues(string(kind)).Observe(time.Since(start).Seconds())
	if err != nil {
		estimatesTotal.WithLabelValues(string(kind), ModeRemote, outcomeError).Inc()
		s.log.Warnw("[PREDICTOR] request failed", "kind", kind, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	estimatesTotal.WithLabelValues(string(kind), ModeRemote, outcomeSuccess).Inc()

	ct := reply.ContentType
	if ct == "" {
		ct = contentTypeJSON
	}
	return &Result{ContentType: ct, Body: reply.Body}, nil
}

// LocalEstimateService computes estimates in process and wraps them in the
// rent and price envelopes.
type LocalEstimateService struct {
	rent PriceEstimator
	sale PriceEstimator
	log  *logger.Logger
}

func NewLocalEstimateService(rent, sale PriceEstimator, log *logger.Logger) (*LocalEstimateService, error) {
	if rent == nil || sale == nil {
		return nil, fmt.Errorf("local estimate service: both estimators are required")
	}
	return &LocalEstimateService{
		rent: rent,
		sale: sale,
		log:  log,
	}, nil
}

func (s *LocalEstimateService) Mode() string {
	return ModeLocal
}

func (s *LocalEstimateService) Estimate(ctx context.Context, kind Kind, req model.PriceRequest) (*Result, error) {
	var est PriceEstimator
	switch kind {
	case KindRent:
		est = s.rent
	case KindPrice:
		est = s.sale
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}

	value, err := est.Estimate(ctx, req.Location, req.HouseType, req.Bedrooms, req.Bathrooms, req.Toilets)
	if err != nil {
		estimatesTotal.WithLabelValues(string(kind), ModeLocal, outcomeError).Inc()
		s.log.Warnw("[ESTIMATOR] estimate failed", "kind", kind, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrEstimation, err)
	}

	var envelope any
	if kind == KindRent {
		envelope = model.NewRentEnvelope(value)
	} else {
		envelope = model.NewPriceEnvelope(value)
	}

	body, err := json.Marshal(envelope)
	if err != nil {
		estimatesTotal.WithLabelValues(string(kind), ModeLocal, outcomeError).Inc()
		return nil, fmt.Errorf("%w: encode envelope: %w", ErrEstimation, err)
	}
	estimatesTotal.WithLabelValues(string(kind), ModeLocal, outcomeSuccess).Inc()

	return &Result{ContentType: contentTypeJSON, Body: body}, nil
}
