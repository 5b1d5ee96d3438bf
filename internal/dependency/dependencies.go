package dependency

import (
	"fmt"
	"net/http"
	"time"

	"github.com/unionprice/union-price-api/internal/docs"
	"github.com/unionprice/union-price-api/internal/estimator"
	"github.com/unionprice/union-price-api/internal/handlers"
	"github.com/unionprice/union-price-api/internal/predictor"
	"github.com/unionprice/union-price-api/internal/service"
	"github.com/unionprice/union-price-api/pkg/config"
	"github.com/unionprice/union-price-api/pkg/logger"
	"github.com/unionprice/union-price-api/pkg/validator"
)

// Version is reported in the api docs; overridden at build time.
var Version = "1.0.0"

// Dependencies holds all the intialized instances required by the application.
type Dependencies struct {
	Validator       *validator.Validator
	EstimateService service.EstimateServicer
	EstimateHandler *handlers.EstimateHandler
	Docs            *docs.Document
}

// NewDependencies wires the estimate service for the configured mode.
func NewDependencies(cfg *config.Config, log *logger.Logger) (*Dependencies, error) {
	var (
		svc service.EstimateServicer
		err error
	)

	switch cfg.Estimator.Mode {
	case config.ModeRemote:
		svc, err = newRemoteService(cfg, log)
	case config.ModeLocal:
		svc, err = newLocalService(cfg, log)
	default:
		err = fmt.Errorf("%w: %q", config.ErrInvalidMode, cfg.Estimator.Mode)
	}
	if err != nil {
		log.Errorw("[Service] failed to initialize -> ", "error", err)
		return nil, err
	}

	return WithService(cfg, svc, log)
}

// WithService builds the remaining dependencies around an existing estimate service.
func WithService(cfg *config.Config, svc service.EstimateServicer, log *logger.Logger) (*Dependencies, error) {
	v, err := validator.New(cfg.Rooms.Min, cfg.Rooms.Max)
	if err != nil {
		log.Errorw("[Validator] failed to initialize -> ", "error", err)
		return nil, err
	}

	estimateHandler, err := handlers.NewEstimateHandler(svc, v, log, cfg.Estimator.UpstreamErrorStatus)
	if err != nil {
		log.Errorw("[Estimate Handler] failed to initialize -> ", "error", err)
		return nil, err
	}

	log.Infow("[Service] estimator ready", "mode", svc.Mode(), "rooms_min", cfg.Rooms.Min, "rooms_max", cfg.Rooms.Max)

	return &Dependencies{
		Validator:       v,
		EstimateService: svc,
		EstimateHandler: estimateHandler,
		Docs:            docs.Build(Version, cfg.Rooms.Min, cfg.Rooms.Max),
	}, nil
}

func newRemoteService(cfg *config.Config, log *logger.Logger) (*service.RemoteEstimateService, error) {
	// one transport shared by both predictors, no client timeout
	hc := &http.Client{Transport: http.DefaultTransport}

	rent := predictor.NewClient(cfg.Estimator.RentPredictorURL, hc)
	sale := predictor.NewClient(cfg.Estimator.SalePredictorURL, hc)
	log.Infow("[Predictor] remote endpoints", "rent", rent.URL(), "sale", sale.URL())

	return service.NewRemoteEstimateService(rent, sale, log)
}

func newLocalService(cfg *config.Config, log *logger.Logger) (*service.LocalEstimateService, error) {
	seed := uint64(time.Now().UnixNano())

	rent, err := estimator.NewRandom(cfg.Estimator.RentMin, cfg.Estimator.RentMax, seed)
	if err != nil {
		return nil, fmt.Errorf("rent estimator: %w", err)
	}
	sale, err := estimator.NewRandom(cfg.Estimator.SaleMin, cfg.Estimator.SaleMax, seed+1)
	if err != nil {
		return nil, fmt.Errorf("sale estimator: %w", err)
	}

	return service.NewLocalEstimateService(rent, sale, log)
}
