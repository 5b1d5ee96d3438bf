package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/unionprice/union-price-api/internal/model"
	"github.com/unionprice/union-price-api/internal/service"
	"github.com/unionprice/union-price-api/pkg/logger"
	"github.com/unionprice/union-price-api/pkg/validator"
)

const maxBodyBytes = 1 << 20

type EstimateHandler struct {
	svc            service.EstimateServicer
	validate       *validator.Validator
	log            *logger.Logger
	upstreamStatus int
}

// NewEstimateHandler wires the estimate endpoints. upstreamStatus is the status
// returned when the prediction service fails.
func NewEstimateHandler(svc service.EstimateServicer, v *validator.Validator, log *logger.Logger, upstreamStatus int) (*EstimateHandler, error) {
	if svc == nil || v == nil {
		return nil, errors.New("estimate handler: service and validator are required")
	}
	if upstreamStatus == 0 {
		upstreamStatus = http.StatusUnauthorized
	}
	return &EstimateHandler{
		svc:            svc,
		validate:       v,
		log:            log,
		upstreamStatus: upstreamStatus,
	}, nil
}

// EstimatedRent godoc
//
//	@Summary		Estimate rent
//	@Description	Used to request estimated rent price for a given set of input parameters
//	@Tags			Estimates
//	@Accept			json
//	@Produce		json
//	@Param			request	body		model.PriceRequest	true	"House attributes"
//	@Success		200		{object}	model.RentEstimate
//	@Failure		400		{object}	map[string]any
//	@Failure		401		{object}	map[string]any
//	@Router			/estimated-rent [post]
func (h *EstimateHandler) EstimatedRent(w http.ResponseWriter, r *http.Request) {
	h.estimate(w, r, service.KindRent)
}

// EstimatedPrice godoc
//
//	@Summary		Estimate purchase price
//	@Description	Used to request estimated price for purchasing a house according to a given set of input parameters
//	@Tags			Estimates
//	@Accept			json
//	@Produce		json
//	@Param			request	body		model.PriceRequest	true	"House attributes"
//	@Success		200		{array}		model.SaleEstimate
//	@Failure		400		{object}	map[string]any
//	@Failure		401		{object}	map[string]any
//	@Router			/estimated-price [post]
func (h *EstimateHandler) EstimatedPrice(w http.ResponseWriter, r *http.Request) {
	h.estimate(w, r, service.KindPrice)
}

// estimate writes exactly one response: the error or the estimate.
func (h *EstimateHandler) estimate(w http.ResponseWriter, r *http.Request, kind service.Kind) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	req, err := model.ParsePriceRequest(r.Body, h.validate)
	if err != nil {
		var vErr *model.ValidationError
		if errors.As(err, &vErr) {
			RespondErrorJSON(w, r, http.StatusBadRequest, ErrInvalidRequest.Error(), vErr.Message, vErr.Details)
			return
		}
		RespondErrorJSON(w, r, http.StatusBadRequest, ErrInvalidRequest.Error(), model.ErrInvalidBody.Error(), nil)
		return
	}

	res, err := h.svc.Estimate(r.Context(), kind, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUpstream):
			h.log.Errorw("[ESTIMATE] prediction service failed", "kind", kind, "error", err)
			msg := fmt.Sprintf("failed to get estimated %s from prediction service", kind)
			RespondErrorJSON(w, r, h.upstreamStatus, ErrUpstreamFailed.Error(), msg, nil)
		case errors.Is(err, service.ErrEstimation):
			// detail is logged, never returned
			h.log.Errorw("[ESTIMATE] local estimator failed", "kind", kind, "error", err)
			RespondErrorJSON(w, r, http.StatusBadRequest, ErrEstimateFailed.Error(), "invalid request", nil)
		default:
			h.log.Errorw("[ESTIMATE] unexpected error", "kind", kind, "error", err)
			RespondErrorJSON(w, r, http.StatusInternalServerError, ErrInternalServer.Error(), "Something went wrong", nil)
		}
		return
	}

	h.log.Debugw("[ESTIMATE] served", "kind", kind, "mode", h.svc.Mode(), "location", req.Location, "house_type", req.HouseType)
	writeRaw(w, http.StatusOK, res.ContentType, res.Body)
}
