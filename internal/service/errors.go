package service

import "errors"

var (
	// ErrUpstream is returned when the prediction service call fails.
	ErrUpstream = errors.New("prediction service request failed")
	// ErrEstimation is returned when the local estimator fails.
	ErrEstimation = errors.New("local estimation failed")

	ErrUnknownKind = errors.New("unknown estimate kind")
)
