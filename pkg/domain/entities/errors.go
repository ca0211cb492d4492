package entities

import "errors"

// ErrNoData indicates zero historical records for the requested entity.
// Components below the outermost forecasting call handle this by returning
// a well-defined default object instead of propagating it.
var ErrNoData = errors.New("no historical data available")

// ErrInsufficientData indicates data is present but below the minimum sample
// size for model fitting; callers fall back to the statistical estimator.
var ErrInsufficientData = errors.New("insufficient data for model fitting")
