package analyzer

import "errors"

var (
	// ErrAnalyze wraps every transport, status, and decode failure.
	ErrAnalyze    = errors.New("analyzer: analysis failed")
	ErrEmptyInput = errors.New("analyzer: empty input")
)
