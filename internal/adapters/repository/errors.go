package repository

import "errors"

// Sentinel kinds for dataset errors.
var (
	ErrNotFound       = errors.New("navigator not found")
	ErrInvalidDataset = errors.New("invalid dataset")
	ErrLoadDataset    = errors.New("load dataset")
)
