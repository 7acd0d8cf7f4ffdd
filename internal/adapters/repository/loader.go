package repository

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/okian/brokerlens/internal/domain/model"
	"gopkg.in/yaml.v3"
)

// LoadDataset reads a YAML (or JSON, which YAML accepts) fixture file.
func LoadDataset(ctx context.Context, path string) (model.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return model.Dataset{}, err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return model.Dataset{}, fmt.Errorf("%w: %w", ErrLoadDataset, err)
	}
	return DecodeDataset(raw)
}

// DecodeDataset parses and validates a fixture document.
func DecodeDataset(raw []byte) (model.Dataset, error) {
	var ds model.Dataset
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&ds); err != nil && !errors.Is(err, io.EOF) {
		return model.Dataset{}, fmt.Errorf("%w: %w", ErrLoadDataset, err)
	}
	if err := Validate(ds); err != nil {
		return model.Dataset{}, err
	}
	return ds, nil
}

// EncodeDataset writes ds as YAML.
func EncodeDataset(w io.Writer, ds model.Dataset) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(ds); err != nil {
		return fmt.Errorf("encode dataset: %w", err)
	}
	return enc.Close()
}
