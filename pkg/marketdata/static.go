package marketdata

import (
	"context"
	"math/rand"

	"github.com/mandimitra/vaani/pkg/errorsx"
)

// StaticProvider serves a fixed record set. Used in tests and demos.
type StaticProvider struct {
	Records []PriceRecord
	Err     error
}

func (p *StaticProvider) Prices(ctx context.Context, crop, location string) ([]PriceRecord, error) {
	if p.Err != nil {
		return nil, p.Err
	}
	return p.Records, nil
}

var _ PriceProvider = (*StaticProvider)(nil)

// StaticPrediction serves a fixed prediction.
type StaticPrediction struct {
	Prediction *Prediction
	Err        error
}

func (p *StaticPrediction) Predict(ctx context.Context, crop, location string) (*Prediction, error) {
	if p.Err != nil {
		return nil, p.Err
	}
	return p.Prediction, nil
}

var _ PredictionProvider = (*StaticPrediction)(nil)

// SyntheticProvider generates bounded random prices for deployments
// without a live mandi feed. Prices land in ₹1500-2500 per quintal.
type SyntheticProvider struct{}

func (SyntheticProvider) Prices(ctx context.Context, crop, location string) ([]PriceRecord, error) {
	if crop == "" || location == "" {
		return nil, errorsx.Wrap(errNoQuery, errorsx.ReasonNoData)
	}
	latest := float64(rand.Intn(1000) + 1500)
	prev := float64(rand.Intn(1000) + 1500)
	return []PriceRecord{
		{Price: latest, Mandi: location, Date: "today"},
		{Price: prev, Mandi: location, Date: "yesterday"},
	}, nil
}

var _ PriceProvider = SyntheticProvider{}

type queryError string

func (e queryError) Error() string { return string(e) }

const errNoQuery = queryError("crop and location required")
