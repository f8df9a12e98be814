package services

import (
	"github.com/codyseavey/sneaker-tracker/internal/models"
)

// ComputeTrend compares the last two price points of a history that is
// already in chronological order. It does not sort or validate its input.
func ComputeTrend(history []models.PricePoint) models.Trend {
	if len(history) < 2 {
		return models.TrendInsufficientData
	}

	last := history[len(history)-1].Price
	prev := history[len(history)-2].Price

	switch {
	case last > prev:
		return models.TrendUp
	case last < prev:
		return models.TrendDown
	default:
		return models.TrendFlat
	}
}
