package models

// Trend is the qualitative direction of a shoe's two most recent prices
type Trend string

const (
	TrendInsufficientData Trend = "insufficient-data"
	TrendUp               Trend = "up"
	TrendDown             Trend = "down"
	TrendFlat             Trend = "flat"
)

// Label returns the display text used in the detail view
func (t Trend) Label() string {
	switch t {
	case TrendUp:
		return "📈 Up"
	case TrendDown:
		return "📉 Down"
	case TrendFlat:
		return "➡️ Flat"
	default:
		return "Not enough data"
	}
}
