package route

import (
	"fmt"
	"math"
)

// FormatDistance renders a mileage figure for display: distances under one
// mile are shown in whole feet, everything else in miles to one decimal.
func FormatDistance(miles float64) string {
	if miles < 1 {
		return fmt.Sprintf("%d ft", int(math.Round(miles*5280)))
	}
	return fmt.Sprintf("%.1f mi", miles)
}

// EstimateDeliveryTime derives a coarse trip-time estimate from mileage.
// Trips under 50 miles assume 30 mph average (local traffic), longer trips
// 60 mph (highway). Under an hour the estimate is whole minutes, under a day
// one-decimal hours, beyond that whole days rounded up.
func EstimateDeliveryTime(miles float64) string {
	speed := 30.0
	if miles >= 50 {
		speed = 60.0
	}
	hours := miles / speed

	switch {
	case hours < 1:
		return fmt.Sprintf("%d minutes", int(math.Round(hours*60)))
	case hours < 24:
		return fmt.Sprintf("%.1f hours", hours)
	default:
		days := int(math.Ceil(hours / 24))
		if days == 1 {
			return "1 day"
		}
		return fmt.Sprintf("%d days", days)
	}
}
