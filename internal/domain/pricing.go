package domain

// QuotePrice вычисляет стоимость бронирования
// Тарификация с шагом в полчаса с округлением вверх:
// halfHours = ceil(durationMinutes / 30), price = halfHours * 0.5 * baseHourlyPrice
func QuotePrice(durationMinutes int, baseHourlyPrice float64) float64 {
	if durationMinutes <= 0 {
		return 0
	}
	halfHours := (durationMinutes + PriceIncrementMinutes - 1) / PriceIncrementMinutes
	return float64(halfHours) * 0.5 * baseHourlyPrice
}
