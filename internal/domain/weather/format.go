package weather

import (
	"fmt"
	"math"
	"strings"
)

// WindKphToMs converts a provider wind speed from km/h to m/s rounded to
// one decimal, the unit the Bulgarian narration uses.
func WindKphToMs(kph float64) float64 {
	return math.Round(kph/3.6*10) / 10
}

// dayLabel names a forecast day the way a presenter would.
func dayLabel(index int) string {
	switch index {
	case 0:
		return "Днес"
	case 1:
		return "Утре"
	default:
		return fmt.Sprintf("След %d дни", index)
	}
}

// FormatHistory renders yesterday's observations as a single Bulgarian
// sentence block for the analyzer prompt.
func FormatHistory(h *History) string {
	day, ok := h.Yesterday()
	if !ok {
		return "Не можахме да форматираме историческите данни."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Местоположение: %s, %s. ", h.Location.Name, h.Location.Country)
	fmt.Fprintf(&b, "Средна температура: %g°C. ", day.Day.AvgTempC)
	fmt.Fprintf(&b, "Минимална температура: %g°C. ", day.Day.MinTempC)
	fmt.Fprintf(&b, "Максимална температура: %g°C. ", day.Day.MaxTempC)
	fmt.Fprintf(&b, "Условия: %s. ", day.Day.Condition.Text)
	fmt.Fprintf(&b, "Валежи: %g мм. ", day.Day.TotalPrecipMM)
	fmt.Fprintf(&b, "Средна влажност: %g%%. ", day.Day.AvgHumidity)
	fmt.Fprintf(&b, "Максимална скорост на вятъра: %g м/с.", WindKphToMs(day.Day.MaxWindKph))
	return b.String()
}

// FormatForecast renders the current conditions plus the upcoming days as
// a Bulgarian text block for the analyzer prompt.
func FormatForecast(f *Forecast) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Местоположение: %s, %s. ", f.Location.Name, f.Location.Country)
	fmt.Fprintf(&b, "Текущо време: Температура %g°C, %s. ", f.Current.TempC, f.Current.Condition.Text)

	for i, day := range f.Forecast.ForecastDay {
		fmt.Fprintf(&b, "%s (%s): ", dayLabel(i), day.Date)
		fmt.Fprintf(&b, "Минимална температура: %g°C, ", day.Day.MinTempC)
		fmt.Fprintf(&b, "Максимална температура: %g°C, ", day.Day.MaxTempC)
		fmt.Fprintf(&b, "Условия: %s, ", day.Day.Condition.Text)
		fmt.Fprintf(&b, "Вероятност за валеж: %g%%, ", day.Day.DailyChanceOfRain)
		fmt.Fprintf(&b, "Очаквани валежи: %g мм, ", day.Day.TotalPrecipMM)
		fmt.Fprintf(&b, "Влажност: %g%%, ", day.Day.AvgHumidity)
		fmt.Fprintf(&b, "Скорост на вятъра: %g м/с. ", WindKphToMs(day.Day.MaxWindKph))
	}
	return b.String()
}
