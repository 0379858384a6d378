// Package weather holds typed projections of the WeatherAPI.com payloads
// and the plain-text formatters used to assemble analyzer prompts.
package weather

// Condition is the textual weather condition as reported by the provider.
type Condition struct {
	Text string `json:"text"`
}

// Location identifies the place a report refers to.
type Location struct {
	Name    string `json:"name"`
	Region  string `json:"region"`
	Country string `json:"country"`
	TzID    string `json:"tz_id"`
}

// Current holds the live observation block of a forecast response.
type Current struct {
	TempC     float64   `json:"temp_c"`
	Condition Condition `json:"condition"`
	WindKph   float64   `json:"wind_kph"`
	WindDir   string    `json:"wind_dir"`
	Humidity  float64   `json:"humidity"`
}

// Day aggregates a single calendar day.
type Day struct {
	AvgTempC          float64   `json:"avgtemp_c"`
	MinTempC          float64   `json:"mintemp_c"`
	MaxTempC          float64   `json:"maxtemp_c"`
	Condition         Condition `json:"condition"`
	TotalPrecipMM     float64   `json:"totalprecip_mm"`
	AvgHumidity       float64   `json:"avghumidity"`
	MaxWindKph        float64   `json:"maxwind_kph"`
	DailyChanceOfRain float64   `json:"daily_chance_of_rain"`
}

// ForecastDay is one dated entry of the forecastday array.
type ForecastDay struct {
	Date string `json:"date"`
	Day  Day    `json:"day"`
}

// ForecastBlock wraps the forecastday array.
type ForecastBlock struct {
	ForecastDay []ForecastDay `json:"forecastday"`
}

// History is the history.json response. The provider reuses the forecast
// envelope for historical days, so the shape matches Forecast minus Current.
type History struct {
	Location Location      `json:"location"`
	Forecast ForecastBlock `json:"forecast"`
}

// Forecast is the forecast.json response.
type Forecast struct {
	Location Location      `json:"location"`
	Current  Current       `json:"current"`
	Forecast ForecastBlock `json:"forecast"`
}

// Yesterday returns the single historical day of a history response.
// The provider always returns exactly one forecastday for a dt= query;
// a zero Day is returned when the array is empty.
func (h *History) Yesterday() (ForecastDay, bool) {
	if len(h.Forecast.ForecastDay) == 0 {
		return ForecastDay{}, false
	}
	return h.Forecast.ForecastDay[0], true
}
