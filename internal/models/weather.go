package models

// WeatherResult is the projection of a provider response shown on the result card.
type WeatherResult struct {
	Name        string  `json:"name"`
	Temperature float64 `json:"temperature"`
	Condition   string  `json:"condition"`
	Description string  `json:"description"`
	Humidity    int     `json:"humidity"`
	WindSpeed   float64 `json:"windSpeed"`
}
