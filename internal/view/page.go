package view

import "github.com/kjstillabower/weather-lookup/internal/models"

// Advisory is shown under the input on every render.
const Advisory = "Warning: For accurate weather data, enter a city name (e.g., London, New York) rather than a broad region or country."

// InertHref is the map link target when no location has been found.
const InertHref = "#"

// MapLink builds the map-service URL for a query. The query is interpolated
// as-is: slashes and reserved characters are not escaped.
func MapLink(base, query string) string {
	return base + "/place/" + query + "/"
}

// Page is everything the template and the JSON API need to render a State.
type Page struct {
	Status        Status                `json:"status"`
	Result        *models.WeatherResult `json:"result,omitempty"`
	Query         string                `json:"query,omitempty"`
	Message       string                `json:"message,omitempty"`
	Background    Background            `json:"background"`
	MapHref       string                `json:"mapHref"`
	LocationFound bool                  `json:"locationFound"`
	Advisory      string                `json:"-"`
	// Input is the text to show in the location field. Unlike Query it is also
	// set on failure, and never feeds the map link.
	Input string `json:"-"`
}

// Render derives the page for s. mapsBase is the map service root, without trailing slash.
func Render(s State, mapsBase string) Page {
	p := Page{
		Status:     s.Status(),
		Background: BackgroundOf(s),
		MapHref:    InertHref,
		Advisory:   Advisory,
	}
	switch st := s.(type) {
	case Success:
		result := st.Result
		p.Result = &result
		p.Query = st.Query
		p.MapHref = MapLink(mapsBase, st.Query)
		p.LocationFound = true
		p.Input = st.Query
	case Failure:
		p.Message = st.Message
		p.Input = st.Query
	}
	return p
}
