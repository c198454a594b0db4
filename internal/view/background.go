package view

// Background is the page backdrop: an image when the condition is recognised,
// a flat color otherwise.
type Background struct {
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
	Color string `json:"color,omitempty"`
}

var (
	SkyClear = Background{Name: "sky-clear", Image: "img/clear-sky.png"}
	SkyRain  = Background{Name: "sky-rain", Image: "img/rain-sky.png"}
	SkyMist  = Background{Name: "sky-mist", Image: "img/mist-sky.png"}

	// Neutral is used for Idle, Failure and any unlisted condition.
	Neutral = Background{Name: "neutral", Color: "#343a40"}
)

// backgrounds maps the provider's condition string (weather[0].main) to a backdrop.
// Keys are case-sensitive, matching the provider's capitalisation.
var backgrounds = map[string]Background{
	"Clear":  SkyClear,
	"Clouds": SkyClear,
	"Rain":   SkyRain,
	"Mist":   SkyMist,
}

// BackgroundFor returns the backdrop for a condition string. It is total:
// anything not in the table gets Neutral.
func BackgroundFor(condition string) Background {
	if bg, ok := backgrounds[condition]; ok {
		return bg
	}
	return Neutral
}

// BackgroundOf returns the backdrop for a state.
func BackgroundOf(s State) Background {
	if st, ok := s.(Success); ok {
		return BackgroundFor(st.Result.Condition)
	}
	return Neutral
}
