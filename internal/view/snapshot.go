package view

import "github.com/kjstillabower/weather-lookup/internal/models"

// Snapshot is the storable form of a State.
type Snapshot struct {
	Status  Status                `json:"status"`
	Query   string                `json:"query,omitempty"`
	Result  *models.WeatherResult `json:"result,omitempty"`
	Message string                `json:"message,omitempty"`
}

// Encode flattens s into a Snapshot.
func Encode(s State) Snapshot {
	switch st := s.(type) {
	case Success:
		result := st.Result
		return Snapshot{Status: StatusSuccess, Query: st.Query, Result: &result}
	case Failure:
		return Snapshot{Status: StatusError, Query: st.Query, Message: st.Message}
	default:
		return Snapshot{Status: StatusIdle}
	}
}

// Decode rebuilds a State. A snapshot that cannot be a valid State
// (success without a result, unknown status) decodes to Idle.
func Decode(snap Snapshot) State {
	switch snap.Status {
	case StatusSuccess:
		if snap.Result == nil {
			return Idle{}
		}
		return Success{Result: *snap.Result, Query: snap.Query}
	case StatusError:
		msg := snap.Message
		if msg == "" {
			msg = NotFoundMessage
		}
		return Failure{Message: msg, Query: snap.Query}
	default:
		return Idle{}
	}
}
