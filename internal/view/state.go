// Package view holds the presentation state of the lookup page: which of
// Idle, Success or Error is shown, the backdrop, and the map link.
package view

import "github.com/kjstillabower/weather-lookup/internal/models"

// NotFoundMessage is the only error text a visitor ever sees.
const NotFoundMessage = "Location not found"

// Status names the display mode of a State.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// State is the mutually exclusive display mode derived from the latest lookup.
// The only implementations are Idle, Success and Failure.
type State interface {
	Status() Status
	isState()
}

// Idle is the state before any submission.
type Idle struct{}

// Success carries the fetched result and the raw query that produced it.
type Success struct {
	Result models.WeatherResult
	Query  string
}

// Failure carries the banner message and the text that was submitted, which only
// refills the input. It never carries a result.
type Failure struct {
	Message string
	Query   string
}

func (Idle) Status() Status    { return StatusIdle }
func (Success) Status() Status { return StatusSuccess }
func (Failure) Status() Status { return StatusError }

func (Idle) isState()    {}
func (Success) isState() {}
func (Failure) isState() {}

// NotFound is the Failure every lookup error for query resolves to.
func NotFound(query string) Failure {
	return Failure{Message: NotFoundMessage, Query: query}
}
