// internal/app/system/respond/respond.go
package respond

import (
	"net/http"

	"github.com/dalemusser/clubhub/internal/app/system/apperr"
	"github.com/go-chi/render"
)

// Envelope is the uniform JSON response shape for all API endpoints.
type Envelope struct {
	Success       bool        `json:"success"`
	StatusMessage string      `json:"status_message"`
	Data          interface{} `json:"data,omitempty"`
}

// OK writes a 200 response with the given payload.
func OK(w http.ResponseWriter, r *http.Request, message string, data interface{}) {
	render.JSON(w, r, Envelope{Success: true, StatusMessage: message, Data: data})
}

// Err classifies err via apperr and writes the matching status code
// with the user-facing message.
func Err(w http.ResponseWriter, r *http.Request, err error) {
	render.Status(r, apperr.HTTPStatus(apperr.KindOf(err)))
	render.JSON(w, r, Envelope{Success: false, StatusMessage: apperr.Message(err)})
}

// Fail writes an explicit status and message without an error value.
func Fail(w http.ResponseWriter, r *http.Request, status int, message string) {
	render.Status(r, status)
	render.JSON(w, r, Envelope{Success: false, StatusMessage: message})
}
