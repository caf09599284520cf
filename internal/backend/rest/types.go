package rest

import "strings"

// ErrorResponse covers the error shapes returned by both halves of a
// Supabase project. PostgREST uses message/details/hint, GoTrue uses
// either msg or error/error_description depending on the endpoint.
type ErrorResponse struct {
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`

	Msg              string `json:"msg"`
	ErrorCode        string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// Text flattens whichever fields the server populated into one line.
func (e ErrorResponse) Text() string {
	parts := []string{}
	for _, p := range []string{
		e.Message, e.Details, e.Hint,
		e.Msg, e.ErrorDescription, e.ErrorCode,
	} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, "; ")
}
