package httputil

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"
)

// ProblemType identifies a class of API error in problem+json bodies.
// Clients switch on the type; the detail text is for people.
type ProblemType string

const (
	ProblemValidation   ProblemType = "urn:filesfeed:problem:validation"
	ProblemUnauthorized ProblemType = "urn:filesfeed:problem:unauthorized"
	ProblemNotFound     ProblemType = "urn:filesfeed:problem:not-found"
	ProblemConflict     ProblemType = "urn:filesfeed:problem:conflict"
	ProblemUnavailable  ProblemType = "urn:filesfeed:problem:backend-unavailable"
	ProblemInternal     ProblemType = "urn:filesfeed:problem:internal"
	ProblemOther        ProblemType = "about:blank"
)

var problemTypes = map[int]ProblemType{
	http.StatusBadRequest:          ProblemValidation,
	http.StatusUnauthorized:        ProblemUnauthorized,
	http.StatusNotFound:            ProblemNotFound,
	http.StatusConflict:            ProblemConflict,
	http.StatusServiceUnavailable:  ProblemUnavailable,
	http.StatusInternalServerError: ProblemInternal,
}

// ProblemTypeFor returns the problem type served for a status code
func ProblemTypeFor(status int) ProblemType {
	if t, ok := problemTypes[status]; ok {
		return t
	}
	return ProblemOther
}

// Problem is an RFC 7807 error body. Extra fields are flattened into the
// top-level object (for example resource_type on conflicts).
type Problem struct {
	Type   ProblemType
	Status int
	Detail string
	Extra  map[string]interface{}

	// RetryAfter, when set, is sent as a Retry-After header
	RetryAfter time.Duration
}

// MarshalJSON flattens Extra next to the standard members
func (p Problem) MarshalJSON() ([]byte, error) {
	m := make(map[string]interface{}, len(p.Extra)+4)
	for k, v := range p.Extra {
		m[k] = v
	}
	m["type"] = p.Type
	m["title"] = http.StatusText(p.Status)
	m["status"] = p.Status
	if p.Detail != "" {
		m["detail"] = p.Detail
	}
	return json.Marshal(m)
}

// RespondJSON writes a JSON response with the given status code.
// The payload is marshaled before any header is written.
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	payload, err := json.Marshal(data)
	if err != nil {
		RespondError(w, http.StatusInternalServerError, "failed to encode response")
		return
	}
	write(w, status, "application/json", payload)
}

// RespondError writes a problem response typed by status
func RespondError(w http.ResponseWriter, status int, detail string) {
	RespondProblem(w, Problem{Status: status, Detail: detail})
}

// RespondErrorWithExtras writes a problem response with additional top-level fields
func RespondErrorWithExtras(w http.ResponseWriter, status int, detail string, extras map[string]interface{}) {
	RespondProblem(w, Problem{Status: status, Detail: detail, Extra: extras})
}

// RespondProblem writes p, filling in the type from the status when unset
func RespondProblem(w http.ResponseWriter, p Problem) {
	if p.Type == "" {
		p.Type = ProblemTypeFor(p.Status)
	}

	payload, err := json.Marshal(p)
	if err != nil {
		write(w, http.StatusInternalServerError, "text/plain", []byte("internal server error"))
		return
	}

	if p.RetryAfter > 0 {
		w.Header().Set("Retry-After", strconv.Itoa(int(p.RetryAfter.Round(time.Second)/time.Second)))
	}
	write(w, p.Status, "application/problem+json", payload)
}

func write(w http.ResponseWriter, status int, contentType string, payload []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	w.Write(payload)
}
