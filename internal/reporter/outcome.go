package reporter

// State is the lifecycle position of one submission.
type State string

// Submission states. Succeeded and Failed are terminal.
const (
	StateIdle      State = "idle"
	StateInFlight  State = "in_flight"
	StateSucceeded State = "succeeded"
	StateFailed    State = "failed"
)

// Outcome is the classified result of executing an Operation: exactly one of
// *Success or *Failure.
type Outcome interface {
	State() State
	outcome()
}

// Success carries the decoded payload of a 2xx response.
type Success struct {
	StatusCode int `json:"status_code"`
	// Payload is the JSON-decoded body for DecodeJSON operations, the body text otherwise.
	Payload     any    `json:"payload"`
	Description string `json:"description,omitempty"`
}

// Failure carries a non-2xx status and the unparsed response body. A transport
// error (no response at all) is a Failure with StatusCode 0 and Err set.
type Failure struct {
	StatusCode int    `json:"status_code"`
	RawBody    string `json:"raw_body"`
	Err        error  `json:"-"`
}

func (*Success) State() State { return StateSucceeded }
func (*Success) outcome()     {}

func (*Failure) State() State { return StateFailed }
func (*Failure) outcome()     {}

// HasStatus reports whether the backend produced an HTTP status at all.
func (f *Failure) HasStatus() bool { return f.StatusCode != 0 }

// Label is the descriptor-table label for the status, or "".
func (f *Failure) Label() string { return LookupLabel(f.StatusCode) }

// Message is the human message for the failure: the client-side error (transport
// or undecodable payload) when there is one, otherwise the text extracted from the body.
func (f *Failure) Message() string {
	if f.Err != nil {
		return f.Err.Error()
	}
	return ExtractMessage(f.RawBody)
}
