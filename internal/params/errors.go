package params

import "fmt"

// ConfigurationError reports a fatal resolution-time problem: an override or
// profile key that no schema field matches, a value of the wrong shape, or a
// reference to a zone the block does not define. It is always raised before
// any frame is processed and aborts pipeline construction.
type ConfigurationError struct {
	Block  string
	Zone   string
	Key    string
	Reason string
}

func (e *ConfigurationError) Error() string {
	msg := "configuration error"
	if e.Block != "" {
		msg += fmt.Sprintf(" in block %q", e.Block)
	}
	if e.Zone != "" {
		msg += fmt.Sprintf(" zone %q", e.Zone)
	}
	if e.Key != "" {
		msg += fmt.Sprintf(" key %q", e.Key)
	}
	return msg + ": " + e.Reason
}
