package warnings

import "housekeeping/stack"

// Record is a single emission, built by the dispatcher and handed to sinks.
type Record struct {
	Category Category
	Message  string
	Frame    stack.Frame
}

func (r Record) String() string {
	return r.Frame.String() + ": " + r.Category.String() + ": " + r.Message
}

// Error is the panic value raised for records matched by an error filter.
type Error struct {
	Record Record
}

func (e *Error) Error() string {
	return e.Record.Category.String() + ": " + e.Record.Message
}
