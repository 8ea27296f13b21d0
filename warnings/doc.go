// Package warnings dispatches deprecation warnings.
//
// It is the collaborator housekeeping hands every emission to: it resolves
// the reported frame from a stack level, filters records by category,
// message, package and line, remembers what was already shown, and passes
// the surviving records to sinks.
//
// Filter actions:
//   - default: show once per category, message and location
//   - always: show every time
//   - once: show once per category and message
//   - module: show once per category, message and file
//   - ignore: drop
//   - error: panic with *Error
package warnings
