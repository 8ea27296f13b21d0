package warnings

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var ErrInvalidFilter = errors.New("invalid warning filter")

// Filter selects records and assigns them an action. Empty fields match
// everything.
type Filter struct {
	Action Action
	// Message is matched case-insensitively against the start of the message.
	Message *regexp.Regexp
	// Category is a family name ("deprecation", "pending") or a category name.
	Category string
	// Module is matched against the whole package path of the reported frame.
	Module *regexp.Regexp
	// Line is the reported line number, 0 for any.
	Line int
}

// Matches reports whether the filter applies to the record.
func (f Filter) Matches(r Record) bool {
	if f.Message != nil && !f.Message.MatchString(r.Message) {
		return false
	}

	if !matchCategory(f.Category, r.Category) {
		return false
	}

	if f.Module != nil && !f.Module.MatchString(r.Frame.Package()) {
		return false
	}

	return f.Line == 0 || f.Line == r.Frame.Line
}

func (f Filter) String() string {
	parts := []string{string(f.Action), "", f.Category, "", ""}
	if f.Message != nil {
		parts[1] = f.Message.String()
	}

	if f.Module != nil {
		parts[3] = f.Module.String()
	}

	if f.Line != 0 {
		parts[4] = strconv.Itoa(f.Line)
	}

	return strings.Join(parts, ":")
}

// Match returns the first filter applying to the record.
func Match(filters []Filter, r Record) (Filter, bool) {
	for _, f := range filters {
		if f.Matches(r) {
			return f, true
		}
	}

	return Filter{}, false
}

// NewFilter compiles a filter from its textual fields. Message and module
// are regular expressions.
func NewFilter(action, message, category, module string, line int) (Filter, error) {
	a, err := ParseAction(action)
	if err != nil {
		return Filter{}, err
	}

	if line < 0 {
		return Filter{}, fmt.Errorf("%w: negative line %d", ErrInvalidFilter, line)
	}

	f := Filter{Action: a, Category: strings.TrimSpace(category), Line: line}

	if message != "" {
		if f.Message, err = regexp.Compile("(?i)^(?:" + message + ")"); err != nil {
			return Filter{}, fmt.Errorf("%w: message: %w", ErrInvalidFilter, err)
		}
	}

	if module != "" {
		if f.Module, err = regexp.Compile("^(?:" + module + ")$"); err != nil {
			return Filter{}, fmt.Errorf("%w: module: %w", ErrInvalidFilter, err)
		}
	}

	return f, nil
}

// ParseFilterSpec parses comma separated "action:message:category:module:line"
// entries, as found in the GOWARNINGS environment variable. Message and
// module are literal here. The result is in precedence order: the last entry
// written comes first. Invalid entries are reported together while the valid
// ones are still returned.
func ParseFilterSpec(spec string) ([]Filter, error) {
	var (
		filters []Filter
		errs    []error
	)

	for _, entry := range strings.Split(spec, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		f, err := parseFilterEntry(entry)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		filters = append([]Filter{f}, filters...)
	}

	return filters, errors.Join(errs...)
}

func parseFilterEntry(entry string) (Filter, error) {
	fields := strings.Split(entry, ":")
	if len(fields) > 5 {
		return Filter{}, fmt.Errorf("%w: too many fields in %q", ErrInvalidFilter, entry)
	}

	for len(fields) < 5 {
		fields = append(fields, "")
	}

	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	line := 0
	if fields[4] != "" {
		n, err := strconv.Atoi(fields[4])
		if err != nil {
			return Filter{}, fmt.Errorf("%w: line %q in %q", ErrInvalidFilter, fields[4], entry)
		}

		line = n
	}

	message, module := fields[1], fields[3]
	if message != "" {
		message = regexp.QuoteMeta(message)
	}

	if module != "" {
		module = regexp.QuoteMeta(module)
	}

	f, err := NewFilter(fields[0], message, fields[2], module, line)
	if err != nil {
		return Filter{}, fmt.Errorf("%q: %w", entry, err)
	}

	return f, nil
}
