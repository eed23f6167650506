package stream

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// Query holds the validated stream parameters supplied by the client.
//
// Both interval bounds must individually clear the 1000ms floor.
// Cross-field ordering is deliberately not enforced: interval_min=5000
// with interval_max=1000 is accepted, and the emission loop degrades
// to a fixed delay of interval_min when the range is empty or
// inverted.
type Query struct {
	// IntervalMin is the inclusive lower emission delay bound in ms.
	IntervalMin uint64 `validate:"gte=1000"`

	// IntervalMax is the exclusive upper emission delay bound in ms.
	IntervalMax uint64 `validate:"gte=1000"`

	// Shape is the raw JSON object template, re-parsed every tick.
	Shape string `validate:"required"`

	// Format selects the HTTP wire format. Defaults to SSE.
	Format string `validate:"omitempty,oneof=sse ndjson"`
}

var queryValidator = validator.New()

// queryParam maps struct field names to their query parameter names
// for error messages.
var queryParam = map[string]string{
	"IntervalMin": "interval_min",
	"IntervalMax": "interval_max",
	"Shape":       "shape",
	"Format":      "format",
}

// ParseQuery extracts and validates stream parameters from a URL
// query. The returned error names the offending parameter and the
// violated constraint.
func ParseQuery(values url.Values) (*Query, error) {
	q := &Query{Format: FormatSSE}

	var err error
	if q.IntervalMin, err = parseIntervalParam(values, "interval_min"); err != nil {
		return nil, err
	}
	if q.IntervalMax, err = parseIntervalParam(values, "interval_max"); err != nil {
		return nil, err
	}

	q.Shape = values.Get("shape")
	if f := values.Get("format"); f != "" {
		q.Format = f
	}

	if err := queryValidator.Struct(q); err != nil {
		return nil, validationMessage(err)
	}
	return q, nil
}

// parseIntervalParam reads a required unsigned millisecond parameter.
func parseIntervalParam(values url.Values, name string) (uint64, error) {
	raw := values.Get(name)
	if raw == "" {
		return 0, fmt.Errorf("%s is required", name)
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be an unsigned integer in milliseconds", name)
	}
	return n, nil
}

// validationMessage converts a validator error into a client-facing
// message naming the parameter and constraint.
func validationMessage(err error) error {
	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return err
	}

	fe := errs[0]
	name := queryParam[fe.StructField()]
	if name == "" {
		name = fe.StructField()
	}

	switch fe.Tag() {
	case "gte":
		return fmt.Errorf("%s must be >= %sms", name, fe.Param())
	case "required":
		return fmt.Errorf("%s is required", name)
	case "oneof":
		return fmt.Errorf("%s must be one of: %s", name, fe.Param())
	default:
		return fmt.Errorf("%s is invalid", name)
	}
}
