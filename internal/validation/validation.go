// Package validation contains the logic for binding and validating request
// data.
//
// It uses the `validator` library to enforce rules declared in struct tags
// and turns validation failures into field errors keyed by the names the
// client submitted.
package validation
