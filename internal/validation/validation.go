// Package validation contains the logic for validating
// request data.
//
// Schemas are plain data: an ordered list of rules per request
// segment (query, params, body). A single interpreter, Validator,
// runs any schema against raw input. It uses the `validator` library
// for the individual constraint checks (bounds, enumerations, custom
// formats) and collects every violation into field errors the
// client can understand.
package validation
