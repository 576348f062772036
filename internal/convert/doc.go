// Package convert provides attribute converters: named functions that map a
// raw markup value to the typed value an attribute holds.
//
// Every converter follows the same policy. A value that already has the
// target Go type is returned verbatim, a string is parsed according to the
// converter's semantic type, and any other shape is an
// errors.ErrInvalidOperation naming the offending value and the target type.
// A nil raw value means "no value" and converts to nil.
//
// String parsing is delegated to go-cty so markup text follows the same
// conversion rules as HCL attribute values.
package convert
