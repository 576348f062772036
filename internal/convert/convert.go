package convert

import (
	"github.com/vk/gomlgo/internal/errors"
	"github.com/vk/gomlgo/internal/nsid"
)

// Func converts a raw value to a typed value.
type Func func(raw any) (any, error)

// Converter is a named conversion function, as registered in the registry.
type Converter struct {
	Name    nsid.Identity
	Convert Func
}

// Apply runs the conversion and annotates failures with the converter name.
func (c *Converter) Apply(raw any) (any, error) {
	v, err := c.Convert(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "converter %s", c.Name.FQN())
	}
	return v, nil
}

// Builtin pairs a built-in converter name with its function.
type Builtin struct {
	Name string
	Func Func
}

// Builtins returns the converters every registry starts with, in
// registration order.
func Builtins() []Builtin {
	return []Builtin{
		{Name: "String", Func: String},
		{Name: "StringArray", Func: StringArray},
		{Name: "Boolean", Func: Boolean},
		{Name: "Number", Func: Number},
		{Name: "Integer", Func: Integer},
		{Name: "Object", Func: Object},
		{Name: "Identity", Func: Identity},
	}
}

func invalid(raw any, target string) error {
	return errors.InvalidOperationf("cannot convert %#v (%T) to %s", raw, raw, target)
}

func unparseable(raw string, target string, cause error) error {
	err := errors.InvalidOperationf("cannot parse %q as %s", raw, target)
	if cause != nil {
		err = errors.WithDetail(err, cause.Error())
	}
	return err
}
