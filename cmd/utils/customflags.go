package utils

import (
	"encoding"
	"fmt"
	"reflect"
)

// Flag encapsulates common attributes and an interface for value
type Flag struct {
	Name         string
	Abbreviation string
	Value        interface{}
	Usage        string
}

func (f *Flag) GetName() string         { return f.Name }
func (f *Flag) GetAbbreviation() string { return f.Abbreviation }
func (f *Flag) GetUsage() string        { return f.Usage }
func (f *Flag) GetValue() interface{}   { return f.Value }

// ****************************************
// **                                    **
// **       TEXT MARSHALER FLAG          **
// **       & CUSTOM VALUE               **
// **                                    **
// ****************************************
type TextMarshaler interface {
	encoding.TextMarshaler
	encoding.TextUnmarshaler
}

// TextMarshalerValue adapts a TextMarshaler (headers, targets) to pflag.Value.
type TextMarshalerValue struct {
	Value TextMarshaler
}

func NewTextMarshalerValue(val TextMarshaler) *TextMarshalerValue {
	return &TextMarshalerValue{Value: val}
}

func (t *TextMarshalerValue) Set(val string) error {
	return t.Value.UnmarshalText([]byte(val))
}

func (t *TextMarshalerValue) Type() string {
	return "hex"
}

func (t *TextMarshalerValue) String() string {
	text, err := t.Value.MarshalText()
	if err != nil {
		return ""
	}
	return string(text)
}

var _ fmt.Stringer = (*TextMarshalerValue)(nil)

// cloneTextMarshaler copies the value behind a pointer default so every
// command binding the same Flag parses into its own value.
func cloneTextMarshaler(val TextMarshaler) TextMarshaler {
	v := reflect.ValueOf(val)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return val
	}
	fresh := reflect.New(v.Elem().Type())
	fresh.Elem().Set(v.Elem())
	return fresh.Interface().(TextMarshaler)
}
