package config

import (
	"github.com/ezrec/twopass/translate"
)

var f = translate.From

type ErrKeyUnknown string

func (err ErrKeyUnknown) Error() string {
	return f("unknown setting '%v'", string(err))
}

type ErrValueRange string

func (err ErrValueRange) Error() string {
	return f("setting '%v' out of range", string(err))
}

type ErrValueType struct {
	Key  string
	Want string
	Got  string
}

func (err *ErrValueType) Error() string {
	return f("setting '%v' must be %v, not %v", err.Key, err.Want, err.Got)
}

// ErrConfig locates an error in a configuration file.
type ErrConfig struct {
	Filename string
	Err      error
}

func (err *ErrConfig) Error() string {
	return f("%v: %v", err.Filename, err.Err)
}

func (err *ErrConfig) Unwrap() error {
	return err.Err
}
