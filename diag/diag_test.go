package diag

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestList(t *testing.T) {
	assert := assert.New(t)

	errA := errors.New("a")
	errB := errors.New("b")
	warn := errors.New("w")

	dl := &List{}
	assert.True(dl.Eligible())
	assert.NoError(dl.Err())

	dl.Warn(warn)
	assert.True(dl.Eligible())
	assert.NoError(dl.Err())

	dl.Error(&ErrSyntax{LineNo: 3, Line: "x", Err: errA})
	dl.Error(errB)
	assert.False(dl.Eligible())
	assert.Len(dl.All(), 3)
	assert.Equal([]error{warn}, dl.Warnings())
	assert.Len(dl.Errors(), 2)

	err := dl.Err()
	assert.ErrorIs(err, errA)
	assert.ErrorIs(err, errB)
	assert.NotErrorIs(err, warn)

	var se *ErrSyntax
	assert.True(errors.As(err, &se))
	assert.Equal(3, se.LineNo)
}

func TestErrMacro(t *testing.T) {
	assert := assert.New(t)

	inner := errors.New("inner")
	err := &ErrSyntax{LineNo: 7, Line: "M", Err: &ErrMacro{Macro: "M", LineNo: 2, Err: inner}}

	assert.ErrorIs(err, inner)

	var me *ErrMacro
	assert.True(errors.As(err, &me))
	assert.Equal("M", me.Macro)
	assert.Equal(2, me.LineNo)
}
