// Copyright (c) 2019-2022 The Lumachain Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package errors

import "fmt"

// LumaError pairs the rule code a transaction was rejected under with
// the error that triggered it.
type LumaError interface {
	error

	Code() ErrCode
	InnerError() error
}

type simpleError struct {
	code ErrCode
	err  error
}

func (e *simpleError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s", e.code.Reason(), e.err.Error())
	}
	return e.code.Reason()
}

func (e *simpleError) Code() ErrCode {
	return e.code
}

func (e *simpleError) InnerError() error {
	return e.err
}

// Simple wraps err under code.  A nil err carries just the coded
// reason.
func Simple(code ErrCode, err error) LumaError {
	return &simpleError{
		code: code,
		err:  err,
	}
}

// SimpleWithMessage prefixes the wrapped error with message.
func SimpleWithMessage(code ErrCode, err error, message string) LumaError {
	if err != nil {
		err = fmt.Errorf("%s: %s", message, err.Error())
	} else {
		err = fmt.Errorf("%s", message)
	}
	return &simpleError{
		code: code,
		err:  err,
	}
}
