// Copyright (c) 2019-2022 The Lumachain Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package httprestful

// MaxParamSize is the maximum parameter size.
const MaxParamSize = 1024 * 100

// Params carries the decoded request parameters of one call.
type Params map[string]interface{}

func (p Params) String(key string) (string, bool) {
	value, ok := p[key]
	if !ok {
		return "", false
	}
	v, ok := value.(string)
	if !ok {
		return "", false
	}
	if len(v) > MaxParamSize {
		return "", false
	}
	return v, true
}

func (p Params) Uint(key string) (uint32, bool) {
	value, ok := p[key]
	if !ok {
		return 0, false
	}
	// numbers decoded from a json body arrive as float64
	v, ok := value.(float64)
	if !ok || v < 0 {
		return 0, false
	}
	return uint32(v), true
}
