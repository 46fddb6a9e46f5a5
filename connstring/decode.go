/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package connstring

import (
	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"

	"github.com/nabbar/mongouri/docmap"
	liberr "github.com/nabbar/mongouri/errors"
)

var validate = validator.New()

// Settings is the pool/timeout subset of Options a client driver typically
// wants as a validated struct instead of individual GetInt32/GetBool calls.
// Decode populates it from a Configuration; Validate then checks it with the
// same struct-tag convention the teacher codebase uses throughout its config
// types.
type Settings struct {
	ConnectTimeoutMS         int32  `mapstructure:"connecttimeoutms" validate:"gte=0"`
	SocketTimeoutMS          int32  `mapstructure:"sockettimeoutms" validate:"gte=0"`
	ServerSelectionTimeoutMS int32  `mapstructure:"serverselectiontimeoutms" validate:"gte=0"`
	HeartbeatFrequencyMS     int32  `mapstructure:"heartbeatfrequencyms" validate:"gte=0"`
	MaxPoolSize              int32  `mapstructure:"maxpoolsize" validate:"gte=0"`
	MinPoolSize              int32  `mapstructure:"minpoolsize" validate:"gte=0"`
	ZlibCompressionLevel     int32  `mapstructure:"zlibcompressionlevel" validate:"gte=-1,lte=9"`
	AppName                  string `mapstructure:"appname" validate:"max=128"`
	SSL                      bool   `mapstructure:"ssl"`
}

// Decode populates out (typically *Settings, but any mapstructure-tagged
// struct works) from cfg's option document.
func (c *Configuration) Decode(out interface{}) liberr.Error {
	raw := make(map[string]interface{}, c.options.Len())
	for _, k := range c.options.Keys() {
		v, _ := c.options.Get(k)
		raw[k] = optionToInterface(v)
	}

	if err := mapstructure.Decode(raw, out); err != nil {
		return InvalidValue.Error(err)
	}

	return nil
}

func optionToInterface(v docmap.Value) interface{} {
	switch v.Kind {
	case docmap.KindInt32:
		return v.Int32
	case docmap.KindBool:
		return v.Bool
	case docmap.KindText:
		return v.Text
	case docmap.KindSubDoc:
		return v.Sub
	case docmap.KindSubDocSeq:
		return v.SubSeq
	default:
		return nil
	}
}

// Validate runs go-playground/validator over a struct populated by Decode.
func Validate(s interface{}) liberr.Error {
	if err := validate.Struct(s); err != nil {
		return InvalidValue.Error(err)
	}
	return nil
}
