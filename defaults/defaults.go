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

// Package defaults loads the small set of NO-SENTINEL fallback values the
// spec calls out in §4.8/§9: options whose stored-zero does not mean
// "absent" the way the rest of the int32 class does. An operator can
// override these three values from a config file or the environment
// without recompiling; the grammar and registry stay pure functions of the
// URI text regardless of what this profile holds.
package defaults

import (
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	liberr "github.com/nabbar/mongouri/errors"
)

const (
	InvalidProfile liberr.CodeError = liberr.MinPkgDefaults + iota + 1
)

func init() {
	liberr.RegisterIdFctMessage(liberr.MinPkgDefaults, getMessage)
}

func getMessage(code liberr.CodeError) string {
	switch code {
	case InvalidProfile:
		return "invalid defaults profile"
	default:
		return liberr.UnknownMessage
	}
}

// Profile holds the NO-SENTINEL fallback values.
type Profile struct {
	MaxStalenessSeconds int32 `mapstructure:"max_staleness_seconds"`
	LocalThresholdMS    int32 `mapstructure:"local_threshold_ms"`
	WTimeoutMS          int32 `mapstructure:"wtimeout_ms"`
	MaxAppNameLen       int   `mapstructure:"max_appname_len"`
}

// Standard is the built-in profile used when no override is loaded.
var Standard = Profile{
	MaxStalenessSeconds: -1,
	LocalThresholdMS:    15,
	WTimeoutMS:          0,
	MaxAppNameLen:       128,
}

// Load reads a Profile from path (any format viper supports: json, yaml,
// toml, ...), falling back to Standard for any field the file doesn't set.
func Load(path string) (Profile, liberr.Error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetDefault("max_staleness_seconds", Standard.MaxStalenessSeconds)
	v.SetDefault("local_threshold_ms", Standard.LocalThresholdMS)
	v.SetDefault("wtimeout_ms", Standard.WTimeoutMS)
	v.SetDefault("max_appname_len", Standard.MaxAppNameLen)

	if err := v.ReadInConfig(); err != nil {
		return Profile{}, InvalidProfile.Error(err)
	}

	var p Profile
	if err := v.Unmarshal(&p, viper.DecodeHook(mapstructure.StringToTimeDurationHookFunc())); err != nil {
		return Profile{}, InvalidProfile.Error(err)
	}

	return p, nil
}
