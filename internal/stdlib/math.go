// Copyright 2026 The Jsonnet-Go Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package stdlib

import (
	"math"

	"github.com/jsonnet-go/jsonnet/internal/core/adt"
)

// registerMath wires the named numeric intrinsics (modulo, floor/ceil,
// sqrt, pow, the trig family, log, exp). abs/sign/max/min/clamp/round/
// isEven/isOdd are ordinary expressions over these and live in
// std.jsonnet instead.
func (b *builder) registerMath() {
	b.fn("mod", []string{"a", "b"}, func(a []adt.Value) (adt.Value, error) {
		return adt.Mod(a[0], a[1])
	})
	b.fn("pow", []string{"x", "n"}, mathBinary(math.Pow))
	b.fn("sqrt", []string{"x"}, mathUnary(math.Sqrt))
	b.fn("floor", []string{"x"}, mathUnary(math.Floor))
	b.fn("ceil", []string{"x"}, mathUnary(math.Ceil))
	b.fn("exp", []string{"x"}, mathUnary(math.Exp))
	b.fn("log", []string{"x"}, mathUnary(math.Log))
	b.fn("sin", []string{"x"}, mathUnary(math.Sin))
	b.fn("cos", []string{"x"}, mathUnary(math.Cos))
	b.fn("tan", []string{"x"}, mathUnary(math.Tan))
	b.fn("asin", []string{"x"}, mathUnary(math.Asin))
	b.fn("acos", []string{"x"}, mathUnary(math.Acos))
	b.fn("atan", []string{"x"}, mathUnary(math.Atan))
}

func mathUnary(f func(float64) float64) func([]adt.Value) (adt.Value, error) {
	return func(a []adt.Value) (adt.Value, error) {
		n, err := argNumber(a, 0)
		if err != nil {
			return nil, err
		}
		return adt.Number(f(float64(n))), nil
	}
}

func mathBinary(f func(x, y float64) float64) func([]adt.Value) (adt.Value, error) {
	return func(a []adt.Value) (adt.Value, error) {
		x, err := argNumber(a, 0)
		if err != nil {
			return nil, err
		}
		y, err := argNumber(a, 1)
		if err != nil {
			return nil, err
		}
		return adt.Number(f(float64(x), float64(y))), nil
	}
}

