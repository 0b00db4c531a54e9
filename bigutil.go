// Copyright (C) bsonkit authors 2014-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bson

import (
	"fmt"
	"math/big"
	"strconv"
)

// bigIntAlias lets numeric.go and decimal128.go share one big.Int spelling
// without every call site repeating the package-qualified name.
type bigIntAlias = big.Int

var bigTen = big.NewInt(10)

func pow10(n int) *big.Int {
	return new(big.Int).Exp(bigTen, big.NewInt(int64(n)), nil)
}

// parseFloatStrict parses s as a float64 and rejects inputs that don't
// round-trip back to the same decimal value: the nearest float64's
// shortest decimal form must denote exactly the number s does, so a
// decimal with more significant digits than a float64 can carry fails
// instead of silently rounding. This is the "is decimal double" coercion
// rule.
func parseFloatStrict(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if !decimalTextEqual(s, strconv.FormatFloat(f, 'g', -1, 64)) {
		return 0, fmt.Errorf("%q does not round-trip through float64", s)
	}
	return f, nil
}

// decimalTextEqual reports whether two decimal strings denote the same
// number, normalizing away spelling differences ("123400" vs "1.234E+5",
// trailing coefficient zeros) before comparing sign, coefficient, and
// exponent.
func decimalTextEqual(a, b string) bool {
	an, ac, ae, err := splitDecimalString(a)
	if err != nil {
		return false
	}
	bn, bc, be, err := splitDecimalString(b)
	if err != nil {
		return false
	}
	ac, ae = normalizeDecimalParts(ac, ae)
	bc, be = normalizeDecimalParts(bc, be)
	if ac.Sign() == 0 && bc.Sign() == 0 {
		return true
	}
	return an == bn && ae == be && ac.Cmp(bc) == 0
}

func normalizeDecimalParts(coeff *big.Int, exponent int) (*big.Int, int) {
	if coeff.Sign() == 0 {
		return coeff, 0
	}
	c := new(big.Int).Set(coeff)
	rem := new(big.Int)
	for {
		q, r := new(big.Int).QuoRem(c, bigTen, rem)
		if r.Sign() != 0 {
			return c, exponent
		}
		c = q
		exponent++
	}
}
