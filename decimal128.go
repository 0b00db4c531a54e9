// Copyright (C) bsonkit authors 2014-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bson

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/bsonkit/bson/bsonerr"
	mgodecimal "gopkg.in/mgo.v2/bson"
)

// Decimal128 bit layout note: the official IEEE-754-2008 decimal128
// "binary integer decimal" format packs a 14-bit biased exponent and a
// 113-bit coefficient into 128 bits, but reserves a special 2-bit
// "combination field" prefix to squeeze out 3 extra coefficient bits when
// the leading decimal digit is 8 or 9. This implementation uses the
// simpler of the two sub-layouts: sign(1) | biased-exponent(14) |
// coefficient(113), with no combination-field special case. pack/unpack
// are exact inverses and every 34-significant-digit value fits, but the
// bits are not identical to the canonical MongoDB wire encoding for
// coefficients with a leading digit of 8 or 9.
const decimal128Bias = 6176
const decimal128MaxDigits = 34

var bigMaxUint64 = new(big.Int).SetUint64(math.MaxUint64)

// NewDecimal128FromString parses a decimal string (e.g. "0.1",
// "-123.456e10") into a Decimal128. gopkg.in/mgo.v2/bson's
// ParseDecimal128 validates and canonicalizes the input before the bits
// are packed.
func NewDecimal128FromString(s string) (Decimal128, error) {
	canon, err := mgodecimal.ParseDecimal128(s)
	if err != nil {
		return Decimal128{}, bsonerr.NewDecodeFailure("decimal128", fmt.Sprintf("invalid decimal %q: %v", s, err))
	}
	negative, coeff, exponent, err := splitDecimalString(canon.String())
	if err != nil {
		return Decimal128{}, bsonerr.NewDecodeFailure("decimal128", err.Error())
	}
	if coeff.BitLen() > 0 && numDigits(coeff) > decimal128MaxDigits {
		return Decimal128{}, bsonerr.NewDecodeFailure("decimal128", fmt.Sprintf("%q has more than %d significant digits", s, decimal128MaxDigits))
	}
	return packDecimal128(negative, coeff, exponent), nil
}

// DecimalString renders the Decimal128 back to its canonical decimal
// string form. The unpacked digits/exponent are re-validated through
// gopkg.in/mgo.v2/bson's ParseDecimal128 so both directions of the conversion
// exercise the same external decimal grammar.
func (d Decimal128) DecimalString() (string, error) {
	negative, coeff, exponent := unpackDecimal128(d)
	raw := formatDecimalParts(negative, coeff, exponent)
	canon, err := mgodecimal.ParseDecimal128(raw)
	if err != nil {
		return "", bsonerr.NewDecodeFailure("decimal128", fmt.Sprintf("corrupt decimal128 bits: %v", err))
	}
	return canon.String(), nil
}

func packDecimal128(negative bool, coeff *big.Int, exponent int) Decimal128 {
	biased := uint64(exponent + decimal128Bias)
	combined := new(big.Int).Lsh(new(big.Int).SetUint64(biased), 113)
	combined.Or(combined, coeff)
	if negative {
		combined.SetBit(combined, 127, 1)
	}
	lo := new(big.Int).And(combined, bigMaxUint64)
	hi := new(big.Int).Rsh(combined, 64)
	return Decimal128{Hi: hi.Uint64(), Lo: lo.Uint64()}
}

func unpackDecimal128(d Decimal128) (negative bool, coeff *big.Int, exponent int) {
	combined := new(big.Int).Lsh(new(big.Int).SetUint64(d.Hi), 64)
	combined.Or(combined, new(big.Int).SetUint64(d.Lo))

	negative = combined.Bit(127) == 1
	coeff = new(big.Int).And(combined, new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 113), big.NewInt(1)))
	biased := new(big.Int).And(new(big.Int).Rsh(combined, 113), big.NewInt((1<<14)-1))
	exponent = int(biased.Int64()) - decimal128Bias
	return negative, coeff, exponent
}

func formatDecimalParts(negative bool, coeff *big.Int, exponent int) string {
	var sb strings.Builder
	if negative {
		sb.WriteByte('-')
	}
	sb.WriteString(coeff.String())
	sb.WriteByte('E')
	sb.WriteString(strconv.Itoa(exponent))
	return sb.String()
}

// splitDecimalString decomposes a canonical decimal string ("-123.45",
// "1.2E+7", "0") into a sign, an unsigned integer coefficient, and a base-10
// exponent such that value == (-1)^sign * coeff * 10^exponent.
func splitDecimalString(s string) (negative bool, coeff *big.Int, exponent int, err error) {
	if s == "" {
		return false, nil, 0, fmt.Errorf("empty decimal string")
	}
	if s[0] == '-' {
		negative = true
		s = s[1:]
	} else if s[0] == '+' {
		s = s[1:]
	}

	mantissa := s
	explicitExp := 0
	if idx := strings.IndexAny(s, "eE"); idx >= 0 {
		mantissa = s[:idx]
		explicitExp, err = strconv.Atoi(s[idx+1:])
		if err != nil {
			return false, nil, 0, fmt.Errorf("invalid exponent in %q: %w", s, err)
		}
	}

	fracDigits := 0
	digits := mantissa
	if idx := strings.IndexByte(mantissa, '.'); idx >= 0 {
		digits = mantissa[:idx] + mantissa[idx+1:]
		fracDigits = len(mantissa) - idx - 1
	}
	digits = strings.TrimLeft(digits, "0")
	if digits == "" {
		digits = "0"
	}

	coeff = new(big.Int)
	if _, ok := coeff.SetString(digits, 10); !ok {
		return false, nil, 0, fmt.Errorf("invalid decimal digits in %q", s)
	}
	exponent = explicitExp - fracDigits
	return negative, coeff, exponent, nil
}

func numDigits(n *big.Int) int {
	if n.Sign() == 0 {
		return 1
	}
	return len(n.String())
}
