/*
 * MIT License
 *
 * Copyright (c) 2022-2025 Arsene Tochemey Gandote
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
 */

package validation

import (
	"fmt"
	"regexp"
	"time"
)

// NewAssertion returns a Validator that reports err when isTrue is false
func NewAssertion(isTrue bool, err error) Validator {
	return ValidatorFunc(func() error {
		if !isTrue {
			return err
		}
		return nil
	})
}

// NewRangeValidator checks that value lies in [minimum, maximum].
// The violation wraps err and names the field.
func NewRangeValidator(field string, value, minimum, maximum int, err error) Validator {
	return ValidatorFunc(func() error {
		if value < minimum || value > maximum {
			return fmt.Errorf("%w: %s=%d not in [%d, %d]", err, field, value, minimum, maximum)
		}
		return nil
	})
}

// NewPositiveDurationValidator checks that value is strictly positive
func NewPositiveDurationValidator(field string, value time.Duration, err error) Validator {
	return ValidatorFunc(func() error {
		if value <= 0 {
			return fmt.Errorf("%w: %s=%s", err, field, value)
		}
		return nil
	})
}

// NewPatternValidator checks that value matches pattern
func NewPatternValidator(pattern *regexp.Regexp, value string, err error) Validator {
	return ValidatorFunc(func() error {
		if !pattern.MatchString(value) {
			return err
		}
		return nil
	})
}
