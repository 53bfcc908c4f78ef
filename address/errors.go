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

package address

import "errors"

var (
	// ErrInvalidParent is returned when the address name and its parent name are the same.
	ErrInvalidParent = errors.New("child name and parent name must be different")

	// ErrInvalidName is returned when the actor name is empty, too long or contains a '/'.
	ErrInvalidName = errors.New("invalid actor name")

	// ErrInvalidSystemName is returned when the actor system name is not made of word characters.
	ErrInvalidSystemName = errors.New("invalid actor system name")

	// ErrInvalidActorSystem is returned when the given address actor system and its parent actor system are different.
	ErrInvalidActorSystem = errors.New("child and parent actor systems must be the same")
)
