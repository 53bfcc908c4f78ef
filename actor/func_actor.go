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

package actor

// ReceiveFunc handles a message received by a FuncActor
type ReceiveFunc func(ctx *ReceiveContext)

// FuncActor is an actor built from a plain function.
// It is handy for short-lived or stateless behaviors.
type FuncActor struct {
	receive ReceiveFunc
}

var _ Actor = (*FuncActor)(nil)

// NewFuncActor creates an actor that hands every message to receive
func NewFuncActor(receive ReceiveFunc) *FuncActor {
	return &FuncActor{receive: receive}
}

// PreStart implements Actor
func (x *FuncActor) PreStart(*Context) error {
	return nil
}

// Receive implements Actor
func (x *FuncActor) Receive(ctx *ReceiveContext) {
	if x.receive == nil {
		ctx.Unhandled()
		return
	}
	x.receive(ctx)
}

// PostStop implements Actor
func (x *FuncActor) PostStop(*Context) error {
	return nil
}
