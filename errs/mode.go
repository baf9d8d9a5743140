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

package errs

import "fmt"

var (
	defaultPattern      = "[Error #%d] %s"
	defaultPatternTrace = "[Error #%d] %s (%s)"
)

type ErrorMode uint8

const (
	Default ErrorMode = iota
	ModeCode
	ModeCodeError
	ModeCodeErrorTrace
	ModeStringError
)

var modeError = Default

// SetModeReturnError changes how Error() renders an error for the rest of
// the process lifetime.
func SetModeReturnError(mode ErrorMode) { modeError = mode }

func GetModeReturnError() ErrorMode { return modeError }

func (m ErrorMode) format(e *ers) string {
	switch m {
	case ModeCode:
		return fmt.Sprintf("%d", e.Code())
	case ModeCodeError:
		return e.CodeError("")
	case ModeCodeErrorTrace:
		return e.CodeErrorTrace("")
	case ModeStringError:
		return e.StringError()
	default:
		return e.StringError()
	}
}
