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

package device

import (
	"io"
	"os"
)

// FileReader reads a binlog/persistence file one step at a time. Files
// never return Retry.
type FileReader struct {
	F *os.File
}

func NewFileReader(f *os.File) *FileReader { return &FileReader{F: f} }

func (f *FileReader) ReadBytes(buf []byte) (Result, int) {
	n, err := f.F.Read(buf)
	if err != nil {
		if err == io.EOF {
			if n > 0 {
				return Ok, n
			}
			return Eof, 0
		}
		return Error, 0
	}
	if n == 0 {
		return Eof, 0
	}
	return Ok, n
}

// FileWriter writes a binlog/persistence file one step at a time.
type FileWriter struct {
	F *os.File
}

func NewFileWriter(f *os.File) *FileWriter { return &FileWriter{F: f} }

func (f *FileWriter) WriteBytes(buf []byte) (Result, int) {
	n, err := f.F.Write(buf)
	if err != nil {
		return Error, n
	}
	return Ok, n
}
