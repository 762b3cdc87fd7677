// MIT License
//
// Copyright (c) 2024 sphinx-core
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package wots

// Encode converts an M-byte message into Len base-w digits: Len1 message
// digits read most significant first, then Len2 checksum digits.
//
// When log2(w) does not divide 8*M the last message digit takes the remaining
// bits and is zero-padded on the low end.
func Encode(msg []byte, p *ParameterSet) ([]int, error) {
	if err := checkLen("message", msg, p.M); err != nil {
		return nil, err
	}
	digits := make([]int, p.Len)
	encodeInto(digits, msg, p)
	return digits, nil
}

func encodeInto(digits []int, msg []byte, p *ParameterSet) {
	baseW(digits[:p.Len1], msg, p.LogW)

	// Each message digit contributes w-1-d, so raising a digit lowers the checksum
	checksum := 0
	maxValue := p.W - 1
	for _, d := range digits[:p.Len1] {
		checksum += maxValue - d
	}

	// Checksum digits, most significant first, zero-padded on the high end
	for i := p.Len - 1; i >= p.Len1; i-- {
		digits[i] = checksum & maxValue
		checksum >>= p.LogW
	}
}

// baseW reads len(out) digits of logW bits from a big-endian bit stream.
func baseW(out []int, in []byte, logW int) {
	var total uint64
	bits := 0
	consumed := 0
	mask := uint64(1)<<logW - 1
	for i := range out {
		for bits < logW {
			if consumed < len(in) {
				total = total<<8 | uint64(in[consumed])
				consumed++
				bits += 8
			} else {
				// Out of input: pad the final group with zero bits
				total <<= uint(logW - bits)
				bits = logW
			}
		}
		bits -= logW
		out[i] = int((total >> uint(bits)) & mask)
	}
}
