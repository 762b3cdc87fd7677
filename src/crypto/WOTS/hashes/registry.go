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

package hashes

import (
	"github.com/elliotchance/orderedmap/v2"
)

// registry maps names to constructors. It is filled once at package init and
// never written afterwards, so concurrent lookups need no lock.
var registry = newRegistry()

func newRegistry() *orderedmap.OrderedMap[string, func() Provider] {
	m := orderedmap.NewOrderedMap[string, func() Provider]()
	m.Set(NameKeccak256, Keccak256)
	m.Set(NameSHA3_256, SHA3_256)
	m.Set(NameSHA256, SHA256)
	m.Set(NameSHAKE256, func() Provider { return SHAKE256(32) })
	m.Set(NameBlake2b256, Blake2b256)
	m.Set(NameBlake3, Blake3)
	return m
}

// Lookup returns the reference provider registered under name.
func Lookup(name string) (Provider, error) {
	ctor, ok := registry.Get(name)
	if !ok {
		return Provider{}, &UnavailableError{Name: name, Backend: "reference", Reason: "no such provider"}
	}
	return ctor(), nil
}

// Names lists the registered providers in registration order.
func Names() []string {
	names := make([]string, 0, registry.Len())
	for el := registry.Front(); el != nil; el = el.Next() {
		names = append(names, el.Key)
	}
	return names
}
