// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 Hall of Heros Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package counter_test

import (
	"sync"
	"testing"

	"github.com/hallofheros/herosd/counter"
)

func TestCounter(t *testing.T) {
	c := counter.Counter(0)
	if !c.IsZero() {
		t.Fatal("new counter is not zero")
	}

	wg := sync.WaitGroup{}
	for i := 0; i < 10; i += 1 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j += 1 {
				c.Increment()
			}
			for j := 0; j < 40; j += 1 {
				c.Decrement()
			}
		}()
	}
	wg.Wait()

	if 600 != c.Uint64() {
		t.Errorf("counter: %d  expected: 600", c.Uint64())
	}
}
