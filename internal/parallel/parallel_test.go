package parallel

import (
	"sync/atomic"
	"testing"
)

func TestForCoversRange(t *testing.T) {
	for _, workers := range []int{0, 1, 4, 100} {
		var hits [37]int32
		For(0, len(hits), workers, func(i int) {
			atomic.AddInt32(&hits[i], 1)
		})
		for i, h := range hits {
			if h != 1 {
				t.Errorf("workers=%d: index %d visited %d times", workers, i, h)
			}
		}
	}
}

func TestBlocksPartition(t *testing.T) {
	var covered [100]int32
	Blocks(10, 90, 7, func(lo, hi int) {
		if lo >= hi {
			t.Errorf("empty block [%d, %d)", lo, hi)
		}
		for i := lo; i < hi; i++ {
			atomic.AddInt32(&covered[i], 1)
		}
	})
	for i := range covered {
		want := int32(0)
		if i >= 10 && i < 90 {
			want = 1
		}
		if covered[i] != want {
			t.Errorf("index %d covered %d times, want %d", i, covered[i], want)
		}
	}
}

func TestEmptyRange(t *testing.T) {
	called := false
	Blocks(5, 5, 4, func(lo, hi int) { called = true })
	if called {
		t.Error("Blocks ran on an empty range")
	}
}
