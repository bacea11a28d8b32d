// Copyright 2025 go-locality Authors. SPDX-License-Identifier: Apache-2.0

package a2methods

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/ajroetker/go-locality/locality"
	"github.com/ajroetker/go-locality/locality/contrib/workerpool"
	"github.com/ajroetker/go-locality/locality/uarray2b"
)

func TestPlainMapper(t *testing.T) {
	m := Plain[int]()
	for _, o := range []locality.Order{locality.RowMajor, locality.ColMajor} {
		if _, err := m.Mapper(o); err != nil {
			t.Errorf("Plain.Mapper(%v) error: %v", o, err)
		}
	}
	if _, err := m.Mapper(locality.BlockMajor); !errors.Is(err, ErrUnsupportedOrder) {
		t.Errorf("Plain.Mapper(BlockMajor) err = %v, want ErrUnsupportedOrder", err)
	}
}

func TestBlockedMapper(t *testing.T) {
	m := Blocked[int](4)
	if _, err := m.Mapper(locality.BlockMajor); err != nil {
		t.Errorf("Blocked.Mapper(BlockMajor) error: %v", err)
	}
	_, err := m.Mapper(locality.RowMajor)
	if !errors.Is(err, ErrUnsupportedOrder) {
		t.Fatalf("Blocked.Mapper(RowMajor) err = %v, want ErrUnsupportedOrder", err)
	}
	if want := "a2methods: unsupported mapping order: blocked does not support row-major mapping"; err.Error() != want {
		t.Errorf("error text = %q, want %q", err.Error(), want)
	}
}

func TestSuitesVisitSameElements(t *testing.T) {
	suites := []struct {
		m     *Methods[int]
		order locality.Order
	}{
		{Plain[int](), locality.RowMajor},
		{Plain[int](), locality.ColMajor},
		{Blocked[int](3), locality.BlockMajor},
		{Blocked64K[int](), locality.BlockMajor},
		{BlockedWithBudget[int](64), locality.BlockMajor},
	}
	for _, s := range suites {
		a, err := s.m.New(7, 5)
		if err != nil {
			t.Fatalf("%s New error: %v", s.m.Name, err)
		}
		for row := range a.Height() {
			for col := range a.Width() {
				*a.MustAt(col, row) = row*10 + col
			}
		}
		fn, err := s.m.Mapper(s.order)
		if err != nil {
			t.Fatalf("%s Mapper(%v) error: %v", s.m.Name, s.order, err)
		}
		sum, calls := 0, 0
		if err := fn(a, func(col, row int, v *int) {
			if *v != row*10+col {
				t.Errorf("%s %v: (%d, %d) = %d", s.m.Name, s.order, col, row, *v)
			}
			sum += *v
			calls++
		}); err != nil {
			t.Fatalf("%s map error: %v", s.m.Name, err)
		}
		if calls != 35 {
			t.Errorf("%s %v: %d calls, want 35", s.m.Name, s.order, calls)
		}
	}
}

func TestWrongArray(t *testing.T) {
	plain := Plain[int]()
	blocked := Blocked[int](2)

	pa, _ := plain.New(2, 2)
	ba, _ := blocked.New(2, 2)

	if err := blocked.Default(pa, func(int, int, *int) {}); !errors.Is(err, ErrWrongArray) {
		t.Errorf("blocked map over plain array: err = %v, want ErrWrongArray", err)
	}
	if err := plain.Default(ba, func(int, int, *int) {}); !errors.Is(err, ErrWrongArray) {
		t.Errorf("plain map over blocked array: err = %v, want ErrWrongArray", err)
	}
}

func TestForOrder(t *testing.T) {
	m, fn, err := ForOrder[int](locality.ColMajor, 0)
	if err != nil || fn == nil || m.Name != "plain" {
		t.Errorf("ForOrder(ColMajor) = %v, %v; want plain suite", m, err)
	}

	m, _, err = ForOrder[int](locality.BlockMajor, 8)
	if err != nil || m.Name != "blocked" {
		t.Fatalf("ForOrder(BlockMajor, 8) = %v, %v; want blocked suite", m, err)
	}
	a, _ := m.New(20, 20)
	if a.BlockSize() != 8 {
		t.Errorf("BlockSize() = %d, want 8", a.BlockSize())
	}

	m, _, _ = ForOrder[uint32](locality.BlockMajor, 0)
	b, _ := m.New(20, 20)
	if b.BlockSize() != 128 {
		t.Errorf("64K suite BlockSize() = %d, want 128", b.BlockSize())
	}

	if _, _, err := ForOrder[int](locality.Order(9), 0); !errors.Is(err, ErrUnsupportedOrder) {
		t.Errorf("ForOrder(9) err = %v, want ErrUnsupportedOrder", err)
	}
}

func TestNewInvalid(t *testing.T) {
	for _, m := range []*Methods[int]{Plain[int](), Blocked[int](2), Blocked64K[int]()} {
		a, err := m.New(-1, 2)
		if err == nil {
			t.Errorf("%s New(-1, 2) should fail", m.Name)
		}
		if a != nil {
			t.Errorf("%s New(-1, 2) returned non-nil array", m.Name)
		}
	}
}

func TestParallelBlockMajor(t *testing.T) {
	pool := workerpool.New(4)
	defer pool.Close()

	const w, h = 23, 17
	m := Blocked[int32](5)
	a, err := m.New(w, h)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	var stats uarray2b.Stats
	mapFn := ParallelBlockMajor[int32](pool, &stats)

	var visits atomic.Int64
	if err := mapFn(a, func(col, row int, elem *int32) {
		*elem = int32(row*w + col)
		visits.Add(1)
	}); err != nil {
		t.Fatalf("parallel map error: %v", err)
	}
	if got := visits.Load(); got != w*h {
		t.Errorf("visited %d elements, want %d", got, w*h)
	}
	if stats.Elements != w*h || stats.Blocks != 5*4 {
		t.Errorf("stats = %d elements in %d blocks, want %d in %d", stats.Elements, stats.Blocks, w*h, 20)
	}
	for row := range h {
		for col := range w {
			if got := *a.MustAt(col, row); got != int32(row*w+col) {
				t.Fatalf("(%d, %d) = %d, want %d", col, row, got, row*w+col)
			}
		}
	}

	plain, _ := Plain[int32]().New(2, 2)
	if err := mapFn(plain, func(int, int, *int32) {}); !errors.Is(err, ErrWrongArray) {
		t.Errorf("parallel map of plain array err = %v, want ErrWrongArray", err)
	}
}
