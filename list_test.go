package plist

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBasics(t *testing.T) {
	l0 := New[int]()
	_, ok := l0.Head()
	assert.False(t, ok)

	l1 := l0.Prepend(1).Prepend(2).Prepend(3)
	v, ok := l1.Head()
	require.True(t, ok)
	assert.Equal(t, 3, v)

	l2 := l1.Tail()
	v, _ = l2.Head()
	assert.Equal(t, 2, v)

	l3 := l2.Tail()
	v, _ = l3.Head()
	assert.Equal(t, 1, v)

	l4 := l3.Tail()
	_, ok = l4.Head()
	assert.False(t, ok)

	l5 := l4.Tail()
	_, ok = l5.Head()
	assert.False(t, ok, "tail of empty is empty")
	assert.True(t, l5.Tail().Tail().IsEmpty())
}

func TestEmptyList(t *testing.T) {
	l := New[string]()

	assert.True(t, l.IsEmpty())
	assert.Zero(t, l.Len())
	assert.Empty(t, l.Slice())
	assert.Equal(t, "()", l.String())

	_, ok := l.Iter().Next()
	assert.False(t, ok)
}

func TestNilListIsEmpty(t *testing.T) {
	var l *List[int]

	assert.True(t, l.IsEmpty())
	assert.Nil(t, l.Tail())
	assert.Nil(t, l.Clone())
	assert.Zero(t, l.Len())
	assert.Equal(t, Stats{}, l.Stats())
	assert.NotPanics(t, l.Release)

	l1 := l.Prepend(7)
	defer l1.Release()
	assert.Equal(t, []int{7}, l1.Slice())
}

func TestZeroValueListPrepends(t *testing.T) {
	var l List[int]
	l1 := l.Prepend(1)
	l2 := l.Prepend(2)

	assert.Same(t, l1.arena, l2.arena, "zero value list adopts one arena")
	assert.Equal(t, []int{1}, l1.Slice())
	assert.Equal(t, []int{2}, l2.Slice())
}

func TestPrependIsPersistent(t *testing.T) {
	l := From([]int{1, 2, 3})
	before := l.Slice()

	l2 := l.Prepend(0)

	assert.Equal(t, before, l.Slice())
	assert.Equal(t, []int{0, 1, 2, 3}, l2.Slice())
	assert.Equal(t, 3, l.Len())
	assert.Equal(t, 4, l2.Len())
}

func TestPrependTailInverse(t *testing.T) {
	l := From([]string{"a", "b", "c"})

	back := l.Prepend("z").Tail()

	assert.Equal(t, l.Slice(), back.Slice())
	assert.True(t, back.Same(l), "tail of a prepend is the original chain")
}

func TestTailSharesNodes(t *testing.T) {
	l := From([]int{1, 2, 3, 4})
	before := l.Stats().Live

	tail := l.Tail()

	assert.Equal(t, before, tail.Stats().Live, "tail must not allocate")
	assert.True(t, tail.Same(l.Tail()))
	assert.False(t, tail.Same(l))
}

func TestReleaseKeepsSharedNodes(t *testing.T) {
	base := From([]int{1, 2, 3})
	left := base.Prepend(10)
	right := base.Prepend(20)
	mid := left.Tail()

	base.Release()
	left.Release()

	assert.Equal(t, []int{1, 2, 3}, mid.Slice())
	assert.Equal(t, []int{20, 1, 2, 3}, right.Slice())
	assert.Equal(t, 4, right.Stats().Live, "left's own node is gone, the shared chain is not")

	right.Release()
	assert.Equal(t, []int{1, 2, 3}, mid.Slice())
	assert.Equal(t, 3, mid.Stats().Live)

	mid.Release()
	assert.Zero(t, mid.Stats().Live)
}

func TestReleaseLongChain(t *testing.T) {
	for _, n := range []int{100_000, 1_000_000} {
		l := New[int](WithCapacity(n))
		for i := 0; i < n; i++ {
			next := l.Prepend(i)
			l.Release()
			l = next
		}
		require.Equal(t, n, l.Stats().Live)

		l.Release()
		assert.Zero(t, l.Stats().Live)
		assert.Equal(t, n, l.Stats().Reclaimed)
	}
}

func TestReleaseIsIdempotent(t *testing.T) {
	l := From([]int{1, 2})
	other := l.Clone()

	l.Release()
	l.Release()

	assert.True(t, l.Released())
	assert.Equal(t, []int{1, 2}, other.Slice(), "second release must not drop another count")
}

func TestUseAfterRelease(t *testing.T) {
	l := From([]int{1})
	l.Release()

	assert.PanicsWithValue(t, ErrReleased, func() { l.Head() })
	assert.PanicsWithValue(t, ErrReleased, func() { l.Tail() })
	assert.PanicsWithValue(t, ErrReleased, func() { l.Prepend(2) })
	assert.PanicsWithValue(t, ErrReleased, func() { l.Clone() })
	assert.PanicsWithValue(t, ErrReleased, func() { l.Iter() })
}

func TestClone(t *testing.T) {
	l := From([]int{1, 2, 3})
	c := l.Clone()

	assert.True(t, c.Same(l))
	l.Release()
	assert.Equal(t, []int{1, 2, 3}, c.Slice())

	c.Release()
	assert.Zero(t, c.Stats().Live)
}

func TestEmptySharesArena(t *testing.T) {
	l := From([]int{1})
	e := l.Empty()

	assert.True(t, e.IsEmpty())
	assert.Same(t, l.arena, e.arena)
	assert.True(t, e.Same(New[int]()), "empty lists are all the same list")
}

func TestTryPrependExhausted(t *testing.T) {
	l := New[int](WithMaxNodes(2))
	l1, err := l.TryPrepend(1)
	require.NoError(t, err)
	l2, err := l1.TryPrepend(2)
	require.NoError(t, err)

	_, err = l2.TryPrepend(3)
	require.ErrorIs(t, err, ErrExhausted)
	assert.PanicsWithValue(t, ErrExhausted, func() { l2.Prepend(3) })

	l1.Release()
	l2.Release()
	l3, err := l.TryPrepend(3)
	require.NoError(t, err)
	assert.Equal(t, []int{3}, l3.Slice())
}

func TestWithMaxNodesNegativePanics(t *testing.T) {
	assert.Panics(t, func() { New[int](WithMaxNodes(-1)) })
}

func TestOnReclaimAndLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)
	logger.SetLevel(logrus.DebugLevel)

	var freed []int
	l := From([]int{1, 2, 3},
		WithLogger(logger),
		WithOnReclaim(func(n int) { freed = append(freed, n) }),
	)
	shared := l.Tail()

	l.Release()
	shared.Release()

	assert.Equal(t, []int{1, 2}, freed)
	assert.Contains(t, buf.String(), "component=plist")
}

func TestString(t *testing.T) {
	assert.Equal(t, "(3 2 1)", New[int]().Prepend(1).Prepend(2).Prepend(3).String())
	assert.Equal(t, "(a b)", From([]string{"a", "b"}).String())
}

func TestWithLoggerNil(t *testing.T) {
	var logger *logrus.Logger
	var entry *logrus.Entry

	for _, opt := range []Option{WithLogger(nil), WithLogger(logger), WithLogger(entry)} {
		assert.NotPanics(t, func() {
			l := New[int](opt).Prepend(1)
			l.Release()
		})
	}
}
