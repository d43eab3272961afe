package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

func TestPaginateLengths(t *testing.T) {
	for _, size := range []int{1, 3, 10} {
		for _, n := range []int{0, 1, 9, 10, 11, 25} {
			items := seq(n)
			for page := 1; page <= n/size+2; page++ {
				want := min(size, max(0, n-(page-1)*size))
				assert.Len(t, Paginate(page, items, size), want, "size=%d n=%d page=%d", size, n, page)
			}
		}
	}
}

func TestPaginateConcatenationRebuildsInput(t *testing.T) {
	items := seq(23)
	var rebuilt []int
	for page := 1; ; page++ {
		chunk := Paginate(page, items, 10)
		if len(chunk) == 0 {
			break
		}
		rebuilt = append(rebuilt, chunk...)
	}
	assert.Equal(t, items, rebuilt)
}

func TestPaginatePastEndIsEmptyNotNil(t *testing.T) {
	got := Paginate(4, seq(15), 10)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestPaginateDoesNotAliasInput(t *testing.T) {
	items := seq(5)
	got := Paginate(1, items, 2)
	got[0] = 99
	assert.Equal(t, 1, items[0])
}

func TestPaginateClampsArguments(t *testing.T) {
	items := seq(12)
	assert.Equal(t, Paginate(1, items, 10), Paginate(0, items, 10))
	assert.Equal(t, Paginate(1, items, DefaultPageSize), Paginate(1, items, 0))
}

func TestPageFromQuery(t *testing.T) {
	assert.Equal(t, 1, PageFromQuery(""))
	assert.Equal(t, 1, PageFromQuery("abc"))
	assert.Equal(t, 1, PageFromQuery("-2"))
	assert.Equal(t, 3, PageFromQuery("3"))
}
