package e2e

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hasmiknersesyan/DummyJSON/internal/client"
	"github.com/hasmiknersesyan/DummyJSON/internal/expect"
	"github.com/hasmiknersesyan/DummyJSON/internal/model"
)

func TestPagination_EchoesWindowAndRespectsPageSize(t *testing.T) {
	t.Parallel()
	c := newClient(t)

	for _, w := range corpus(t).Pagination {
		t.Run(fmt.Sprintf("limit=%d_skip=%d", w.Limit, w.Skip), func(t *testing.T) {
			resp, err := c.ListProducts(context.Background(), w.Limit, w.Skip)
			require.NoError(t, err)
			require.True(t, resp.OK, "status %d", resp.StatusCode)

			list, err := client.Decode[model.ProductList](resp)
			require.NoError(t, err)
			expect.Pagination(t, list, w.Skip, w.Limit)
		})
	}
}

func TestPagination_TotalStableAcrossWindows(t *testing.T) {
	t.Parallel()
	c := newClient(t)

	first, err := c.ListProducts(context.Background(), 5, 0)
	require.NoError(t, err)
	second, err := c.ListProducts(context.Background(), 10, 3)
	require.NoError(t, err)

	a, err := client.Decode[model.ProductList](first)
	require.NoError(t, err)
	b, err := client.Decode[model.ProductList](second)
	require.NoError(t, err)

	assert.Equal(t, a.Total, b.Total, "total is a property of the collection, not the window")
}

func TestPagination_AdjacentWindowsDoNotOverlap(t *testing.T) {
	t.Parallel()
	c := newClient(t)

	page := func(limit, skip int) model.ProductList {
		resp, err := c.ListProducts(context.Background(), limit, skip)
		require.NoError(t, err)
		require.True(t, resp.OK)
		l, err := client.Decode[model.ProductList](resp)
		require.NoError(t, err)
		return l
	}

	first := page(5, 0)
	second := page(5, 5)

	seen := map[int]bool{}
	for _, p := range first.Products {
		seen[p.ID] = true
	}
	for _, p := range second.Products {
		assert.False(t, seen[p.ID], "product %d appears in both windows", p.ID)
	}
}

func TestPagination_SkipBeyondCollection(t *testing.T) {
	t.Parallel()
	c := newClient(t)

	head, err := c.ListProducts(context.Background(), 1, 0)
	require.NoError(t, err)
	l, err := client.Decode[model.ProductList](head)
	require.NoError(t, err)

	past := l.Total + 100
	resp, err := c.ListProducts(context.Background(), 5, past)
	require.NoError(t, err)
	require.True(t, resp.OK)

	empty, err := client.Decode[model.ProductList](resp)
	require.NoError(t, err)
	assert.Empty(t, empty.Products)
	assert.Equal(t, l.Total, empty.Total)
	expect.Pagination(t, empty, past, 5)
}
