package controller

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abiiranathan/docsearch/models"
)

func thirteenResults() *models.SearchResponse {
	snippets := make([]string, 13)
	for i := range snippets {
		snippets[i] = fmt.Sprintf("s%d", i+1)
	}
	return &models.SearchResponse{Results: []models.SearchResultGroup{{Filename: "x.pdf", Snippets: snippets}}}
}

func TestViewPaging(t *testing.T) {
	c := newController(&fakeBackend{searchResp: thirteenResults()})

	var v View
	assert.False(t, v.HasResults())
	assert.True(t, v.GoTo(3).Number == 0)

	v.ApplySearch(c.Search(context.Background(), "s", ""))
	require.True(t, v.HasResults())
	assert.Equal(t, 1, v.Page().Number)
	assert.Equal(t, 3, v.Page().TotalPages)

	assert.Equal(t, 3, v.GoTo(5).Number)
	assert.Equal(t, "s13", v.Page().Items[0].Snippet.String())
	assert.Equal(t, 1, v.GoTo(0).Number)
}

func TestViewSkippedSearchKeepsPriorResults(t *testing.T) {
	b := &fakeBackend{searchResp: thirteenResults()}
	c := newController(b)

	var v View
	v.ApplySearch(c.Search(context.Background(), "s", "all"))
	v.GoTo(2)
	before := v

	v.ApplySearch(c.Search(context.Background(), "   ", "all"))
	assert.Len(t, b.searches, 1)
	assert.Equal(t, before, v)
	assert.Equal(t, 2, v.Page().Number)
}

func TestViewFailureClearsResults(t *testing.T) {
	b := &fakeBackend{searchResp: thirteenResults()}
	c := newController(b)

	var v View
	v.ApplySearch(c.Search(context.Background(), "s", ""))
	require.True(t, v.HasResults())

	b.err = fmt.Errorf("boom")
	v.ApplySearch(c.Search(context.Background(), "s", ""))
	assert.False(t, v.HasResults())
	assert.Equal(t, StateFailed, v.Search.State)
	assert.Empty(t, v.Page().Items)
}

func TestViewEmptyResults(t *testing.T) {
	c := newController(&fakeBackend{searchResp: &models.SearchResponse{}})

	var v View
	v.ApplySearch(c.Search(context.Background(), "nothing", ""))
	assert.True(t, v.HasResults())
	assert.True(t, v.Page().Empty)
	assert.Equal(t, StateEmpty, v.Search.State)
}
