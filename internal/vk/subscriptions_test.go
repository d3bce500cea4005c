package vk

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeVK serves users.getSubscriptions pages from a fixed group list
// and answers groups.getById by echoing the requested ids.
type fakeVK struct {
	groups       []Group
	offsets      []int
	chunkSizes   []int
	badChunk     int // 1-based index of a getById call answered with a non-list body, 0 = none
	getByIdCalls int
}

func (f *fakeVK) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/users.getSubscriptions":
			offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
			count, _ := strconv.Atoi(r.URL.Query().Get("count"))
			f.offsets = append(f.offsets, offset)

			end := offset + count
			if end > len(f.groups) {
				end = len(f.groups)
			}
			items := f.groups[offset:end]
			payload, _ := json.Marshal(map[string]interface{}{
				"count": len(f.groups),
				"items": items,
			})
			fmt.Fprintf(w, `{"response": %s}`, payload)

		case "/groups.getById":
			f.getByIdCalls++
			ids := strings.Split(r.URL.Query().Get("group_ids"), ",")
			f.chunkSizes = append(f.chunkSizes, len(ids))

			if f.getByIdCalls == f.badChunk {
				fmt.Fprint(w, `{"response": {"unexpected": true}}`)
				return
			}

			resolved := make([]Group, 0, len(ids))
			for _, id := range ids {
				n, _ := strconv.ParseInt(id, 10, 64)
				resolved = append(resolved, Group{ID: n, Name: fmt.Sprintf("group %d", n), MembersCount: int(n) * 10})
			}
			payload, _ := json.Marshal(resolved)
			fmt.Fprintf(w, `{"response": %s}`, payload)

		default:
			http.NotFound(w, r)
		}
	}
}

func makeGroups(n int) []Group {
	groups := make([]Group, n)
	for i := range groups {
		groups[i] = Group{ID: int64(i + 1)}
	}
	return groups
}

func newTestCollector(t *testing.T, fake *fakeVK) *SubscriptionCollector {
	t.Helper()
	srv := httptest.NewServer(fake.handler())
	t.Cleanup(srv.Close)
	client := NewClient("t", "s", WithBaseURL(srv.URL), WithRetry(1, time.Millisecond))
	return NewSubscriptionCollector(client)
}

func TestSubscriptionCollector_PaginationAndTruncation(t *testing.T) {
	// 650 subscriptions with closed groups spread so the pages at
	// offsets 0, 200 and 400 yield 150, 100 and 150 open ids. The
	// limit of 300 is only crossed on the third page; the 400
	// accumulated ids are cut back to exactly 300.
	var groups []Group
	id := int64(0)
	for _, open := range []int{150, 100, 150} {
		for i := 0; i < 200; i++ {
			id++
			g := Group{ID: id}
			if i >= open {
				g.IsClosed = 1
			}
			groups = append(groups, g)
		}
	}
	for i := 0; i < 50; i++ {
		id++
		groups = append(groups, Group{ID: id})
	}
	fake := &fakeVK{groups: groups}
	sc := newTestCollector(t, fake)

	groups, total, err := sc.Collect(context.Background(), 1, 300)
	require.NoError(t, err)

	assert.Equal(t, []int{0, 200, 400}, fake.offsets)
	assert.Equal(t, 650, total)
	assert.Len(t, groups, 300)
}

func TestSubscriptionCollector_BatchChunking(t *testing.T) {
	fake := &fakeVK{groups: makeGroups(1200)}
	sc := newTestCollector(t, fake)

	groups, total, err := sc.Collect(context.Background(), 1, 1200)
	require.NoError(t, err)

	assert.Equal(t, []int{500, 500, 200}, fake.chunkSizes)
	assert.Equal(t, 1200, total)
	assert.Len(t, groups, 1200)
}

func TestSubscriptionCollector_StopsAtEndOfData(t *testing.T) {
	fake := &fakeVK{groups: makeGroups(120)}
	sc := newTestCollector(t, fake)

	groups, total, err := sc.Collect(context.Background(), 1, 300)
	require.NoError(t, err)

	assert.Equal(t, []int{0}, fake.offsets)
	assert.Equal(t, 120, total)
	assert.Len(t, groups, 120)
}

func TestSubscriptionCollector_FiltersClosedGroups(t *testing.T) {
	fake := &fakeVK{groups: []Group{
		{ID: 1},
		{ID: 2, IsClosed: 1},
		{ID: 3, IsClosed: 2},
		{ID: 4},
	}}
	sc := newTestCollector(t, fake)

	groups, _, err := sc.Collect(context.Background(), 1, 300)
	require.NoError(t, err)

	require.Len(t, groups, 2)
	assert.Equal(t, int64(1), groups[0].ID)
	assert.Equal(t, int64(4), groups[1].ID)
}

func TestSubscriptionCollector_SkipsMalformedChunk(t *testing.T) {
	fake := &fakeVK{groups: makeGroups(600), badChunk: 2}
	sc := newTestCollector(t, fake)

	groups, total, err := sc.Collect(context.Background(), 1, 600)
	require.NoError(t, err)

	// Second chunk decodes as an object instead of a list and is
	// skipped; the first chunk's results survive.
	assert.Equal(t, []int{500, 100}, fake.chunkSizes)
	assert.Equal(t, 600, total)
	assert.Len(t, groups, 500)
}

func TestSubscriptionCollector_OrderFollowsAccumulation(t *testing.T) {
	fake := &fakeVK{groups: makeGroups(10)}
	sc := newTestCollector(t, fake)

	groups, _, err := sc.Collect(context.Background(), 1, 10)
	require.NoError(t, err)

	require.Len(t, groups, 10)
	for i, g := range groups {
		assert.Equal(t, int64(i+1), g.ID)
	}
}
