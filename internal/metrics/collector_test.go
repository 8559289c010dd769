package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_ObserveBackend(t *testing.T) {
	c := NewCollector("filesfeed")

	c.ObserveBackend("list_recent", time.Now(), nil)
	c.ObserveBackend("list_recent", time.Now(), errors.New("boom"))
	c.ObserveBackend("list_recent", time.Now(), nil)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.BackendOps.WithLabelValues("list_recent", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.BackendOps.WithLabelValues("list_recent", "error")))
}

func TestCollector_BusinessCounters(t *testing.T) {
	c := NewCollector("filesfeed")

	c.BoardMutation("note")
	c.BoardMutation("note")
	c.BookmarkToggled(true)
	c.BookmarkToggled(false)
	c.SetBreakerState("records", 2)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.BoardMutations.WithLabelValues("note")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Bookmarks.WithLabelValues("added")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Bookmarks.WithLabelValues("removed")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.BreakerState.WithLabelValues("records")))
}

func TestCollector_NilSafe(t *testing.T) {
	var c *Collector
	assert.NotPanics(t, func() {
		c.ObserveBackend("count", time.Now(), nil)
		c.BoardMutation("clear")
		c.BookmarkToggled(true)
		c.SetBreakerState("records", 0)
	})
}

func TestCollector_Handler(t *testing.T) {
	c := NewCollector("filesfeed")
	c.BoardMutation("connect")

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), `filesfeed_board_mutations_total{kind="connect"} 1`))
}
