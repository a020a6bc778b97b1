package ghl

import (
	"encoding/json"
	"net/url"
	"strconv"
	"time"
)

// MaxPages is the hard ceiling on pages fetched for one collection.
// Reaching it terminates pagination as a loop fail-safe; callers report
// it as a truncation, not an error.
const MaxPages = 1000

// Cursor carries the opaque continuation state for cursor-based
// pagination: the last-seen record id and a derived start-after
// timestamp in epoch milliseconds (0 when unknown).
type Cursor struct {
	StartAfterID string
	StartAfter   int64
}

// PageInfo summarizes the page a cursor advances over.
type PageInfo struct {
	Count    int    // records in this page
	LastID   string // id of the page's final record
	LastDate any    // raw date field of the final record (string or number)
	Total    int    // reported total count, 0 when absent
}

// Advance derives the next cursor from the page just fetched and decides
// whether pagination continues. limit is the requested page size and
// fetched the cumulative record count including this page.
//
// Termination precedence: empty page, then short page, then a known
// total that has been reached.
func (c Cursor) Advance(page PageInfo, limit, fetched int) (Cursor, bool) {
	if page.Count == 0 {
		return c, false
	}

	next := Cursor{StartAfterID: page.LastID}
	if ms, ok := epochMillis(page.LastDate); ok {
		next.StartAfter = ms
	}

	if page.Count < limit {
		return next, false
	}
	if page.Total > 0 && fetched >= page.Total {
		return next, false
	}
	return next, true
}

// apply adds the cursor's continuation parameters to a query.
func (c Cursor) apply(q url.Values) {
	if c.StartAfterID != "" {
		q.Set("startAfterId", c.StartAfterID)
	}
	if c.StartAfter > 0 {
		q.Set("startAfter", strconv.FormatInt(c.StartAfter, 10))
	}
}

// epochMillis best-effort converts a raw record date into epoch
// milliseconds: ISO-8601 strings are parsed, numeric values pass
// through, anything else is dropped.
func epochMillis(v any) (int64, bool) {
	switch d := v.(type) {
	case nil:
		return 0, false
	case string:
		if d == "" {
			return 0, false
		}
		t, err := time.Parse(time.RFC3339, d)
		if err != nil {
			return 0, false
		}
		return t.UnixMilli(), true
	case float64:
		return int64(d), true
	case int64:
		return d, true
	case int:
		return int64(d), true
	case json.Number:
		n, err := d.Int64()
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}
