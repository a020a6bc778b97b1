package ghl

import (
	"net/url"
	"testing"
)

func TestCursorAdvance(t *testing.T) {
	tests := []struct {
		name     string
		page     PageInfo
		limit    int
		fetched  int
		wantCont bool
		wantID   string
		wantMS   int64
	}{
		{
			name:     "Empty Page Stops",
			page:     PageInfo{Count: 0},
			limit:    100,
			fetched:  200,
			wantCont: false,
		},
		{
			name:     "Short Page Stops",
			page:     PageInfo{Count: 40, LastID: "opp-40", LastDate: "2024-03-01T10:00:00Z"},
			limit:    100,
			fetched:  140,
			wantCont: false,
			wantID:   "opp-40",
			wantMS:   1709287200000,
		},
		{
			name:     "Known Total Reached Stops",
			page:     PageInfo{Count: 100, LastID: "opp-200", Total: 200},
			limit:    100,
			fetched:  200,
			wantCont: false,
			wantID:   "opp-200",
		},
		{
			name:     "Full Page Below Total Continues",
			page:     PageInfo{Count: 100, LastID: "opp-100", Total: 250},
			limit:    100,
			fetched:  100,
			wantCont: true,
			wantID:   "opp-100",
		},
		{
			name:     "Full Page Without Total Continues",
			page:     PageInfo{Count: 100, LastID: "opp-100"},
			limit:    100,
			fetched:  100,
			wantCont: true,
			wantID:   "opp-100",
		},
		{
			name:     "Empty Page Wins Over Reported Total",
			page:     PageInfo{Count: 0, Total: 500},
			limit:    100,
			fetched:  0,
			wantCont: false,
		},
		{
			name:     "Numeric Date Passes Through",
			page:     PageInfo{Count: 100, LastID: "opp-1", LastDate: float64(1700000000000)},
			limit:    100,
			fetched:  100,
			wantCont: true,
			wantID:   "opp-1",
			wantMS:   1700000000000,
		},
		{
			name:     "Unparseable Date Dropped",
			page:     PageInfo{Count: 100, LastID: "opp-1", LastDate: "not-a-date"},
			limit:    100,
			fetched:  100,
			wantCont: true,
			wantID:   "opp-1",
			wantMS:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cur Cursor
			next, cont := cur.Advance(tt.page, tt.limit, tt.fetched)
			if cont != tt.wantCont {
				t.Errorf("Advance() cont = %v, want %v", cont, tt.wantCont)
			}
			if tt.page.Count == 0 {
				return
			}
			if next.StartAfterID != tt.wantID {
				t.Errorf("Advance() StartAfterID = %q, want %q", next.StartAfterID, tt.wantID)
			}
			if next.StartAfter != tt.wantMS {
				t.Errorf("Advance() StartAfter = %d, want %d", next.StartAfter, tt.wantMS)
			}
		})
	}
}

func TestCursorTwoPageWalk(t *testing.T) {
	// 150 records at limit 100: a full page then a short page.
	var cur Cursor

	next, cont := cur.Advance(PageInfo{Count: 100, LastID: "opp-100", LastDate: "2024-01-15T12:00:00Z", Total: 150}, 100, 100)
	if !cont {
		t.Fatal("expected pagination to continue after full first page")
	}
	if next.StartAfterID != "opp-100" || next.StartAfter == 0 {
		t.Fatalf("unexpected cursor after first page: %+v", next)
	}

	q := url.Values{}
	next.apply(q)
	if q.Get("startAfterId") != "opp-100" || q.Get("startAfter") == "" {
		t.Fatalf("cursor not applied to query: %v", q)
	}

	_, cont = next.Advance(PageInfo{Count: 50, LastID: "opp-150", Total: 150}, 100, 150)
	if cont {
		t.Fatal("expected pagination to stop after short second page")
	}
}

func TestEpochMillis(t *testing.T) {
	tests := []struct {
		name   string
		value  any
		want   int64
		wantOK bool
	}{
		{name: "Nil", value: nil, wantOK: false},
		{name: "Empty String", value: "", wantOK: false},
		{name: "RFC3339", value: "2023-11-14T22:13:20Z", want: 1700000000000, wantOK: true},
		{name: "RFC3339 With Offset", value: "2023-11-14T15:13:20-07:00", want: 1700000000000, wantOK: true},
		{name: "Float", value: float64(1700000000000), want: 1700000000000, wantOK: true},
		{name: "Int", value: 1700000000000, want: 1700000000000, wantOK: true},
		{name: "Garbage", value: "yesterday", wantOK: false},
		{name: "Struct", value: struct{}{}, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := epochMillis(tt.value)
			if ok != tt.wantOK {
				t.Errorf("epochMillis(%v) ok = %v, want %v", tt.value, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("epochMillis(%v) = %d, want %d", tt.value, got, tt.want)
			}
		})
	}
}
