package feed

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"
)

func TestFetchItemsBareArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Accept"); got != "application/json" {
			t.Errorf("Accept = %q", got)
		}
		w.Write([]byte(`[{"headline":"A","link":"https://x.com/1"},{"headline":"B"}]`))
	}))
	defer srv.Close()

	c := NewClient(time.Second)
	p, err := c.FetchItems(context.Background(), srv.URL, nil)
	if err != nil {
		t.Fatalf("FetchItems: %v", err)
	}
	if len(p.Items) != 2 || p.Items[0].Headline != "A" {
		t.Errorf("items = %+v", p.Items)
	}
	if p.Diag != nil {
		t.Errorf("bare array should carry no diag, got %v", p.Diag)
	}
}

func TestFetchItemsObjectPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items":[{"headline":"A"}],"diag":{"total":7},"count":1}`))
	}))
	defer srv.Close()

	c := NewClient(time.Second)
	p, err := c.FetchItems(context.Background(), srv.URL, nil)
	if err != nil {
		t.Fatalf("FetchItems: %v", err)
	}
	if len(p.Items) != 1 {
		t.Fatalf("items = %+v", p.Items)
	}
	if p.Diag["total"] != float64(7) {
		t.Errorf("diag = %v", p.Diag)
	}
}

func TestFetchItemsUnexpectedShape(t *testing.T) {
	bodies := []string{
		`{"surprise":true}`,
		`{"items":"nope"}`,
		`"hello"`,
		`123`,
		`null`,
		`{"items":{"not":"an array"}}`,
	}
	for _, body := range bodies {
		b := body
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(b))
		}))

		c := NewClient(time.Second)
		p, err := c.FetchItems(context.Background(), srv.URL, nil)
		srv.Close()
		if err != nil {
			t.Errorf("body %s: unexpected shape must not fail: %v", body, err)
			continue
		}
		if len(p.Items) != 0 {
			t.Errorf("body %s: items = %+v, want empty", body, p.Items)
		}
	}
}

func TestFetchItemsStatusError(t *testing.T) {
	body := strings.Repeat("x", 500)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, body, http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(time.Second)
	_, err := c.FetchItems(context.Background(), srv.URL, nil)

	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("want *StatusError, got %v", err)
	}
	if se.Status != http.StatusBadGateway {
		t.Errorf("status = %d", se.Status)
	}
	if len(se.Body) > maxDiagnosticBody {
		t.Errorf("body not truncated: %d bytes", len(se.Body))
	}
	if se.Body == "" {
		t.Error("diagnostic body should not be empty")
	}
}

func TestFetchItemsParseError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	c := NewClient(time.Second)
	_, err := c.FetchItems(context.Background(), srv.URL, nil)

	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("want *ParseError, got %v", err)
	}
}

func TestFetchItemsTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	c := NewClient(50 * time.Millisecond)
	start := time.Now()
	_, err := c.FetchItems(context.Background(), srv.URL, nil)
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !IsTimeout(err) {
		t.Errorf("IsTimeout(%v) = false", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("request was not cancelled promptly (%v)", elapsed)
	}
}

func TestFetchItemsQueryParams(t *testing.T) {
	var got url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewClient(time.Second)
	params := url.Values{"genre": {"hebrew"}, "days": {"7"}}
	if _, err := c.FetchItems(context.Background(), srv.URL, params); err != nil {
		t.Fatalf("FetchItems: %v", err)
	}
	if got.Get("genre") != "hebrew" || got.Get("days") != "7" {
		t.Errorf("query = %v", got)
	}
}
