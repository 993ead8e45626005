package drata

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestFetchRiskPage_RequestShape(t *testing.T) {
	var gotPath, gotAuth string
	var gotQuery map[string][]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[{"id":1}],"pagination":{"cursor":"next"}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)
	page, err := client.FetchRiskPage(context.Background(), "reg-1", "tok-abc", "cur-0", 25)
	if err != nil {
		t.Fatalf("FetchRiskPage() error = %v", err)
	}

	if gotPath != "/risk-registers/reg-1/risks" {
		t.Errorf("path = %q, want %q", gotPath, "/risk-registers/reg-1/risks")
	}
	if gotAuth != "Bearer tok-abc" {
		t.Errorf("Authorization = %q, want bearer token", gotAuth)
	}
	if got := gotQuery["expand[]"]; len(got) != 1 || got[0] != "customFields" {
		t.Errorf("expand[] = %v, want [customFields]", got)
	}
	if got := gotQuery["cursor"]; len(got) != 1 || got[0] != "cur-0" {
		t.Errorf("cursor = %v, want [cur-0]", got)
	}
	if got := gotQuery["size"]; len(got) != 1 || got[0] != "25" {
		t.Errorf("size = %v, want [25]", got)
	}

	if len(page.Data) != 1 {
		t.Errorf("len(Data) = %d, want 1", len(page.Data))
	}
	if page.Pagination.Cursor != "next" {
		t.Errorf("Cursor = %q, want %q", page.Pagination.Cursor, "next")
	}
}

func TestFetchRiskPage_OmitsEmptyParams(t *testing.T) {
	var gotQuery map[string][]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"data":[],"pagination":{}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)
	page, err := client.FetchRiskPage(context.Background(), "reg-1", "tok", "", 0)
	if err != nil {
		t.Fatalf("FetchRiskPage() error = %v", err)
	}

	if _, ok := gotQuery["cursor"]; ok {
		t.Error("cursor param sent for first page, want omitted")
	}
	if _, ok := gotQuery["size"]; ok {
		t.Error("size param sent for size=0, want omitted")
	}
	if page.Pagination.Cursor != "" {
		t.Errorf("Cursor = %q, want empty on exhaustion", page.Pagination.Cursor)
	}
}

func TestFetchRiskPage_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"message":"invalid token"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)
	_, err := client.FetchRiskPage(context.Background(), "reg-1", "bad", "", 0)
	if err == nil {
		t.Fatal("FetchRiskPage() expected error for 403 response")
	}

	var ue *UpstreamError
	if !errors.As(err, &ue) {
		t.Fatalf("error = %v, want *UpstreamError", err)
	}
	if ue.Status != http.StatusForbidden {
		t.Errorf("Status = %d, want %d", ue.Status, http.StatusForbidden)
	}
	if ue.Body != `{"message":"invalid token"}` {
		t.Errorf("Body = %q, want raw upstream body preserved", ue.Body)
	}
}

func TestFetchRiskPage_EmptyRegisterID(t *testing.T) {
	client := NewClient("https://example.com", time.Second)
	if _, err := client.FetchRiskPage(context.Background(), "", "tok", "", 0); err == nil {
		t.Fatal("FetchRiskPage() expected error for empty register id")
	}
}
