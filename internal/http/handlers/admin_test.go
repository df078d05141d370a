package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pokedex-service/internal/poller"
	"pokedex-service/internal/testutil"
)

func adminRequest(auth string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/admin/index/refresh", nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	return req
}

func TestRefreshIndexRequiresToken(t *testing.T) {
	called := false
	h := NewAdminHandler(func(context.Context) poller.Status {
		called = true
		return poller.Status{}
	}, "s3cret", testutil.DiscardLogger())

	for _, auth := range []string{"", "Bearer wrong", "s3cret"} {
		rr := serve(h.RefreshIndex, adminRequest(auth))
		testutil.AssertStatus(t, rr, http.StatusUnauthorized)
	}
	if called {
		t.Fatalf("refresh must not run without a valid token")
	}
}

func TestRefreshIndexDisabledWithoutConfiguredToken(t *testing.T) {
	h := NewAdminHandler(func(context.Context) poller.Status { return poller.Status{} }, "", nil)
	rr := serve(h.RefreshIndex, adminRequest("Bearer "))
	testutil.AssertStatus(t, rr, http.StatusUnauthorized)
}

func TestRefreshIndexReportsStatus(t *testing.T) {
	h := NewAdminHandler(func(context.Context) poller.Status {
		return poller.Status{LastSuccess: time.Now(), IndexSize: 1025}
	}, "s3cret", nil)
	rr := serve(h.RefreshIndex, adminRequest("Bearer s3cret"))
	testutil.AssertStatus(t, rr, http.StatusOK)
	var status poller.Status
	testutil.DecodeJSON(t, rr, &status)
	if status.IndexSize != 1025 {
		t.Fatalf("unexpected status %+v", status)
	}
}

func TestRefreshIndexFailureIsBadGateway(t *testing.T) {
	h := NewAdminHandler(func(context.Context) poller.Status {
		return poller.Status{ConsecutiveFailures: 1, LastError: "upstream 503"}
	}, "s3cret", nil)
	rr := serve(h.RefreshIndex, adminRequest("Bearer s3cret"))
	testutil.AssertStatus(t, rr, http.StatusBadGateway)
	var body errorBody
	testutil.DecodeJSON(t, rr, &body)
	if body.Error != "upstream 503" || body.Kind != "network" {
		t.Fatalf("unexpected body %+v", body)
	}
}

func TestRefreshIndexUnconfigured(t *testing.T) {
	h := NewAdminHandler(nil, "s3cret", nil)
	rr := serve(h.RefreshIndex, adminRequest("Bearer s3cret"))
	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
}
