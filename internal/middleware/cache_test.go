package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/license-flow/internal/config"
)

func TestPayloadRoundTrip(t *testing.T) {
	hdr := http.Header{}
	hdr.Set("Content-Type", "application/json")
	body := []byte(`{"applications":[]}`)

	bs, err := encodePayload(http.StatusOK, hdr, body)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	status, gotHdr, gotBody, ok := decodePayload(bs)
	if !ok {
		t.Fatal("decode reported failure")
	}
	if status != http.StatusOK {
		t.Errorf("status = %d, want 200", status)
	}
	if gotHdr.Get("Content-Type") != "application/json" {
		t.Errorf("Content-Type = %q", gotHdr.Get("Content-Type"))
	}
	if string(gotBody) != string(body) {
		t.Errorf("body = %q, want %q", gotBody, body)
	}
}

func TestDecodePayloadRejectsTruncated(t *testing.T) {
	for _, bs := range [][]byte{nil, {1, 2, 3}, make([]byte, 7)} {
		if _, _, _, ok := decodePayload(bs); ok {
			t.Errorf("decodePayload(%v) accepted truncated input", bs)
		}
	}
	// Header length pointing past the buffer must also fail.
	bs, _ := encodePayload(200, http.Header{}, nil)
	bs[7] = 0xFF
	if _, _, _, ok := decodePayload(bs); ok {
		t.Error("decodePayload accepted corrupt header length")
	}
}

func TestCacheKeyDistinctPerPathParam(t *testing.T) {
	cfg := config.CacheConfig{Prefix: "lf:cache", KeyStrategy: "route_query"}
	e := echo.New()

	key := func(target string) string {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		c := e.NewContext(req, httptest.NewRecorder())
		// Echo resolves both requests to the same route pattern; the
		// key must still tell the two applications apart.
		c.SetPath("/v1/applications/:id")
		return cacheKeyFrom(cfg, c)
	}

	a := key("/v1/applications/ALM-20260829-11111")
	b := key("/v1/applications/ALM-20260829-22222")
	if a == b {
		t.Fatalf("detail keys collide: %s", a)
	}
	if a != key("/v1/applications/ALM-20260829-11111") {
		t.Error("key is not stable for the same application")
	}
}

func TestCacheKeyDependsOnQuery(t *testing.T) {
	cfg := config.CacheConfig{Prefix: "lf:cache", KeyStrategy: "route_query"}
	e := echo.New()

	key := func(target string) string {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		c := e.NewContext(req, httptest.NewRecorder())
		c.SetPath("/v1/applications")
		return cacheKeyFrom(cfg, c)
	}

	a := key("/v1/applications?status=FRESH")
	b := key("/v1/applications?status=FORWARDED")
	if a == b {
		t.Error("keys for different queries collide")
	}
	if a != key("/v1/applications?status=FRESH") {
		t.Error("key is not stable for identical requests")
	}
}
