package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/uplandimports/storefront/api"
	"github.com/uplandimports/storefront/internal/catalog"
	"github.com/uplandimports/storefront/internal/config"
	"github.com/uplandimports/storefront/internal/metrics"
	"github.com/uplandimports/storefront/internal/repository/memory"
	"github.com/uplandimports/storefront/pkg/models"
	"github.com/uplandimports/storefront/pkg/notify"
)

const (
	testSecret        = "test-secret"
	testAdminEmail    = "admin@example.com"
	testAdminPassword = "hunter2"
)

// fakeNotifier records every notification and fails with err when set.
type fakeNotifier struct {
	mu        sync.Mutex
	err       error
	inquiries []notify.InquiryNotice
	quotes    []models.Quote
}

func (f *fakeNotifier) NotifyInquiry(ctx context.Context, n notify.InquiryNotice) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inquiries = append(f.inquiries, n)
	return f.err
}

func (f *fakeNotifier) NotifyQuote(ctx context.Context, q models.Quote) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.quotes = append(f.quotes, q)
	return f.err
}

func (f *fakeNotifier) inquiryCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.inquiries)
}

func (f *fakeNotifier) quoteCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.quotes)
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testAdminPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return &config.Config{
		Addr:          ":0",
		JWTSecret:     testSecret,
		APITimeout:    5 * time.Second,
		TokenDuration: time.Hour,
		Storage:       config.StorageConfig{Driver: config.StorageMemory},
		Pricing:       config.PricingConfig{BasePrice: "850.00"},
		Admin:         config.AdminConfig{Email: testAdminEmail, PasswordHash: string(hash)},
	}
}

func newTestServer(t *testing.T, n *fakeNotifier) *httptest.Server {
	t.Helper()
	products, err := catalog.Default()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}

	router, err := api.SetupRoutes(testConfig(t), "1.0.0", "2025-01-01T00:00:00Z", memory.New(products), n, metrics.New())
	if err != nil {
		t.Fatalf("SetupRoutes: %v", err)
	}

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

// doJSON sends body (marshalled unless it is already a string) and returns
// the response with its body read.
func doJSON(t *testing.T, method, url string, body any, token string) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer res.Body.Close()
	data, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return res, data
}

func decode[T any](t *testing.T, data []byte) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		t.Fatalf("decode %s: %v", string(data), err)
	}
	return v
}

type errorBody struct {
	Message string `json:"message"`
	Details []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"details"`
}

func signin(t *testing.T, srv *httptest.Server) string {
	t.Helper()
	res, data := doJSON(t, http.MethodPost, srv.URL+"/api/admin/signin",
		map[string]string{"email": testAdminEmail, "password": testAdminPassword}, "")
	if res.StatusCode != http.StatusOK {
		t.Fatalf("signin: expected 200 got %d body=%s", res.StatusCode, string(data))
	}
	out := decode[struct {
		Token string `json:"token"`
	}](t, data)
	if out.Token == "" {
		t.Fatalf("signin returned empty token")
	}
	return out.Token
}
