package browser_test

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/playwright-community/playwright-go"

	_ "modernc.org/sqlite"

	"coachpanel/internal/adapters/api"
	emailPkg "coachpanel/internal/adapters/email"
	web "coachpanel/internal/adapters/http"
	"coachpanel/internal/adapters/http/middleware"
	"coachpanel/internal/adapters/http/perf"
	"coachpanel/internal/adapters/storage"
	sessionStore "coachpanel/internal/adapters/storage/session"
)

// fakeBackend is an in-memory stand-in for the remote content API. State is
// mutable so decision endpoints can be observed from the browser.
type fakeBackend struct {
	mu       sync.Mutex
	receipts []map[string]any
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		receipts: []map[string]any{
			{
				"_id":       "r1",
				"user":      map[string]any{"_id": "u1", "firstName": "Mere", "lastName": "Kahu", "email": "mere@example.com"},
				"priceId":   "price_1",
				"receipt":   "uploads/receipts/r1.jpg",
				"status":    "pending",
				"createdAt": time.Now().UTC().Format(time.RFC3339),
			},
		},
	}
}

func (b *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()

	writeJSON := func(w http.ResponseWriter, v any) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(v)
	}

	mux.HandleFunc("POST /admin/login", func(w http.ResponseWriter, r *http.Request) {
		var creds map[string]string
		json.NewDecoder(r.Body).Decode(&creds)
		if creds["username"] != "admin" || creds["password"] != "TestPass123!" {
			w.WriteHeader(http.StatusUnauthorized)
			writeJSON(w, map[string]string{"msg": "Invalid credentials"})
			return
		}
		writeJSON(w, map[string]any{
			"token": "backend-token-1",
			"admin": map[string]string{"id": "a1", "username": "admin", "name": "Test Admin", "email": "admin@example.com"},
		})
	})
	mux.HandleFunc("GET /dashboard-data/stats", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{
			"activeMembers": 12, "totalVideos": 3, "totalEbooks": 2,
			"certificatesIssued": 1, "pendingReceipts": 1, "monthlyRevenue": 420.0,
			"newMembersThisMonth": 4,
		})
	})
	mux.HandleFunc("GET /dashboard-data/recent", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"activities": []map[string]any{
			{"action": "signed up", "user": "Mere Kahu", "type": "member", "time": time.Now().UTC().Format(time.RFC3339)},
		}})
	})
	mux.HandleFunc("GET /workout-library", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"videos": []map[string]any{
			{"_id": "v1", "title": "Morning Mobility", "level": "beginner", "category": map[string]string{"_id": "c1", "name": "Mobility"}},
			{"_id": "v2", "title": "Strength Circuit", "level": "advanced", "category": map[string]string{"_id": "c2", "name": "Strength"}},
		}})
	})
	mux.HandleFunc("GET /workout-library/signed-url/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]string{"signedUrl": "https://cdn.example.test/" + r.PathValue("id") + ".mp4?sig=abc"})
	})
	mux.HandleFunc("GET /workout-categories", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"categories": []map[string]string{
			{"_id": "c1", "name": "Mobility"}, {"_id": "c2", "name": "Strength"},
		}})
	})
	mux.HandleFunc("GET /ebooks", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"ebooks": []map[string]any{
			{"_id": "e1", "title": "Meal Prep Basics", "price": 9.99},
		}})
	})
	mux.HandleFunc("GET /certificates", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"certificates": []map[string]any{}})
	})
	mux.HandleFunc("GET /coachingplans/stripe", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"plans": []map[string]any{
			{"_id": "p1", "name": "Standard", "price": 29.0, "currency": "nzd", "interval": "month"},
		}})
	})
	mux.HandleFunc("GET /users", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"users": []map[string]any{
			{"_id": "u1", "firstName": "Mere", "lastName": "Kahu", "email": "mere@example.com",
				"membership": map[string]string{"paymentStatus": "paid"}},
		}})
	})
	mux.HandleFunc("GET /purchases", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"purchases": []map[string]any{}})
	})
	mux.HandleFunc("GET /receipts", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		writeJSON(w, map[string]any{"receipts": b.receipts})
	})
	mux.HandleFunc("POST /receipts/{id}/approve", func(w http.ResponseWriter, r *http.Request) {
		b.setReceiptStatus(r.PathValue("id"), "approved")
		writeJSON(w, map[string]string{"msg": "ok"})
	})
	mux.HandleFunc("POST /receipts/{id}/reject", func(w http.ResponseWriter, r *http.Request) {
		b.setReceiptStatus(r.PathValue("id"), "rejected")
		writeJSON(w, map[string]string{"msg": "ok"})
	})

	return mux
}

func (b *fakeBackend) setReceiptStatus(id, status string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, rc := range b.receipts {
		if rc["_id"] == id {
			rc["status"] = status
		}
	}
}

// testApp holds the running panel, its fake backend and Playwright handles.
type testApp struct {
	BaseURL string
	Backend *fakeBackend
	PW      *playwright.Playwright
	Browser playwright.Browser
}

// newTestApp starts the fake backend, a fully wired panel server on a free
// port and a headless browser.
func newTestApp(t *testing.T) *testApp {
	t.Helper()

	backend := newFakeBackend()
	backendSrv := httptest.NewServer(backend.handler())
	t.Cleanup(backendSrv.Close)

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("failed to open test DB: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := storage.InitDB(db); err != nil {
		t.Fatalf("failed to init test DB: %v", err)
	}

	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i)
	}
	sealer, err := sessionStore.NewSealer(key)
	if err != nil {
		t.Fatalf("failed to create sealer: %v", err)
	}

	collector := perf.NewCollector(perf.DefaultRingSize)
	client := api.New(backendSrv.URL)
	client.SetRecorder(middleware.UpstreamRecorder{Collector: collector})

	services := &web.Services{
		Auth:         client,
		Videos:       api.NewVideos(client),
		Categories:   api.NewCategories(client),
		Ebooks:       api.NewEbooks(client),
		Certificates: api.NewCertificates(client),
		Plans:        api.NewPlans(client),
		Members:      api.NewMembers(client),
		Purchases:    api.NewPurchases(client),
		Receipts:     api.NewReceipts(client),
		Dashboard:    api.NewDashboard(client),
		Blobs:        api.NewBlobs(client),
		Sessions:     sessionStore.NewSQLiteStore(db, sealer),
		EmailSender:  emailPkg.NewNoopSender(),
	}

	// Find a free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to find free port: %v", err)
	}
	port := listener.Addr().(*net.TCPAddr).Port
	listener.Close()

	// Change to project root so relative template/static paths work
	projectRoot := findProjectRoot(t)
	origDir, _ := os.Getwd()
	if err := os.Chdir(projectRoot); err != nil {
		t.Fatalf("failed to chdir to project root: %v", err)
	}
	t.Cleanup(func() { os.Chdir(origDir) })

	// Add test port to CSRF trusted origins before creating mux
	middleware.ExtraTrustedOrigins = append(middleware.ExtraTrustedOrigins,
		fmt.Sprintf("127.0.0.1:%d", port),
		fmt.Sprintf("localhost:%d", port),
	)

	mux := web.NewMux("static", services, collector)
	srv := &http.Server{
		Addr:    fmt.Sprintf("127.0.0.1:%d", port),
		Handler: mux,
	}
	go func() {
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Printf("test server error: %v", err)
		}
	}()
	t.Cleanup(func() { srv.Close() })

	// Wait for server to be ready
	baseURL := fmt.Sprintf("http://127.0.0.1:%d", port)
	for i := 0; i < 50; i++ {
		resp, err := http.Get(baseURL + "/login")
		if err == nil {
			resp.Body.Close()
			break
		}
		time.Sleep(100 * time.Millisecond)
	}

	pw, err := playwright.Run()
	if err != nil {
		t.Fatalf("failed to start Playwright: %v", err)
	}
	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
	})
	if err != nil {
		t.Fatalf("failed to launch browser: %v", err)
	}
	t.Cleanup(func() {
		browser.Close()
		pw.Stop()
	})

	return &testApp{
		BaseURL: baseURL,
		Backend: backend,
		PW:      pw,
		Browser: browser,
	}
}

// newPage creates a new browser page (tab).
func (a *testApp) newPage(t *testing.T) playwright.Page {
	t.Helper()
	page, err := a.Browser.NewPage()
	if err != nil {
		t.Fatalf("failed to create page: %v", err)
	}
	t.Cleanup(func() { page.Close() })
	return page
}

// login signs in through the form and waits for the dashboard.
func (a *testApp) login(t *testing.T, page playwright.Page) {
	t.Helper()
	if _, err := page.Goto(a.BaseURL + "/login"); err != nil {
		t.Fatalf("failed to navigate to login: %v", err)
	}
	if err := page.Locator("input[name=Username]").Fill("admin"); err != nil {
		t.Fatalf("failed to fill username: %v", err)
	}
	if err := page.Locator("input[name=Password]").Fill("TestPass123!"); err != nil {
		t.Fatalf("failed to fill password: %v", err)
	}
	if err := page.Locator("button[type=submit]").Click(); err != nil {
		t.Fatalf("failed to submit login: %v", err)
	}
	if err := page.WaitForURL(a.BaseURL + "/"); err != nil {
		t.Fatalf("login did not land on dashboard: %v", err)
	}
}

// findProjectRoot walks up from the working directory to the module root.
func findProjectRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (no go.mod)")
		}
		dir = parent
	}
}

// skipWithoutBrowser skips when Playwright browsers are not installed.
func skipWithoutBrowser(t *testing.T) {
	t.Helper()
	if os.Getenv("PANEL_BROWSER_TESTS") == "" {
		t.Skip("set PANEL_BROWSER_TESTS=1 to run browser tests")
	}
}
