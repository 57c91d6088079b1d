package main

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"

	"coachpanel/internal/adapters/api"
	emailPkg "coachpanel/internal/adapters/email"
	web "coachpanel/internal/adapters/http"
	"coachpanel/internal/adapters/http/middleware"
	"coachpanel/internal/adapters/http/perf"
	"coachpanel/internal/adapters/storage"
	sessionStore "coachpanel/internal/adapters/storage/session"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	// Local SQLite holds admin sessions only; all content lives on the
	// remote API.
	dbPath := envOrDefault("PANEL_DB", "panel.db")
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	if err := db.Ping(); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}
	if err := storage.InitDB(db); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	sealer, err := sessionStore.NewSealer(loadSessionKey())
	if err != nil {
		log.Fatalf("failed to create session sealer: %v", err)
	}
	sessions := sessionStore.NewSQLiteStore(db, sealer)

	// Performance instrumentation: one collector feeds both the request
	// timing middleware and the API client's upstream recorder.
	collector := perf.NewCollector(perf.DefaultRingSize)

	apiURL := envOrDefault("PANEL_API_URL", "http://localhost:3000/api")
	client := api.New(apiURL)
	client.SetRecorder(middleware.UpstreamRecorder{Collector: collector})

	// Email sender for receipt decision notifications
	var sender emailPkg.Sender
	resendKey := os.Getenv("PANEL_RESEND_KEY")
	emailFrom := envOrDefault("PANEL_RESEND_FROM", "Coach Panel <noreply@example.com>")
	emailReply := os.Getenv("PANEL_REPLY_TO")
	if resendKey != "" {
		sender = emailPkg.NewResendSender(resendKey, emailFrom, emailReply)
		log.Println("Email sender configured (Resend)")
	} else {
		sender = emailPkg.NewNoopSender()
		if os.Getenv("PANEL_ENV") == "production" {
			log.Println("WARNING: PANEL_RESEND_KEY is not set — receipt notifications are DISABLED in production")
		} else {
			log.Println("Email sender configured (noop — set PANEL_RESEND_KEY for real delivery)")
		}
	}

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
		Sessions:     sessions,
		EmailSender:  sender,
	}

	mux := web.NewMux("static", services, collector)

	addr := envOrDefault("PANEL_ADDR", ":8080")
	log.Printf("Coach panel %s starting on %s (env=%s, api=%s)", version, addr, envOrDefault("PANEL_ENV", "development"), apiURL)

	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// loadSessionKey reads the at-rest token encryption key from
// PANEL_SESSION_KEY (hex-encoded, 32 bytes). In production the key MUST be
// set; in development a random key is generated, which invalidates stored
// sessions on restart.
func loadSessionKey() []byte {
	if keyHex := os.Getenv("PANEL_SESSION_KEY"); keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 32 {
			log.Fatal("PANEL_SESSION_KEY must be 64 hex characters (32 bytes)")
		}
		return key
	}
	if os.Getenv("PANEL_ENV") == "production" {
		log.Fatal("PANEL_SESSION_KEY is required in production")
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("failed to generate session key: %v", err)
	}
	log.Println("WARNING: using random session key (sessions won't survive restart). Set PANEL_SESSION_KEY for production.")
	return key
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
