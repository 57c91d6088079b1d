package web

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"coachpanel/internal/adapters/api"
	"coachpanel/internal/adapters/email"
	"coachpanel/internal/adapters/http/middleware"
	"coachpanel/internal/adapters/http/perf"
	"coachpanel/internal/adapters/storage/session"
	"coachpanel/internal/application/projections"
	"coachpanel/internal/domain/admin"
	"coachpanel/internal/domain/certificate"
	"coachpanel/internal/domain/ebook"
	"coachpanel/internal/domain/member"
	"coachpanel/internal/domain/plan"
	"coachpanel/internal/domain/purchase"
	"coachpanel/internal/domain/receipt"
	"coachpanel/internal/domain/video"
)

// AuthService is the backend auth surface the handlers need.
type AuthService interface {
	Login(ctx context.Context, username, password string) (api.LoginResponse, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, otp, newPassword, confirmPassword string) error
	ChangePassword(ctx context.Context, currentPassword, newPassword string) error
	UpdateProfile(ctx context.Context, name, email string) error
	Profile(ctx context.Context) (admin.Profile, error)
}

// CategoryLister reads the workout category list for the video forms.
type CategoryLister interface {
	List(ctx context.Context) ([]video.Category, error)
}

// PlansService is the coaching-plan surface.
type PlansService interface {
	List(ctx context.Context) ([]plan.Plan, error)
	Create(ctx context.Context, f api.Form) error
	Update(ctx context.Context, id string, f api.Form) error
	Delete(ctx context.Context, id string) error
}

// MembersService is the member directory surface.
type MembersService interface {
	List(ctx context.Context) ([]member.Member, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

// PurchaseLister reads the purchase log.
type PurchaseLister interface {
	List(ctx context.Context) ([]purchase.Purchase, error)
}

// ReceiptsService is the receipt review surface.
type ReceiptsService interface {
	List(ctx context.Context) ([]receipt.Receipt, error)
	Approve(ctx context.Context, id string) error
	Reject(ctx context.Context, id string) error
}

// BlobFetcher streams authenticated binary content for previews. The
// concrete implementation is api.BlobsClient.
type BlobFetcher interface {
	FetchEbook(ctx context.Context, id string) (io.ReadCloser, string, error)
	FetchCertificate(ctx context.Context, id string) (io.ReadCloser, string, error)
	SignedVideoURL(ctx context.Context, id string) (string, error)
	FetchAsset(ctx context.Context, relPath string) (io.ReadCloser, string, error)
}

// Services holds every backend and local dependency the handlers use.
type Services struct {
	Auth         AuthService
	Videos       api.Resource[video.Video]
	Categories   CategoryLister
	Ebooks       api.Resource[ebook.Ebook]
	Certificates api.Resource[certificate.Certificate]
	Plans        PlansService
	Members      MembersService
	Purchases    PurchaseLister
	Receipts     ReceiptsService
	Dashboard    projections.DashboardReader
	Blobs        BlobFetcher
	Sessions     session.Store
	EmailSender  email.Sender // nil disables receipt notifications
}

// loadCSRFKey reads the CSRF secret from PANEL_CSRF_KEY (hex-encoded, 32 bytes).
// In production, the key MUST be set. In development, a random key is generated per startup.
func loadCSRFKey() []byte {
	if keyHex := os.Getenv("PANEL_CSRF_KEY"); keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 32 {
			log.Fatal("PANEL_CSRF_KEY must be 64 hex characters (32 bytes)")
		}
		return key
	}
	if os.Getenv("PANEL_ENV") == "production" {
		log.Fatal("PANEL_CSRF_KEY is required in production")
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("failed to generate CSRF key: %v", err)
	}
	log.Println("WARNING: using random CSRF key (form tokens won't survive restart). Set PANEL_CSRF_KEY for production.")
	return key
}

// Global services instance (set by NewMux)
var services *Services

// RateLimitPerSecond controls the per-IP rate limit. Tests can increase this.
var RateLimitPerSecond = 20

// Global perf collector (set by NewMux)
var perfCollector *perf.Collector

// NewMux wires HTTP handlers for the panel.
func NewMux(staticDir string, s *Services, collector *perf.Collector) http.Handler {
	services = s
	perfCollector = collector
	production := os.Getenv("PANEL_ENV") == "production"
	middleware.SecureCookies = production

	mux := http.NewServeMux()
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))
	registerRoutes(mux)

	csrfKey := loadCSRFKey()
	limiter := middleware.NewRateLimiter(RateLimitPerSecond, time.Second)

	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(csrfKey, production),
		middleware.Auth(s.Sessions),
		middleware.RateLimit(limiter),
		middleware.Timing(collector),
	)
}
