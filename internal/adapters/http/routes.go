package web

import (
	"net/http"

	"coachpanel/internal/adapters/http/middleware"
)

// registerRoutes maps every panel path onto its handler. Auth routes are
// wrapped in RequireAnon so signed-in admins bounce back to the dashboard;
// everything else requires a session.
func registerRoutes(mux *http.ServeMux) {
	anon := func(h http.HandlerFunc) http.Handler { return middleware.RequireAnon(h) }
	auth := func(h http.HandlerFunc) http.Handler { return middleware.RequireAuth(h) }

	// Auth gateway
	mux.Handle("/login", anon(handleLogin))
	mux.Handle("/forgot-password", anon(handleForgotPassword))
	mux.Handle("/reset-password", anon(handleResetPassword))
	mux.Handle("POST /logout", auth(handleLogout))

	// Dashboard
	mux.Handle("/", auth(handleDashboard))
	mux.Handle("GET /dashboard/data", auth(handleDashboardData))

	// Workout library
	mux.Handle("/videos", auth(handleVideos))
	mux.Handle("POST /videos/{id}", auth(handleVideoUpdate))
	mux.Handle("POST /videos/{id}/delete", auth(handleVideoDelete))
	mux.Handle("GET /videos/{id}/play", auth(handleVideoPlay))

	// E-books
	mux.Handle("/ebooks", auth(handleEbooks))
	mux.Handle("POST /ebooks/{id}", auth(handleEbookUpdate))
	mux.Handle("POST /ebooks/{id}/delete", auth(handleEbookDelete))

	// Certificates
	mux.Handle("/certificates", auth(handleCertificates))
	mux.Handle("POST /certificates/{id}", auth(handleCertificateUpdate))
	mux.Handle("POST /certificates/{id}/delete", auth(handleCertificateDelete))

	// Members
	mux.Handle("GET /members", auth(handleMembers))
	mux.Handle("POST /members/{id}/status", auth(handleMemberStatus))

	// Coaching plans
	mux.Handle("/plans", auth(handlePlans))
	mux.Handle("POST /plans/{id}", auth(handlePlanUpdate))
	mux.Handle("POST /plans/{id}/delete", auth(handlePlanDelete))

	// Payments
	mux.Handle("GET /purchases", auth(handlePurchases))
	mux.Handle("GET /receipts", auth(handleReceipts))
	mux.Handle("POST /receipts/{id}/approve", auth(handleReceiptDecision("approved")))
	mux.Handle("POST /receipts/{id}/reject", auth(handleReceiptDecision("rejected")))

	// Settings
	mux.Handle("/settings", auth(handleSettings))

	// Authenticated media proxies
	mux.Handle("GET /files/ebooks/{id}", auth(handleEbookFile))
	mux.Handle("GET /files/certificates/{id}", auth(handleCertificateFile))
	mux.Handle("GET /files/assets/{path...}", auth(handleAssetFile))

	// Operations
	mux.Handle("GET /perf", auth(handlePerf))
}
