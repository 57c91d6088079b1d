package web

import (
	"net/http"

	"github.com/gorilla/csrf"

	"coachpanel/internal/application/listutil"
	"coachpanel/internal/application/orchestrators"
	"coachpanel/internal/domain/receipt"
)

// handleReceipts handles GET /receipts
func handleReceipts(w http.ResponseWriter, r *http.Request) {
	receipts, err := services.Receipts.List(r.Context())
	if err != nil {
		renderReceiptList(w, r, nil, listutil.ListParams{}, listutil.PageInfo{}, userMessage(err))
		return
	}

	lp := listutil.ParseListParams(r.URL.Query(), []string{"status"})
	filtered := listutil.Filter(receipts, func(rc receipt.Receipt) bool {
		if s := lp.Filters["status"]; s != "" && rc.Status != s {
			return false
		}
		return listutil.MatchesSearch(lp.Search, rc.UploaderName(), rc.UploaderEmail(), rc.PriceID)
	})
	page, info := listutil.Paginate(filtered, lp.PageParams)

	renderReceiptList(w, r, page, lp, info, "")
}

// handleReceiptDecision handles POST /receipts/{id}/approve and
// POST /receipts/{id}/reject. The row's JS swaps its status badge in place on
// a JSON success, so the response carries the new status rather than a
// redirect.
func handleReceiptDecision(decision string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")

		// The decision needs the full record for the pending check and the
		// uploader notification.
		target, err := findReceipt(r, id)
		if err != nil {
			respondReceiptError(w, r, err)
			return
		}

		err = orchestrators.ExecuteReceiptDecision(r.Context(), orchestrators.ReceiptDecisionInput{
			Receipt:  target,
			Decision: decision,
		}, orchestrators.ReceiptDecisionDeps{
			Receipts:    services.Receipts,
			EmailSender: services.EmailSender,
		})
		if err != nil {
			respondReceiptError(w, r, err)
			return
		}

		if isHTMLRequest(r) {
			http.Redirect(w, r, "/receipts", http.StatusSeeOther)
			return
		}
		writeJSON(w, map[string]string{"id": id, "status": decision})
	}
}

// findReceipt locates a receipt by id in the current backend list.
func findReceipt(r *http.Request, id string) (receipt.Receipt, error) {
	if id == "" {
		return receipt.Receipt{}, orchestrators.ErrMissingReceiptID
	}
	receipts, err := services.Receipts.List(r.Context())
	if err != nil {
		return receipt.Receipt{}, err
	}
	for _, rc := range receipts {
		if rc.ID == id {
			return rc, nil
		}
	}
	return receipt.Receipt{}, orchestrators.ErrMissingReceiptID
}

func respondReceiptError(w http.ResponseWriter, r *http.Request, err error) {
	if isHTMLRequest(r) {
		http.Redirect(w, r, "/receipts?error="+urlQueryEscape(userMessage(err)), http.StatusSeeOther)
		return
	}
	writeJSONError(w, err)
}

func renderReceiptList(w http.ResponseWriter, r *http.Request, page []receipt.Receipt, lp listutil.ListParams, info listutil.PageInfo, errMsg string) {
	if errMsg == "" {
		errMsg = r.URL.Query().Get("error")
	}
	renderTemplate(w, r, "receipts.html", map[string]any{
		"CSRFToken": csrf.Token(r),
		"Receipts":  page,
		"PageInfo":  info,
		"Search":    lp.Search,
		"Status":    lp.Filters["status"],
		"Error":     errMsg,
	})
}
