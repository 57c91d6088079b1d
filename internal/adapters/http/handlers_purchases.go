package web

import (
	"net/http"

	"coachpanel/internal/application/listutil"
	"coachpanel/internal/domain/purchase"
)

// handlePurchases handles GET /purchases — a read-only payment log.
func handlePurchases(w http.ResponseWriter, r *http.Request) {
	purchases, err := services.Purchases.List(r.Context())
	if err != nil {
		renderPurchaseList(w, r, nil, listutil.ListParams{}, listutil.PageInfo{}, userMessage(err))
		return
	}

	lp := listutil.ParseListParams(r.URL.Query(), []string{"itemType"})
	filtered := listutil.Filter(purchases, func(p purchase.Purchase) bool {
		if t := lp.Filters["itemType"]; t != "" && p.ItemType != t {
			return false
		}
		return listutil.MatchesSearch(lp.Search, p.BuyerName(), p.BuyerEmail(), p.ItemName)
	})
	page, info := listutil.Paginate(filtered, lp.PageParams)

	renderPurchaseList(w, r, page, lp, info, "")
}

func renderPurchaseList(w http.ResponseWriter, r *http.Request, page []purchase.Purchase, lp listutil.ListParams, info listutil.PageInfo, errMsg string) {
	renderTemplate(w, r, "purchases.html", map[string]any{
		"Purchases": page,
		"PageInfo":  info,
		"Search":    lp.Search,
		"ItemType":  lp.Filters["itemType"],
		"Error":     errMsg,
	})
}
