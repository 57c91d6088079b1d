package web

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/csrf"

	"coachpanel/internal/adapters/api"
	"coachpanel/internal/application/listutil"
	"coachpanel/internal/domain/plan"
)

// handlePlans handles GET (list) and POST (create) for /plans
func handlePlans(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method == "GET" {
		plans, err := services.Plans.List(ctx)
		if err != nil {
			renderPlanList(w, r, nil, listutil.ListParams{}, listutil.PageInfo{}, userMessage(err))
			return
		}

		lp := listutil.ParseListParams(r.URL.Query(), nil)
		filtered := listutil.Filter(plans, func(p plan.Plan) bool {
			return listutil.MatchesSearch(lp.Search, p.Name, p.Description)
		})
		page, info := listutil.Paginate(filtered, lp.PageParams)

		renderPlanList(w, r, page, lp, info, "")
		return
	}

	if r.Method == "POST" {
		p, err := parsePlanForm(r)
		if err != nil {
			redirectPlanError(w, r, err.Error())
			return
		}
		if err := services.Plans.Create(ctx, planForm(p)); err != nil {
			redirectPlanError(w, r, userMessage(err))
			return
		}
		http.Redirect(w, r, "/plans", http.StatusSeeOther)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handlePlanUpdate handles POST /plans/{id}
func handlePlanUpdate(w http.ResponseWriter, r *http.Request) {
	p, err := parsePlanForm(r)
	if err != nil {
		redirectPlanError(w, r, err.Error())
		return
	}
	if err := services.Plans.Update(r.Context(), r.PathValue("id"), planForm(p)); err != nil {
		redirectPlanError(w, r, userMessage(err))
		return
	}
	http.Redirect(w, r, "/plans", http.StatusSeeOther)
}

// handlePlanDelete handles POST /plans/{id}/delete
func handlePlanDelete(w http.ResponseWriter, r *http.Request) {
	if err := services.Plans.Delete(r.Context(), r.PathValue("id")); err != nil {
		redirectPlanError(w, r, userMessage(err))
		return
	}
	http.Redirect(w, r, "/plans", http.StatusSeeOther)
}

func parsePlanForm(r *http.Request) (plan.Plan, error) {
	if err := r.ParseForm(); err != nil {
		return plan.Plan{}, err
	}
	price, _ := strconv.ParseFloat(r.FormValue("Price"), 64)
	p := plan.Plan{
		Name:        r.FormValue("Name"),
		Description: r.FormValue("Description"),
		Price:       price,
		Interval:    r.FormValue("Interval"),
		Features:    splitFeatures(r.FormValue("Features")),
	}
	return p, p.Validate()
}

// splitFeatures turns the one-per-line textarea value into a feature list.
func splitFeatures(raw string) []string {
	var features []string
	for _, line := range strings.Split(raw, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			features = append(features, line)
		}
	}
	return features
}

func planForm(p plan.Plan) api.Form {
	var f api.Form
	f.Set("name", p.Name)
	f.Set("description", p.Description)
	f.Set("price", strconv.FormatFloat(p.Price, 'f', -1, 64))
	f.Set("interval", p.Interval)
	for _, feature := range p.Features {
		f.Add("features[]", feature)
	}
	return f
}

func renderPlanList(w http.ResponseWriter, r *http.Request, page []plan.Plan, lp listutil.ListParams, info listutil.PageInfo, errMsg string) {
	if errMsg == "" {
		errMsg = r.URL.Query().Get("error")
	}
	renderTemplate(w, r, "plans.html", map[string]any{
		"CSRFToken": csrf.Token(r),
		"Plans":     page,
		"PageInfo":  info,
		"Search":    lp.Search,
		"Error":     errMsg,
	})
}

func redirectPlanError(w http.ResponseWriter, r *http.Request, msg string) {
	http.Redirect(w, r, "/plans?error="+urlQueryEscape(msg), http.StatusSeeOther)
}
