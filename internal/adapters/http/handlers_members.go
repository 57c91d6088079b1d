package web

import (
	"net/http"

	"github.com/gorilla/csrf"

	"coachpanel/internal/application/listutil"
	"coachpanel/internal/application/orchestrators"
	"coachpanel/internal/domain/member"
)

// handleMembers handles GET /members
func handleMembers(w http.ResponseWriter, r *http.Request) {
	members, err := services.Members.List(r.Context())
	if err != nil {
		renderMemberList(w, r, nil, listutil.ListParams{}, listutil.PageInfo{}, userMessage(err))
		return
	}

	lp := listutil.ParseListParams(r.URL.Query(), []string{"status"})
	filtered := listutil.Filter(members, func(m member.Member) bool {
		if s := lp.Filters["status"]; s != "" && m.EffectiveStatus() != s {
			return false
		}
		return listutil.MatchesSearch(lp.Search, m.Name(), m.Email)
	})
	page, info := listutil.Paginate(filtered, lp.PageParams)

	renderMemberList(w, r, page, lp, info, "")
}

// handleMemberStatus handles POST /members/{id}/status
func handleMemberStatus(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	err := orchestrators.ExecuteUpdateMemberStatus(r.Context(), orchestrators.UpdateMemberStatusInput{
		MemberID:  r.PathValue("id"),
		Status:    r.FormValue("Status"),
		Confirmed: r.FormValue("Confirmed") == "true",
	}, orchestrators.UpdateMemberStatusDeps{Members: services.Members})
	if err != nil {
		if isHTMLRequest(r) {
			http.Redirect(w, r, "/members?error="+urlQueryEscape(userMessage(err)), http.StatusSeeOther)
			return
		}
		writeJSONError(w, err)
		return
	}

	if isHTMLRequest(r) {
		http.Redirect(w, r, "/members", http.StatusSeeOther)
		return
	}
	writeJSON(w, map[string]string{"status": r.FormValue("Status")})
}

func renderMemberList(w http.ResponseWriter, r *http.Request, page []member.Member, lp listutil.ListParams, info listutil.PageInfo, errMsg string) {
	if errMsg == "" {
		errMsg = r.URL.Query().Get("error")
	}
	renderTemplate(w, r, "members.html", map[string]any{
		"CSRFToken": csrf.Token(r),
		"Members":   page,
		"PageInfo":  info,
		"Search":    lp.Search,
		"Status":    lp.Filters["status"],
		"Error":     errMsg,
	})
}
