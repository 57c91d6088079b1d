package web

import (
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gorilla/csrf"

	"coachpanel/internal/adapters/api"
	"coachpanel/internal/application/listutil"
	"coachpanel/internal/domain/ebook"
)

// handleEbooks handles GET (list) and POST (create) for /ebooks
func handleEbooks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method == "GET" {
		ebooks, err := services.Ebooks.List(ctx)
		if err != nil {
			renderEbookList(w, r, nil, listutil.ListParams{}, listutil.PageInfo{}, userMessage(err))
			return
		}

		lp := listutil.ParseListParams(r.URL.Query(), nil)
		filtered := listutil.Filter(ebooks, func(e ebook.Ebook) bool {
			return listutil.MatchesSearch(lp.Search, e.Title, e.Description)
		})
		page, info := listutil.Paginate(filtered, lp.PageParams)

		renderEbookList(w, r, page, lp, info, "")
		return
	}

	if r.Method == "POST" {
		e, err := parseEbookForm(r)
		if err != nil {
			redirectEbookError(w, r, err.Error())
			return
		}

		ebookFile := uploadedFile(r, "Ebook")
		cover := uploadedFile(r, "Cover")
		if ebookFile == nil {
			redirectEbookError(w, r, "an e-book file is required")
			return
		}
		if cover == nil {
			redirectEbookError(w, r, "a cover image is required")
			return
		}

		f, cleanup, err := buildEbookForm(e, ebookFile, cover)
		defer cleanup()
		if err != nil {
			redirectEbookError(w, r, userMessage(err))
			return
		}

		if err := services.Ebooks.Create(ctx, *f); err != nil {
			redirectEbookError(w, r, userMessage(err))
			return
		}
		http.Redirect(w, r, "/ebooks", http.StatusSeeOther)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleEbookUpdate handles POST /ebooks/{id}
func handleEbookUpdate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	e, err := parseEbookForm(r)
	if err != nil {
		redirectEbookError(w, r, err.Error())
		return
	}

	// Both files are optional on update.
	f, cleanup, err := buildEbookForm(e, uploadedFile(r, "Ebook"), uploadedFile(r, "Cover"))
	defer cleanup()
	if err != nil {
		redirectEbookError(w, r, userMessage(err))
		return
	}

	if err := services.Ebooks.Update(r.Context(), id, *f); err != nil {
		redirectEbookError(w, r, userMessage(err))
		return
	}
	http.Redirect(w, r, "/ebooks", http.StatusSeeOther)
}

// handleEbookDelete handles POST /ebooks/{id}/delete
func handleEbookDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := services.Ebooks.Delete(r.Context(), id); err != nil {
		redirectEbookError(w, r, userMessage(err))
		return
	}
	http.Redirect(w, r, "/ebooks", http.StatusSeeOther)
}

// parseEbookForm decodes and validates the user-editable e-book fields.
func parseEbookForm(r *http.Request) (ebook.Ebook, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return ebook.Ebook{}, err
	}
	price, _ := strconv.ParseFloat(r.FormValue("Price"), 64)
	e := ebook.Ebook{
		Title:          r.FormValue("Title"),
		Description:    r.FormValue("Description"),
		Price:          price,
		IsFree:         r.FormValue("IsFree") == "true",
		ForMembersOnly: r.FormValue("ForMembersOnly") == "true",
	}
	return e, e.Validate()
}

// buildEbookForm assembles the multipart body for create and update. Either
// file may be nil. The returned cleanup closes any opened files; it is never
// nil and must run even when an error is returned.
func buildEbookForm(e ebook.Ebook, ebookFile, cover *multipart.FileHeader) (*api.Form, func(), error) {
	var f api.Form
	f.Set("title", e.Title)
	f.Set("description", e.Description)
	f.Set("price", e.SubmitPrice())
	f.Set("isFree", boolString(e.IsFree))
	f.Set("forMembersOnly", boolString(e.ForMembersOnly))

	var closers []func() error
	cleanup := func() {
		for _, c := range closers {
			c()
		}
	}

	if ebookFile != nil {
		if !ebook.AllowedEbookType(ebookFile.Header.Get("Content-Type")) {
			return nil, cleanup, ebook.ErrBadEbookType
		}
		open, err := attachUpload(&f, ebookFile, "ebook")
		if err != nil {
			return nil, cleanup, err
		}
		closers = append(closers, open.Close)
	}
	if cover != nil {
		if !ebook.AllowedCoverType(cover.Header.Get("Content-Type")) {
			return nil, cleanup, ebook.ErrBadCoverType
		}
		open, err := attachUpload(&f, cover, "cover")
		if err != nil {
			return nil, cleanup, err
		}
		closers = append(closers, open.Close)
	}
	return &f, cleanup, nil
}

func renderEbookList(w http.ResponseWriter, r *http.Request, page []ebook.Ebook, lp listutil.ListParams, info listutil.PageInfo, errMsg string) {
	if errMsg == "" {
		errMsg = r.URL.Query().Get("error")
	}
	renderTemplate(w, r, "ebooks.html", map[string]any{
		"CSRFToken": csrf.Token(r),
		"Ebooks":    page,
		"PageInfo":  info,
		"Search":    lp.Search,
		"Error":     errMsg,
		"Notice":    r.URL.Query().Get("notice"),
	})
}

func redirectEbookError(w http.ResponseWriter, r *http.Request, msg string) {
	http.Redirect(w, r, "/ebooks?error="+urlQueryEscape(msg), http.StatusSeeOther)
}
