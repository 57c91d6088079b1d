package web

import (
	"mime/multipart"
	"net/http"

	"github.com/gorilla/csrf"

	"coachpanel/internal/adapters/api"
	"coachpanel/internal/application/listutil"
	"coachpanel/internal/domain/certificate"
)

// handleCertificates handles GET (list) and POST (create) for /certificates
func handleCertificates(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method == "GET" {
		certs, err := services.Certificates.List(ctx)
		if err != nil {
			renderCertificateList(w, r, nil, listutil.ListParams{}, listutil.PageInfo{}, userMessage(err))
			return
		}

		lp := listutil.ParseListParams(r.URL.Query(), nil)
		filtered := listutil.Filter(certs, func(c certificate.Certificate) bool {
			return listutil.MatchesSearch(lp.Search, c.Name, c.Description)
		})
		page, info := listutil.Paginate(filtered, lp.PageParams)

		renderCertificateList(w, r, page, lp, info, "")
		return
	}

	if r.Method == "POST" {
		c, err := parseCertificateForm(r)
		if err != nil {
			redirectCertificateError(w, r, err.Error())
			return
		}

		file := uploadedFile(r, "File")
		if file == nil {
			redirectCertificateError(w, r, "a certificate file is required")
			return
		}

		f, cleanup, err := buildCertificateForm(c, file, uploadedFile(r, "Thumb"))
		defer cleanup()
		if err != nil {
			redirectCertificateError(w, r, userMessage(err))
			return
		}

		if err := services.Certificates.Create(ctx, *f); err != nil {
			redirectCertificateError(w, r, userMessage(err))
			return
		}
		http.Redirect(w, r, "/certificates", http.StatusSeeOther)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleCertificateUpdate handles POST /certificates/{id}
func handleCertificateUpdate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	c, err := parseCertificateForm(r)
	if err != nil {
		redirectCertificateError(w, r, err.Error())
		return
	}

	f, cleanup, err := buildCertificateForm(c, uploadedFile(r, "File"), uploadedFile(r, "Thumb"))
	defer cleanup()
	if err != nil {
		redirectCertificateError(w, r, userMessage(err))
		return
	}

	if err := services.Certificates.Update(r.Context(), id, *f); err != nil {
		redirectCertificateError(w, r, userMessage(err))
		return
	}
	http.Redirect(w, r, "/certificates", http.StatusSeeOther)
}

// handleCertificateDelete handles POST /certificates/{id}/delete
func handleCertificateDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := services.Certificates.Delete(r.Context(), id); err != nil {
		redirectCertificateError(w, r, userMessage(err))
		return
	}
	http.Redirect(w, r, "/certificates", http.StatusSeeOther)
}

func parseCertificateForm(r *http.Request) (certificate.Certificate, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return certificate.Certificate{}, err
	}
	c := certificate.Certificate{
		Name:        r.FormValue("Name"),
		Description: r.FormValue("Description"),
	}
	return c, c.Validate()
}

// buildCertificateForm assembles the multipart body; either file may be nil.
func buildCertificateForm(c certificate.Certificate, file, thumb *multipart.FileHeader) (*api.Form, func(), error) {
	var f api.Form
	f.Set("name", c.Name)
	f.Set("description", c.Description)

	var closers []func() error
	cleanup := func() {
		for _, cl := range closers {
			cl()
		}
	}

	if file != nil {
		if !certificate.AllowedFileType(file.Header.Get("Content-Type")) {
			return nil, cleanup, certificate.ErrBadFileType
		}
		open, err := attachUpload(&f, file, "file")
		if err != nil {
			return nil, cleanup, err
		}
		closers = append(closers, open.Close)
	}
	if thumb != nil {
		if !certificate.AllowedThumbType(thumb.Header.Get("Content-Type")) {
			return nil, cleanup, certificate.ErrBadThumbType
		}
		open, err := attachUpload(&f, thumb, "thumb")
		if err != nil {
			return nil, cleanup, err
		}
		closers = append(closers, open.Close)
	}
	return &f, cleanup, nil
}

func renderCertificateList(w http.ResponseWriter, r *http.Request, page []certificate.Certificate, lp listutil.ListParams, info listutil.PageInfo, errMsg string) {
	if errMsg == "" {
		errMsg = r.URL.Query().Get("error")
	}
	renderTemplate(w, r, "certificates.html", map[string]any{
		"CSRFToken":    csrf.Token(r),
		"Certificates": page,
		"PageInfo":     info,
		"Search":       lp.Search,
		"Error":        errMsg,
		"Notice":       r.URL.Query().Get("notice"),
	})
}

func redirectCertificateError(w http.ResponseWriter, r *http.Request, msg string) {
	http.Redirect(w, r, "/certificates?error="+urlQueryEscape(msg), http.StatusSeeOther)
}
