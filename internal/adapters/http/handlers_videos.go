package web

import (
	"mime/multipart"
	"net/http"

	"github.com/gorilla/csrf"

	"coachpanel/internal/adapters/api"
	"coachpanel/internal/application/listutil"
	"coachpanel/internal/domain/video"
)

// maxUploadBytes caps in-memory parsing of admin uploads; larger parts spill
// to temp files.
const maxUploadBytes = 32 << 20

// attachUpload opens an uploaded file and adds it to the outgoing form under
// the backend's field name. Returns the opened file for the caller to close
// after submission.
func attachUpload(f *api.Form, fh *multipart.FileHeader, field string) (multipart.File, error) {
	file, err := fh.Open()
	if err != nil {
		return nil, err
	}
	f.Attach(field, fh.Filename, fh.Header.Get("Content-Type"), file)
	return file, nil
}

// uploadedFile returns the first file uploaded under the given form field,
// or nil when the field is empty.
func uploadedFile(r *http.Request, field string) *multipart.FileHeader {
	if r.MultipartForm == nil {
		return nil
	}
	if files := r.MultipartForm.File[field]; len(files) > 0 {
		return files[0]
	}
	return nil
}

// handleVideos handles GET (list) and POST (create) for /videos
func handleVideos(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method == "GET" {
		videos, err := services.Videos.List(ctx)
		if err != nil {
			renderVideoList(w, r, nil, nil, listutil.ListParams{}, listutil.PageInfo{}, userMessage(err))
			return
		}
		categories, err := services.Categories.List(ctx)
		if err != nil {
			categories = []video.Category{}
		}

		lp := listutil.ParseListParams(r.URL.Query(), []string{"category"})
		filtered := listutil.Filter(videos, func(v video.Video) bool {
			if c := lp.Filters["category"]; c != "" && v.CategoryName() != c {
				return false
			}
			return listutil.MatchesSearch(lp.Search, v.Title, v.CategoryName(), v.Level)
		})
		page, info := listutil.Paginate(filtered, lp.PageParams)

		renderVideoList(w, r, page, categories, lp, info, "")
		return
	}

	if r.Method == "POST" {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}

		v := video.Video{
			Title:          r.FormValue("Title"),
			Level:          r.FormValue("Level"),
			Description:    r.FormValue("Description"),
			ForMembersOnly: r.FormValue("ForMembersOnly") == "true",
		}
		if err := v.Validate(); err != nil {
			redirectVideoError(w, r, err.Error())
			return
		}

		videoFile := uploadedFile(r, "Video")
		if videoFile == nil {
			redirectVideoError(w, r, "a video file is required")
			return
		}
		if !video.AllowedVideoType(videoFile.Header.Get("Content-Type")) {
			redirectVideoError(w, r, "only video files are accepted")
			return
		}

		var f api.Form
		f.Set("title", v.Title)
		f.Set("description", v.Description)
		f.Set("category", r.FormValue("Category"))
		f.Set("level", v.Level)
		f.Set("forMembersOnly", boolString(v.ForMembersOnly))

		open, err := attachUpload(&f, videoFile, "video")
		if err != nil {
			internalError(w, err)
			return
		}
		defer open.Close()

		if thumb := uploadedFile(r, "Thumbnail"); thumb != nil {
			if !video.AllowedThumbnailType(thumb.Header.Get("Content-Type")) {
				redirectVideoError(w, r, "thumbnail must be a JPG or PNG image")
				return
			}
			openThumb, err := attachUpload(&f, thumb, "thumbnail")
			if err != nil {
				internalError(w, err)
				return
			}
			defer openThumb.Close()
		}

		if err := services.Videos.Create(ctx, f); err != nil {
			redirectVideoError(w, r, userMessage(err))
			return
		}
		http.Redirect(w, r, "/videos", http.StatusSeeOther)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleVideoUpdate handles POST /videos/{id}
func handleVideoUpdate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	v := video.Video{
		Title:          r.FormValue("Title"),
		Level:          r.FormValue("Level"),
		Description:    r.FormValue("Description"),
		ForMembersOnly: r.FormValue("ForMembersOnly") == "true",
	}
	if err := v.Validate(); err != nil {
		redirectVideoError(w, r, err.Error())
		return
	}

	var f api.Form
	f.Set("title", v.Title)
	f.Set("description", v.Description)
	f.Set("category", r.FormValue("Category"))
	f.Set("level", v.Level)
	f.Set("forMembersOnly", boolString(v.ForMembersOnly))

	// Files are optional on update; omitted files keep the stored media.
	if videoFile := uploadedFile(r, "Video"); videoFile != nil {
		if !video.AllowedVideoType(videoFile.Header.Get("Content-Type")) {
			redirectVideoError(w, r, "only video files are accepted")
			return
		}
		open, err := attachUpload(&f, videoFile, "video")
		if err != nil {
			internalError(w, err)
			return
		}
		defer open.Close()
	}
	if thumb := uploadedFile(r, "Thumbnail"); thumb != nil {
		if !video.AllowedThumbnailType(thumb.Header.Get("Content-Type")) {
			redirectVideoError(w, r, "thumbnail must be a JPG or PNG image")
			return
		}
		open, err := attachUpload(&f, thumb, "thumbnail")
		if err != nil {
			internalError(w, err)
			return
		}
		defer open.Close()
	}

	if err := services.Videos.Update(r.Context(), id, f); err != nil {
		redirectVideoError(w, r, userMessage(err))
		return
	}
	http.Redirect(w, r, "/videos", http.StatusSeeOther)
}

// handleVideoDelete handles POST /videos/{id}/delete — reached only through
// the confirmation dialog on the list page.
func handleVideoDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := services.Videos.Delete(r.Context(), id); err != nil {
		redirectVideoError(w, r, userMessage(err))
		return
	}
	http.Redirect(w, r, "/videos", http.StatusSeeOther)
}

// handleVideoPlay handles GET /videos/{id}/play — returns the backend's
// time-limited playback link for the preview player.
func handleVideoPlay(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	signed, err := services.Blobs.SignedVideoURL(r.Context(), id)
	if err != nil {
		writeJSONError(w, err)
		return
	}
	writeJSON(w, map[string]string{"signedUrl": signed})
}

func renderVideoList(w http.ResponseWriter, r *http.Request, page []video.Video, categories []video.Category, lp listutil.ListParams, info listutil.PageInfo, errMsg string) {
	if errMsg == "" {
		errMsg = r.URL.Query().Get("error")
	}
	renderTemplate(w, r, "videos.html", map[string]any{
		"CSRFToken":  csrf.Token(r),
		"Videos":     page,
		"Categories": categories,
		"Levels":     video.Levels,
		"PageInfo":   info,
		"Search":     lp.Search,
		"Category":   lp.Filters["category"],
		"Error":      errMsg,
		"Notice":     r.URL.Query().Get("notice"),
	})
}

func redirectVideoError(w http.ResponseWriter, r *http.Request, msg string) {
	http.Redirect(w, r, "/videos?error="+urlQueryEscape(msg), http.StatusSeeOther)
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
