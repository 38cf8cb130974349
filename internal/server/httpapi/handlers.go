package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrijs2005/fileshare/internal/common"
	"github.com/dmitrijs2005/fileshare/internal/format"
	"github.com/dmitrijs2005/fileshare/internal/server/services"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type shareEntry struct {
	UserID string `json:"user_id"`
	Action string `json:"action"`
}

type shareBody struct {
	Entries []shareEntry `json:"entries"`
}

type fileResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Extension string `json:"extension"`
	SizeBytes int64  `json:"size_bytes"`
	Size      string `json:"size"`
	Uploaded  string `json:"uploaded"`
	Level     string `json:"level,omitempty"`
}

type listResponse struct {
	Files      []fileResponse `json:"files"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	TotalCount int64          `json:"total_count"`
	TotalSize  string         `json:"total_size"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, fmt.Errorf("%w: malformed body", common.ErrorValidation))
		return
	}

	user, err := s.users.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, map[string]string{
		"id":    user.ID,
		"email": user.Email,
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, fmt.Errorf("%w: malformed body", common.ErrorValidation))
		return
	}

	token, err := s.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength > s.cfg.MaxUploadBytes {
		s.writeError(w, r, common.ErrorPayloadTooLarge)
		return
	}

	part, header, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, r, fmt.Errorf("%w: missing file part", common.ErrorValidation))
		return
	}
	defer part.Close()

	file, err := s.files.Upload(r.Context(), userIDFrom(r.Context()),
		header.Filename, header.Size, part)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, fileResponse{
		ID:        file.ID,
		Name:      file.OriginalFilename,
		Extension: file.FileExtension,
		SizeBytes: file.Size,
		Size:      format.FileSize(file.Size),
		Uploaded:  format.UploadTime(file.UploadDate),
	})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))

	listing, err := s.files.List(r.Context(), userIDFrom(r.Context()), page, pageSize)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := listResponse{
		Files:      make([]fileResponse, 0, len(listing.Files)),
		Page:       listing.Page,
		PageSize:   listing.PageSize,
		TotalCount: listing.TotalCount,
		TotalSize:  listing.TotalSize,
	}
	for _, entry := range listing.Files {
		resp.Files = append(resp.Files, fileResponse{
			ID:        entry.ID,
			Name:      entry.Name,
			Extension: entry.Extension,
			SizeBytes: entry.SizeBytes,
			Size:      entry.Size,
			Uploaded:  entry.Uploaded,
			Level:     string(entry.Level),
		})
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	url, err := s.files.Download(r.Context(), userIDFrom(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"url": url})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.files.Delete(r.Context(), userIDFrom(r.Context()), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleShare(w http.ResponseWriter, r *http.Request) {
	var body shareBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, r, fmt.Errorf("%w: malformed body", common.ErrorValidation))
		return
	}

	reqs := make([]services.ShareRequest, 0, len(body.Entries))
	for _, e := range body.Entries {
		reqs = append(reqs, services.ShareRequest{
			UserID: e.UserID,
			Action: services.ShareAction(e.Action),
		})
	}

	if err := s.files.Share(r.Context(), userIDFrom(r.Context()), chi.URLParam(r, "id"), reqs); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Encode failures after WriteHeader cannot be reported to the client.
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps sentinel errors onto HTTP status codes.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, common.ErrorUnauthorized), errors.Is(err, common.ErrInvalidToken):
		status = http.StatusUnauthorized
	case errors.Is(err, common.ErrorPermissionDenied):
		status = http.StatusForbidden
	case errors.Is(err, common.ErrorNotFound):
		status = http.StatusNotFound
	case errors.Is(err, common.ErrorPayloadTooLarge):
		status = http.StatusRequestEntityTooLarge
	case errors.Is(err, common.ErrorAlreadyExists):
		status = http.StatusConflict
	case errors.Is(err, common.ErrorValidation),
		errors.Is(err, common.ErrorInvalidFilename),
		errors.Is(err, common.ErrorSelfShare),
		errors.Is(err, common.ErrorUserNotActive):
		status = http.StatusBadRequest
	case errors.Is(err, common.ErrorStorage):
		status = http.StatusBadGateway
	}

	if status >= http.StatusInternalServerError {
		s.log.Error(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
