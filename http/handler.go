package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/sagarc03/filedock"
)

// FileService is the file-facing surface the handlers depend on.
type FileService interface {
	Upload(ctx context.Context, in filedock.UploadInput, content io.Reader) (filedock.File, error)
	Download(ctx context.Context, filename string, fileID, userID int64) (io.ReadCloser, string, error)
	List(ctx context.Context, q filedock.FileListQuery) (filedock.FileListResult, error)
}

// UserService is the registration surface the handlers depend on.
type UserService interface {
	Register(ctx context.Context, username, email string) (filedock.User, error)
}

type CORSConfig struct {
	Enabled          bool     `mapstructure:"enabled" yaml:"enabled"`
	AllowedOrigins   []string `mapstructure:"allowed_origins" yaml:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods" yaml:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers" yaml:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers" yaml:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials" yaml:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age" yaml:"max_age"`
}

type HandlerConfig struct {
	// MaxUploadSize caps the request body of uploads, in bytes.
	// Zero or negative disables the cap.
	MaxUploadSize int64
	CORS          CORSConfig
}

// Handler provides HTTP handlers for file hosting operations.
type Handler struct {
	config HandlerConfig
	files  FileService
	users  UserService
}

// NewHandler creates a new Handler with the given configuration and services.
func NewHandler(config *HandlerConfig, files FileService, users UserService) *Handler {
	return &Handler{
		config: *config,
		files:  files,
		users:  users,
	}
}

// Router returns an http.Handler with the file hosting routes configured.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(RequestLogger())

	if h.config.CORS.Enabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   h.config.CORS.AllowedOrigins,
			AllowedMethods:   h.config.CORS.AllowedMethods,
			AllowedHeaders:   h.config.CORS.AllowedHeaders,
			ExposedHeaders:   h.config.CORS.ExposedHeaders,
			AllowCredentials: h.config.CORS.AllowCredentials,
			MaxAge:           h.config.CORS.MaxAge,
		}))
	}

	r.Route("/api/files", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(MaxBodySize(h.config.MaxUploadSize))
			r.Post("/upload", h.handleUpload)
		})
		r.Get("/list", h.handleList)
		r.Get("/download/{filename}", h.handleDownload)
		r.Post("/addUser", h.handleAddUser)
	})

	return r
}

// FileInfo is the JSON representation of a stored file record.
type FileInfo struct {
	ID            int64     `json:"id"`
	FileName      string    `json:"fileName"`
	FileType      string    `json:"fileType"`
	UserID        int64     `json:"userId"`
	LastUpdatedOn time.Time `json:"lastUpdatedOn"`
}

func toFileInfo(f filedock.File) FileInfo {
	return FileInfo{
		ID:            f.ID,
		FileName:      f.FileName,
		FileType:      f.FileType,
		UserID:        f.UserID,
		LastUpdatedOn: f.LastUpdatedOn,
	}
}

type UploadResponse struct {
	Message string   `json:"message"`
	File    FileInfo `json:"file"`
}

type ListResponse struct {
	Files      []FileInfo `json:"files"`
	TotalCount int64      `json:"totalCount"`
	TotalPages int        `json:"totalPages"`
	Page       int        `json:"page"`
	PageSize   int        `json:"pageSize"`
}

type AddUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

type AddUserResponse struct {
	Message  string `json:"message"`
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func (h *Handler) handleUpload(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			WriteError(w, http.StatusBadRequest, "file_too_large", "File size exceeds the maximum limit.")
			return
		}
		WriteError(w, http.StatusBadRequest, "invalid_request", "Multipart form field 'file' is required")
		return
	}
	defer func() { _ = file.Close() }()

	userID, err := strconv.ParseInt(r.FormValue("userId"), 10, 64)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", "Form field 'userId' must be an integer")
		return
	}

	in := filedock.UploadInput{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		UserID:      userID,
	}

	created, err := h.files.Upload(r.Context(), in, file)
	if err != nil {
		HandleError(w, err)
		return
	}

	_ = WriteJSON(w, http.StatusOK, UploadResponse{
		Message: "File uploaded successfully: " + created.FileName,
		File:    toFileInfo(created),
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseOptionalInt64(w, r, "userId")
	if !ok {
		return
	}
	page, ok := parseOptionalInt(w, r, "page")
	if !ok {
		return
	}
	size, ok := parseOptionalInt(w, r, "size")
	if !ok {
		return
	}

	query := filedock.FileListQuery{
		UserID:     userID,
		NamePrefix: r.URL.Query().Get("prefix"),
		Page:       page,
		Size:       size,
	}

	result, err := h.files.List(r.Context(), query)
	if err != nil {
		HandleError(w, err)
		return
	}

	files := make([]FileInfo, 0, len(result.Items))
	for _, f := range result.Items {
		files = append(files, toFileInfo(f))
	}

	_ = WriteJSON(w, http.StatusOK, ListResponse{
		Files:      files,
		TotalCount: result.TotalCount,
		TotalPages: result.TotalPages,
		Page:       result.Page,
		PageSize:   result.PageSize,
	})
}

func (h *Handler) handleDownload(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")

	fileID, err := strconv.ParseInt(r.URL.Query().Get("fileId"), 10, 64)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", "Query parameter 'fileId' must be an integer")
		return
	}

	userID, err := strconv.ParseInt(r.URL.Query().Get("userId"), 10, 64)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", "Query parameter 'userId' must be an integer")
		return
	}

	content, contentType, err := h.files.Download(r.Context(), filename, fileID, userID)
	if err != nil {
		HandleError(w, err)
		return
	}
	defer func() { _ = content.Close() }()

	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": filename})
	w.Header().Set("Content-Disposition", disposition)
	w.Header().Set("Content-Type", contentType)
	_, _ = io.Copy(w, content)
}

func (h *Handler) handleAddUser(w http.ResponseWriter, r *http.Request) {
	var req AddUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", "Request body must be JSON with 'username' and 'email'")
		return
	}

	user, err := h.users.Register(r.Context(), req.Username, req.Email)
	if err != nil {
		HandleError(w, err)
		return
	}

	_ = WriteJSON(w, http.StatusOK, AddUserResponse{
		Message:  "User added successfully!",
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	})
}

// parseOptionalInt64 reads an optional integer query parameter. A missing or
// empty parameter yields zero; a malformed one writes a 400 and returns false.
func parseOptionalInt64(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, true
	}

	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", "Query parameter '"+name+"' must be an integer")
		return 0, false
	}

	return v, true
}

func parseOptionalInt(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	v, ok := parseOptionalInt64(w, r, name)
	return int(v), ok
}
