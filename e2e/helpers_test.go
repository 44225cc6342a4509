package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sagarc03/filedock"
	"github.com/sagarc03/filedock/database"
	"github.com/sagarc03/filedock/filesystem"
	filedockhttp "github.com/sagarc03/filedock/http"
	"github.com/stretchr/testify/require"
)

// startServer wires the full stack (sqlite metadata, filesystem blobs, HTTP
// handler) and returns a running test server.
func startServer(t *testing.T) *httptest.Server {
	t.Helper()

	ctx := context.Background()
	tmpDir := t.TempDir()

	repos, closeDB, err := database.Connect(ctx, database.Config{
		Type:   "sqlite",
		DSN:    filepath.Join(tmpDir, "filedock.db"),
		Tables: filedock.Tables{Files: "file_data", Users: "users"},
	})
	require.NoError(t, err, "connect database")
	t.Cleanup(closeDB)

	storageDir := filepath.Join(tmpDir, "blobs")
	require.NoError(t, os.MkdirAll(storageDir, 0o750))

	root, err := os.OpenRoot(storageDir)
	require.NoError(t, err, "open storage root")
	t.Cleanup(func() { _ = root.Close() })

	blobs := filesystem.NewFileStorage(root)

	fileService := filedock.NewFileService(repos.Files, repos.Users, blobs, filedock.FileServiceConfig{})
	userService := filedock.NewUserService(repos.Users)

	handler := filedockhttp.NewHandler(&filedockhttp.HandlerConfig{}, fileService, userService)

	server := httptest.NewServer(handler.Router())
	t.Cleanup(server.Close)

	return server
}

// addUser registers a user over the API and returns the assigned id.
func addUser(t *testing.T, server *httptest.Server, username, email string) int64 {
	t.Helper()

	body := fmt.Sprintf(`{"username":%q,"email":%q}`, username, email)
	resp, err := http.Post(server.URL+"/api/files/addUser", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusOK, resp.StatusCode, "addUser %s", username)

	var decoded filedockhttp.AddUserResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return decoded.ID
}

// uploadFile uploads content over the API and returns the stored record.
func uploadFile(t *testing.T, server *httptest.Server, filename, contentType, content string, userID int64) filedockhttp.FileInfo {
	t.Helper()

	resp := uploadRaw(t, server, filename, contentType, content, fmt.Sprintf("%d", userID))
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusOK, resp.StatusCode, "upload %s", filename)

	var decoded filedockhttp.UploadResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return decoded.File
}

// uploadRaw performs a multipart upload without asserting on the status.
func uploadRaw(t *testing.T, server *httptest.Server, filename, contentType, content, userID string) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	header := make(map[string][]string)
	header["Content-Disposition"] = []string{fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename)}
	header["Content-Type"] = []string{contentType}

	part, err := w.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)

	require.NoError(t, w.WriteField("userId", userID))
	require.NoError(t, w.Close())

	req, err := http.NewRequest(http.MethodPost, server.URL+"/api/files/upload", &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

// listFiles queries the list endpoint with raw query parameters.
func listFiles(t *testing.T, server *httptest.Server, query string) filedockhttp.ListResponse {
	t.Helper()

	resp, err := http.Get(server.URL + "/api/files/list" + query)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var decoded filedockhttp.ListResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return decoded
}

// downloadRaw fetches a file; callers assert status and read the body.
func downloadRaw(t *testing.T, server *httptest.Server, filename string, fileID, userID int64) *http.Response {
	t.Helper()

	url := fmt.Sprintf("%s/api/files/download/%s?fileId=%d&userId=%d", server.URL, filename, fileID, userID)
	resp, err := http.Get(url)
	require.NoError(t, err)
	return resp
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()

	defer func() { _ = resp.Body.Close() }()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}
