// Package http provides the HTTP server functionality for filedock.
//
// This package implements a small JSON API over the file and user services,
// covering registration, multipart upload, owner-scoped download, and
// paginated listing.
//
// # Features
//
//   - Multipart upload with a configurable body size cap
//   - Download streaming with Content-Disposition attachment headers
//   - Paginated listing with optional owner and name-prefix filters
//   - User registration with JSON request bodies
//   - Request logging middleware with per-request ids
//   - JSON error responses mapped from service error kinds
//   - Configurable CORS support
//
// # Routes
//
//	POST /api/files/upload              multipart form: file, userId
//	GET  /api/files/list                query: userId, page, size, prefix
//	GET  /api/files/download/{filename} query: fileId, userId
//	POST /api/files/addUser             JSON body: username, email
//
// # Usage
//
// Create a handler with HandlerConfig:
//
//	handlerCfg := http.HandlerConfig{
//	    MaxUploadSize: 32 << 20,
//	}
//	handler := http.NewHandler(&handlerCfg, fileService, userService)
//	router := handler.Router()
//	http.ListenAndServe(":8080", router)
//
// The service parameters must implement the FileService and UserService
// interfaces. Error values from the services are translated to status codes
// by HandleError: not found to 404, invalid input to 400, access denied to
// 403, conflicts to 409, and anything else to 500.
package http
