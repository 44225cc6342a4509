// Package filedock implements a file-hosting backend: users register with a
// username and email, upload files to a blob store, and list or download the
// files they own. File and user records live in a relational metadata store
// (PostgreSQL or SQLite); file bytes live in an S3-compatible object store or
// a local directory.
//
// # Key Components
//
//   - FileService: upload, download, and listing with ownership checks
//   - UserService: registration with email/username dedup rules
//   - FileRepo, UserRepo: interfaces for metadata persistence
//   - BlobStore: interface for object storage (s3 and filesystem backends)
//
// # Storage Keys
//
// A file's blob key is derived from its metadata record: "<id>_<name>", where
// id is the database-generated identifier and name the client-supplied
// filename. Because identifiers are unique the key is collision-free by
// construction, even for concurrent uploads of the same name, and download
// can rebuild the key without a separately stored field.
//
// See the http package for the REST API and the database subpackages for
// metadata backend implementations.
package filedock
