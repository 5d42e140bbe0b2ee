// Package backend is the HTTP client for the notedeck backend, the service
// that fronts the Canvas course catalog and stores note files.
//
// Endpoints (all JSON):
//
//	GET    /api/config                 -> {canvas_url, has_token}
//	POST   /api/config                 {canvas_url, canvas_token} -> {success, error}
//	POST   /api/config/test            {canvas_url, canvas_token} -> {success, error}
//	GET    /api/courses                -> [{id, name, course_code, term, end_at}]
//	POST   /api/courses                {} -> {success}
//	GET    /api/files/{course}         -> [{name}]
//	GET    /api/files/{course}/{name}  -> {content}
//	POST   /api/files/{course}         {filename, content} -> {success}
//	DELETE /api/files/{course}/{name}  -> {success}
//
// Mutating endpoints answer with a Result; success=false is reported as an
// error wrapping ErrRejected. Requests time out after five seconds and are
// never retried.
package backend
