// Package api exposes the family tree over HTTP. Handlers decode and
// validate requests, call the person service and translate its errors into
// status codes and safe messages.
package api
