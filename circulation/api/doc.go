// Package api exposes the circulation features over HTTP with gin.
//
// Every route maps to exactly one command or query handler, the handlers are wrapped with
// the observable wrappers. Access control is a bearer token middleware which also rejects
// tokens of members that were deactivated or removed since the token was issued.
package api
