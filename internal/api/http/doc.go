// Package http exposes the launcher over gin.
//
// GetApps answers both /api/method/get_apps and the host's dotted method
// path with the {"message": [...]} envelope the home page script expects.
package http
