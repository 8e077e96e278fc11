// Package httpapi exposes the Cortex services over HTTP for the desktop
// app. All routes live under /api; responses use snake_case JSON and
// errors carry a machine tag plus a human message.
package httpapi
