// Package preview serves a compiled experiment page over HTTP for local
// checking in a browser. Every request to "/" recompiles the workbook, so
// edits show up on reload.
package preview
