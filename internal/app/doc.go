// Package app contains the compiler's application logic: turning a
// configuration into a logger, resolving settings, and running the
// workbook -> experiment -> page pipeline for one file, a directory of
// files, or a preview server. It is decoupled from any specific entrypoint
// like a CLI.
package app
