// Package cli turns the expc command line into an app.Config. It owns the
// usage text, flag validation, and the ExitError that carries a process exit
// code back to main.
package cli
