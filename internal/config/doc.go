// Package config loads the optional compiler settings file.
//
// Settings are written in HCL and decoded with gohcl into Settings. Every
// attribute is optional; an absent attribute leaves the compiler default in
// place, and command-line flags override whatever the file sets. The file is
// looked up explicitly (-settings) or as expc.hcl next to the compiled
// workbook.
package config
