// Package magetasks provides organized build tasks for the printer project.
//
// Tasks report through a printer.Printer: section titles, one aligned line per
// command and a summary table when several sections run together.
package magetasks
