// Package preflight provides readiness checks for the source and destination
// trees and the external binaries musiclink depends on.
//
// These checks run in two contexts:
//   - The root command calls RunAll before linking and stops on the first
//     failed check, so a run never starts against an unreadable source or an
//     unwritable destination.
//   - The CLI "musiclink check" command prints every result as a report.
package preflight
