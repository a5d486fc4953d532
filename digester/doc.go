// Package digester calculates and verifies IKH digests of
// files. Digests are stored in companion .ikh files next to the
// file they describe, so a later run can tell whether it
// changed.
package digester
