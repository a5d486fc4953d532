// Package steptable presents IKH steps and rounds: the
// per-character formula, a styled terminal table, a round by
// round state trace, and JSON or YAML records for other tools.
package steptable
