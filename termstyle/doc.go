// Package termstyle builds lipgloss renderers for the terminal
// views and holds the shared color theme. The color mode
// ("auto", "always" or "never") decides whether output carries
// ANSI escapes; tests and pipes use "never".
package termstyle
