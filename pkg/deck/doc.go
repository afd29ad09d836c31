// Package deck reads authored decks (YAML or JSON files) into Collections and
// offers typed views over untyped elements for authoring-time checks.
package deck
