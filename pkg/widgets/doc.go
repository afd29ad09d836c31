// Package widgets is a reference renderer catalog for easel collections.
//
// It renders RadioGroup, CheckboxGroup, Box and Typography elements to
// markdown text outputs, suitable for terminals (via glamour) and for the
// HTTP API. Answer state is read through the store's field bindings, so the
// interpreter must inject node paths under PathProp (see NewInterpreter).
package widgets
