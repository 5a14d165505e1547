// Package bindgen compiles reactive html templates into static markup plus
// a binding-setup routine.
//
// The pipeline consists of:
//   - [Parser]: a character state machine that builds an element tree with
//     byte offsets, shielding embedded ${...} expressions from markup parsing
//   - [Classify]: recognizes text, attribute, style, conditional, list and
//     event bindings and parses their directive arguments
//   - [Generator]: assigns anchors, rewrites the markup through the edit
//     engine and emits the runtime call sequence
//
// Additionally, [FindTemplates], [StaticValues] and [RewireImports] operate
// on the enclosing script source.
package bindgen
