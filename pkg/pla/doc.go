// Package pla models the ternary truth tables exchanged with the
// espresso logic minimizer and encodes them in its line-oriented text
// format.
//
// A document is a sequence of keyword lines (".i", ".o", ".mv", ".ob",
// ".p", ".type") followed by body rows and terminated by ".e". This
// package handles the single-valued form; package mv builds the
// multi-valued form on the same keywords.
package pla
