// Package binder decodes request data into tagged structs for typed handlers.
//
// Form reads urlencoded and multipart bodies (`form` tags), Query reads the
// URL query (`query` tags). Supported field types are strings, integers,
// floats, bools, pointers to those for optional values, and slices for
// repeated keys.
package binder
