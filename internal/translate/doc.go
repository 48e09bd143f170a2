// Package translate is the pipeline that turns one CSL source file into
// generated text. It owns the capability interfaces (Parser, SkinLoader,
// Renderer) and the error taxonomy, and it never writes partial output: the
// destination file is replaced only after every stage succeeded.
package translate
