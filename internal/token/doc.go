// Package token defines lexical token kinds for the chirp format.
// Invariants:
//   - Token.Span matches the token's source bytes exactly, including the
//     surrounding quotes on string literals.
//   - There are no keyword kinds: `use`, `fn`, `pub` and `code` are plain
//     identifiers that the grammar matches by text, in context.
//   - Identifiers absorb every byte that is not punctuation, quote or ASCII
//     whitespace. A trailing '!' on a statement head marks a template call
//     and is part of the identifier token; `use` paths such as `widgets/`
//     keep their slashes for the same reason.
//   - Whitespace and //-comments never appear in the token stream.
package token
