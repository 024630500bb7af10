// Package template parses name templates and resolves their tokens
// against a parameter tree and a timestamp.
//
// A template is a comma-separated token list, e.g.
//
//	sampler_name, cfg, steps, %F %H-%M-%S
//
// Four token kinds exist, classified by static pattern matching:
//
//   - date directives start with '%' and format the supplied timestamp
//     (strftime-style),
//   - node references look like "5.seed" and address tree[5].inputs.seed
//     directly,
//   - path markers start with "./" or "../" and name a literal folder
//     segment,
//   - everything else is a literal, resolved by a depth-first,
//     first-match search over the tree.
//
// Resolution never fails: a token that cannot be resolved is simply
// absent from the result and contributes nothing to the built name.
package template
