// Package params models the generation parameter tree supplied by the
// host pipeline alongside a batch of images.
//
// The tree is a read-only tagged union over the JSON shapes (null, bool,
// number, string, array, object). Objects keep their key insertion order,
// which makes template lookups deterministic: duplicate keys at different
// depths always resolve to the same match regardless of map iteration
// order. Numbers keep their original text so "7.5" and "20" render back
// exactly as written.
package params
