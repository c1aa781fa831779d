// Package cipher implements the trivial reversible content cipher: a
// repeating-key XOR over the content bytes. Applying it twice with the
// same key restores the original. It obscures casual reading of the note
// files and is not a security boundary.
package cipher

// Apply XORs content with the repeating key. An empty key returns the
// content unchanged.
func Apply(content, key string) string {
	if key == "" {
		return content
	}
	out := []byte(content)
	for i := range out {
		out[i] ^= key[i%len(key)]
	}
	return string(out)
}
