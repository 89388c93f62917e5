package model

// FixCache remembers which files were clean under a given configuration.
// Signature identifies the resolved rule configuration; Hashes maps a file
// path to the SHA-256 of its content after the last successful run.
type FixCache struct {
	Version   string          `yaml:"version"`
	Signature string          `yaml:"signature"`
	Hashes    map[Path]string `yaml:"hashes"`
}

// NewFixCache returns an empty cache bound to signature.
func NewFixCache(version, signature string) *FixCache {
	return &FixCache{
		Version:   version,
		Signature: signature,
		Hashes:    make(map[Path]string),
	}
}

// IsFresh reports whether path is recorded with the given hash.
func (c *FixCache) IsFresh(path Path, hash string) bool {
	if c == nil || hash == "" {
		return false
	}

	return c.Hashes[path] == hash
}

// Record stores the hash of a clean file.
func (c *FixCache) Record(path Path, hash string) {
	if c.Hashes == nil {
		c.Hashes = make(map[Path]string)
	}

	c.Hashes[path] = hash
}

// Forget drops path from the cache.
func (c *FixCache) Forget(path Path) {
	delete(c.Hashes, path)
}
