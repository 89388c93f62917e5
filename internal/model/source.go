package model

// Path represents a file system path.
type Path string

// File represents a source file on disk.
type File struct {
	FullPath  Path
	ShortPath Path
	Hash      string
}

// Source is a PHP file selected for fixing.
type Source struct {
	Origin *File
}
