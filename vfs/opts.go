package vfs

// A SrcOption is passed to Src() to change default options
type SrcOption interface {
	applyToSrc(s *src)
}

type srcOption func(s *src)

func (o srcOption) applyToSrc(s *src) { o(s) }

// Read controls if file contents are read. Files that aren't read are null.
func Read(read bool) SrcOption {
	return srcOption(func(s *src) {
		s.read = read
	})
}

// SourceMaps attaches an empty source map to every file read
func SourceMaps(enable bool) SrcOption {
	return srcOption(func(s *src) {
		s.sourceMaps = enable
	})
}

// Base overrides the base directory computed from each glob
func Base(dir string) SrcOption {
	return srcOption(func(s *src) {
		s.base = dir
	})
}

// A DestOption is passed to Dest() to change default options
type DestOption interface {
	applyToDest(d *dest)
}

type destOption func(d *dest)

func (o destOption) applyToDest(d *dest) { o(d) }

// MapFiles writes attached source maps next to their files and links them
func MapFiles(enable bool) DestOption {
	return destOption(func(d *dest) {
		d.mapFiles = enable
	})
}
