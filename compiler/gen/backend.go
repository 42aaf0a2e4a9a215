package gen

// File is one emitted output file, named relative to its backend's output
// root.
type File struct {
	Name string
	Body []byte
}

// A Backend renders one target profile of the catalog model. Implementations
// live in the java (managed) and cpp (manual) subpackages; the driver treats
// them uniformly. Files must render the whole tree for the graph before any
// output is written, so a failing backend leaves no partial tree behind.
type Backend interface {
	// Name identifies the backend in logs and errors.
	Name() string
	// OutDir is the output root, cleared and recreated per run.
	OutDir() string
	// SupportDir is the directory the static support files are copied
	// from. Empty disables the copy step.
	SupportDir() string
	// SupportFiles lists the fixed support file names copied verbatim
	// from SupportDir into OutDir.
	SupportFiles() []string
	// Files renders every generated file for the graph, in emission
	// order.
	Files(g *Graph) ([]File, error)
}
