package model

// Artifact is one split document written to the output directory.
type Artifact struct {
	Index int    // Position in the combined report, starting at 0.
	Name  string // File name, e.g. "report_0003.xml".
	Size  int64
}
