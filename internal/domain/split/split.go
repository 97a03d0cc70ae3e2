// Package split divides a combined report body into its constituent
// documents by scanning for a literal byte boundary. The body is treated
// as an opaque byte string; no parsing of the content happens here.
package split

import "bytes"

// Split cuts body at every non-overlapping occurrence of boundary and
// returns the resulting segments in order. Each boundary occurrence starts
// a new segment, so the boundary bytes remain with the segment they
// introduce. The first segment always begins at offset 0; when the body
// starts with the boundary, that first segment is empty.
//
// Split is total: it never fails, and concatenating the returned segments
// reproduces body byte for byte. An empty boundary or a body with no
// occurrence yields a single segment holding the whole body. An empty body
// yields a single empty segment.
func Split(body, boundary []byte) [][]byte {
	if len(boundary) == 0 {
		return [][]byte{body}
	}

	var segments [][]byte
	start := 0
	search := 0
	for {
		i := bytes.Index(body[search:], boundary)
		if i < 0 {
			break
		}
		cut := search + i
		segments = append(segments, body[start:cut])
		start = cut
		search = cut + len(boundary)
	}
	segments = append(segments, body[start:])

	return segments
}
