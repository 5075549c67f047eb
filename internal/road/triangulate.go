package road

// Triangulate returns the triangle index buffer for a tube of
// sectionCount cross-sections with the fixed 4-per-section vertex layout
// (topLeft, topRight, bottomLeft, bottomRight). It is a pure function of
// the count: each adjacent pair of sections contributes four quads (top,
// bottom, left, right) of two triangles each, and the open faces of the
// first and last section are closed with two cap triangles apiece.
//
// For n sections the buffer holds (n-1)*8 + 4 triangles; one section or
// fewer yields no triangles. Every index is below n*4.
func Triangulate(sectionCount int) []uint32 {
	if sectionCount <= 1 {
		return nil
	}

	indices := make([]uint32, 0, ((sectionCount-1)*8+4)*3)
	for i := 0; i < sectionCount-1; i++ {
		v := uint32(i * 4)
		indices = append(indices,
			// Top quad.
			v, v+4, v+5,
			v+4, v+5, v+1,
			// Bottom quad.
			v+2, v+7, v+6,
			v+2, v+3, v+7,
			// Left quad.
			v, v+2, v+6,
			v, v+6, v+4,
			// Right quad.
			v+1, v+5, v+7,
			v+1, v+7, v+3,
		)
	}

	// Front cap closes the first section's open face.
	indices = append(indices, 0, 1, 3, 0, 3, 2)

	// Back cap closes the last section's open face.
	u := uint32((sectionCount - 1) * 4)
	indices = append(indices, u, u+2, u+3, u, u+3, u+1)

	return indices
}
