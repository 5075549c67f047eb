package export

import (
	"github.com/strayfield/roadgrade/internal/road"
)

// ObjSink writes every published mesh to a fixed OBJ path, so a builder
// wired to it keeps the file current across Generate calls. PublishMesh
// cannot return an error; the sink keeps the last write failure for the
// caller to check.
type ObjSink struct {
	Path string
	Name string

	err error
}

var _ road.MeshSink = (*ObjSink)(nil)

// NewObjSink creates a sink writing to path under the given OBJ object
// name.
func NewObjSink(path, name string) *ObjSink {
	return &ObjSink{Path: path, Name: name}
}

// PublishMesh writes the mesh to the sink's path, overwriting the
// previous export.
func (s *ObjSink) PublishMesh(m *road.Mesh) {
	s.err = SaveOBJ(s.Path, s.Name, m)
}

// Err returns the error of the most recent publish, if any.
func (s *ObjSink) Err() error {
	return s.err
}
