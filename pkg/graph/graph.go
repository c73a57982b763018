package graph

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

var (
	// ErrEmptyNodeID is returned when a frame node has no ID.
	ErrEmptyNodeID = errors.New("node ID must not be empty")
	// ErrDuplicateNode is returned when two frame nodes share an ID.
	ErrDuplicateNode = errors.New("duplicate node ID")
	// ErrDanglingEdge is returned when an edge names a node the frame lacks.
	ErrDanglingEdge = errors.New("edge references unknown node")
)

// MarshalFrame converts a frame to indented JSON bytes.
func MarshalFrame(f Frame) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteFrame(f, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalFrame decodes and validates a frame.
func UnmarshalFrame(data []byte) (Frame, error) {
	return ReadFrame(bytes.NewReader(data))
}

// WriteFrame writes a frame as indented JSON to w.
func WriteFrame(f Frame, w io.Writer) error {
	if f.Nodes == nil {
		f.Nodes = []Node{}
	}
	if f.Edges == nil {
		f.Edges = []Edge{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteFrameFile writes a frame to a JSON file.
// The file is created with 0644 permissions.
func WriteFrameFile(f Frame, path string) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteFrame(f, out); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// ReadFrame decodes a JSON frame from r and validates it.
func ReadFrame(r io.Reader) (Frame, error) {
	var f Frame
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return Frame{}, fmt.Errorf("decode: %w", err)
	}
	if err := f.Validate(); err != nil {
		return Frame{}, err
	}
	return f, nil
}

// ReadFrameFile reads a frame from a JSON file.
func ReadFrameFile(path string) (Frame, error) {
	in, err := os.Open(path)
	if err != nil {
		return Frame{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer in.Close()
	return ReadFrame(in)
}
