package model

import (
	"fmt"
	"sync"

	ort "github.com/yalue/onnxruntime_go"

	"github.com/soilpredictor/soil-api/internal/soil"
)

// Server holds an ONNX session with preallocated tensors. Predict is
// serialized because every call reuses the same tensors.
type Server struct {
	mu          sync.Mutex
	session     *ort.AdvancedSession
	Metadata    Metadata
	inputTensor *ort.Tensor[float32]
	labelTensor *ort.Tensor[int64]
	scoreTensor *ort.Tensor[float32]
}

type options struct {
	libraryPath string
}

type Option func(*options)

// WithLibraryPath points onnxruntime at a specific shared library.
func WithLibraryPath(path string) Option {
	return func(o *options) {
		o.libraryPath = path
	}
}

func NewServer(modelPath, metadataPath string, opts ...Option) (*Server, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	metadata, err := readMetadata(metadataPath)
	if err != nil {
		return nil, &LoadError{Artifact: "model metadata", Path: metadataPath, Err: err}
	}

	s, err := newSession(modelPath, metadata, o)
	if err != nil {
		return nil, &LoadError{Artifact: "model", Path: modelPath, Err: err}
	}
	return s, nil
}

func newSession(modelPath string, metadata Metadata, o options) (*Server, error) {
	if o.libraryPath != "" {
		ort.SetSharedLibraryPath(o.libraryPath)
	}
	if !ort.IsInitialized() {
		if err := ort.InitializeEnvironment(); err != nil {
			return nil, fmt.Errorf("failed to initialize ONNX environment: %w", err)
		}
	}

	s := &Server{Metadata: metadata}

	inputTensor, err := ort.NewEmptyTensor[float32](ort.NewShape(metadata.InputShape...))
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to create input tensor: %w", err)
	}
	s.inputTensor = inputTensor

	var output ort.ArbitraryTensor
	outputShape := ort.NewShape(metadata.OutputShape...)
	if metadata.OutputKind == OutputScores {
		s.scoreTensor, err = ort.NewEmptyTensor[float32](outputShape)
		output = s.scoreTensor
	} else {
		s.labelTensor, err = ort.NewEmptyTensor[int64](outputShape)
		output = s.labelTensor
	}
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to create output tensor: %w", err)
	}

	session, err := ort.NewAdvancedSession(modelPath,
		[]string{metadata.InputName}, []string{metadata.OutputName},
		[]ort.ArbitraryTensor{inputTensor}, []ort.ArbitraryTensor{output},
		nil)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to create ONNX session: %w", err)
	}
	s.session = session

	return s, nil
}

// Predict runs the model on a single sample and returns the class index.
func (s *Server) Predict(v soil.FeatureVector) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return -1, fmt.Errorf("session is closed")
	}

	copy(s.inputTensor.GetData(), v.Float32())

	if err := s.session.Run(); err != nil {
		return -1, fmt.Errorf("inference failed: %w", err)
	}

	if s.scoreTensor != nil {
		return argmax(s.scoreTensor.GetData()), nil
	}
	return int(s.labelTensor.GetData()[0]), nil
}

func (s *Server) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.inputTensor != nil {
		s.inputTensor.Destroy()
		s.inputTensor = nil
	}
	if s.labelTensor != nil {
		s.labelTensor.Destroy()
		s.labelTensor = nil
	}
	if s.scoreTensor != nil {
		s.scoreTensor.Destroy()
		s.scoreTensor = nil
	}
	if s.session != nil {
		s.session.Destroy()
		s.session = nil
	}
	ort.DestroyEnvironment()
}
