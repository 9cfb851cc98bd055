package docx2jats

import (
	"context"
	"fmt"

	"github.com/alnah/go-docx2jats/internal/ident"
	"github.com/alnah/go-docx2jats/internal/pipeline"
)

// Service orchestrates the conversion pipeline: one synchronous engine
// invocation per direction, followed by the direction's post-processing
// passes over the complete output buffer. Conversions are independent; the
// only shared state is the id generator, which is safe for concurrent use.
type Service struct {
	cfg      serviceConfig
	engine   Engine
	ids      ident.Generator
	mdPost   *pipeline.MarkdownPostprocessor
	jatsPost *pipeline.JATSPostprocessor
}

// New creates a Service with default configuration.
// Use options to customize behavior (e.g., WithTimeout, WithEngine).
func New(opts ...Option) *Service {
	s := &Service{
		cfg: serviceConfig{
			timeout: defaultTimeout,
			binary:  DefaultPandocBinary,
		},
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.ids == nil {
		s.ids = ident.RandomGenerator{}
	}

	// Create engine if not injected (e.g., by tests)
	if s.engine == nil {
		s.engine = NewPandocEngine(s.cfg.binary)
	}

	s.mdPost = &pipeline.MarkdownPostprocessor{}
	s.jatsPost = pipeline.NewJATSPostprocessor(s.ids)

	return s
}

// ConvertDocx converts a DOCX file to normalized Markdown: engine output
// with emphasis fragmentation repaired and image dimensions stripped.
func (s *Service) ConvertDocx(ctx context.Context, docxPath string) (string, error) {
	if docxPath == "" {
		return "", ErrEmptyInputPath
	}

	md, err := s.invoke(ctx, func(ectx context.Context) (string, error) {
		return s.engine.ToMarkdown(ectx, docxPath)
	})
	if err != nil {
		return "", fmt.Errorf("converting DOCX to Markdown: %w", err)
	}

	return s.mdPost.Process(ctx, md), nil
}

// ConvertMarkdown converts Markdown content to restructured JATS XML:
// engine output with figure pairs synthesized into <fig> elements and all
// body content wrapped in identified <sec> containers.
func (s *Service) ConvertMarkdown(ctx context.Context, markdown string) (string, error) {
	if markdown == "" {
		return "", ErrEmptyMarkdown
	}

	xml, err := s.invoke(ctx, func(ectx context.Context) (string, error) {
		return s.engine.ToJATS(ectx, markdown)
	})
	if err != nil {
		return "", fmt.Errorf("converting Markdown to JATS: %w", err)
	}

	return s.jatsPost.Process(ctx, xml), nil
}

// ConvertDocxToJATS chains both directions: DOCX to normalized Markdown,
// then Markdown to restructured JATS XML.
func (s *Service) ConvertDocxToJATS(ctx context.Context, docxPath string) (string, error) {
	md, err := s.ConvertDocx(ctx, docxPath)
	if err != nil {
		return "", err
	}
	return s.ConvertMarkdown(ctx, md)
}

// EngineVersion reports the engine's version line for health checks.
func (s *Service) EngineVersion(ctx context.Context) (string, error) {
	return s.engine.Version(ctx)
}

// invoke runs one engine call under the configured timeout. Post-processing
// runs outside the timeout: it is pure in-memory work with no suspension
// points.
func (s *Service) invoke(ctx context.Context, call func(context.Context) (string, error)) (string, error) {
	ectx, cancel := context.WithTimeout(ctx, s.cfg.timeout)
	defer cancel()
	return call(ectx)
}
