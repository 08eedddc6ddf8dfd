package conversation

import "errors"

// Error kinds for the message pipeline. Failures in a required stage
// (validation, analysis) surface to the caller; failures in a stage with a
// degraded fallback (generation, persistence) are absorbed where they occur.
var (
	ErrEmptyMessage      = errors.New("message text is required")
	ErrAnalysis          = errors.New("text analysis failed")
	ErrAnalysisTimeout   = errors.New("text analysis timed out")
	ErrGeneration        = errors.New("response generation failed")
	ErrGenerationTimeout = errors.New("response generation timed out")
	ErrTemplateBinding   = errors.New("template placeholder unresolved")
	ErrPersistence       = errors.New("conversation persistence failed")
)
