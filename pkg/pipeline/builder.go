package pipeline

// DialogueBuilder assembles the utterance pipeline in three bands:
// pre-processors (transcript shaping), the core dialogue stages, and
// post-processors (output shaping).
type DialogueBuilder struct {
	pre  []FrameProcessor
	core []FrameProcessor
	post []FrameProcessor
}

func NewDialogueBuilder() *DialogueBuilder {
	return &DialogueBuilder{}
}

func (b *DialogueBuilder) WithProcessor(p FrameProcessor) *DialogueBuilder {
	b.core = append(b.core, p)
	return b
}

func (b *DialogueBuilder) WithProcessorList(list []FrameProcessor) *DialogueBuilder {
	for _, p := range list {
		if p != nil {
			b.core = append(b.core, p)
		}
	}
	return b
}

// WithCapture inserts a capture-side processor (e.g. server recognition)
// ahead of transcript shaping.
func (b *DialogueBuilder) WithCapture(p FrameProcessor) *DialogueBuilder {
	b.pre = append(b.pre, p)
	return b
}

func (b *DialogueBuilder) WithTranscript(p FrameProcessor) *DialogueBuilder {
	b.pre = append(b.pre, p)
	return b
}

func (b *DialogueBuilder) WithNavigation(p FrameProcessor) *DialogueBuilder {
	return b.WithProcessor(p)
}

func (b *DialogueBuilder) WithClassifier(p FrameProcessor) *DialogueBuilder {
	return b.WithProcessor(p)
}

func (b *DialogueBuilder) WithPolicy(p FrameProcessor) *DialogueBuilder {
	return b.WithProcessor(p)
}

func (b *DialogueBuilder) WithReasoning(p FrameProcessor) *DialogueBuilder {
	return b.WithProcessor(p)
}

func (b *DialogueBuilder) WithSynthesis(p FrameProcessor) *DialogueBuilder {
	return b.WithProcessor(p)
}

func (b *DialogueBuilder) WithSanitizer(p FrameProcessor) *DialogueBuilder {
	b.post = append(b.post, p)
	return b
}

func (b *DialogueBuilder) WithLimiter(p FrameProcessor) *DialogueBuilder {
	b.post = append(b.post, p)
	return b
}

func (b *DialogueBuilder) Build(cfg Config) Orchestrator {
	return NewWithPipelineConfig(PipelineConfig{
		Config:     cfg,
		Processors: append(append(b.pre, b.core...), b.post...),
	})
}
