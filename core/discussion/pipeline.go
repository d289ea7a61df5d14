// ABOUTME: Discussion pipeline turning a Reddit thread payload into Markdown
// ABOUTME: Parse failures are logged and degrade to an empty result

// Package discussion renders Reddit-style comment threads as Markdown.
package discussion

import (
	"time"

	"digests-reader-api/core/domain"
	"digests-reader-api/core/interfaces"
)

// Pipeline parses, builds and renders discussions. It keeps no per-run
// state and is safe for concurrent use.
type Pipeline struct {
	renderer *Renderer
	logger   interfaces.Logger
}

// NewPipeline creates a Pipeline that formats dates in loc
func NewPipeline(loc *time.Location, logger interfaces.Logger) *Pipeline {
	return &Pipeline{
		renderer: NewRenderer(loc),
		logger:   interfaces.LoggerOrNop(logger),
	}
}

// Parse builds a Discussion from a raw [postListing, commentListing] payload
func (p *Pipeline) Parse(payload []byte) (*domain.Discussion, error) {
	thread, err := ParseThread(payload)
	if err != nil {
		return nil, err
	}
	return &domain.Discussion{
		Post:     thread.Post,
		Comments: BuildCommentTree(thread.Comments),
	}, nil
}

// RenderDiscussionMarkdown renders payload as Markdown. A payload with an
// unexpected shape yields "" so one bad thread never aborts a batch.
func (p *Pipeline) RenderDiscussionMarkdown(payload []byte) string {
	d, err := p.Parse(payload)
	if err != nil {
		p.logger.Warn("Discussion payload could not be parsed", map[string]interface{}{
			"error": err.Error(),
		})
		return ""
	}

	p.logger.Debug("Rendering discussion", map[string]interface{}{
		"title":    d.Post.Title,
		"comments": d.CountComments(),
	})
	return p.renderer.Render(d)
}
