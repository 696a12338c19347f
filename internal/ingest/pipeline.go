// Package ingest turns a cuisine prompt or an uploaded menu file into a menu
// draft. Both producers end in ParseDraft, so every item that reaches a
// draft has passed the same validator as a manually entered item.
package ingest

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/pageza/menuqr/backend/internal/provider"
)

const (
	GeneratedMenuName = "Generated Menu"
	UploadedMenuName  = "Uploaded Menu"
)

type Pipeline struct {
	provider provider.TextProvider
	log      *logrus.Entry
}

func NewPipeline(p provider.TextProvider, log *logrus.Entry) *Pipeline {
	return &Pipeline{provider: p, log: log}
}

// Generate drafts a menu for a cuisine. An empty tone means "standard".
func (p *Pipeline) Generate(ctx context.Context, cuisine, tone string) (*ParsedMenu, error) {
	system, user := GenerationPrompt(cuisine, tone)
	parsed, err := p.run(ctx, system, user, GeneratedMenuName)
	if err != nil {
		return nil, err
	}
	p.log.WithFields(logrus.Fields{
		"cuisine": cuisine,
		"items":   len(parsed.Items),
		"dropped": parsed.Dropped,
	}).Info("generated menu draft")
	return parsed, nil
}

// ExtractFile drafts a menu from an uploaded pdf, docx or txt file.
func (p *Pipeline) ExtractFile(ctx context.Context, data []byte, filename, contentType string) (*ParsedMenu, error) {
	text, format, err := ExtractText(data, filename, contentType)
	if err != nil {
		return nil, err
	}
	system, user := ExtractionPrompt(text)
	parsed, err := p.run(ctx, system, user, UploadedMenuName)
	if err != nil {
		return nil, err
	}
	p.log.WithFields(logrus.Fields{
		"format":  format,
		"items":   len(parsed.Items),
		"dropped": parsed.Dropped,
	}).Info("extracted menu draft")
	return parsed, nil
}

func (p *Pipeline) run(ctx context.Context, system, user, defaultName string) (*ParsedMenu, error) {
	raw, err := p.provider.Complete(ctx, provider.Request{
		System:   system,
		Messages: []provider.Message{{Role: provider.RoleUser, Content: user}},
		JSON:     true,
	})
	if err != nil {
		return nil, err
	}
	parsed, err := ParseDraft(raw, defaultName)
	if err != nil {
		p.log.WithError(err).Warn("discarding provider response")
		return nil, err
	}
	return parsed, nil
}
