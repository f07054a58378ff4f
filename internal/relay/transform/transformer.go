// Package transform rewrites webhook responses to point at local images.
package transform

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/storyboard-studio/storyboard-relay/internal/relay/domain"
	"github.com/storyboard-studio/storyboard-relay/internal/relay/service"
)

const (
	linksField = "links"
	titleField = "Image Title"
)

// ImageFetcher stores one image in a project and returns its public path.
type ImageFetcher interface {
	Fetch(ctx context.Context, rawURL string, project domain.Project) (string, error)
}

// Transformer turns a webhook response into a RelayResult.
type Transformer struct {
	fetcher ImageFetcher
}

func New(fetcher ImageFetcher) *Transformer {
	return &Transformer{fetcher: fetcher}
}

// Transform returns raw unchanged unless it is a JSON array. For an array
// every image reference is downloaded into project and the normalized
// RelayResult is returned instead.
//
// Untitled images are named "Frame <n>" where n counts images downloaded so
// far, not the element's position; a failed download leaves no gap.
func (t *Transformer) Transform(ctx context.Context, raw []byte, project domain.Project) []byte {
	logger := service.NewLogger(ctx)

	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		logger.LogInfof("transform", "webhook response is not JSON, passing through")
		return raw
	}
	items, ok := data.([]any)
	if !ok {
		logger.LogInfof("transform", "webhook response is not a list, passing through")
		return raw
	}

	images := make([]domain.DownloadedImage, 0, len(items))
	for i, item := range items {
		ref, ok := imageRef(item)
		if !ok {
			continue
		}
		if ref.URL == "" {
			logger.LogWarnf("transform", "item %d has no usable link, skipping", i)
			continue
		}

		title := ref.Title
		if !ref.HasTitle {
			title = fmt.Sprintf("Frame %d", len(images)+1)
		}

		localPath, err := t.fetcher.Fetch(ctx, ref.URL, project)
		if err != nil {
			continue
		}
		images = append(images, domain.DownloadedImage{URL: localPath, Title: title})
	}

	out, err := json.Marshal(domain.RelayResult{
		Images:      images,
		ProjectID:   project.FolderName,
		ProjectPath: project.Path(),
	})
	if err != nil {
		logger.LogError("transform", err)
		return raw
	}
	return out
}

// imageRef interprets one response element. ok is false for shapes that are
// not image references at all; a reference whose link is unusable comes back
// with an empty URL.
func imageRef(item any) (domain.ImageRef, bool) {
	switch v := item.(type) {
	case string:
		return domain.ImageRef{URL: v}, true
	case map[string]any:
		link, found := v[linksField]
		if !found {
			return domain.ImageRef{}, false
		}
		ref := domain.ImageRef{}
		ref.URL, _ = link.(string)
		ref.Title, ref.HasTitle = v[titleField].(string)
		return ref, true
	default:
		return domain.ImageRef{}, false
	}
}
