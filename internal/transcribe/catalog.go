package transcribe

import (
	"fmt"
	"strings"
)

// DefaultWeightsBaseURL hosts the ggml weight files for whisper.cpp.
const DefaultWeightsBaseURL = "https://huggingface.co/ggerganov/whisper.cpp/resolve/main"

// Weights describes one downloadable whisper.cpp weight file.
type Weights struct {
	ID        string
	FileName  string
	SizeLabel string
}

var weightCatalog = []Weights{
	{ID: "tiny.en", FileName: "ggml-tiny.en.bin", SizeLabel: "~75 MB"},
	{ID: "tiny", FileName: "ggml-tiny.bin", SizeLabel: "~75 MB"},
	{ID: "base.en", FileName: "ggml-base.en.bin", SizeLabel: "~142 MB"},
	{ID: "base", FileName: "ggml-base.bin", SizeLabel: "~142 MB"},
	{ID: "small.en", FileName: "ggml-small.en.bin", SizeLabel: "~466 MB"},
	{ID: "small", FileName: "ggml-small.bin", SizeLabel: "~466 MB"},
	{ID: "medium.en", FileName: "ggml-medium.en.bin", SizeLabel: "~1.5 GB"},
	{ID: "medium", FileName: "ggml-medium.bin", SizeLabel: "~1.5 GB"},
	{ID: "large-v2", FileName: "ggml-large-v2.bin", SizeLabel: "~2.9 GB"},
	{ID: "large-v3", FileName: "ggml-large-v3.bin", SizeLabel: "~2.9 GB"},
	{ID: "large-v3-turbo", FileName: "ggml-large-v3-turbo.bin", SizeLabel: "~1.6 GB"},
}

// sizeModels maps size selectors to engine model ids. "large" follows the
// current openai-whisper alias.
var sizeModels = map[string]string{
	SizeTiny:   "tiny",
	SizeBase:   "base",
	SizeSmall:  "small",
	SizeMedium: "medium",
	SizeLarge:  "large-v3",
}

// ModelForSize returns the engine model id for a size selector.
func ModelForSize(size string) (string, error) {
	if id, ok := sizeModels[size]; ok {
		return id, nil
	}
	return "", ValidateSize(size)
}

// Catalog returns every known weight file.
func Catalog() []Weights {
	out := make([]Weights, len(weightCatalog))
	copy(out, weightCatalog)
	return out
}

// LookupWeights finds a catalog entry by id or size selector.
func LookupWeights(id string) (Weights, error) {
	id = strings.TrimSpace(id)
	if mapped, ok := sizeModels[id]; ok {
		id = mapped
	}
	for _, w := range weightCatalog {
		if w.ID == id {
			return w, nil
		}
	}
	return Weights{}, fmt.Errorf("unknown model %q", id)
}

// URL returns the download location of w under baseURL.
func (w Weights) URL(baseURL string) string {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultWeightsBaseURL
	}
	return strings.TrimRight(baseURL, "/") + "/" + w.FileName
}
