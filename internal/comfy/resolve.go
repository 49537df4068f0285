package comfy

import (
	"encoding/json"

	"github.com/vkotlyar/comfyrun/internal/model"
)

type historyEntry struct {
	Outputs map[string]historyOutput `json:"outputs"`
}

type historyOutput struct {
	Images []model.ImageRef `json:"images"`
}

// resolveImage extracts an image reference from a history response. The
// response maps job ids to their outputs; the first output entry with a
// non-empty images list wins and its first element is returned. A history
// document can carry several job ids; the first resolvable entry is used,
// iteration order unspecified. Absence of any image is reported as ok=false,
// not as an error: the caller decides what emptiness means.
func resolveImage(body []byte) (model.ImageRef, bool) {
	var hist map[string]historyEntry
	if err := json.Unmarshal(body, &hist); err != nil {
		return model.ImageRef{}, false
	}
	for _, entry := range hist {
		for _, out := range entry.Outputs {
			if len(out.Images) > 0 {
				return out.Images[0], true
			}
		}
	}
	return model.ImageRef{}, false
}
