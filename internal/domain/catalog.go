package domain

import "fmt"

type Tool string

const (
	ToolVideo Tool = "video"
	ToolImage Tool = "image"
	ToolText  Tool = "text"
)

func (t Tool) Valid() bool {
	switch t {
	case ToolVideo, ToolImage, ToolText:
		return true
	default:
		return false
	}
}

// ModelSpec describes one selectable generation model and the endpoint path
// its submissions are posted to.
type ModelSpec struct {
	ID       string
	Tool     Tool
	Label    string
	Endpoint string
}

// Catalog lists every (tool, model) pairing the backend accepts. A submission
// for a pairing outside this table fails before any network call is made.
var Catalog = []ModelSpec{
	{ID: "nova", Tool: ToolVideo, Label: "Amazon Nova Reel", Endpoint: "/api/video/nova"},
	{ID: "ali-vilab/text-to-video-ms-1.7b", Tool: ToolVideo, Label: "ModelScope T2V 1.7B", Endpoint: "/api/video/ali-vilab/text-to-video-ms-1.7b"},
	{ID: "dreamlike-art/dreamlike-photoreal-2.0", Tool: ToolImage, Label: "Dreamlike Photoreal 2.0", Endpoint: "/api/image/dreamlike-art/dreamlike-photoreal-2.0"},
	{ID: "stabilityai/stable-diffusion-xl-base-1.0", Tool: ToolImage, Label: "Stable Diffusion XL", Endpoint: "/api/image/stabilityai/stable-diffusion-xl-base-1.0"},
	{ID: "google/flan-t5-base", Tool: ToolText, Label: "Flan-T5 Base", Endpoint: "/api/text/google/flan-t5-base"},
}

// FindModel resolves a (tool, model) selection against the catalog.
func FindModel(tool Tool, modelID string) (ModelSpec, error) {
	for _, spec := range Catalog {
		if spec.Tool == tool && spec.ID == modelID {
			return spec, nil
		}
	}

	return ModelSpec{}, fmt.Errorf("%w: %s/%s", ErrUnknownModel, tool, modelID)
}

// ModelsForTool returns the catalog entries for one tool, or the whole
// catalog when tool is empty.
func ModelsForTool(tool Tool) []ModelSpec {
	if tool == "" {
		return append([]ModelSpec(nil), Catalog...)
	}

	specs := make([]ModelSpec, 0, len(Catalog))
	for _, spec := range Catalog {
		if spec.Tool == tool {
			specs = append(specs, spec)
		}
	}

	return specs
}

// DefaultModel returns the first catalog entry for a tool.
func DefaultModel(tool Tool) (ModelSpec, bool) {
	for _, spec := range Catalog {
		if spec.Tool == tool {
			return spec, true
		}
	}

	return ModelSpec{}, false
}
