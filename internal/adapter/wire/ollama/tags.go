package ollama

import "encoding/json"

type wireModelDetails struct {
	Format          string `json:"format"`
	Family          string `json:"family"`
	Families        []string `json:"families"`
	ParameterSize   *string `json:"parameter_size"`
	QuantizationLvl *string `json:"quantization_level"`
}

type wireTagsModel struct {
	Name       string           `json:"name"`
	ModifiedAt string           `json:"modified_at"`
	Size       *int64           `json:"size"`
	Digest     *string          `json:"digest"`
	Details    wireModelDetails `json:"details"`
}

type wireTagsList struct {
	Models []wireTagsModel `json:"models"`
}

// EncodeTags serializes GET /api/tags for the single on-device model.
func EncodeTags(modelName, modifiedAt string) ([]byte, error) {
	list := wireTagsList{
		Models: []wireTagsModel{
			{
				Name:       modelName,
				ModifiedAt: modifiedAt,
				Size:       nil,
				Digest:     nil,
				Details: wireModelDetails{
					Format:   "system",
					Family:   "apple-intelligence",
					Families: []string{"apple-intelligence"},
				},
			},
		},
	}
	return json.Marshal(list)
}

// EncodeVersion serializes GET /api/version.
func EncodeVersion(version string) ([]byte, error) {
	return json.Marshal(map[string]string{"version": version})
}

// EncodePS serializes GET /api/ps. The gateway runs no background model
// processes so the list is always empty.
func EncodePS() ([]byte, error) {
	return json.Marshal(map[string][]struct{}{"models": {}})
}
