package model

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ListModelsResponse is the decoded body of the upstream model listing.
type ListModelsResponse = Response[ModelList]

// ModelList is the data member of the model listing.
type ModelList []Model

// Validate reports the first model that fails its field constraints.
func (l ModelList) Validate() error {
	for i := range l {
		if err := validate.Struct(&l[i]); err != nil {
			return fmt.Errorf("data[%d]: %w", i, formatModelErrors(err))
		}
	}
	return nil
}

// Model describes one entry of the OpenRouter catalogue. Only id is
// mandatory, and any string, empty included, is an id. A decoded entry
// re-encodes to the bytes it was decoded from, so null members and members
// not listed here reach the caller unchanged.
type Model struct {
	ID                  *string         `json:"id" validate:"required"`
	CanonicalSlug       *string         `json:"canonical_slug,omitempty"`
	HuggingFaceID       *string         `json:"hugging_face_id,omitempty"`
	Name                *string         `json:"name,omitempty"`
	Created             *int64          `json:"created,omitempty"`
	Description         *string         `json:"description,omitempty"`
	ContextLength       *int64          `json:"context_length,omitempty"`
	Architecture        *Architecture   `json:"architecture,omitempty"`
	Pricing             *Pricing        `json:"pricing,omitempty"`
	TopProvider         *TopProvider    `json:"top_provider,omitempty"`
	PerRequestLimits    json.RawMessage `json:"per_request_limits,omitempty"`
	SupportedParameters []string        `json:"supported_parameters,omitempty"`
	DefaultParameters   json.RawMessage `json:"default_parameters,omitempty"`

	raw json.RawMessage
}

// modelFields has Model's fields without its JSON methods.
type modelFields Model

// UnmarshalJSON decodes the known members and keeps the entry's original bytes.
func (m *Model) UnmarshalJSON(b []byte) error {
	var f modelFields
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*m = Model(f)
	m.raw = append(json.RawMessage(nil), b...)
	return nil
}

// MarshalJSON returns the decoded bytes, or the known members for a Model
// built in code.
func (m Model) MarshalJSON() ([]byte, error) {
	if m.raw != nil {
		return m.raw, nil
	}
	return json.Marshal(modelFields(m))
}

// Architecture lists a model's modalities and tokenizer.
type Architecture struct {
	Modality         *string  `json:"modality,omitempty"`
	InputModalities  []string `json:"input_modalities,omitempty"`
	OutputModalities []string `json:"output_modalities,omitempty"`
	Tokenizer        *string  `json:"tokenizer,omitempty"`
	InstructType     *string  `json:"instruct_type,omitempty"`
}

// Pricing holds per-unit prices. The upstream encodes them as decimal strings.
type Pricing struct {
	Prompt            *string `json:"prompt,omitempty"`
	Completion        *string `json:"completion,omitempty"`
	Request           *string `json:"request,omitempty"`
	Image             *string `json:"image,omitempty"`
	WebSearch         *string `json:"web_search,omitempty"`
	InternalReasoning *string `json:"internal_reasoning,omitempty"`
	InputCacheRead    *string `json:"input_cache_read,omitempty"`
	InputCacheWrite   *string `json:"input_cache_write,omitempty"`
}

// TopProvider describes the limits of the model's primary provider.
type TopProvider struct {
	ContextLength       *int64 `json:"context_length,omitempty"`
	MaxCompletionTokens *int64 `json:"max_completion_tokens,omitempty"`
	IsModerated         *bool  `json:"is_moderated,omitempty"`
}

func formatModelErrors(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	if fe.Tag() == "required" {
		return fmt.Errorf("missing field `%s`", fe.Field())
	}
	return fmt.Errorf("field `%s` %s", fe.Field(), validationMessage(fe))
}
