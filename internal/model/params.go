package model

import (
	"fmt"
	"net/url"
)

// Query parameter names understood by the upstream model listing.
const (
	ParamCategory            = "category"
	ParamSupportedParameters = "supported_parameters"
	ParamUseRSS              = "use_rss"
	ParamUseRSSChatLinks     = "use_rss_chat_links"
)

// ListModelsParams holds the caller's filters for the upstream model listing.
// A nil field was absent from the inbound query and is not forwarded. String
// values are opaque and travel to the upstream byte for byte.
type ListModelsParams struct {
	Category            *string `query:"category"`
	SupportedParameters *string `query:"supported_parameters"`
	UseRSS              *bool   `query:"use_rss"`
	UseRSSChatLinks     *bool   `query:"use_rss_chat_links"`
}

// ParseListModelsParams extracts and validates the listing filters from an
// inbound query string. Unknown keys are ignored; a repeated known key or a
// boolean other than "true"/"false" is rejected.
func ParseListModelsParams(q url.Values) (ListModelsParams, error) {
	var (
		p   ListModelsParams
		err error
	)
	if p.Category, err = stringParam(q, ParamCategory); err != nil {
		return ListModelsParams{}, err
	}
	if p.SupportedParameters, err = stringParam(q, ParamSupportedParameters); err != nil {
		return ListModelsParams{}, err
	}
	if p.UseRSS, err = boolParam(q, ParamUseRSS); err != nil {
		return ListModelsParams{}, err
	}
	if p.UseRSSChatLinks, err = boolParam(q, ParamUseRSSChatLinks); err != nil {
		return ListModelsParams{}, err
	}
	return p, nil
}

// Values encodes the parameters for the outbound request. Exactly the fields
// present at parse time are emitted, with their original values.
func (p ListModelsParams) Values() url.Values {
	v := make(url.Values)
	if p.Category != nil {
		v.Set(ParamCategory, *p.Category)
	}
	if p.SupportedParameters != nil {
		v.Set(ParamSupportedParameters, *p.SupportedParameters)
	}
	if p.UseRSS != nil {
		v.Set(ParamUseRSS, formatBool(*p.UseRSS))
	}
	if p.UseRSSChatLinks != nil {
		v.Set(ParamUseRSSChatLinks, formatBool(*p.UseRSSChatLinks))
	}
	return v
}

func stringParam(q url.Values, key string) (*string, error) {
	vals, ok := q[key]
	if !ok {
		return nil, nil
	}
	if len(vals) != 1 {
		return nil, fmt.Errorf("query parameter %s: duplicate field", key)
	}
	s := vals[0]
	return &s, nil
}

func boolParam(q url.Values, key string) (*bool, error) {
	s, err := stringParam(q, key)
	if err != nil || s == nil {
		return nil, err
	}
	var b bool
	switch *s {
	case "true":
		b = true
	case "false":
		b = false
	default:
		return nil, fmt.Errorf("query parameter %s: provided string was not `true` or `false`", key)
	}
	return &b, nil
}

func formatBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
