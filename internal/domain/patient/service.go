package patient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/tejask-saama/AscensionLPR/internal/platform/upstream"
)

// DefaultQuery is sent upstream when the caller does not supply one.
const DefaultQuery = "Generate a comprehensive longitudinal patient record"

// Relay is the slice of the upstream client the service needs.
type Relay interface {
	Relay(ctx context.Context, method, path string, body interface{}) (*upstream.Result, error)
}

// Service fetches raw records from the upstream LPR API and normalizes them
// into the canonical Detail shape.
type Service struct {
	relay  Relay
	logger zerolog.Logger
}

func NewService(relay Relay, logger zerolog.Logger) *Service {
	return &Service{relay: relay, logger: logger}
}

// FetchDetail retrieves and normalizes the record for one patient. It is
// total: transport failures, error envelopes, and malformed payloads all
// degrade to the complete default record so the caller always has something
// renderable.
func (s *Service) FetchDetail(ctx context.Context, id int, query string) Detail {
	if query == "" {
		query = DefaultQuery
	}
	path := "/api/lpr-app/lpr/" + FormatMRN(id) + "?query=" + url.QueryEscape(query)

	res, err := s.relay.Relay(ctx, http.MethodGet, path, nil)
	if err != nil {
		s.logger.Warn().Err(err).Int("patient_id", id).Msg("upstream fetch failed, serving default record")
		return DefaultDetail(id)
	}

	env, err := upstream.DecodeEnvelope(res.Body)
	if err != nil || !env.OK() {
		s.logger.Warn().Int("patient_id", id).Int("status", res.StatusCode).Msg("upstream envelope not usable, serving default record")
		return DefaultDetail(id)
	}

	var raw RawRecord
	if err := json.Unmarshal(env.Data, &raw); err != nil {
		s.logger.Warn().Err(err).Int("patient_id", id).Msg("upstream data not decodable, serving default record")
		return DefaultDetail(id)
	}
	return Normalize(&raw, id)
}
