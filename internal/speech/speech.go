// Package speech relays text to a hosted voice-synthesis service and
// returns MP3 audio.
package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/masonpham16/TalkDoc/internal/config"
	"github.com/masonpham16/TalkDoc/internal/errors"
	"github.com/masonpham16/TalkDoc/internal/logging"
	"github.com/masonpham16/TalkDoc/internal/validate"
)

// modelCandidates are tried in order. After all of them fail, one
// final request goes out with no model at all, letting the service
// pick its default.
var modelCandidates = []string{
	"eleven_turbo_v2_5",
	"eleven_turbo_v2",
	"eleven_multilingual_v2",
}

// Fixed voice rendering parameters.
const (
	voiceStability       = 0.5
	voiceSimilarityBoost = 0.75
)

// Synthesizer converts text to speech via the hosted service.
type Synthesizer struct {
	cfg    config.SpeechConfig
	client *http.Client
}

// NewSynthesizer creates a synthesizer from configuration.
func NewSynthesizer(cfg config.SpeechConfig, httpCfg config.HTTPConfig) (*Synthesizer, error) {
	if cfg.APIKey == "" {
		return nil, errors.NewConfigurationError("voice synthesis", config.EnvElevenKey)
	}
	if cfg.VoiceID == "" {
		return nil, errors.NewConfigurationError("voice synthesis", config.EnvElevenVoice)
	}

	return &Synthesizer{
		cfg:    cfg,
		client: &http.Client{Timeout: httpCfg.Timeout},
	}, nil
}

type synthesisRequest struct {
	Text          string         `json:"text"`
	ModelID       string         `json:"model_id,omitempty"`
	VoiceSettings *voiceSettings `json:"voice_settings,omitempty"`
}

type voiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
}

// Synthesize renders text as MP3 audio. Model candidates are tried in
// order, then once with no model. On total failure the returned
// UpstreamError carries the final attempt's error body and, in
// FallbackBody, the last candidate's.
func (s *Synthesizer) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if err := validate.SpeechText(text); err != nil {
		return nil, err
	}

	var lastDetails string
	var lastStatus int

	for _, model := range modelCandidates {
		audio, details, status, err := s.attempt(ctx, text, model)
		if err != nil {
			return nil, err
		}
		if audio != nil {
			return audio, nil
		}
		logging.Logger().Debug("synthesis model failed, trying next",
			"model", model, "status", status)
		lastDetails = details
		lastStatus = status
	}

	// Final attempt with no model: the service picks its default.
	audio, details, status, err := s.attempt(ctx, text, "")
	if err != nil {
		return nil, err
	}
	if audio != nil {
		return audio, nil
	}

	return nil, &errors.UpstreamError{
		Service:      "voice synthesis",
		Message:      "all synthesis attempts failed",
		StatusCode:   status,
		Body:         details,
		FallbackBody: fmt.Sprintf("HTTP %d: %s", lastStatus, lastDetails),
	}
}

// attempt makes one synthesis request. A non-2xx response is not an
// error; it returns the upstream body so the caller can fall through
// to the next candidate.
func (s *Synthesizer) attempt(ctx context.Context, text, model string) (audio []byte, details string, status int, err error) {
	reqBody := synthesisRequest{
		Text:    text,
		ModelID: model,
		VoiceSettings: &voiceSettings{
			Stability:       voiceStability,
			SimilarityBoost: voiceSimilarityBoost,
		},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, "", 0, err
	}

	url := fmt.Sprintf("%s/v1/text-to-speech/%s", s.cfg.BaseURL, s.cfg.VoiceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, "", 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/mpeg")
	req.Header.Set("xi-api-key", s.cfg.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, "", 0, errors.NewConnectivityError("voice synthesis", url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", 0, err
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return body, "", resp.StatusCode, nil
	}
	return nil, string(body), resp.StatusCode, nil
}
