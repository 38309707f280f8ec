package speech

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/masonpham16/TalkDoc/internal/config"
	"github.com/masonpham16/TalkDoc/internal/errors"
)

func testSynthesizer(t *testing.T, baseURL string) *Synthesizer {
	t.Helper()
	s, err := NewSynthesizer(
		config.SpeechConfig{APIKey: "test-key", VoiceID: "voice-1", BaseURL: baseURL},
		config.HTTPConfig{Timeout: 5 * time.Second},
	)
	require.NoError(t, err)
	return s
}

func TestNewSynthesizerRequiresConfig(t *testing.T) {
	_, err := NewSynthesizer(config.SpeechConfig{VoiceID: "v"}, config.HTTPConfig{})
	require.Error(t, err)
	assert.True(t, errors.IsConfiguration(err))

	_, err = NewSynthesizer(config.SpeechConfig{APIKey: "k"}, config.HTTPConfig{})
	require.Error(t, err)
	assert.True(t, errors.IsConfiguration(err))
}

func TestSynthesizeEmptyText(t *testing.T) {
	s := testSynthesizer(t, "http://unused.invalid")
	_, err := s.Synthesize(context.Background(), "   ")
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
}

func TestSynthesizeFirstModelSucceeds(t *testing.T) {
	var gotModels []string
	var gotKey, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req synthesisRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		gotModels = append(gotModels, req.ModelID)
		gotKey = r.Header.Get("xi-api-key")
		gotAccept = r.Header.Get("Accept")

		require.NotNil(t, req.VoiceSettings)
		assert.Equal(t, 0.5, req.VoiceSettings.Stability)
		assert.Equal(t, 0.75, req.VoiceSettings.SimilarityBoost)

		w.Header().Set("Content-Type", "audio/mpeg")
		_, _ = w.Write([]byte("mp3-bytes"))
	}))
	defer srv.Close()

	s := testSynthesizer(t, srv.URL)
	audio, err := s.Synthesize(context.Background(), "Take your pill")
	require.NoError(t, err)
	assert.Equal(t, []byte("mp3-bytes"), audio)
	assert.Equal(t, []string{"eleven_turbo_v2_5"}, gotModels)
	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, "audio/mpeg", gotAccept)
}

func TestSynthesizeFallsThroughModels(t *testing.T) {
	var gotModels []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req synthesisRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		gotModels = append(gotModels, req.ModelID)

		if req.ModelID == "eleven_multilingual_v2" {
			w.Header().Set("Content-Type", "audio/mpeg")
			_, _ = w.Write([]byte("mp3"))
			return
		}
		http.Error(w, `{"detail":"model not allowed"}`, http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	s := testSynthesizer(t, srv.URL)
	audio, err := s.Synthesize(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, []byte("mp3"), audio)
	assert.Equal(t, []string{"eleven_turbo_v2_5", "eleven_turbo_v2", "eleven_multilingual_v2"}, gotModels)
}

func TestSynthesizeFinalNoModelFallback(t *testing.T) {
	var gotModels []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req synthesisRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		gotModels = append(gotModels, req.ModelID)

		if req.ModelID == "" {
			w.Header().Set("Content-Type", "audio/mpeg")
			_, _ = w.Write([]byte("default-voice"))
			return
		}
		http.Error(w, `{"detail":"nope"}`, http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	s := testSynthesizer(t, srv.URL)
	audio, err := s.Synthesize(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, []byte("default-voice"), audio)
	require.Len(t, gotModels, 4, "three candidates then the bare attempt")
	assert.Equal(t, "", gotModels[3])
}

func TestSynthesizeTotalFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"quota exceeded"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	s := testSynthesizer(t, srv.URL)
	_, err := s.Synthesize(context.Background(), "hello")
	require.Error(t, err)

	var upstream *errors.UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, http.StatusUnauthorized, upstream.StatusCode)
	assert.Contains(t, upstream.Body, "quota exceeded")
	assert.Contains(t, upstream.FallbackBody, "quota exceeded")
}

func TestSynthesizeConnectivityError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listening any more

	s := testSynthesizer(t, srv.URL)
	_, err := s.Synthesize(context.Background(), "hello")
	require.Error(t, err)
	assert.True(t, errors.IsConnectivity(err))
}
