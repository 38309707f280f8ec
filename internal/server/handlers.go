package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/masonpham16/TalkDoc/internal/assistant"
	"github.com/masonpham16/TalkDoc/internal/daemon"
	"github.com/masonpham16/TalkDoc/internal/errors"
	"github.com/masonpham16/TalkDoc/internal/logging"
	"github.com/masonpham16/TalkDoc/internal/model"
)

type chatRequest struct {
	Messages []assistant.Message `json:"messages"`
}

type chatResponse struct {
	OK    bool   `json:"ok"`
	Reply string `json:"reply,omitempty"`
	Error string `json:"error,omitempty"`
}

type ttsRequest struct {
	Text string `json:"text"`
}

// ttsError mirrors the browser-facing failure shape: the final
// attempt's upstream body plus the last fallback candidate's.
type ttsError struct {
	OK               bool   `json:"ok"`
	Error            string `json:"error"`
	Details          string `json:"details,omitempty"`
	LastTriedDetails string `json:"last_tried_details,omitempty"`
}

type dispenseRequest struct {
	Slot string `json:"slot"`
}

type dispenseResponse struct {
	OK    bool       `json:"ok"`
	Slot  model.Slot `json:"slot,omitempty"`
	Angle int        `json:"angle,omitempty"`
	Error string     `json:"error,omitempty"`
}

type healthResponse struct {
	OK bool `json:"ok"`
}

// healthDetail is the full health report served when a checker is
// attached.
type healthDetail struct {
	OK     bool   `json:"ok"`
	Device string `json:"device,omitempty"`
	daemon.HealthStatus
}

// devicePinger is implemented by dispenser backends that can report
// reachability without moving the hardware.
type devicePinger interface {
	Health(ctx context.Context) error
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// statusFor maps error categories onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.IsValidation(err) || errors.Is(err, errors.ErrInvalidSlot):
		return http.StatusBadRequest
	case errors.IsConfiguration(err):
		return http.StatusInternalServerError
	case errors.IsConnectivity(err):
		return http.StatusBadGateway
	case errors.IsUpstream(err):
		var upstream *errors.UpstreamError
		if errors.As(err, &upstream) && upstream.StatusCode >= 400 {
			return upstream.StatusCode
		}
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if s.chat == nil {
		writeJSON(w, http.StatusInternalServerError, chatResponse{Error: "chat assistant is not configured"})
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, chatResponse{Error: "invalid request body"})
		return
	}

	reply, err := s.chat.Complete(r.Context(), req.Messages)
	if err != nil {
		logging.Logger().Warn("chat relay failed", "error", err)
		writeJSON(w, statusFor(err), chatResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{OK: true, Reply: reply})
}

func (s *Server) handleTTS(w http.ResponseWriter, r *http.Request) {
	if s.speech == nil {
		writeJSON(w, http.StatusInternalServerError, ttsError{Error: "voice synthesis is not configured"})
		return
	}

	var req ttsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ttsError{Error: "invalid request body"})
		return
	}

	audio, err := s.speech.Synthesize(r.Context(), req.Text)
	if err != nil {
		logging.Logger().Warn("tts relay failed", "error", err)

		resp := ttsError{Error: err.Error()}
		var upstream *errors.UpstreamError
		if errors.As(err, &upstream) {
			resp.Details = upstream.Body
			resp.LastTriedDetails = upstream.FallbackBody
		}
		writeJSON(w, statusFor(err), resp)
		return
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(audio)
}

func (s *Server) handleDispense(w http.ResponseWriter, r *http.Request) {
	if s.dispenser == nil {
		writeJSON(w, http.StatusInternalServerError, dispenseResponse{Error: "dispenser is not configured"})
		return
	}

	var req dispenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dispenseResponse{Error: "invalid request body"})
		return
	}

	slot, err := model.ParseSlot(req.Slot)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dispenseResponse{Error: "invalid slot"})
		return
	}

	result, err := s.dispenser.Dispense(r.Context(), slot)
	if err != nil {
		logging.Logger().Warn("dispense relay failed", "slot", slot, "error", err)
		writeJSON(w, statusFor(err), dispenseResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, dispenseResponse{OK: true, Slot: result.Slot, Angle: result.Angle})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.health == nil {
		writeJSON(w, http.StatusOK, healthResponse{OK: true})
		return
	}

	detail := healthDetail{OK: true, HealthStatus: *s.health.Check()}

	if pinger, ok := s.dispenser.(devicePinger); ok {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pinger.Health(ctx); err != nil {
			detail.Device = "unreachable"
		} else {
			detail.Device = "ok"
		}
	}

	writeJSON(w, http.StatusOK, detail)
}
