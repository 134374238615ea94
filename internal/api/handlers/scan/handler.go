// Package scan exposes the protected sweep trigger endpoint called by
// the external schedule (and, indirectly, by client polls).
package scan

import (
	"context"
	"crypto/subtle"
	"fmt"
	"net/http"
	"strings"

	"github.com/wb-go/wbf/ginext"
	"github.com/wb-go/wbf/zlog"

	"github.com/goalpulse/reminder-service/internal/api/respond"
	"github.com/goalpulse/reminder-service/internal/config"
	"github.com/goalpulse/reminder-service/internal/scanner"
)

//go:generate mockgen -source=handler.go -destination=../../../mocks/api/handlers/scan/mock.go -package=mocks

type sweeper interface {
	Scan(ctx context.Context) (scanner.Result, error)
}

// TriggerResponse is the scan trigger response body.
type TriggerResponse struct {
	Success        bool           `json:"success"`
	Message        string         `json:"message"`
	ProcessedCount int            `json:"processedCount"`
	Results        scanner.Result `json:"results"`
}

type Handler struct {
	scanner sweeper
	cfg     *config.Config
}

func NewHandler(s sweeper, cfg *config.Config) *Handler {
	return &Handler{scanner: s, cfg: cfg}
}

// Trigger runs one sweep. The endpoint is protected by a shared
// bearer secret; a deployment without the secret or without any
// delivery channel configured answers with a skipped result instead
// of an error, so a scheduled caller never crash-loops on a config
// gap. Auth runs before any config-state disclosure.
func (h *Handler) Trigger(c *ginext.Context) {
	if h.cfg.Scan.Secret == "" {
		zlog.Logger.Warn().Str("reason", "no scan secret configured").Msg("scan skipped")
		respond.JSON(c.Writer, http.StatusOK, TriggerResponse{
			Success: true,
			Message: "scan skipped: no scan secret configured",
		})
		return
	}

	auth := c.GetHeader("Authorization")
	token := strings.TrimPrefix(auth, "Bearer ")
	if auth == token || subtle.ConstantTimeCompare([]byte(token), []byte(h.cfg.Scan.Secret)) != 1 {
		zlog.Logger.Warn().Msg("scan trigger rejected: bad secret")
		respond.Fail(c.Writer, http.StatusUnauthorized, fmt.Errorf("unauthorized"))
		return
	}

	if reason := h.configGap(); reason != "" {
		zlog.Logger.Warn().Str("reason", reason).Msg("scan skipped")
		respond.JSON(c.Writer, http.StatusOK, TriggerResponse{
			Success: true,
			Message: "scan skipped: " + reason,
		})
		return
	}

	result, err := h.scanner.Scan(c.Request.Context())
	if err != nil {
		zlog.Logger.Error().Err(err).Msg("sweep failed")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	zlog.Logger.Info().
		Int("processed", result.Processed).
		Int("successful", result.Successful).
		Int("failed", result.Failed).
		Msg("sweep completed")

	respond.JSON(c.Writer, http.StatusOK, TriggerResponse{
		Success:        true,
		Message:        "scan completed",
		ProcessedCount: result.Processed,
		Results:        result,
	})
}

// configGap names the missing delivery configuration that makes a
// sweep pointless, or returns "" when the sweep can run.
func (h *Handler) configGap() string {
	if h.cfg.Push.ServerKey == "" && h.cfg.Email.SMTPHost == "" {
		return "no delivery channel configured"
	}

	return ""
}
