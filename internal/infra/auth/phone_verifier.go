package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"fairway/config"
	"fairway/internal/domain/entity"
	"fairway/internal/domain/service"
)

const identityToolkitBaseURL = "https://identitytoolkit.googleapis.com/v1"

// phoneVerifier implements service.PhoneVerifier against the Identity
// Platform REST endpoints. The admin SDK cannot drive the two-step phone
// flow, so this talks to the same endpoints the web SDK uses, authenticated
// by the project's web API key.
type phoneVerifier struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewPhoneVerifier is the constructor for phoneVerifier.
func NewPhoneVerifier(cfg *config.Config, logger *slog.Logger) (service.PhoneVerifier, error) {
	if cfg.Firebase == nil || cfg.Firebase.WebAPIKey == "" {
		return nil, errors.New("firebase web API key must be provided for phone sign-in")
	}

	return &phoneVerifier{
		apiKey:     cfg.Firebase.WebAPIKey,
		baseURL:    identityToolkitBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logger,
	}, nil
}

type sendCodeRequest struct {
	PhoneNumber    string `json:"phoneNumber"`
	RecaptchaToken string `json:"recaptchaToken,omitempty"`
}

type sendCodeResponse struct {
	SessionInfo string `json:"sessionInfo"`
}

type confirmCodeRequest struct {
	SessionInfo string `json:"sessionInfo"`
	Code        string `json:"code"`
}

type confirmCodeResponse struct {
	LocalID     string `json:"localId"`
	PhoneNumber string `json:"phoneNumber"`
	IDToken     string `json:"idToken"`
}

type apiErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// RequestCode sends a verification SMS and returns the session handle the
// code must later be confirmed against. The handle stays valid until the
// provider expires it; requesting again does not touch an earlier handle.
func (v *phoneVerifier) RequestCode(ctx context.Context, phoneNumber, recaptchaToken string) (string, error) {
	var resp sendCodeResponse
	err := v.post(ctx, "/accounts:sendVerificationCode", sendCodeRequest{
		PhoneNumber:    phoneNumber,
		RecaptchaToken: recaptchaToken,
	}, &resp)
	if err != nil {
		return "", errors.Wrap(err, "failed to request verification code")
	}

	v.logger.Info("Verification code requested", slog.String("phone_number", phoneNumber))

	return resp.SessionInfo, nil
}

// ConfirmCode exchanges handle+code for the signed-in identity.
func (v *phoneVerifier) ConfirmCode(ctx context.Context, handle, code string) (*entity.Identity, error) {
	var resp confirmCodeResponse
	err := v.post(ctx, "/accounts:signInWithPhoneNumber", confirmCodeRequest{
		SessionInfo: handle,
		Code:        code,
	}, &resp)
	if err != nil {
		return nil, errors.Wrap(err, "failed to confirm verification code")
	}

	return &entity.Identity{
		UID:         resp.LocalID,
		PhoneNumber: resp.PhoneNumber,
	}, nil
}

func (v *phoneVerifier) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return errors.Wrap(err, "failed to marshal request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.baseURL+path+"?key="+v.apiKey, bytes.NewReader(payload))
	if err != nil {
		return errors.Wrap(err, "failed to build request")
	}
	req.Header.Set("Content-Type", "application/json")

	httpResp, err := v.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "request failed")
	}
	defer httpResp.Body.Close()

	data, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return errors.Wrap(err, "failed to read response")
	}

	if httpResp.StatusCode != http.StatusOK {
		var apiErr apiErrorResponse
		if err := json.Unmarshal(data, &apiErr); err == nil && apiErr.Error.Message != "" {
			return errors.Errorf("provider rejected request: %s", apiErr.Error.Message)
		}

		return errors.Errorf("provider returned status %d", httpResp.StatusCode)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return errors.Wrap(err, "failed to parse response")
	}

	return nil
}
