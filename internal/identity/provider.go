package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"smartslot/internal/shared/config"
)

// FailureKind classifies why a sign-in flow fell back to signed-out.
type FailureKind string

const (
	FailureValidation FailureKind = "validation"
	FailureCredential FailureKind = "provider-rejected-credential"
	FailureCancelled  FailureKind = "popup-cancelled"
	FailureNetwork    FailureKind = "network"
)

// ProviderError is a classified identity failure with user-facing text.
type ProviderError struct {
	Kind    FailureKind
	Code    string
	Message string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("identity %s (%s): %s", e.Kind, e.Code, e.Message)
}

// userMessages maps provider error codes to the text shown to the user.
var userMessages = map[string]string{
	"auth/user-not-found":         "No user found with this email.",
	"auth/wrong-password":         "Incorrect password.",
	"auth/email-already-in-use":   "This email is already registered.",
	"auth/invalid-email":          "Invalid email address.",
	"auth/weak-password":          "Password is too weak (min 6 characters).",
	"auth/popup-closed-by-user":   "Sign-in was cancelled.",
	"auth/network-request-failed": "Network error. Please check your connection and try again.",
}

// classifyProviderCode builds a ProviderError from a provider error code
func classifyProviderCode(code string) *ProviderError {
	msg, ok := userMessages[code]
	if !ok {
		msg = "An error occurred. Please try again."
	}

	kind := FailureCredential
	switch code {
	case "auth/popup-closed-by-user":
		kind = FailureCancelled
	case "auth/network-request-failed":
		kind = FailureNetwork
	}
	return &ProviderError{Kind: kind, Code: code, Message: msg}
}

// Provider collects credentials and returns identity tokens. The OAuth popup
// variant never reaches this interface: the popup runs in the browser and the
// portal only receives the resulting ID token.
type Provider interface {
	SignIn(ctx context.Context, email, password string) (string, error)
	Register(ctx context.Context, email, password string) (string, error)
}

// restProvider talks to the identity provider's token REST endpoints.
type restProvider struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewRESTProvider creates a Provider backed by the configured identity service
func NewRESTProvider(cfg config.IdentityConfig) Provider {
	return &restProvider{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

func (p *restProvider) SignIn(ctx context.Context, email, password string) (string, error) {
	return p.tokenRequest(ctx, "/v1/token:signIn", email, password)
}

func (p *restProvider) Register(ctx context.Context, email, password string) (string, error) {
	return p.tokenRequest(ctx, "/v1/token:signUp", email, password)
}

func (p *restProvider) tokenRequest(ctx context.Context, path, email, password string) (string, error) {
	payload, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	url := p.baseURL + path
	if p.apiKey != "" {
		url += "?key=" + p.apiKey
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", &ProviderError{
			Kind:    FailureNetwork,
			Code:    "auth/network-request-failed",
			Message: userMessages["auth/network-request-failed"],
		}
	}
	defer resp.Body.Close()

	var body struct {
		IDToken string `json:"idToken"`
		Error   struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", &ProviderError{
			Kind:    FailureNetwork,
			Code:    "auth/network-request-failed",
			Message: userMessages["auth/network-request-failed"],
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || body.IDToken == "" {
		code := body.Error.Code
		if code == "" {
			code = "auth/unknown"
		}
		return "", classifyProviderCode(code)
	}

	return body.IDToken, nil
}
