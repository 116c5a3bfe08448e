package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"sportify-admin/internal/model"
	"sportify-admin/pkg/apierror"
)

const (
	refreshPath = "/auth/refresh"
	refreshKey  = "refresh"
)

// recoverUnauthorized handles the first 401 of a request. Either the token
// was already rotated by someone else since this request was built, or a
// single shared refresh runs. Both paths retry exactly once.
func (c *Client) recoverUnauthorized(ctx context.Context, req Request, usedToken string) ([]byte, error) {
	current := c.session.AccessToken()
	if current == "" || current == usedToken {
		if err := c.refresh(ctx); err != nil {
			return nil, err
		}
	}

	return c.Do(ctx, req.retry())
}

// refresh coalesces concurrent callers into one refresh call. A caller that
// gives up (ctx done) does not cancel the refresh for the others.
func (c *Client) refresh(ctx context.Context) error {
	result := c.refreshes.DoChan(refreshKey, func() (any, error) {
		return nil, c.runRefresh(context.WithoutCancel(ctx))
	})

	select {
	case res := <-result:
		return res.Err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Client) runRefresh(ctx context.Context) error {
	refreshToken := c.session.RefreshToken()
	if refreshToken == "" {
		c.metrics.observeRefresh("missing")
		return c.forceLogout(ctx, "no refresh token available")
	}

	tokens, err := c.callRefresh(ctx, refreshToken)
	if err != nil {
		c.metrics.observeRefresh("failed")
		return c.forceLogout(ctx, err.Error())
	}

	if err := c.session.Refresh(ctx, tokens.Access(), tokens.RefreshToken); err != nil {
		c.metrics.observeRefresh("failed")
		return c.forceLogout(ctx, err.Error())
	}

	c.metrics.observeRefresh("succeeded")
	c.logger.Debug("access token refreshed")
	return nil
}

// callRefresh posts to the refresh endpoint with the bare client, so none of
// the 401 handling above applies to it.
func (c *Client) callRefresh(ctx context.Context, refreshToken string) (model.RefreshResponse, error) {
	payload, err := json.Marshal(model.RefreshRequest{RefreshToken: refreshToken})
	if err != nil {
		return model.RefreshResponse{}, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+refreshPath, bytes.NewReader(payload))
	if err != nil {
		return model.RefreshResponse{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.refresher.Do(httpReq)
	if err != nil {
		return model.RefreshResponse{}, fmt.Errorf("refresh request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return model.RefreshResponse{}, fmt.Errorf("read refresh response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return model.RefreshResponse{}, normalizeError(resp.StatusCode, body)
	}
	if err := checkEnvelope(resp.StatusCode, body); err != nil {
		return model.RefreshResponse{}, err
	}

	var envelope model.Envelope[model.RefreshResponse]
	if err := json.Unmarshal(body, &envelope); err != nil {
		return model.RefreshResponse{}, fmt.Errorf("decode refresh response: %w", err)
	}
	if envelope.Data.Access() == "" {
		return model.RefreshResponse{}, fmt.Errorf("refresh response carries no token")
	}
	return envelope.Data, nil
}

// forceLogout clears the session and redirects to login. The returned error
// is what every waiter on the failed refresh receives.
func (c *Client) forceLogout(ctx context.Context, reason string) error {
	c.logger.Warn("session refresh failed, logging out", "reason", reason)

	if err := c.session.Logout(ctx); err != nil {
		c.logger.Error("failed to clear session", "error", err)
	}
	c.redirector.RedirectToLogin()

	return apierror.New(apierror.CodeSessionExpired, apierror.ErrSessionExpired.Message, reason, http.StatusUnauthorized)
}
