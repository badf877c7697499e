package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	domainErrors "github.com/shaunkitch/WorkforceOne-Production-sub001/internal/domain/errors"
	domainRepo "github.com/shaunkitch/WorkforceOne-Production-sub001/internal/domain/repository"
	"go.uber.org/zap"
)

// SupabaseMembershipRepository resolves workspace memberships through the
// hosted database's REST API. Row-level security on workspace_members is
// enforced by the database; this client only reads.
type SupabaseMembershipRepository struct {
	client  *http.Client
	baseURL string
	apiKey  string
	logger  *zap.Logger
}

// NewSupabaseMembershipRepository creates a new Supabase membership repository
func NewSupabaseMembershipRepository(baseURL, apiKey string, logger *zap.Logger) domainRepo.MembershipRepository {
	return &SupabaseMembershipRepository{
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: baseURL,
		apiKey:  apiKey,
		logger:  logger,
	}
}

// GetMember looks up a user's membership row in a workspace.
func (r *SupabaseMembershipRepository) GetMember(ctx context.Context, userID, workspaceID string) (*domainRepo.WorkspaceMember, error) {
	params := url.Values{}
	params.Add("user_id", fmt.Sprintf("eq.%s", userID))
	params.Add("workspace_id", fmt.Sprintf("eq.%s", workspaceID))
	params.Add("select", "*")

	queryURL := fmt.Sprintf("%s/rest/v1/workspace_members?%s", r.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, "GET", queryURL, nil)
	if err != nil {
		return nil, domainErrors.NewMembershipLookupError(userID, workspaceID,
			fmt.Errorf("failed to create request: %w", err))
	}

	req.Header.Set("apikey", r.apiKey)
	req.Header.Set("Authorization", "Bearer "+r.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		r.logger.Error("Membership lookup request failed",
			zap.String("user_id", userID),
			zap.String("workspace_id", workspaceID),
			zap.Error(err))
		return nil, domainErrors.NewSupabaseConnectionError(userID, workspaceID, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domainErrors.NewSupabaseConnectionError(userID, workspaceID,
			fmt.Errorf("failed to read response body: %w", err))
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		// fallthrough to decoding below
	case resp.StatusCode == http.StatusNotFound:
		return nil, domainErrors.NewWorkspaceNotFoundError(userID, workspaceID)
	default:
		r.logger.Error("Membership lookup returned unexpected status",
			zap.String("user_id", userID),
			zap.String("workspace_id", workspaceID),
			zap.Int("status", resp.StatusCode))
		return nil, domainErrors.NewSupabaseConnectionError(userID, workspaceID,
			fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body)))
	}

	var members []domainRepo.WorkspaceMember
	if err := json.Unmarshal(body, &members); err != nil {
		return nil, domainErrors.NewSupabaseConnectionError(userID, workspaceID,
			fmt.Errorf("failed to decode response: %w", err))
	}

	if len(members) == 0 {
		return nil, domainErrors.NewUserNotMemberError(userID, workspaceID)
	}

	return &members[0], nil
}
