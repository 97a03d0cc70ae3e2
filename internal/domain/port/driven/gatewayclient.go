package driven

import (
	"context"

	"github.com/rubengr/gwreports/internal/domain/model"
)

// GatewayClient defines the driven port for talking to the test gateway.
type GatewayClient interface {
	// Login exchanges the credentials for a bearer token.
	// Returns *AuthenticationError when the gateway rejects the credentials,
	// *MalformedResponseError when the response carries no usable token, and
	// *ConnectionError when the gateway cannot be reached.
	Login(ctx context.Context, username, password string) (string, error)

	// FetchTestReport retrieves the combined test report using the given
	// bearer token. The body is returned as-is, never parsed.
	// Returns *ReportFetchError on a non-success status.
	FetchTestReport(ctx context.Context, token string) ([]byte, error)

	// CheckHealth probes the gateway's unauthenticated health endpoint.
	CheckHealth(ctx context.Context) (model.GatewayHealth, error)
}
