package hosting

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// CloneVersion creates a new version on a site by copying an existing
// one, then waits for the server-side copy to finish. When finalize is
// set the new version is immediately marked deployable.
func (c *Client) CloneVersion(ctx context.Context, site, sourceVersion string, finalize bool) (*Version, error) {
	path := fmt.Sprintf("/%s/projects/-/sites/%s/versions:clone", apiVersion, site)
	body, err := c.do(ctx, http.MethodPost, path, nil, map[string]any{
		"sourceVersion": sourceVersion,
		"finalize":      finalize,
	})
	if err != nil {
		return nil, err
	}

	var op operation
	if err := json.Unmarshal(body, &op); err != nil {
		return nil, err
	}

	result, err := c.awaitOperation(ctx, op.Name)
	if err != nil {
		return nil, err
	}

	var version Version
	if err := json.Unmarshal(result, &version); err != nil {
		return nil, err
	}

	return &version, nil
}

// CreateRelease puts a version live on a channel.
func (c *Client) CreateRelease(ctx context.Context, site, channelID, versionName string) (*Release, error) {
	path := fmt.Sprintf("/%s/projects/-/sites/%s/channels/%s/releases", apiVersion, site, channelID)
	query := url.Values{}
	query.Set("versionName", versionName)

	body, err := c.do(ctx, http.MethodPost, path, query, nil)
	if err != nil {
		return nil, err
	}

	var release Release
	if err := json.Unmarshal(body, &release); err != nil {
		return nil, err
	}

	return &release, nil
}
