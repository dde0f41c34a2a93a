package hosting

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// GetSite retrieves a site. Returns nil without an error when the site
// does not exist.
func (c *Client) GetSite(ctx context.Context, project, site string) (*Site, error) {
	path := fmt.Sprintf("/%s/projects/%s/sites/%s", apiVersion, project, site)
	body, err := c.do(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, err
	}

	var s Site
	if err := json.Unmarshal(body, &s); err != nil {
		return nil, err
	}

	return &s, nil
}

// ListSites returns all sites of a project, walking every page of the
// list endpoint in order.
func (c *Client) ListSites(ctx context.Context, project string) ([]*Site, error) {
	path := fmt.Sprintf("/%s/projects/%s/sites", apiVersion, project)

	sites := make([]*Site, 0)
	pageToken := ""
	for {
		query := url.Values{}
		query.Set("pageToken", pageToken)
		query.Set("pageSize", strconv.Itoa(listPageSize))

		body, err := c.do(ctx, http.MethodGet, path, query, nil)
		if err != nil {
			if pageToken == "" && notFound(err) {
				return nil, &ListNotFoundError{Kind: "sites"}
			}
			return nil, err
		}

		var page struct {
			Sites         []*Site `json:"sites"`
			NextPageToken string  `json:"nextPageToken"`
		}
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, err
		}

		sites = append(sites, page.Sites...)
		if page.NextPageToken == "" {
			return sites, nil
		}
		pageToken = page.NextPageToken
	}
}

// CreateSite creates a new site in a project, optionally linked to an
// application id.
func (c *Client) CreateSite(ctx context.Context, project, siteID, appID string) (*Site, error) {
	path := fmt.Sprintf("/%s/projects/%s/sites", apiVersion, project)
	query := url.Values{}
	query.Set("siteId", siteID)

	body, err := c.do(ctx, http.MethodPost, path, query, map[string]string{"appId": appID})
	if err != nil {
		return nil, err
	}

	var s Site
	if err := json.Unmarshal(body, &s); err != nil {
		return nil, err
	}

	return &s, nil
}

// UpdateSite patches a site, changing exactly the named fields. The
// request carries an update mask with the field list and a body holding
// only those fields' current values.
func (c *Client) UpdateSite(ctx context.Context, project, siteID string, site *Site, fields []string) (*Site, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("no fields to update for site %s", siteID)
	}

	patch, err := siteFields(site, fields)
	if err != nil {
		return nil, err
	}

	path := fmt.Sprintf("/%s/projects/%s/sites/%s", apiVersion, project, siteID)
	query := url.Values{}
	query.Set("updateMask", strings.Join(fields, ","))

	body, err := c.do(ctx, http.MethodPatch, path, query, patch)
	if err != nil {
		return nil, err
	}

	var updated Site
	if err := json.Unmarshal(body, &updated); err != nil {
		return nil, err
	}

	return &updated, nil
}

// DeleteSite removes a site from a project.
func (c *Client) DeleteSite(ctx context.Context, project, site string) error {
	path := fmt.Sprintf("/%s/projects/%s/sites/%s", apiVersion, project, site)
	_, err := c.do(ctx, http.MethodDelete, path, nil, nil)
	return err
}

// siteFields projects the named fields of a site into a patch body.
func siteFields(site *Site, fields []string) (map[string]any, error) {
	patch := make(map[string]any, len(fields))
	for _, field := range fields {
		switch field {
		case "appId":
			patch[field] = site.AppID
		case "defaultUrl":
			patch[field] = site.DefaultURL
		case "labels":
			patch[field] = site.Labels
		default:
			return nil, fmt.Errorf("unknown site field %q", field)
		}
	}
	return patch, nil
}
