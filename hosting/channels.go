package hosting

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/hashicorp/go-multierror"
	log "github.com/sirupsen/logrus"
)

// DefaultChannelTTL is applied when a channel is created or updated
// without an explicit ttl.
const DefaultChannelTTL = 7 * 24 * time.Hour

// ttlString serializes a ttl as a whole-second duration string, the only
// ttl encoding the API accepts.
func ttlString(ttl time.Duration) string {
	return strconv.FormatInt(int64(ttl/time.Second), 10) + "s"
}

// GetChannel retrieves a channel. Returns nil without an error when the
// channel does not exist.
func (c *Client) GetChannel(ctx context.Context, project, site, channelID string) (*Channel, error) {
	path := fmt.Sprintf("/%s/projects/%s/sites/%s/channels/%s", apiVersion, project, site, channelID)
	body, err := c.do(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, err
	}

	var channel Channel
	if err := json.Unmarshal(body, &channel); err != nil {
		return nil, err
	}

	return &channel, nil
}

// ListChannels returns all channels of a site, walking every page of the
// list endpoint in order.
func (c *Client) ListChannels(ctx context.Context, project, site string) ([]*Channel, error) {
	path := fmt.Sprintf("/%s/projects/%s/sites/%s/channels", apiVersion, project, site)

	channels := make([]*Channel, 0)
	pageToken := ""
	for {
		query := url.Values{}
		query.Set("pageToken", pageToken)
		query.Set("pageSize", strconv.Itoa(listPageSize))

		body, err := c.do(ctx, http.MethodGet, path, query, nil)
		if err != nil {
			if pageToken == "" && notFound(err) {
				return nil, &ListNotFoundError{Kind: "channels"}
			}
			return nil, err
		}

		var page struct {
			Channels      []*Channel `json:"channels"`
			NextPageToken string     `json:"nextPageToken"`
		}
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, err
		}

		channels = append(channels, page.Channels...)
		if page.NextPageToken == "" {
			return channels, nil
		}
		pageToken = page.NextPageToken
	}
}

// CreateChannel creates a new channel on a site. A zero ttl falls back to
// DefaultChannelTTL.
func (c *Client) CreateChannel(ctx context.Context, project, site, channelID string, ttl time.Duration) (*Channel, error) {
	if ttl == 0 {
		ttl = DefaultChannelTTL
	}

	path := fmt.Sprintf("/%s/projects/%s/sites/%s/channels", apiVersion, project, site)
	query := url.Values{}
	query.Set("channelId", channelID)

	body, err := c.do(ctx, http.MethodPost, path, query, map[string]string{"ttl": ttlString(ttl)})
	if err != nil {
		return nil, err
	}

	var channel Channel
	if err := json.Unmarshal(body, &channel); err != nil {
		return nil, err
	}

	return &channel, nil
}

// UpdateChannelTTL resets the ttl of an existing channel. A zero ttl
// falls back to DefaultChannelTTL.
func (c *Client) UpdateChannelTTL(ctx context.Context, project, site, channelID string, ttl time.Duration) (*Channel, error) {
	if ttl == 0 {
		ttl = DefaultChannelTTL
	}

	path := fmt.Sprintf("/%s/projects/%s/sites/%s/channels/%s", apiVersion, project, site, channelID)
	query := url.Values{}
	query.Set("updateMask", "ttl")

	body, err := c.do(ctx, http.MethodPatch, path, query, map[string]string{"ttl": ttlString(ttl)})
	if err != nil {
		return nil, err
	}

	var channel Channel
	if err := json.Unmarshal(body, &channel); err != nil {
		return nil, err
	}

	return &channel, nil
}

// DeleteChannel removes a channel from a site. Deleting a channel that is
// already gone surfaces the API error, 404 is not special here.
func (c *Client) DeleteChannel(ctx context.Context, project, site, channelID string) error {
	path := fmt.Sprintf("/%s/projects/%s/sites/%s/channels/%s", apiVersion, project, site, channelID)
	_, err := c.do(ctx, http.MethodDelete, path, nil, nil)
	return err
}

// DeleteChannels removes several channels, continuing past individual
// failures and returning them aggregated.
func (c *Client) DeleteChannels(ctx context.Context, project, site string, channelIDs []string) error {
	var merr *multierror.Error
	for _, channelID := range channelIDs {
		if err := c.DeleteChannel(ctx, project, site, channelID); err != nil {
			log.Warnf("failed to delete channel %s on site %s: %v", channelID, site, err)
			merr = multierror.Append(merr, fmt.Errorf("delete channel %s: %w", channelID, err))
		}
	}
	return merr.ErrorOrNil()
}
