package identity

import (
	"context"
	"net/url"
	"regexp"

	log "github.com/sirupsen/logrus"

	"github.com/hostctl/hostctl/hosting"
)

// ChannelLister lists the preview channels of a hosting site.
type ChannelLister interface {
	ListChannels(ctx context.Context, project, site string) ([]*hosting.Channel, error)
}

// previewHostPattern matches hosts of the form
// <site>--<channelID>-<suffix>.web.app. The site name is quoted so a
// custom domain containing "--" cannot false-positive through regex
// metacharacters, and the host must end in .web.app.
func previewHostPattern(site string) *regexp.Regexp {
	return regexp.MustCompile("^" + regexp.QuoteMeta(site) + `--[^.]+\.web\.app$`)
}

// cleanDomains drops every domain that looks like a preview-channel host
// of the site but no longer belongs to a live channel. Domains that do
// not match the preview pattern are kept unconditionally, order is
// preserved.
func cleanDomains(domains []string, site string, liveHosts map[string]struct{}) []string {
	pattern := previewHostPattern(site)

	cleaned := make([]string, 0, len(domains))
	for _, domain := range domains {
		if pattern.MatchString(domain) {
			if _, live := liveHosts[domain]; !live {
				log.Debugf("dropping stale channel domain %s", domain)
				continue
			}
		}
		cleaned = append(cleaned, domain)
	}

	return cleaned
}

// channelHosts collects the URL hosts of a site's live channels.
func channelHosts(ctx context.Context, project, site string, channels ChannelLister) (map[string]struct{}, error) {
	live, err := channels.ListChannels(ctx, project, site)
	if err != nil {
		return nil, err
	}

	hosts := make(map[string]struct{}, len(live))
	for _, channel := range live {
		parsed, err := url.Parse(channel.URL)
		if err != nil {
			log.Warnf("channel %s has an unparsable url %q: %v", channel.Name, channel.URL, err)
			continue
		}
		hosts[parsed.Host] = struct{}{}
	}

	return hosts, nil
}

// CleanDomains returns the project's authorized domains with stale
// preview-channel hosts of the given site removed.
func (c *Client) CleanDomains(ctx context.Context, project, site string, channels ChannelLister) ([]string, error) {
	hosts, err := channelHosts(ctx, project, site, channels)
	if err != nil {
		return nil, err
	}

	domains, err := c.GetAuthorizedDomains(ctx, project)
	if err != nil {
		return nil, err
	}

	return cleanDomains(domains, site, hosts), nil
}

// SyncDomains prunes stale preview-channel domains and, when anything
// was dropped, writes the pruned list back to the identity service. It
// returns the list that is authorized after the call.
func (c *Client) SyncDomains(ctx context.Context, project, site string, channels ChannelLister) ([]string, error) {
	hosts, err := channelHosts(ctx, project, site, channels)
	if err != nil {
		return nil, err
	}

	domains, err := c.GetAuthorizedDomains(ctx, project)
	if err != nil {
		return nil, err
	}

	cleaned := cleanDomains(domains, site, hosts)
	if len(cleaned) == len(domains) {
		return domains, nil
	}

	log.Infof("removing %d stale channel domains from project %s", len(domains)-len(cleaned), project)
	if err := c.UpdateAuthorizedDomains(ctx, project, cleaned); err != nil {
		return nil, err
	}

	return cleaned, nil
}
