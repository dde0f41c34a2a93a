package hosting

// Site a hosting site resource, identified by name.
type Site struct {
	Name       string            `json:"name,omitempty"`
	DefaultURL string            `json:"defaultUrl,omitempty"`
	AppID      string            `json:"appId,omitempty"`
	Labels     map[string]string `json:"labels,omitempty"`
}

// Channel a preview deployment channel scoped to a site. The URL host
// follows the pattern <site>--<channelID>-<suffix>.web.app.
type Channel struct {
	Name       string            `json:"name,omitempty"`
	URL        string            `json:"url,omitempty"`
	TTL        string            `json:"ttl,omitempty"`
	CreateTime string            `json:"createTime,omitempty"`
	UpdateTime string            `json:"updateTime,omitempty"`
	ExpireTime string            `json:"expireTime,omitempty"`
	Release    *Release          `json:"release,omitempty"`
	Labels     map[string]string `json:"labels,omitempty"`
}

// Version an immutable deployable artifact, created by cloning an
// existing version on the vendor side.
type Version struct {
	Name         string            `json:"name,omitempty"`
	Status       string            `json:"status,omitempty"`
	CreateTime   string            `json:"createTime,omitempty"`
	FinalizeTime string            `json:"finalizeTime,omitempty"`
	Labels       map[string]string `json:"labels,omitempty"`
}

// Release binds a version to a channel or to the live site. Immutable
// once created.
type Release struct {
	Name        string   `json:"name,omitempty"`
	Version     *Version `json:"version,omitempty"`
	Type        string   `json:"type,omitempty"`
	ReleaseTime string   `json:"releaseTime,omitempty"`
	Message     string   `json:"message,omitempty"`
}
