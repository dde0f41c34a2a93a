package identity

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hostctl/hostctl/hosting"
)

func TestCleanDomains(t *testing.T) {
	lister := &fakeChannelLister{
		channels: []*hosting.Channel{
			{URL: "https://my-site--ch1-4iyrl1uo.web.app"},
		},
	}
	httpClient := &mockHTTPClient{
		code:    200,
		resBody: `{"authorizedDomains":["my-site.firebaseapp.com","localhost","randomurl.com","my-site--ch1-4iyrl1uo.web.app","my-site--expiredchannel-difhyc76.web.app"]}`,
	}
	client := NewClient(WithHTTPClient(httpClient))

	domains, err := client.CleanDomains(context.Background(), "my-project", "my-site", lister)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"my-site.firebaseapp.com",
		"localhost",
		"randomurl.com",
		"my-site--ch1-4iyrl1uo.web.app",
	}, domains)
}

func TestCleanDomainsClassification(t *testing.T) {
	type cleanDomainsTest struct {
		name      string
		domains   []string
		site      string
		liveHosts []string
		expected  []string
	}

	testCases := []cleanDomainsTest{
		{
			name:     "Custom Domain With Double Dash Is Kept",
			domains:  []string{"shop--checkout.example.com"},
			site:     "my-site",
			expected: []string{"shop--checkout.example.com"},
		},
		{
			name:     "Other Sites Channel Domain Is Kept",
			domains:  []string{"other-site--ch1-abcdef.web.app"},
			site:     "my-site",
			expected: []string{"other-site--ch1-abcdef.web.app"},
		},
		{
			name:     "Default Domain Is Kept",
			domains:  []string{"my-site.firebaseapp.com", "my-site.web.app"},
			site:     "my-site",
			expected: []string{"my-site.firebaseapp.com", "my-site.web.app"},
		},
		{
			name:     "Stale Channel Domain Is Dropped",
			domains:  []string{"my-site--old-abcdef.web.app"},
			site:     "my-site",
			expected: []string{},
		},
		{
			name:      "Live Channel Domain Is Kept",
			domains:   []string{"my-site--ch1-abcdef.web.app"},
			site:      "my-site",
			liveHosts: []string{"my-site--ch1-abcdef.web.app"},
			expected:  []string{"my-site--ch1-abcdef.web.app"},
		},
		{
			name:      "Order And Duplicates Preserved",
			domains:   []string{"localhost", "my-site--a-x.web.app", "localhost", "my-site--b-y.web.app"},
			site:      "my-site",
			liveHosts: []string{"my-site--b-y.web.app"},
			expected:  []string{"localhost", "localhost", "my-site--b-y.web.app"},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			hosts := make(map[string]struct{}, len(testCase.liveHosts))
			for _, host := range testCase.liveHosts {
				hosts[host] = struct{}{}
			}

			got := cleanDomains(testCase.domains, testCase.site, hosts)
			assert.Equal(t, testCase.expected, got)
		})
	}
}

func TestCleanDomainsListerFailure(t *testing.T) {
	lister := &fakeChannelLister{err: errors.New("channels unavailable")}
	client := NewClient(WithHTTPClient(&mockHTTPClient{code: 200, resBody: `{}`}))

	domains, err := client.CleanDomains(context.Background(), "my-project", "my-site", lister)
	assert.Nil(t, domains)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "channels unavailable")
}

func TestSyncDomainsWritesPrunedList(t *testing.T) {
	lister := &fakeChannelLister{
		channels: []*hosting.Channel{
			{URL: "https://my-site--ch1-4iyrl1uo.web.app"},
		},
	}
	httpClient := &sequenceHTTPClient{
		responses: []mockResponse{
			{code: 200, body: `{"authorizedDomains":["localhost","my-site--ch1-4iyrl1uo.web.app","my-site--expired-difhyc76.web.app"]}`},
			{code: 200, body: `{"authorizedDomains":["localhost","my-site--ch1-4iyrl1uo.web.app"]}`},
		},
	}
	client := NewClient(WithHTTPClient(httpClient))

	domains, err := client.SyncDomains(context.Background(), "my-project", "my-site", lister)
	require.NoError(t, err)
	assert.Equal(t, []string{"localhost", "my-site--ch1-4iyrl1uo.web.app"}, domains)

	require.Len(t, httpClient.requests, 2)
	patchReq := httpClient.requests[1]
	assert.Equal(t, "PATCH", patchReq.Method)
	assert.Equal(t, "/admin/v2/projects/my-project/config", patchReq.URL.Path)
	assert.Equal(t, "authorizedDomains", patchReq.URL.Query().Get("update_mask"))
	assert.JSONEq(t, `{"authorizedDomains":["localhost","my-site--ch1-4iyrl1uo.web.app"]}`, httpClient.reqBodies[1])
}

func TestSyncDomainsSkipsWriteWhenClean(t *testing.T) {
	lister := &fakeChannelLister{
		channels: []*hosting.Channel{
			{URL: "https://my-site--ch1-4iyrl1uo.web.app"},
		},
	}
	httpClient := &sequenceHTTPClient{
		responses: []mockResponse{
			{code: 200, body: `{"authorizedDomains":["localhost","my-site--ch1-4iyrl1uo.web.app"]}`},
		},
	}
	client := NewClient(WithHTTPClient(httpClient))

	domains, err := client.SyncDomains(context.Background(), "my-project", "my-site", lister)
	require.NoError(t, err)
	assert.Equal(t, []string{"localhost", "my-site--ch1-4iyrl1uo.web.app"}, domains)
	assert.Len(t, httpClient.requests, 1, "nothing dropped, nothing written")
}
