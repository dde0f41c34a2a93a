package version

import (
	"io"
	"net/http"
	"sync"
	"time"

	goversion "github.com/hashicorp/go-version"
	log "github.com/sirupsen/logrus"
)

const (
	versionURL  = "https://pkgs.hostctl.dev/releases/latest/version"
	fetchPeriod = 30 * time.Minute
)

// Update periodically fetches the latest released hostctl version and
// notifies a listener when a newer release than the running build exists.
type Update struct {
	currentVersion *goversion.Version
	lastAvailable  *goversion.Version
	versionsLock   sync.Mutex

	onUpdateListener func(version string)
	listenerLock     sync.Mutex
}

// NewUpdate starts a background fetcher and returns the checker.
func NewUpdate() *Update {
	currentVersion, err := goversion.NewVersion(version)
	if err != nil {
		currentVersion, _ = goversion.NewVersion("0.0.0")
	}

	lastAvailable, _ := goversion.NewVersion("0.0.0")

	u := &Update{
		lastAvailable:  lastAvailable,
		currentVersion: currentVersion,
	}

	go u.startFetcher()
	return u
}

// SetOnUpdateListener registers the callback invoked with the newer
// version string. It fires immediately when an update is already known.
func (u *Update) SetOnUpdateListener(updateFn func(version string)) {
	u.listenerLock.Lock()
	defer u.listenerLock.Unlock()

	u.onUpdateListener = updateFn
	if u.isUpdateAvailable() {
		u.onUpdateListener(u.lastAvailable.String())
	}
}

func (u *Update) startFetcher() {
	if u.fetchVersion() {
		u.checkUpdate()
	}

	ticker := time.NewTicker(fetchPeriod)
	for range ticker.C {
		if u.fetchVersion() {
			u.checkUpdate()
		}
	}
}

func (u *Update) fetchVersion() bool {
	resp, err := http.Get(versionURL)
	if err != nil {
		log.Errorf("failed to fetch version info: %s", err)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Errorf("invalid status code: %d", resp.StatusCode)
		return false
	}

	if resp.ContentLength > 100 {
		log.Errorf("too large response: %d", resp.ContentLength)
		return false
	}

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Errorf("failed to read content: %s", err)
		return false
	}

	lastAvailable, err := goversion.NewVersion(string(content))
	if err != nil {
		log.Errorf("failed to parse the version string: %s", err)
		return false
	}

	u.versionsLock.Lock()
	defer u.versionsLock.Unlock()

	if u.lastAvailable.Equal(lastAvailable) {
		return false
	}
	u.lastAvailable = lastAvailable

	return true
}

func (u *Update) checkUpdate() {
	if !u.isUpdateAvailable() {
		return
	}

	u.listenerLock.Lock()
	defer u.listenerLock.Unlock()
	if u.onUpdateListener == nil {
		return
	}

	u.onUpdateListener(u.lastAvailable.String())
}

func (u *Update) isUpdateAvailable() bool {
	u.versionsLock.Lock()
	defer u.versionsLock.Unlock()

	return u.lastAvailable.GreaterThan(u.currentVersion)
}
