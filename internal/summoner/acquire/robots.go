package acquire

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	log "github.com/sirupsen/logrus"
	"github.com/temoto/robotstxt"
)

var ErrDisallowedByRobots = errors.New("disallowed by robots.txt")

// checkRobots declines urls the host's robots.txt disallows for our agent.
// A robots.txt that cannot be fetched does not block the request.
func checkRobots(ctx context.Context, client *http.Client, u *url.URL) error {
	robots, err := getRobotsForDomain(ctx, client, u)
	if err != nil {
		log.Warn("Error getting robots.txt for ", u.Host, ", continuing without it: ", err)
		return nil
	}
	loc := u.EscapedPath()
	if loc == "" {
		loc = "/"
	}
	if !robots.TestAgent(loc, AgentName) {
		log.Error("Declining to fetch ", u.String(), " because it is disallowed by robots.txt")
		return fmt.Errorf("%w: %s", ErrDisallowedByRobots, u.String())
	}
	return nil
}

func getRobotsForDomain(ctx context.Context, client *http.Client, u *url.URL) (*robotstxt.RobotsData, error) {
	robotsURL := url.URL{Scheme: u.Scheme, Host: u.Host, Path: "/robots.txt"}
	log.Debug("Getting robots.txt from ", robotsURL.String())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", UserAgent)
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	return robotstxt.FromResponse(resp)
}
