package qbittorrent

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"qbsort/internal/logging"
)

// Step identifies one of the mutation calls issued by Apply.
type Step string

const (
	StepSetLocation       Step = "setLocation"
	StepSetCategory       Step = "setCategory"
	StepSetAutoManagement Step = "setAutoManagement"
)

// StepError reports which apply step failed and why. A zero StatusCode means
// the request never produced a response.
type StepError struct {
	Step       Step
	StatusCode int
	Err        error
}

func (e *StepError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Step, e.Err)
	}
	return fmt.Sprintf("%s returned status %d", e.Step, e.StatusCode)
}

func (e *StepError) Unwrap() error { return e.Err }

// Apply pushes the classification decision to qBittorrent as three sequential
// mutations: relocate the torrent, assign its category label, and hand
// placement back to automatic torrent management. Each response is checked
// for status 200 and the first failure stops the sequence; steps already
// applied are left in place.
func (c *Client) Apply(ctx context.Context, session *Session, hash, targetPath, categoryLabel string) error {
	steps := []struct {
		step Step
		path string
		form url.Values
	}{
		{StepSetLocation, setLocationPath, url.Values{"hashes": {hash}, "location": {targetPath}}},
		{StepSetCategory, setCategoryPath, url.Values{"hashes": {hash}, "category": {categoryLabel}}},
		{StepSetAutoManagement, setAutoManagementPath, url.Values{"hashes": {hash}, "enable": {"true"}}},
	}

	for _, s := range steps {
		if err := c.applyStep(ctx, session, s.step, s.path, s.form); err != nil {
			return err
		}
		c.logger.Debug("step applied", logging.String("step", string(s.step)))
	}
	return nil
}

func (c *Client) applyStep(ctx context.Context, session *Session, step Step, path string, form url.Values) error {
	resp, err := c.postForm(ctx, path, form, sessionToken(session))
	if err != nil {
		return &StepError{Step: step, Err: err}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return &StepError{Step: step, StatusCode: resp.StatusCode}
	}
	return nil
}
