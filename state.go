package goAuthClient

import "context"

// State is a snapshot of the session container. User is a deep copy, so
// holding a snapshot never aliases live state.
type State struct {
	User            *Profile
	Token           string
	IsAuthenticated bool
	IsLoading       bool
	LastError       error
}

// State returns the current session snapshot.
func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Client) snapshotLocked() State {
	s := c.state
	s.User = c.state.User.Clone()
	return s
}

// ClearError drops the last recorded operation error without touching the
// rest of the state.
func (c *Client) ClearError() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.LastError = nil
}

// beginOp marks an operation in flight and clears any stale error.
func (c *Client) beginOp() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.IsLoading = true
	c.state.LastError = nil
}

// finishSuccess completes an operation that did not touch credentials.
func (c *Client) finishSuccess() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.IsLoading = false
	c.state.LastError = nil
}

// finishFailure records a failed operation. Local credentials are untouched.
func (c *Client) finishFailure(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.IsLoading = false
	c.state.LastError = err
}

// establishSession persists the credential pair and only then flips local
// state to authenticated. A session the store cannot hold does not count.
func (c *Client) establishSession(ctx context.Context, token string, user *Profile) error {
	if err := c.store.Save(ctx, token, user); err != nil {
		c.mu.Lock()
		c.resetLocalLocked()
		c.state.IsLoading = false
		c.state.LastError = err
		c.mu.Unlock()
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Token = token
	c.state.User = user.Clone()
	c.state.IsAuthenticated = token != ""
	c.state.IsLoading = false
	c.state.LastError = nil
	return nil
}

// clearSession drops local credentials and finishes the operation cleanly.
func (c *Client) clearSession() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetLocalLocked()
	c.state.IsLoading = false
	c.state.LastError = nil
}

// evictSession drops local credentials and records the error that caused it.
func (c *Client) evictSession(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetLocalLocked()
	c.state.IsLoading = false
	c.state.LastError = err
}

func (c *Client) resetLocalLocked() {
	c.state.Token = ""
	c.state.User = nil
	c.state.IsAuthenticated = false
}
