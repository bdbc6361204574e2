package sfx

import (
	"github.com/llehouerou/soundkit/internal/config"
	"github.com/llehouerou/soundkit/internal/device"
)

// Context owns the shared pool of an application. It replaces a global
// pool: create one at startup and pass it to the code that plays sounds.
type Context struct {
	dev      device.Device
	settings config.PoolSettings
	opts     []Option
	pool     *Pool
}

// NewContext returns a context with no pool yet.
func NewContext(dev device.Device, settings config.PoolSettings, opts ...Option) *Context {
	return &Context{dev: dev, settings: settings, opts: opts}
}

// Init creates the pool if it does not exist.
func (c *Context) Init() error {
	if c.pool != nil {
		return nil
	}
	p, err := NewPool(c.dev, c.settings, c.opts...)
	if err != nil {
		return err
	}
	c.pool = p
	return nil
}

// Pool returns the shared pool, creating it on first use when auto creation
// is enabled. Otherwise it returns ErrNotInitialized until Init is called.
func (c *Context) Pool() (*Pool, error) {
	if c.pool == nil {
		if !c.settings.AutoCreate {
			return nil, ErrNotInitialized
		}
		if err := c.Init(); err != nil {
			return nil, err
		}
	}
	return c.pool, nil
}

// Unload is called on a context switch, such as a scene change. The pool is
// torn down unless it persists across unloads.
func (c *Context) Unload() error {
	if c.settings.PersistAcrossUnload {
		return nil
	}
	return c.Close()
}

// Close tears down the pool. A later Pool or Init call creates a new one.
func (c *Context) Close() error {
	if c.pool == nil {
		return nil
	}
	err := c.pool.Close()
	c.pool = nil
	return err
}
