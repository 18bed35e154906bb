package mocks

import "sync"

// CallLog records method invocations with their arguments.
type CallLog struct {
	mu    sync.Mutex
	calls map[string][][]interface{}
}

func (c *CallLog) record(method string, args ...interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.calls == nil {
		c.calls = make(map[string][][]interface{})
	}
	c.calls[method] = append(c.calls[method], args)
}

// Count returns how many times method was called.
func (c *CallLog) Count(method string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.calls[method])
}

// Args returns the arguments of the nth call (zero-based) to method, or nil
// if there was no such call. The context argument is not recorded.
func (c *CallLog) Args(method string, n int) []interface{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	if n < 0 || n >= len(c.calls[method]) {
		return nil
	}
	return c.calls[method][n]
}
