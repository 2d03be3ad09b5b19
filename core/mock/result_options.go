package mock

import (
	"time"

	"github.com/portalkit/gridview/core"
)

type resultStreamConfig struct {
	nextSleep time.Duration
	header    core.Header
	failAt    int
}

type ResultStreamOption func(*resultStreamConfig)

func ResultStreamWithNextSleep(s time.Duration) ResultStreamOption {
	return func(c *resultStreamConfig) {
		c.nextSleep = s
	}
}

func ResultStreamWithHeader(header core.Header) ResultStreamOption {
	return func(c *resultStreamConfig) {
		c.header = header
	}
}

// ResultStreamWithFailAt makes Next fail on the row built by NewRows with
// the given index. Indices below 1 disable it.
func ResultStreamWithFailAt(index int) ResultStreamOption {
	return func(c *resultStreamConfig) {
		c.failAt = index
	}
}
