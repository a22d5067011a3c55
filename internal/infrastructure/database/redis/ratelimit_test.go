package redis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestKeyPrefixing(t *testing.T) {
	c := &Client{prefix: "wishwell"}
	store := NewRateLimitStore(c, 24*time.Hour)
	assert.Equal(t, "wishwell:ratelimit:a1", store.key("a1"))

	c = &Client{}
	store = NewRateLimitStore(c, 24*time.Hour)
	assert.Equal(t, "ratelimit:a1", store.key("a1"))
}
