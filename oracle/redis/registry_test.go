package redis

import (
	"testing"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestNewRegistry_DefaultKey(t *testing.T) {
	client := goredis.NewClient(&goredis.Options{})
	r := NewRegistry(client, "")

	assert.NotNil(t, r)
	assert.Equal(t, "usernames", r.key)
	assert.Equal(t, client, r.client)
}

func TestNewRegistry_CustomKey(t *testing.T) {
	r := NewRegistry(goredis.NewClient(&goredis.Options{}), "taken:localparts")

	assert.Equal(t, "taken:localparts", r.key)
}
