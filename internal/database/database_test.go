package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultDuration(t *testing.T) {
	assert.Equal(t, time.Minute, defaultDuration(time.Minute, time.Hour))
	assert.Equal(t, time.Hour, defaultDuration(0, time.Hour))
	assert.Equal(t, time.Hour, defaultDuration(-time.Second, time.Hour))
}
