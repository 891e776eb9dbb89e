package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetAllowedOrigins(t *testing.T) {
	assert := assert.New(t)

	t.Setenv("HOVERTONE_ORIGINS", "")
	assert.Equal([]string{"*"}, GetAllowedOrigins())

	t.Setenv("HOVERTONE_ORIGINS", "http://a.test, ,http://b.test")
	assert.Equal([]string{"http://a.test", "http://b.test"}, GetAllowedOrigins())
}

func TestGetListenAddr(t *testing.T) {
	t.Setenv("HOVERTONE_ADDR", "")
	assert.Equal(t, ":8080", GetListenAddr())

	t.Setenv("HOVERTONE_ADDR", "127.0.0.1:9000")
	assert.Equal(t, "127.0.0.1:9000", GetListenAddr())
}
