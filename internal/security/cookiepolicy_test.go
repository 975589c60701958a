package security

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCookiePolicy_SetAndClearMirrorScope(t *testing.T) {
	policy := NewCookiePolicy("sessionid", 168*time.Hour, false)

	set := policy.SessionCookie("signed-value")
	clear := policy.ClearingCookie()

	assert.Equal(t, set.Name, clear.Name)
	assert.Equal(t, set.Path, clear.Path)
	assert.Equal(t, set.HttpOnly, clear.HttpOnly)
	assert.Equal(t, set.Secure, clear.Secure)
	assert.Equal(t, set.SameSite, clear.SameSite)

	assert.Equal(t, "signed-value", set.Value)
	assert.Equal(t, int((168 * time.Hour).Seconds()), set.MaxAge)
	assert.True(t, set.HttpOnly)
	assert.Equal(t, "/", set.Path)

	assert.Empty(t, clear.Value)
	assert.Negative(t, clear.MaxAge)
}

func TestCookiePolicy_SameSiteTracksSecure(t *testing.T) {
	insecure := NewCookiePolicy("sessionid", time.Hour, false)
	assert.Equal(t, http.SameSiteLaxMode, insecure.SessionCookie("v").SameSite)
	assert.False(t, insecure.SessionCookie("v").Secure)

	secure := NewCookiePolicy("sessionid", time.Hour, true)
	assert.Equal(t, http.SameSiteStrictMode, secure.SessionCookie("v").SameSite)
	assert.True(t, secure.SessionCookie("v").Secure)
}
