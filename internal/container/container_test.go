package container

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"heartbi/domain/core"
	"heartbi/domain/heart"
	"heartbi/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(url string) *config.Config {
	return &config.Config{
		Data:    config.DataConfig{DefaultURL: url, FetchTimeout: time.Second, MaxUploadBytes: 1 << 20, AssetsDir: "."},
		Session: config.SessionConfig{TTL: time.Hour},
		Log:     config.LogConfig{Level: "ERROR"},
	}
}

func TestNewRequiresConfig(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)
}

func TestContainerWiresSessionsToDefaultURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("a,b,c,d,e,f,g,h,i,j,k,l,m,n\n63,1,3,145,233,1,0,150,0,2.3,0,0,1,1\n"))
	}))
	defer srv.Close()

	c, err := New(testConfig(srv.URL))
	require.NoError(t, err)
	defer c.Shutdown(context.Background())

	snap := c.Sessions.Get(context.Background(), core.NewSessionID())
	assert.Equal(t, heart.SourceRemote, snap.Dataset.Source)
	assert.Equal(t, heart.Columns, snap.Dataset.Columns)
	assert.Empty(t, snap.Warning)
	assert.Equal(t, time.Second, c.HTTPClient.Timeout)
}
