package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitFileOutput(t *testing.T) {
	t.Cleanup(func() { _ = Init(nil) })

	path := filepath.Join(t.TempDir(), "nested", "app.log")
	require.NoError(t, Init(&Config{Level: "debug", Format: "json", Output: "file", FilePath: path}))
	assert.Equal(t, logrus.DebugLevel, GetLogger().GetLevel())

	WithField("user_id", "user_1").Info("profile created")
	_, _ = gin.DefaultErrorWriter.Write([]byte("[GIN] panic recovered\n"))
	_, _ = gin.DefaultWriter.Write([]byte("   \n"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, `"msg":"profile created"`)
	assert.Contains(t, content, `"user_id":"user_1"`)
	assert.Contains(t, content, `"msg":"[GIN] panic recovered"`)
	assert.Contains(t, content, `"source":"gin"`)
	assert.NotContains(t, content, `"msg":""`)
}

func TestInitFallbacks(t *testing.T) {
	t.Cleanup(func() { _ = Init(nil) })

	require.NoError(t, Init(&Config{Level: "loud", Format: "xml", Output: "printer"}))
	assert.Equal(t, logrus.InfoLevel, GetLogger().GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, GetLogger().Formatter)
	assert.Equal(t, os.Stdout, GetLogger().Out)
}
