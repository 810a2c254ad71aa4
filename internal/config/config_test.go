package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
app:
  name: cm-go
  port: 9000
database:
  driver: mysql
  host: db.internal
  port: 3306
  user: cm
  password: pw
  dbname: comments
jwt:
  secret: file-secret
kafka:
  topics:
    comment_events: blog-comment-events
like:
  enforce_unique: true
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Setenv("CM_JWT_SECRET", "env-secret")

	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.App.Port)
	assert.Equal(t, "debug", cfg.App.Mode)
	assert.Equal(t, "env-secret", cfg.JWT.Secret)
	assert.Equal(t, "cm_token", cfg.JWT.CookieName)
	assert.Equal(t, 72*time.Hour, cfg.JWT.ExpireDuration())
	assert.Equal(t, 10*time.Minute, cfg.OAuth.StateTTLDuration())
	assert.Equal(t, "cm:oauth:state:", cfg.OAuth.StatePrefix)
	assert.True(t, cfg.Like.EnforceUnique)
	assert.False(t, cfg.Comment.EnforcePermission)
	assert.Equal(t, "blog-comment-events", cfg.Kafka.EventsTopic())
	assert.Equal(t, "comments", cfg.Elasticsearch.CommentsIndex())

	assert.Same(t, cfg, Get())
}

func TestDatabaseDSN(t *testing.T) {
	my := &DatabaseConfig{Driver: "mysql", Host: "db", Port: 3306, User: "u", Password: "p", DBName: "comments"}
	dsn := my.DSN()
	assert.True(t, strings.HasPrefix(dsn, "u:p@tcp(db:3306)/comments?"), dsn)
	assert.Contains(t, dsn, "parseTime=true")
	assert.Contains(t, dsn, "charset=utf8mb4")

	pg := &DatabaseConfig{Driver: "postgres", Host: "db", Port: 5432, User: "u", Password: "p", DBName: "comments", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=comments sslmode=disable", pg.DSN())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
