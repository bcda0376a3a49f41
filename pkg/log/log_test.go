package log

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithCorrelationID(t *testing.T) {
	ctx, id := WithCorrelationID(context.Background())

	_, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, id, GetCorrelationID(ctx))
	assert.Empty(t, GetCorrelationID(context.Background()))
}

func TestForContext(t *testing.T) {
	var buf bytes.Buffer
	logrus.SetOutput(&buf)
	logrus.SetFormatter(&logrus.JSONFormatter{})
	t.Cleanup(func() {
		logrus.SetOutput(os.Stderr)
		logrus.SetFormatter(&logrus.TextFormatter{})
	})
	L = &logger{entry: logrus.NewEntry(logrus.StandardLogger())}

	ctx, id := WithCorrelationID(context.Background())
	ForContext(ctx).WithField("path", "/v1/reports").Info("hello")

	assert.Contains(t, buf.String(), `"correlation_id":"`+id+`"`)
	assert.Contains(t, buf.String(), `"path":"/v1/reports"`)
}

func TestSetup(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Cleanup(func() { logrus.SetLevel(logrus.InfoLevel) })

	Setup("warn")
	assert.Equal(t, logrus.WarnLevel, logrus.GetLevel())

	Setup("nonsense")
	assert.Equal(t, logrus.InfoLevel, logrus.GetLevel())
}
