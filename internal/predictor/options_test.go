package predictor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mauv0809/keybet/internal/config"
)

func TestSchemaFromConfig(t *testing.T) {
	schema, err := SchemaFromConfig(config.SchemaConfig{Name: "classic", Keys: map[string]string{"fthg": "home_goals"}})
	require.NoError(t, err)
	f, ok := schema.Field(FieldFTHG)
	require.True(t, ok)
	assert.Equal(t, "home_goals", f.Key)

	_, err = SchemaFromConfig(config.SchemaConfig{Name: "nope"})
	assert.Error(t, err)

	schema, err = SchemaFromConfig(config.SchemaConfig{Name: "keybet", Optional: []string{"HST", "AST"}})
	require.NoError(t, err)
	hst, _ := schema.Field(FieldHST)
	assert.False(t, hst.Required)
	hc, _ := schema.Field(FieldHC)
	assert.True(t, hc.Required)

	_, err = SchemaFromConfig(config.SchemaConfig{Name: "keybet", Optional: []string{"FTAG"}})
	assert.Error(t, err)
}

func TestNewClientFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Server.URL = "localhost:5000"
	cfg.Server.TimeoutSeconds = 3

	c, err := NewClientFromConfig(cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5000", c.BaseURL())
	assert.Equal(t, 3*time.Second, c.httpClient.Timeout)
	assert.True(t, c.RequiresLogin())

	cfg.Schema.Login = config.LoginDisabled
	c, err = NewClientFromConfig(cfg, nil)
	require.NoError(t, err)
	assert.False(t, c.RequiresLogin())

	cfg.Schema.Name = "legacy"
	cfg.Schema.Login = config.LoginRequired
	c, err = NewClientFromConfig(cfg, nil)
	require.NoError(t, err)
	assert.True(t, c.RequiresLogin())

	cfg.Server.URL = ""
	_, err = NewClientFromConfig(cfg, nil)
	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)
}
