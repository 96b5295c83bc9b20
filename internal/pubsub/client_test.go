package pubsub

import (
	"encoding/base64"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

type event struct {
	Home  string `msgpack:"home"`
	Share int    `msgpack:"share"`
}

func TestProcessMessage(t *testing.T) {
	data, err := msgpack.Marshal(event{Home: "Arsenal", Share: 66})
	require.NoError(t, err)

	var got event
	c := &client{}
	require.NoError(t, c.ProcessMessage(data, &got))
	assert.Equal(t, event{Home: "Arsenal", Share: 66}, got)

	assert.Error(t, c.ProcessMessage([]byte{0xc1}, &got), "0xc1 is never valid msgpack")
}

func TestDecodePush(t *testing.T) {
	payload := []byte("hello")
	body := fmt.Sprintf(`{"subscription":"projects/p/subscriptions/s","message":{"messageId":"42","data":%q}}`,
		base64.StdEncoding.EncodeToString(payload))

	req, data, err := DecodePush([]byte(body))
	require.NoError(t, err)
	assert.Equal(t, payload, data)
	assert.Equal(t, "42", req.Message.ID)
	assert.Equal(t, "projects/p/subscriptions/s", req.Subscription)

	_, _, err = DecodePush([]byte(`{"message":{"data":"***"}}`))
	assert.Error(t, err)

	_, _, err = DecodePush([]byte(`not json`))
	assert.Error(t, err)
}
