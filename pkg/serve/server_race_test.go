package serve

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestServer_EvaluateBeforeEOF checks that a response is still sent when EOF
// reaches the main loop before the pending request does.
func TestServer_EvaluateBeforeEOF(t *testing.T) {
	for i := range 10 {
		request := `{"type":"evaluate","payload":{"pattern":"a","subject":"aa"}}` + "\n"
		in := strings.NewReader(request)
		out := &strings.Builder{}

		srv := NewServer(newTester(t), in, out)
		require.NoError(t, srv.Run(context.Background()))

		lines := strings.Split(strings.TrimSpace(out.String()), "\n")
		require.Len(t, lines, 2, "iteration %d: expected 2 lines (ready + evaluate response), got %d", i, len(lines))

		var resp Response
		require.NoError(t, json.Unmarshal([]byte(lines[1]), &resp), "iteration %d: failed to unmarshal response", i)

		assert.True(t, resp.Success, "iteration %d: expected success", i)
		assert.Equal(t, TypeEvaluate, resp.Type, "iteration %d: expected evaluate type", i)
	}
}
