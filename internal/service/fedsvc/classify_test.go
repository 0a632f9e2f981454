package fedsvc

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cartesiandb/federation-registry-server/internal/service"
)

func TestClassifyStoreError(t *testing.T) {
	t.Parallel()

	t.Run("nil passes through", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, ClassifyStoreError(nil))
	})

	t.Run("relation does not exist is not found", func(t *testing.T) {
		t.Parallel()
		err := ClassifyStoreError(errors.New(`ERROR: relation "foo" does not exist`))
		var nf *service.NotFoundError
		require.ErrorAs(t, err, &nf)
		assert.Equal(t, `relation "foo" does not exist`, nf.Message)
	})

	t.Run("sqlstate annotation is stripped", func(t *testing.T) {
		t.Parallel()
		err := ClassifyStoreError(errors.New(`ERROR: server "fedreg_x" does not exist (SQLSTATE 42704)`))
		var nf *service.NotFoundError
		require.ErrorAs(t, err, &nf)
		assert.Equal(t, `server "fedreg_x" does not exist`, nf.Message)
	})

	t.Run("permission error is unauthorized", func(t *testing.T) {
		t.Parallel()
		err := ClassifyStoreError(errors.New("ERROR: Not enough permissions to access the server geoserv"))
		var ua *service.UnauthorizedError
		require.ErrorAs(t, err, &ua)
	})

	t.Run("unprocessable patterns", func(t *testing.T) {
		t.Parallel()
		messages := []string{
			"ERROR: Server name averyveryverylongname is too long to be used as identifier",
			"ERROR: Could not import table parcels of server geoserv",
			"ERROR: Could not import table parcels as parcels already exists",
			"ERROR: non integer id_column bar",
			"ERROR: non geometry column shape",
		}
		for _, msg := range messages {
			err := ClassifyStoreError(errors.New(msg))
			var up *service.UnprocessableError
			require.ErrorAs(t, err, &up, "message %q", msg)
		}
	})

	t.Run("unmatched message propagates unchanged", func(t *testing.T) {
		t.Parallel()
		original := errors.New("ERROR: deadlock detected")
		assert.Same(t, original, ClassifyStoreError(original))
	})

	t.Run("no marker propagates unchanged immediately", func(t *testing.T) {
		t.Parallel()
		original := errors.New("dial tcp: connection refused")
		assert.Same(t, original, ClassifyStoreError(original))
	})

	t.Run("first marker line wins", func(t *testing.T) {
		t.Parallel()
		raw := fmt.Errorf("context:\nERROR: non integer id_column bar\nERROR: something does not exist")
		err := ClassifyStoreError(raw)
		var up *service.UnprocessableError
		require.ErrorAs(t, err, &up)
		assert.Equal(t, "non integer id_column bar", up.Message)
	})

	t.Run("marker mid-line is still found", func(t *testing.T) {
		t.Parallel()
		err := ClassifyStoreError(fmt.Errorf("exec failed: ERROR: non geometry column shape"))
		var up *service.UnprocessableError
		require.ErrorAs(t, err, &up)
	})
}
