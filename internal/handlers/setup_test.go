package handlers

import (
	"testing"

	"github.com/dimitrije/collaborate-api/internal/i18n"
	"github.com/dimitrije/collaborate-api/tests/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const (
	testBaseURL  = "http://localhost:8080/api/v1"
	testMaxBytes = int64(4096)
)

func newTestBundle(t *testing.T) *i18n.Bundle {
	t.Helper()
	bundle, err := i18n.LoadEmbedded()
	require.NoError(t, err)
	return bundle
}

func authHeaders(t *testing.T, userID uuid.UUID, locale string) map[string]string {
	t.Helper()
	return map[string]string{
		"Authorization": testutil.AuthHeader(testutil.GenerateTestToken(t, userID, locale)),
	}
}
