package web

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRendererParsesAllTemplates(t *testing.T) {
	_, err := NewRenderer("test-app")
	require.NoError(t, err)
}

func TestRenderToast(t *testing.T) {
	r, err := NewRenderer("test-app")
	require.NoError(t, err)

	out, err := r.Render("toast", map[string]any{"Type": "error", "Message": "nope"})
	require.NoError(t, err)
	require.Contains(t, string(out), "toast-error")
	require.Contains(t, string(out), "nope")
}

func TestRenderUnknownTemplate(t *testing.T) {
	r, err := NewRenderer("test-app")
	require.NoError(t, err)

	_, err = r.Render("no/such/template", nil)
	require.Error(t, err)
}

func TestRenderPageEscapesData(t *testing.T) {
	r, err := NewRenderer("test-app")
	require.NoError(t, err)

	out, err := r.Render("pages/login", map[string]any{
		"Title": "<script>alert(1)</script>",
	})
	require.NoError(t, err)
	require.False(t, strings.Contains(string(out), "<script>alert(1)</script>"))
}
