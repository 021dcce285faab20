package ingestion

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const postingHTML = `<!DOCTYPE html>
<html>
<head><title>ML Engineer</title><style>body { color: red; }</style></head>
<body>
<nav>Home | Jobs | About</nav>
<main>
  <h1>Machine Learning Engineer</h1>
  <p>We build recommendation systems at scale.</p>
  <ul>
    <li>Required: experience with PyTorch and distributed training</li>
    <li>Nice to have: familiarity with Kubernetes</li>
  </ul>
  <script>trackPageView();</script>
</main>
<footer>© Example Corp</footer>
</body>
</html>`

func TestExtractMainText(t *testing.T) {
	text, err := ExtractMainText(postingHTML)
	require.NoError(t, err)

	assert.Contains(t, text, "Machine Learning Engineer")
	assert.Contains(t, text, "recommendation systems")
	assert.Contains(t, text, "PyTorch")

	assert.NotContains(t, text, "trackPageView", "scripts are stripped")
	assert.NotContains(t, text, "Home | Jobs", "navigation is stripped")
	assert.NotContains(t, text, "Example Corp", "footer is stripped")
	assert.NotContains(t, text, "color: red", "styles are stripped")
}

func TestExtractMainTextKeepsLineStructure(t *testing.T) {
	text, err := ExtractMainText(postingHTML)
	require.NoError(t, err)

	lines := strings.Split(text, "\n")
	var requiredLine string
	for _, line := range lines {
		if strings.Contains(line, "PyTorch") {
			requiredLine = line
		}
	}
	require.NotEmpty(t, requiredLine)
	assert.Contains(t, requiredLine, "Required", "list items keep their qualifier on the same line")
	assert.NotContains(t, requiredLine, "Kubernetes", "separate list items stay on separate lines")
}

func TestExtractMainTextFallsBackToBody(t *testing.T) {
	short := `<html><body><p>Tiny posting mentioning Python.</p></body></html>`
	text, err := ExtractMainText(short)
	require.NoError(t, err)
	assert.Contains(t, text, "Python")
}

func TestFromURL(t *testing.T) {
	t.Run("Fetches and extracts", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Contains(t, r.Header.Get("User-Agent"), "PrepAgent")
			_, _ = w.Write([]byte(postingHTML))
		}))
		defer server.Close()

		text, err := FromURL(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Contains(t, text, "PyTorch")
	})

	t.Run("Invalid URL", func(t *testing.T) {
		_, err := FromURL(context.Background(), "not a url")
		assert.ErrorIs(t, err, ErrInvalidURL)
	})

	t.Run("Missing scheme", func(t *testing.T) {
		_, err := FromURL(context.Background(), "example.com/jobs")
		assert.ErrorIs(t, err, ErrInvalidURL)
	})

	t.Run("Non-2xx status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		_, err := FromURL(context.Background(), server.URL)
		assert.ErrorIs(t, err, ErrHTTPRequestFailed)
	})

	t.Run("Empty page", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("<html><body></body></html>"))
		}))
		defer server.Close()

		_, err := FromURL(context.Background(), server.URL)
		assert.ErrorIs(t, err, ErrContentExtractionFailed)
	})

	t.Run("Canceled context", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(postingHTML))
		}))
		defer server.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := FromURL(ctx, server.URL)
		assert.Error(t, err)
	})
}
