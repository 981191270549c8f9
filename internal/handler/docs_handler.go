package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/octobees/identity-cache/api/internal/docs"
)

// DocsHandler renders the API documentation as a standalone HTML page.
type DocsHandler struct{}

// NewDocsHandler creates a new handler instance.
func NewDocsHandler() *DocsHandler {
	return &DocsHandler{}
}

// Get handles GET /docs/api.
func (h *DocsHandler) Get(c echo.Context) error {
	scheme := c.Scheme()
	baseURL := scheme + "://" + c.Request().Host

	content := strings.ReplaceAll(docs.Content, "{{BASE_URL}}", baseURL)
	// The markdown is embedded in a JS template literal; escape its
	// delimiters.
	content = strings.ReplaceAll(content, "`", "\\`")
	content = strings.ReplaceAll(content, "${", "\\${")

	html := `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>Identity Cache API Docs</title>
  <link rel="stylesheet" href="https://cdnjs.cloudflare.com/ajax/libs/github-markdown-css/5.2.0/github-markdown-light.min.css" />
  <style>
    body { box-sizing: border-box; min-width: 200px; max-width: 980px; margin: 0 auto; padding: 45px; }
  </style>
</head>
<body class="markdown-body">
  <div id="content"></div>
  <script src="https://cdn.jsdelivr.net/npm/marked/marked.min.js"></script>
  <script>
    const markdownContent = ` + "`" + content + "`" + `;
    document.getElementById('content').innerHTML = marked.parse(markdownContent);
  </script>
</body>
</html>
`
	return c.HTML(http.StatusOK, html)
}
