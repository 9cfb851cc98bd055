package server

import "html/template"

// indexTemplate is the upload form. Kept as an embedded string: it is the
// server's only page and has no assets to resolve.
var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head>
    <title>DOCX to JATS Converter</title>
    <style>
        body { font-family: Arial, sans-serif; max-width: 800px; margin: 0 auto; padding: 20px; }
        .form-group { margin-bottom: 15px; }
        label { display: block; margin-bottom: 5px; font-weight: bold; }
        input[type="file"] { width: 100%; padding: 8px; margin-bottom: 10px; }
        button { background: #007cba; color: white; padding: 10px 20px; border: none; cursor: pointer; }
        button:hover { background: #005a87; }
        .result { margin-top: 20px; padding: 15px; background: #f0f0f0; border-radius: 5px; }
        .error { background: #ffebee; color: #c62828; }
        .success { background: #e8f5e8; color: #2e7d32; }
        footer { margin-top: 40px; font-size: 0.8em; color: #999; }
    </style>
</head>
<body>
    <h1>DOCX to JATS XML Converter</h1>
    <p>Upload a DOCX file to convert to Markdown, or a Markdown file to convert to JATS XML.</p>

    <form action="/convert" method="post" enctype="multipart/form-data">
        <div class="form-group">
            <label for="document">Select Document:</label>
            <input type="file" id="document" name="document" accept=".docx,.md" required>
        </div>

        <div class="form-group">
            <label for="convert-to-jats">
                <input type="checkbox" id="convert-to-jats" name="convert-to-jats">
                Convert to JATS XML (for DOCX files; Markdown always converts to JATS)
            </label>
        </div>

        <button type="submit">Convert Document</button>
    </form>

    <form action="/preview" method="post" enctype="multipart/form-data">
        <div class="form-group">
            <label for="preview-document">Preview Markdown in browser:</label>
            <input type="file" id="preview-document" name="document" accept=".md" required>
        </div>
        <button type="submit">Preview</button>
    </form>

    {{if .Message}}
    <div class="result {{if .Error}}error{{else}}success{{end}}">
        {{.Message}}
    </div>
    {{end}}

    <footer>go-docx2jats {{.Version}}</footer>
</body>
</html>
`))

// indexData feeds indexTemplate.
type indexData struct {
	Message string
	Error   bool
	Version string
}
