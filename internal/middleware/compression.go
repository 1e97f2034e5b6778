package middleware

import (
	"bytes"
	"compress/gzip"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// Compression gzips response bodies of at least minSize bytes for clients
// that accept it. Smaller bodies are written as-is.
func Compression(minSize int) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !strings.Contains(c.GetHeader("Accept-Encoding"), "gzip") || c.Request.Method == "HEAD" {
			c.Next()
			return
		}

		original := c.Writer
		buffered := &bufferedWriter{ResponseWriter: original}
		c.Writer = buffered
		defer func() { c.Writer = original }()

		c.Next()

		body := buffered.buf.Bytes()
		header := original.Header()
		header.Add("Vary", "Accept-Encoding")

		if len(body) < minSize || header.Get("Content-Encoding") != "" {
			original.WriteHeader(buffered.status())
			_, _ = original.Write(body)
			return
		}

		var compressed bytes.Buffer
		gz := gzip.NewWriter(&compressed)
		if _, err := gz.Write(body); err != nil || gz.Close() != nil {
			original.WriteHeader(buffered.status())
			_, _ = original.Write(body)
			return
		}

		header.Set("Content-Encoding", "gzip")
		header.Set("Content-Length", strconv.Itoa(compressed.Len()))
		original.WriteHeader(buffered.status())
		_, _ = original.Write(compressed.Bytes())
	}
}

// bufferedWriter holds the body back so the encoding can be chosen once the
// handler has finished.
type bufferedWriter struct {
	gin.ResponseWriter
	buf  bytes.Buffer
	code int
}

func (w *bufferedWriter) WriteHeader(code int) {
	if w.code == 0 {
		w.code = code
	}
}

func (w *bufferedWriter) WriteHeaderNow() {}

func (w *bufferedWriter) Write(data []byte) (int, error) {
	if w.code == 0 {
		w.code = 200
	}
	return w.buf.Write(data)
}

func (w *bufferedWriter) WriteString(s string) (int, error) {
	return w.Write([]byte(s))
}

func (w *bufferedWriter) Status() int {
	return w.status()
}

func (w *bufferedWriter) Written() bool {
	return w.code != 0
}

func (w *bufferedWriter) Size() int {
	return w.buf.Len()
}

func (w *bufferedWriter) status() int {
	if w.code == 0 {
		return 200
	}
	return w.code
}
