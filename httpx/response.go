package httpx

import (
	"bytes"
	"net/http"
)

// ResponseBuffer holds a response in memory, so a handler's output can be
// inspected before it is copied to the client.
type ResponseBuffer struct {
	status int
	header http.Header
	body   bytes.Buffer
}

func NewResponseBuffer() *ResponseBuffer {
	return &ResponseBuffer{header: http.Header{}}
}

func (b *ResponseBuffer) Header() http.Header {
	return b.header
}

func (b *ResponseBuffer) WriteHeader(status int) {
	if b.status == 0 {
		b.status = status
	}
}

func (b *ResponseBuffer) Write(p []byte) (int, error) {
	b.WriteHeader(http.StatusOK)
	return b.body.Write(p)
}

// Status is 0 until the handler writes a header or a body.
func (b *ResponseBuffer) Status() int {
	return b.status
}

func (b *ResponseBuffer) Body() []byte {
	return b.body.Bytes()
}

func (b *ResponseBuffer) Flush(w http.ResponseWriter) error {
	header := w.Header()
	for key, value := range b.header {
		header[key] = value
	}
	if b.status != 0 {
		w.WriteHeader(b.status)
	}
	_, err := w.Write(b.body.Bytes())
	return err
}
