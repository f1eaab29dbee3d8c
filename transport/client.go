// Package transport issues the single HTTPS call underneath every request
// built by the facade and its adaptor stack, decodes the uniform envelope,
// and normalizes the result into tgbotkit's Error taxonomy. It is the one
// concrete implementation of tgbotkit.Executor; the cache/throttle/trace
// adaptors all wrap it (or wrap each other) without ever needing to know
// it's the bottom of the stack.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"tgbotkit"
)

// DefaultTimeouts mirrors the teloxide-core defaults: a 5s connect timeout
// and a 17s overall deadline, chosen so the client survives long-lived
// polling connections without hanging forever on a dead socket.
const (
	DefaultConnectTimeout = 5 * time.Second
	DefaultOverallTimeout = 17 * time.Second
)

// MultipartPayload is implemented by payloads whose Multipart() is true. It
// exposes the form fields and file attachments the client needs to build
// the multipart/form-data body; see methods.SendPhoto for an example.
type MultipartPayload interface {
	tgbotkit.Payload
	FormFields() map[string]string
	FormFiles() []FormFile
}

// FormFile is one file attachment within a multipart payload.
type FormFile struct {
	Field string    // form field name, e.g. "photo"
	Name  string    // filename reported to the server
	Body  io.Reader // file content
}

// JSONPayload is implemented by payloads whose Multipart() is false; they
// marshal directly via encoding/json.
type JSONPayload interface {
	tgbotkit.Payload
}

// Client is the default tgbotkit.Executor: an HTTP client bound to one bot
// token and base URL. It is safe for concurrent use and cheap to copy (the
// *http.Client it wraps is itself safe for concurrent use).
type Client struct {
	token      string
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a Client. If httpClient is nil, one is created with
// DefaultTimeouts applied via context in Call (http.Client.Timeout is left
// at zero so long-polling requests with their own longer context deadline
// aren't cut short — see Call).
func NewClient(token, baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{
			Transport: &http.Transport{},
		}
	}
	return &Client{token: token, baseURL: strings.TrimRight(baseURL, "/"), httpClient: httpClient}
}

func (c *Client) methodURL(method string) string {
	return fmt.Sprintf("%s/bot%s/%s", c.baseURL, c.token, method)
}

// FileURL builds the URL a file's path (as returned by getFile) downloads
// from.
func (c *Client) FileURL(filePath string) string {
	return fmt.Sprintf("%s/file/bot%s/%s", c.baseURL, c.token, filePath)
}

// Call implements tgbotkit.Executor. It applies DefaultOverallTimeout to ctx
// if ctx has no deadline of its own, so callers get the spec's "hard overall
// deadline" without needing to remember to set one themselves.
func (c *Client) Call(ctx context.Context, p tgbotkit.Payload) (json.RawMessage, error) {
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultOverallTimeout)
		defer cancel()
	}

	var (
		req *http.Request
		err error
	)
	if p.Multipart() {
		mp, ok := p.(MultipartPayload)
		if !ok {
			return nil, &tgbotkit.Error{Kind: tgbotkit.KindDecode, Err: fmt.Errorf("transport: %s declares Multipart() but doesn't implement MultipartPayload", p.Method())}
		}
		req, err = c.buildMultipartRequest(ctx, mp)
	} else {
		req, err = c.buildJSONRequest(ctx, p)
	}
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &tgbotkit.Error{Kind: tgbotkit.KindNetwork, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &tgbotkit.Error{Kind: tgbotkit.KindNetwork, Err: err}
	}

	return decodeEnvelope(resp.StatusCode, body)
}

func (c *Client) buildJSONRequest(ctx context.Context, p tgbotkit.Payload) (*http.Request, error) {
	buf, err := json.Marshal(p)
	if err != nil {
		return nil, &tgbotkit.Error{Kind: tgbotkit.KindDecode, Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.methodURL(p.Method()), bytes.NewReader(buf))
	if err != nil {
		return nil, &tgbotkit.Error{Kind: tgbotkit.KindInvalidURL, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func (c *Client) buildMultipartRequest(ctx context.Context, p MultipartPayload) (*http.Request, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	for field, value := range p.FormFields() {
		if err := w.WriteField(field, value); err != nil {
			return nil, &tgbotkit.Error{Kind: tgbotkit.KindDecode, Err: err}
		}
	}
	for _, f := range p.FormFiles() {
		part, err := w.CreateFormFile(f.Field, f.Name)
		if err != nil {
			return nil, &tgbotkit.Error{Kind: tgbotkit.KindDecode, Err: err}
		}
		if _, err := io.Copy(part, f.Body); err != nil {
			return nil, &tgbotkit.Error{Kind: tgbotkit.KindNetwork, Err: err}
		}
	}
	if err := w.Close(); err != nil {
		return nil, &tgbotkit.Error{Kind: tgbotkit.KindDecode, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.methodURL(p.Method()), &body)
	if err != nil {
		return nil, &tgbotkit.Error{Kind: tgbotkit.KindInvalidURL, Err: err}
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req, nil
}

// DownloadFile streams the file at filePath (as returned by GetFile) to w.
func (c *Client) DownloadFile(ctx context.Context, filePath string, w io.Writer) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.FileURL(filePath), nil)
	if err != nil {
		return &tgbotkit.Error{Kind: tgbotkit.KindInvalidURL, Err: err}
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &tgbotkit.Error{Kind: tgbotkit.KindNetwork, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return &tgbotkit.Error{Kind: tgbotkit.KindAPI, Code: resp.StatusCode, Description: resp.Status}
	}
	if _, err := io.Copy(w, resp.Body); err != nil {
		return &tgbotkit.Error{Kind: tgbotkit.KindNetwork, Err: err}
	}
	return nil
}
