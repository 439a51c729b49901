package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"syscall"
	"time"

	"github.com/suar-net/suar-rest/internal/model"
)

const (
	maxResponseBodySize = 10 * 1024 * 1024 // 10 MB
	maxRequestTimeout   = 90 * time.Second

	userAgent       = "REST-Client/1.0"
	networkErrorTag = "Network error or invalid URL"
	truncatedNotice = "response body truncated due to size limit"

	// StatusTransportFailure is reported when no HTTP response was obtained.
	StatusTransportFailure = 0
)

type OutboundRequest struct {
	Method  string
	URL     string
	Headers map[string]string
	// Body is the payload as supplied by the caller; nil when none was given.
	Body    *string
	Timeout time.Duration
}

// Outcome is the normalized result of a dispatch attempt.
type Outcome struct {
	Status          int
	Payload         model.Payload
	Headers         map[string]string
	TransportFailed bool
	ErrorMessage    string
	Elapsed         time.Duration

	// Truncated is set when the response body exceeded maxResponseBodySize.
	Truncated bool
}

// ResponseTimeMs returns the elapsed time in whole milliseconds.
func (o *Outcome) ResponseTimeMs() int64 {
	if o.Elapsed < 0 {
		return 0
	}
	return o.Elapsed.Milliseconds()
}

type transportError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func newOutboundRequest(dto *model.DTORequest, defaultTimeout time.Duration) (*OutboundRequest, error) {
	method := strings.ToUpper(strings.TrimSpace(dto.Method))
	if method == "" {
		return nil, fmt.Errorf("%w: method is required", ErrInvalidInput)
	}

	if strings.TrimSpace(dto.URL) == "" {
		return nil, fmt.Errorf("%w: URL cannot be empty", ErrInvalidInput)
	}

	// Timeout Validation
	timeout := defaultTimeout
	if dto.Timeout > 0 {
		timeout = time.Duration(dto.Timeout) * time.Millisecond
	}
	if timeout > maxRequestTimeout {
		return nil, fmt.Errorf("%w: timeout of %v exceeds the maximum allowed limit of %v", ErrInvalidInput, timeout, maxRequestTimeout)
	}

	body, err := decodeBody(dto.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	headers := make(map[string]string, len(dto.Headers))
	for key, value := range dto.Headers {
		headers[key] = value
	}

	return &OutboundRequest{
		Method:  method,
		URL:     dto.URL,
		Headers: headers,
		Body:    body,
		Timeout: timeout,
	}, nil
}

// decodeBody turns the raw "body" field into outbound text. A JSON string is
// used verbatim; any other JSON value is sent as its compact serialization.
func decodeBody(raw json.RawMessage) (*string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return nil, fmt.Errorf("invalid body: %v", err)
		}
		return &s, nil
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, trimmed); err != nil {
		return nil, fmt.Errorf("invalid body: %v", err)
	}
	s := buf.String()
	return &s, nil
}

func bodyless(method string) bool {
	return method == http.MethodGet || method == http.MethodHead
}

// isPrivateIP checks if a given IP address is private.
func isPrivateIP(ip net.IP) bool {
	return ip.IsLoopback() || ip.IsPrivate() || ip.IsUnspecified() ||
		ip.IsLinkLocalMulticast() || ip.IsLinkLocalUnicast()
}

var errPrivateTarget = errors.New("connections to private IP addresses are not allowed")

// denyPrivateDial runs after name resolution for every connection, so it
// also covers redirects and addresses that change between lookups.
func denyPrivateDial(network, address string, _ syscall.RawConn) error {
	host, _, err := net.SplitHostPort(address)
	if err != nil {
		return err
	}
	if ip := net.ParseIP(host); ip != nil && isPrivateIP(ip) {
		return fmt.Errorf("%w: %s", errPrivateTarget, host)
	}
	return nil
}

// checkPublicTarget rejects URLs whose host resolves to a private address.
// Unparsable URLs and resolution failures pass through so that the dispatch
// records them as transport failures.
func checkPublicTarget(ctx context.Context, rawURL string) error {
	parsedURL, err := url.Parse(rawURL)
	if err != nil || parsedURL.Hostname() == "" {
		return nil
	}

	addrs, err := net.DefaultResolver.LookupIPAddr(ctx, parsedURL.Hostname())
	if err != nil {
		return nil
	}
	for _, addr := range addrs {
		if isPrivateIP(addr.IP) {
			return fmt.Errorf("%w: requests to private IP addresses are not allowed", ErrInvalidInput)
		}
	}
	return nil
}

type HTTPDispatcher struct {
	httpClient *http.Client
}

type dispatcherOptions struct {
	blockPrivateNetworks bool
}

type DispatcherOption func(*dispatcherOptions)

// WithPrivateNetworkGuard refuses every outbound connection to a loopback,
// private or link-local address. Environment proxies are ignored while the
// guard is active.
func WithPrivateNetworkGuard(enabled bool) DispatcherOption {
	return func(o *dispatcherOptions) {
		o.blockPrivateNetworks = enabled
	}
}

func NewHTTPDispatcher(opts ...DispatcherOption) *HTTPDispatcher {
	var o dispatcherOptions
	for _, opt := range opts {
		opt(&o)
	}

	dialer := &net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
	}
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
	if o.blockPrivateNetworks {
		dialer.Control = denyPrivateDial
		transport.Proxy = nil
	}

	return &HTTPDispatcher{
		httpClient: &http.Client{
			Transport: transport,
		},
	}
}

func (d *HTTPDispatcher) Dispatch(ctx context.Context, req *OutboundRequest) *Outcome {
	startTime := time.Now()

	// Once started, only the outbound timeout may end the exchange.
	reqCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), req.Timeout)
	defer cancel()

	var bodyReader io.Reader
	if req.Body != nil && !bodyless(req.Method) {
		bodyReader = strings.NewReader(*req.Body)
	}

	httpRequest, err := http.NewRequestWithContext(reqCtx, req.Method, req.URL, bodyReader)
	if err != nil {
		return transportFailure(err, time.Since(startTime))
	}
	for key, value := range req.Headers {
		httpRequest.Header.Set(key, value)
	}
	httpRequest.Header.Set("User-Agent", userAgent)

	httpResponse, err := d.httpClient.Do(httpRequest)
	if err != nil {
		return transportFailure(err, time.Since(startTime))
	}
	defer httpResponse.Body.Close()

	limitedReader := &io.LimitedReader{R: httpResponse.Body, N: maxResponseBodySize + 1}
	bodyBytes, err := io.ReadAll(limitedReader)
	if err != nil {
		return transportFailure(fmt.Errorf("failed to read response body: %w", err), time.Since(startTime))
	}

	outcome := &Outcome{
		Status:  httpResponse.StatusCode,
		Headers: flattenHeaders(httpResponse.Header),
	}
	if limitedReader.N <= 0 {
		// A cut-off body is never valid JSON, so it is kept as text.
		outcome.Truncated = true
		outcome.ErrorMessage = truncatedNotice
		outcome.Payload = model.TextPayload(string(bodyBytes[:maxResponseBodySize]))
	} else {
		outcome.Payload = decodePayload(httpResponse.Header.Get("Content-Type"), bodyBytes)
	}
	outcome.Elapsed = time.Since(startTime)
	return outcome
}

func transportFailure(err error, elapsed time.Duration) *Outcome {
	diagnostic, _ := json.Marshal(transportError{
		Error:   networkErrorTag,
		Message: err.Error(),
	})

	return &Outcome{
		Status:          StatusTransportFailure,
		Payload:         model.JSONPayload(diagnostic),
		Headers:         map[string]string{},
		TransportFailed: true,
		ErrorMessage:    err.Error(),
		Elapsed:         elapsed,
	}
}

// decodePayload keeps JSON bodies structured when the server declares them
// as JSON; anything else, including malformed JSON, is kept as text.
func decodePayload(contentType string, body []byte) model.Payload {
	if strings.Contains(strings.ToLower(contentType), "application/json") && json.Valid(body) {
		return model.JSONPayload(json.RawMessage(body))
	}
	return model.TextPayload(string(body))
}

func flattenHeaders(h http.Header) map[string]string {
	headers := make(map[string]string, len(h))
	for key, values := range h {
		headers[strings.ToLower(key)] = strings.Join(values, ", ")
	}
	return headers
}
