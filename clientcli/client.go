package clientcli

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"net/url"
	"os"
)

// retrieveChunkSize is the block size used when streaming a retrieved
// file to disk.
const retrieveChunkSize = 66560

// Client performs operations against a backuper archive server.
type Client struct {
	config     *Config
	httpClient *http.Client // non-nil only when injected via WithHTTPClient
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client used for every exchange,
// bypassing per-operation session construction. Intended for tests.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// New creates a Client with the given config and options.
func New(cfg *Config, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, ErrConfigRequired
	}

	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Client{config: cfg}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// session owns the HTTP client for exactly one logical exchange. Close
// must be called on every exit path so the underlying sockets are
// released before the operation returns.
type session struct {
	client *http.Client
	owned  bool
}

func (c *Client) newSession() *session {
	if c.httpClient != nil {
		return &session{client: c.httpClient}
	}

	tr := &http.Transport{}
	if c.config.LooseTLS {
		tr.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //#nosec G402 -- explicit --loose-tls opt-in
	}

	return &session{
		client: &http.Client{
			Timeout:   c.config.Timeout,
			Transport: tr,
		},
		owned: true,
	}
}

func (s *session) Close() {
	if s.owned {
		s.client.CloseIdleConnections()
	}
}

// endpoint joins the normalized server URL with path segments, escaping
// each segment.
func (c *Client) endpoint(segments ...string) string {
	u := c.config.ServerURL
	for _, seg := range segments {
		u += "/" + url.PathEscape(seg)
	}
	return u
}

// Submit uploads the file at localPath to the archive under name. The
// file is hashed first, then streamed as a multipart body without being
// buffered in memory.
func (c *Client) Submit(ctx context.Context, name, localPath string) (*SubmitResult, error) {
	info, err := os.Stat(localPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, callerFaultf("%s does not exist", localPath)
		}
		return nil, callerFaultf("stat %s: %v", localPath, err)
	}
	if !info.Mode().IsRegular() {
		return nil, callerFaultf("%s is not a file", localPath)
	}

	file, err := os.Open(localPath) //#nosec G304 -- localPath is user-provided input
	if err != nil {
		return nil, callerFaultf("open %s: %v", localPath, err)
	}
	defer func() { _ = file.Close() }()

	digest, err := Digest(file)
	if err != nil {
		return nil, callerFaultf("hash %s: %v", localPath, err)
	}

	body, contentType := multipartBody(name, file)
	defer func() { _ = body.Close() }()

	sess := c.newSession()
	defer sess.Close()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("submit_data"), body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := sess.client.Do(req)
	if err != nil {
		return nil, classifyExchangeError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	rspBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, remoteFaultf("read response: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, remoteFault(resp.StatusCode, string(rspBody))
	}

	var sr submitRsp
	if err := json.Unmarshal(rspBody, &sr); err != nil {
		return nil, remoteFaultf("parse response: %v", err)
	}

	return &SubmitResult{
		Name:         name,
		LocalPath:    localPath,
		Digest:       digest,
		Size:         sr.Size,
		DataShards:   sr.DataShards,
		ParityShards: sr.ParityShards,
		ShardHashes:  sr.Hashes,
	}, nil
}

// multipartBody streams file as a multipart form with a filename field,
// without materializing the file in memory.
func multipartBody(name string, file io.Reader) (io.ReadCloser, string) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		err := writeMultipart(mw, name, file)
		if cerr := mw.Close(); err == nil {
			err = cerr
		}
		pw.CloseWithError(err)
	}()

	return pr, mw.FormDataContentType()
}

func writeMultipart(mw *multipart.Writer, name string, file io.Reader) error {
	if err := mw.WriteField("filename", name); err != nil {
		return err
	}
	part, err := mw.CreateFormFile("file", name)
	if err != nil {
		return err
	}
	_, err = io.Copy(part, file)
	return err
}

// Retrieve downloads the archived file name into destPath, streaming the
// body to disk in fixed-size chunks. destPath must not already exist.
//
// A mid-stream failure leaves any partially written destination file in
// place for the caller to inspect.
func (c *Client) Retrieve(ctx context.Context, name, destPath string) (*RetrieveResult, error) {
	if _, err := os.Stat(destPath); err == nil {
		return nil, callerFaultf("%s already exists", destPath)
	} else if !os.IsNotExist(err) {
		return nil, callerFaultf("stat %s: %v", destPath, err)
	}

	sess := c.newSession()
	defer sess.Close()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint("retrieve_data", name), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := sess.client.Do(req)
	if err != nil {
		return nil, classifyExchangeError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		rspBody, _ := io.ReadAll(resp.Body)
		if resp.StatusCode == http.StatusBadRequest {
			return nil, callerFault(resp.StatusCode, string(rspBody))
		}
		return nil, remoteFault(resp.StatusCode, string(rspBody))
	}

	dest, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600) //#nosec G304 -- destPath is user-provided input
	if err != nil {
		return nil, callerFaultf("create %s: %v", destPath, err)
	}

	written, copyErr := copyChunked(dest, resp.Body)
	closeErr := dest.Close()
	if copyErr != nil {
		return nil, remoteFaultf("write %s: %v", destPath, copyErr)
	}
	if closeErr != nil {
		return nil, callerFaultf("close %s: %v", destPath, closeErr)
	}

	return &RetrieveResult{
		Name:      name,
		LocalPath: destPath,
		Size:      written,
	}, nil
}

// copyChunked copies src to dst in retrieveChunkSize blocks. io.Copy is
// avoided on purpose: *os.File implements io.ReaderFrom, which would
// bypass the bounded buffer.
func copyChunked(dst io.Writer, src io.Reader) (int64, error) {
	buf := make([]byte, retrieveChunkSize)
	var written int64
	for {
		n, rerr := src.Read(buf)
		if n > 0 {
			wn, werr := dst.Write(buf[:n])
			written += int64(wn)
			if werr != nil {
				return written, werr
			}
			if wn < n {
				return written, io.ErrShortWrite
			}
		}
		if rerr == io.EOF {
			return written, nil
		}
		if rerr != nil {
			return written, rerr
		}
	}
}

// Check queries the archive for the health report of a single file.
func (c *Client) Check(ctx context.Context, name string) (*StatusReport, error) {
	sess := c.newSession()
	defer sess.Close()

	resp, err := c.get(ctx, sess, c.endpoint("check_data", name))
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	rspBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, remoteFaultf("read response: %v", err)
	}
	if resp.StatusCode == http.StatusBadRequest {
		return nil, callerFaultf("file %s not found", name)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, remoteFault(resp.StatusCode, string(rspBody))
	}

	var cr checkRsp
	if err := json.Unmarshal(rspBody, &cr); err != nil {
		return nil, remoteFaultf("parse response: %v", err)
	}

	return &StatusReport{
		Name:         cr.Name,
		LastModified: cr.Lmod,
		Health:       cr.Health,
		ShardHashes:  cr.Hashes,
	}, nil
}

// List returns the names of all archived files. An empty archive is not
// an error; the listing is returned with no entries.
func (c *Client) List(ctx context.Context) (*FileListing, error) {
	sess := c.newSession()
	defer sess.Close()

	resp, err := c.get(ctx, sess, c.endpoint("list_data"))
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	rspBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, remoteFaultf("read response: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, remoteFault(resp.StatusCode, string(rspBody))
	}

	var lr listRsp
	if err := json.Unmarshal(rspBody, &lr); err != nil {
		return nil, remoteFaultf("parse response: %v", err)
	}

	return &FileListing{Files: lr.Files}, nil
}

// Repair asks the archive to rebuild any damaged shards for name from
// the surviving ones.
func (c *Client) Repair(ctx context.Context, name string) (*RepairReport, error) {
	sess := c.newSession()
	defer sess.Close()

	resp, err := c.get(ctx, sess, c.endpoint("repair_data", name))
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	rspBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, remoteFaultf("read response: %v", err)
	}
	if resp.StatusCode == http.StatusBadRequest {
		return nil, callerFaultf("file %s not found", name)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, remoteFault(resp.StatusCode, string(rspBody))
	}

	var rr repairRsp
	if err := json.Unmarshal(rspBody, &rr); err != nil {
		return nil, remoteFaultf("parse response: %v", err)
	}

	return &RepairReport{
		Name:   rr.Name,
		Status: rr.Status,
	}, nil
}

// get issues a single GET exchange on the session.
func (c *Client) get(ctx context.Context, sess *session, endpointURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpointURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := sess.client.Do(req)
	if err != nil {
		return nil, classifyExchangeError(err)
	}
	return resp, nil
}

// classifyExchangeError maps a failed network exchange to a remote
// fault, wording timeouts explicitly.
func classifyExchangeError(err error) *Fault {
	var ne net.Error
	if (errors.As(err, &ne) && ne.Timeout()) || errors.Is(err, context.DeadlineExceeded) {
		return remoteFaultf("request timed out: %v", err)
	}
	return remoteFaultf("request failed: %v", err)
}
